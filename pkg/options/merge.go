package options

// Merge deep merges overrides onto base and returns a new map. Nested maps
// merge key by key; any other value replaces what was there. Neither base nor
// any override is mutated and the result shares no maps with them.
func Merge(base Map, overrides ...Map) Map {
	out := Clone(base)
	for _, override := range overrides {
		mergeInto(out, override)
	}
	return out
}

// MergeCanonical rewrites base and every override with Canonical before
// merging, so a key spelled in two conventions resolves to the later value.
// It fails when a single map spells one key twice.
func MergeCanonical(base Map, overrides ...Map) (Map, error) {
	out, err := Translate(base, Canonical)
	if err != nil {
		return nil, err
	}
	for _, override := range overrides {
		normalised, err := Translate(override, Canonical)
		if err != nil {
			return nil, err
		}
		mergeInto(out, normalised)
	}
	return out, nil
}

func mergeInto(dst Map, src Map) {
	for key, value := range src {
		incoming, incomingIsMap, _ := asMap(value, key)
		if !incomingIsMap {
			dst[key] = cloneValue(value)
			continue
		}
		existing, existingIsMap, _ := asMap(dst[key], key)
		if !existingIsMap {
			dst[key] = Clone(incoming)
			continue
		}
		merged := Clone(existing)
		mergeInto(merged, incoming)
		dst[key] = merged
	}
}

// Split moves the listed keys out of m into a second map. The input is left
// untouched; both returned maps are fresh copies.
func Split(m Map, keys ...string) (rest Map, picked Map) {
	rest = Clone(m)
	picked = Map{}
	for _, key := range keys {
		if value, ok := rest.Pop(key); ok {
			picked[key] = value
		}
	}
	return rest, picked
}
