package regroup

// KeyMap records which original field names each composite replaced, in
// declaration order. It is immutable once built.
type KeyMap struct {
	names     []string
	originals map[string][]string
	reverse   map[string]string
}

func newKeyMap() KeyMap {
	return KeyMap{originals: map[string][]string{}, reverse: map[string]string{}}
}

func (k *KeyMap) record(composite string, originals []string) {
	k.names = append(k.names, composite)
	k.originals[composite] = append([]string(nil), originals...)
	for _, original := range originals {
		k.reverse[original] = composite
	}
}

// Names returns composite names in the order they were created.
func (k KeyMap) Names() []string {
	return append([]string(nil), k.names...)
}

// Originals returns a copy of the original names behind composite.
func (k KeyMap) Originals(composite string) ([]string, bool) {
	originals, ok := k.originals[composite]
	if !ok {
		return nil, false
	}
	return append([]string(nil), originals...), true
}

// Composite returns the composite that replaced original.
func (k KeyMap) Composite(original string) (string, bool) {
	name, ok := k.reverse[original]
	return name, ok
}

// Len returns the number of composites.
func (k KeyMap) Len() int {
	return len(k.names)
}

// Map returns a copy of the composite to originals mapping.
func (k KeyMap) Map() map[string][]string {
	out := make(map[string][]string, len(k.originals))
	for name, originals := range k.originals {
		out[name] = append([]string(nil), originals...)
	}
	return out
}
