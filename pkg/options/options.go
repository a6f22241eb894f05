package options

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Map is a nested option mapping. Values are scalars, nested maps or
// sequences.
type Map map[string]any

// Keys returns the map keys in sorted order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Has reports whether key is present.
func (m Map) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m[key]
	return ok
}

// String returns the value stored under key when it is a string.
func (m Map) String(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	value, ok := m[key].(string)
	return value, ok
}

// Strings returns the value stored under key as a string slice. Both []string
// and []any holding strings are accepted.
func (m Map) Strings(key string) ([]string, bool) {
	if m == nil {
		return nil, false
	}
	switch typed := m[key].(type) {
	case []string:
		return append([]string(nil), typed...), true
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			str, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, str)
		}
		return out, true
	case string:
		return []string{typed}, true
	default:
		return nil, false
	}
}

// Pop removes key and returns its value.
func (m Map) Pop(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	value, ok := m[key]
	if ok {
		delete(m, key)
	}
	return value, ok
}

// Clone returns a deep copy of m. Nested maps and slices are copied; scalar
// values are shared.
func Clone(m Map) Map {
	if m == nil {
		return Map{}
	}
	out := make(Map, len(m))
	for key, value := range m {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case Map:
		return Clone(typed)
	case map[string]any:
		return Clone(Map(typed))
	case map[any]any:
		out := make(map[any]any, len(typed))
		for key, item := range typed {
			out[key] = cloneValue(item)
		}
		return out
	case map[string]string:
		out := make(map[string]string, len(typed))
		for key, item := range typed {
			out[key] = item
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for idx, item := range typed {
			out[idx] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), typed...)
	case []Map:
		out := make([]Map, len(typed))
		for idx, item := range typed {
			out[idx] = Clone(item)
		}
		return out
	default:
		return value
	}
}

// JSON translates m to camelCase keys and encodes it. Keys are emitted in
// sorted order so output is deterministic.
func JSON(m Map) (string, error) {
	translated, err := Translate(m, CamelCase)
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(translated)
	if err != nil {
		return "", fmt.Errorf("options: encode json: %w", err)
	}
	return string(payload), nil
}
