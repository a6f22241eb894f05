package regroup

import (
	"fmt"

	"github.com/goliatone/go-mapform/pkg/fields"
)

// ApplyInitial moves the initial values of every composite's originals into
// one list under the composite name. Missing originals become nil entries.
// Keys outside the keymap pass through. initial is not modified.
func ApplyInitial(initial map[string]any, keymap KeyMap) map[string]any {
	out := make(map[string]any, len(initial))
	for key, value := range initial {
		out[key] = value
	}
	for _, name := range keymap.names {
		originals := keymap.originals[name]
		values := make([]any, len(originals))
		for idx, original := range originals {
			values[idx] = initial[original]
			delete(out, original)
		}
		out[name] = values
	}
	return out
}

// ApplyCleaned spreads each composite's cleaned list back onto its original
// names. A list of the wrong length is a ValidationError. A nil value clears
// every original; a scalar is only accepted when the composite has a single
// original. cleaned is not modified.
func ApplyCleaned(cleaned map[string]any, keymap KeyMap) (map[string]any, error) {
	out := make(map[string]any, len(cleaned))
	for key, value := range cleaned {
		out[key] = value
	}
	for _, name := range keymap.names {
		value, ok := cleaned[name]
		if !ok {
			continue
		}
		originals := keymap.originals[name]
		delete(out, name)

		switch typed := value.(type) {
		case nil:
			for _, original := range originals {
				out[original] = nil
			}
		case []any:
			if len(typed) != len(originals) {
				return nil, shapeError(name, len(originals), len(typed))
			}
			for idx, original := range originals {
				out[original] = typed[idx]
			}
		case []string:
			if len(typed) != len(originals) {
				return nil, shapeError(name, len(originals), len(typed))
			}
			for idx, original := range originals {
				out[original] = typed[idx]
			}
		default:
			if len(originals) != 1 {
				return nil, shapeError(name, len(originals), 1)
			}
			out[originals[0]] = typed
		}
	}
	return out, nil
}

func shapeError(name string, want, got int) error {
	return fields.NewValidationError(name, fmt.Sprintf("Expected %d values, got %d.", want, got))
}
