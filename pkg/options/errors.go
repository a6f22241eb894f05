package options

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration reports option mappings that cannot be translated,
// for example nested maps keyed by non-string values.
var ErrInvalidConfiguration = errors.New("options: invalid configuration")

// ConfigError locates an invalid entry inside a nested option mapping.
type ConfigError struct {
	Path   string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("options: %s", e.Reason)
	}
	return fmt.Sprintf("options: %s at %q", e.Reason, e.Path)
}

// Unwrap allows errors.Is(err, ErrInvalidConfiguration).
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfiguration
}
