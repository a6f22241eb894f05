package regroup

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-mapform/pkg/fields"
	"github.com/goliatone/go-mapform/pkg/options"
)

var (
	// ErrFieldNotFound reports a group naming a field the set does not hold.
	ErrFieldNotFound = errors.New("regroup: field not found")
	// ErrDuplicateField reports a field claimed by more than one group.
	ErrDuplicateField = errors.New("regroup: field referenced by more than one group")
	// ErrEmptyGroup reports a group without fields.
	ErrEmptyGroup = errors.New("regroup: group has no fields")
	// ErrNameCollision reports a composite name clashing with a kept field
	// or another composite.
	ErrNameCollision = errors.New("regroup: composite name collides with an existing field")
	// ErrInvalidSpec reports a group that cannot be built, such as one
	// listing a field that is already a composite.
	ErrInvalidSpec = errors.New("regroup: invalid group")
)

// ConfigError is returned by Regroup for integrator mistakes. It matches
// both its specific sentinel and options.ErrInvalidConfiguration.
type ConfigError struct {
	Group int
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("regroup: group %d: %v", e.Group, e.Err)
	}
	return fmt.Sprintf("regroup: group %d: field %q: %v", e.Group, e.Field, e.Err)
}

func (e *ConfigError) Unwrap() []error {
	return []error{e.Err, options.ErrInvalidConfiguration}
}

// LayerErrors aggregates per layer validation messages raised while a
// Composite cleans its children. Keys are layer positions.
type LayerErrors struct {
	Layers map[int][]string
}

func (e *LayerErrors) add(idx int, err error) {
	if e.Layers == nil {
		e.Layers = make(map[int][]string)
	}
	var verr *fields.ValidationError
	if errors.As(err, &verr) {
		e.Layers[idx] = append(e.Layers[idx], verr.Messages...)
		return
	}
	e.Layers[idx] = append(e.Layers[idx], err.Error())
}

// Messages flattens every layer message in layer order.
func (e *LayerErrors) Messages(layers int) []string {
	var out []string
	for idx := 0; idx < layers; idx++ {
		out = append(out, e.Layers[idx]...)
	}
	return out
}

func (e *LayerErrors) Error() string {
	positions := make([]int, 0, len(e.Layers))
	for idx := range e.Layers {
		positions = append(positions, idx)
	}
	sort.Ints(positions)

	parts := make([]string, 0, len(positions))
	for _, idx := range positions {
		parts = append(parts, fmt.Sprintf("layer %d: %s", idx, strings.Join(e.Layers[idx], "; ")))
	}
	return "regroup: " + strings.Join(parts, ", ")
}

// Unwrap allows errors.Is(err, fields.ErrValidation).
func (e *LayerErrors) Unwrap() error {
	return fields.ErrValidation
}
