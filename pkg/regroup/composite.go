package regroup

import (
	"fmt"

	"github.com/goliatone/go-mapform/pkg/fields"
	"github.com/goliatone/go-mapform/pkg/options"
	"github.com/goliatone/go-mapform/pkg/widgets"
)

// Composite stands in for a group of fields rendered on one map. Its value
// is a list holding one entry per child, in layer order.
type Composite struct {
	names    []string
	children []fields.Definition
	layers   []widgets.Layer
	widget   *widgets.Map
	options  options.Map
	template string
}

// NewComposite builds a composite over children, each rendered through the
// matching layer. names, children and layers must have equal length.
func NewComposite(names []string, children []fields.Definition, layers []widgets.Layer, opts options.Map, template string, configure ...widgets.Option) (*Composite, error) {
	if len(names) != len(children) || len(children) != len(layers) {
		return nil, fmt.Errorf("%w: %d names, %d fields, %d layers", ErrInvalidSpec, len(names), len(children), len(layers))
	}
	merged := options.Clone(opts)
	if template != "" {
		configure = append(append([]widgets.Option(nil), configure...), widgets.WithTemplate(template))
	}
	return &Composite{
		names:    append([]string(nil), names...),
		children: append([]fields.Definition(nil), children...),
		layers:   append([]widgets.Layer(nil), layers...),
		widget:   widgets.NewMap(layers, merged, configure...),
		options:  merged,
		template: template,
	}, nil
}

// Required is true when any child is required.
func (c *Composite) Required() bool {
	for _, child := range c.children {
		if child.Required() {
			return true
		}
	}
	return false
}

// Widget returns the multi layer map.
func (c *Composite) Widget() widgets.Widget {
	return c.widget
}

// Map returns the multi layer map.
func (c *Composite) Map() *widgets.Map {
	return c.widget
}

// Children returns the wrapped fields in layer order.
func (c *Composite) Children() []fields.Definition {
	return append([]fields.Definition(nil), c.children...)
}

// Layers returns the child layers in order.
func (c *Composite) Layers() []widgets.Layer {
	return append([]widgets.Layer(nil), c.layers...)
}

// Names returns the original field names in layer order.
func (c *Composite) Names() []string {
	return append([]string(nil), c.names...)
}

// Options returns a copy of the merged map options.
func (c *Composite) Options() options.Map {
	return options.Clone(c.options)
}

// Template returns the map template override, if any.
func (c *Composite) Template() string {
	return c.template
}

// Clean delegates each entry of value to the matching child. Child failures
// are collected into a LayerErrors; a value of the wrong size fails as a
// whole.
func (c *Composite) Clean(value any) (any, error) {
	values, err := c.split(value)
	if err != nil {
		return nil, err
	}

	cleaned := make([]any, len(c.children))
	var failures *LayerErrors
	for idx, child := range c.children {
		out, err := child.Clean(values[idx])
		if err != nil {
			if failures == nil {
				failures = &LayerErrors{}
			}
			failures.add(idx, err)
			continue
		}
		cleaned[idx] = out
	}
	if failures != nil {
		return nil, failures
	}
	return cleaned, nil
}

// HasChanged compares initial and data child by child.
func (c *Composite) HasChanged(initial, data any) bool {
	before, errBefore := c.split(initial)
	after, errAfter := c.split(data)
	if errBefore != nil || errAfter != nil {
		return true
	}
	for idx, child := range c.children {
		if fields.HasChanged(child, before[idx], after[idx]) {
			return true
		}
	}
	return false
}

func (c *Composite) split(value any) ([]any, error) {
	size := len(c.children)
	switch typed := value.(type) {
	case nil:
		return make([]any, size), nil
	case []any:
		if len(typed) != size {
			return nil, sizeError(size, len(typed))
		}
		return append([]any(nil), typed...), nil
	case []string:
		if len(typed) != size {
			return nil, sizeError(size, len(typed))
		}
		out := make([]any, size)
		for idx, item := range typed {
			out[idx] = item
		}
		return out, nil
	default:
		if size != 1 {
			return nil, sizeError(size, 1)
		}
		return []any{typed}, nil
	}
}

func sizeError(want, got int) error {
	return fields.NewValidationError("", fmt.Sprintf("Expected %d values, got %d.", want, got))
}
