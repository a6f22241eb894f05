package regroup

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-mapform/pkg/fields"
	"github.com/goliatone/go-mapform/pkg/geometry"
	"github.com/goliatone/go-mapform/pkg/options"
	"github.com/goliatone/go-mapform/pkg/widgets"
)

// Regroup replaces each group of fields with one Composite placed at the
// position of the group's first member. defaults are deep merged under each
// group's own options. Without specs every geometry bearing field becomes a
// single layer group of its own.
//
// set is never modified. On error the returned set is nil.
func Regroup(set *fields.Set, specs []Spec, defaults options.Map, opts ...Option) (*fields.Set, KeyMap, error) {
	cfg := newConfig(opts)
	if set == nil {
		set = fields.NewSet()
	}
	if len(specs) == 0 {
		specs = autoSpecs(set)
	}

	names, err := validate(set, specs, cfg.nameFunc)
	if err != nil {
		return nil, KeyMap{}, err
	}

	out := set.Clone()
	keymap := newKeyMap()
	for idx, spec := range specs {
		composite, pos, err := build(out, idx, spec, defaults, cfg)
		if err != nil {
			return nil, KeyMap{}, err
		}
		for _, member := range spec.Fields {
			out.Remove(member)
		}
		out.Insert(pos, names[idx], composite)
		keymap.record(names[idx], spec.Fields)

		cfg.logger.Debug("regroup: composite created",
			zap.String("name", names[idx]),
			zap.Strings("fields", spec.Fields),
			zap.Int("position", pos),
		)
	}
	return out, keymap, nil
}

func autoSpecs(set *fields.Set) []Spec {
	var specs []Spec
	for _, entry := range set.Entries() {
		if _, ok := entry.Field.(*Composite); ok {
			continue
		}
		if _, ok := entry.Field.(fields.GeometryBearer); ok {
			specs = append(specs, Spec{Fields: []string{entry.Name}})
		}
	}
	return specs
}

// validate checks every spec up front so failures leave nothing half built.
func validate(set *fields.Set, specs []Spec, nameFunc NameFunc) ([]string, error) {
	claimed := map[string]int{}
	for idx, spec := range specs {
		if len(spec.Fields) == 0 {
			return nil, &ConfigError{Group: idx, Err: ErrEmptyGroup}
		}
		for _, member := range spec.Fields {
			field, ok := set.Get(member)
			if !ok {
				return nil, &ConfigError{Group: idx, Field: member, Err: ErrFieldNotFound}
			}
			if owner, seen := claimed[member]; seen {
				return nil, &ConfigError{Group: idx, Field: member,
					Err: fmt.Errorf("%w: already in group %d", ErrDuplicateField, owner)}
			}
			if _, nested := field.(*Composite); nested {
				return nil, &ConfigError{Group: idx, Field: member,
					Err: fmt.Errorf("%w: field is already a composite", ErrInvalidSpec)}
			}
			claimed[member] = idx
		}
	}

	names := make([]string, len(specs))
	produced := map[string]int{}
	for idx, spec := range specs {
		name := nameFunc(spec.Fields)
		if name == "" {
			return nil, &ConfigError{Group: idx, Err: fmt.Errorf("%w: empty composite name", ErrInvalidSpec)}
		}
		if other, dup := produced[name]; dup {
			return nil, &ConfigError{Group: idx, Field: name,
				Err: fmt.Errorf("%w: also produced by group %d", ErrNameCollision, other)}
		}
		if set.Index(name) >= 0 {
			if owner, ok := claimed[name]; !ok || owner != idx {
				return nil, &ConfigError{Group: idx, Field: name, Err: ErrNameCollision}
			}
		}
		produced[name] = idx
		names[idx] = name
	}
	return names, nil
}

func build(set *fields.Set, idx int, spec Spec, defaults options.Map, cfg config) (*Composite, int, error) {
	pos := -1
	children := make([]fields.Definition, 0, len(spec.Fields))
	layers := make([]widgets.Layer, 0, len(spec.Fields))
	fieldOpts := make([]options.Map, 0, len(spec.Fields))
	for _, member := range spec.Fields {
		if at := set.Index(member); pos < 0 || at < pos {
			pos = at
		}
		field, _ := set.Get(member)
		layer, mapOpts, err := layerFor(member, field, cfg.layerFactory)
		if err != nil {
			return nil, 0, &ConfigError{Group: idx, Field: member, Err: fmt.Errorf("%w: %v", ErrInvalidSpec, err)}
		}
		children = append(children, field)
		layers = append(layers, layer)
		if len(mapOpts) > 0 {
			fieldOpts = append(fieldOpts, mapOpts)
		}
	}

	// defaults < options declared on member maps < group override
	overrides := append(fieldOpts, spec.Options)
	merged, err := options.MergeCanonical(defaults, overrides...)
	if err != nil {
		return nil, 0, &ConfigError{Group: idx, Err: err}
	}

	template := spec.Template
	if template == "" {
		template = cfg.template
	}
	composite, err := NewComposite(spec.Fields, children, layers, merged, template, cfg.widgetOpts...)
	if err != nil {
		return nil, 0, &ConfigError{Group: idx, Err: err}
	}
	return composite, pos, nil
}

type defaultable interface {
	WithDefaults(defaults options.Map) widgets.Layer
}

// layerFor reuses a field's layer when it already renders as one, or as a
// single layer map, and falls back to the factory otherwise. The layer name
// defaults to the field's pretty name. Options declared on a single layer
// map are returned so they survive the regroup.
func layerFor(name string, field fields.Definition, factory LayerFactory) (widgets.Layer, options.Map, error) {
	var (
		layer   widgets.Layer
		mapOpts options.Map
	)
	switch widget := field.Widget().(type) {
	case widgets.Layer:
		layer = widget
	case *widgets.Map:
		if inner := widget.Layers(); len(inner) == 1 {
			layer = inner[0]
			mapOpts = widget.DeclaredOptions()
		}
	}
	if layer == nil {
		built, err := factory(name, field)
		if err != nil {
			return nil, nil, err
		}
		if built == nil {
			return nil, nil, fmt.Errorf("no layer for field %q", name)
		}
		layer = built
	}
	if withDefaults, ok := layer.(defaultable); ok {
		layer = withDefaults.WithDefaults(options.Map{"name": widgets.PrettyName(name)})
	}
	return layer, mapOpts, nil
}

func defaultLayerFactory(widgetOpts []widgets.Option) LayerFactory {
	return func(_ string, field fields.Definition) (widgets.Layer, error) {
		kind := geometry.KindGeometry
		if bearer, ok := field.(fields.GeometryBearer); ok {
			kind = bearer.GeometryKind()
		}
		return widgets.NewEditableLayer(kind.LayerDefaults(), widgetOpts...), nil
	}
}
