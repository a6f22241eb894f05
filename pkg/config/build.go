package config

import (
	"fmt"

	"github.com/goliatone/go-mapform/pkg/admin"
	"github.com/goliatone/go-mapform/pkg/fields"
	"github.com/goliatone/go-mapform/pkg/forms"
	"github.com/goliatone/go-mapform/pkg/geometry"
	"github.com/goliatone/go-mapform/pkg/options"
	"github.com/goliatone/go-mapform/pkg/regroup"
	"github.com/goliatone/go-mapform/pkg/widgets"
)

// Specs converts the map groups to regroup specs.
func (f FormConfig) Specs() []regroup.Spec {
	specs := make([]regroup.Spec, len(f.Maps))
	for idx, group := range f.Maps {
		specs[idx] = regroup.Spec{
			Fields:   append([]string(nil), group.Fields...),
			Options:  options.Clone(group.Options),
			Template: group.Template,
		}
	}
	return specs
}

// MapOptions returns the global options deep merged with the form's own.
func (f FormConfig) MapOptions() options.Map {
	return options.Merge(f.global, f.Options)
}

// FieldSet builds the declared fields in order.
func (f FormConfig) FieldSet(widgetOpts ...widgets.Option) (*fields.Set, error) {
	set := fields.NewSet()
	for _, field := range f.Fields {
		built, err := field.build(widgetOpts)
		if err != nil {
			return nil, fmt.Errorf("config: form %q: %w", f.Name, err)
		}
		set.Add(field.Name, built)
	}
	return set, nil
}

func (c FieldConfig) build(widgetOpts []widgets.Option) (fields.Definition, error) {
	opts := []fields.Option{fields.WithWidgetOptions(widgetOpts...)}
	if c.Required != nil {
		opts = append(opts, fields.Required(*c.Required))
	}
	switch c.Type {
	case FieldTypeChar, "":
		return fields.NewChar(append(opts, fields.WithMaxLength(c.MaxLength))...), nil
	case FieldTypeGeometry:
		if c.SRID > 0 {
			opts = append(opts, fields.WithSRID(c.SRID))
		}
		return fields.NewGeometry(geometry.ParseKind(c.Geometry), opts...), nil
	default:
		return nil, fmt.Errorf("field %q has unknown type %q", c.Name, c.Type)
	}
}

// Config returns the forms configuration of this form.
func (f FormConfig) Config(widgetOpts ...widgets.Option) forms.Config {
	return forms.Config{
		Maps:     f.Specs(),
		Options:  f.MapOptions(),
		Template: f.Template,
		Widgets:  append([]widgets.Option{widgets.WithMedia(f.media)}, widgetOpts...),
	}
}

// Build constructs a form from the declared fields.
func (f FormConfig) Build(opts ...forms.Option) (*forms.Form, error) {
	set, err := f.FieldSet(widgets.WithMedia(f.media))
	if err != nil {
		return nil, err
	}
	return forms.New(set, f.Config(), opts...)
}

// Admin returns the model admin described by this form.
func (f FormConfig) Admin() *admin.ModelAdmin {
	return &admin.ModelAdmin{
		Options:        f.MapOptions(),
		Maps:           f.Specs(),
		ListMap:        append([]string(nil), f.ListMap...),
		ListMapOptions: options.Clone(f.ListMapOptions),
		Template:       f.Template,
		Media:          f.media,
	}
}

// AdminFieldSet builds the declared fields with geometry columns rendered
// through the admin map.
func (f FormConfig) AdminFieldSet(modelAdmin *admin.ModelAdmin) (*fields.Set, error) {
	set := fields.NewSet()
	for _, field := range f.Fields {
		if field.Type != FieldTypeGeometry {
			built, err := field.build(nil)
			if err != nil {
				return nil, fmt.Errorf("config: form %q: %w", f.Name, err)
			}
			set.Add(field.Name, built)
			continue
		}
		var opts []fields.Option
		if field.Required != nil {
			opts = append(opts, fields.Required(*field.Required))
		}
		if field.SRID > 0 {
			opts = append(opts, fields.WithSRID(field.SRID))
		}
		set.Add(field.Name, modelAdmin.FieldFor(field.Name, geometry.ParseKind(field.Geometry), opts...))
	}
	return set, nil
}
