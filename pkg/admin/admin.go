// Package admin adapts model admin screens to map widgets: geometry columns
// get editable maps using the admin template, and changelists can show every
// listed record on one info map with a link popup per record.
package admin

import (
	"fmt"
	"html"

	"go.uber.org/zap"

	"github.com/goliatone/go-mapform/pkg/fields"
	"github.com/goliatone/go-mapform/pkg/forms"
	"github.com/goliatone/go-mapform/pkg/geometry"
	"github.com/goliatone/go-mapform/pkg/media"
	"github.com/goliatone/go-mapform/pkg/options"
	"github.com/goliatone/go-mapform/pkg/regroup"
	"github.com/goliatone/go-mapform/pkg/widgets"
)

// Record is one changelist row.
type Record interface {
	// Value returns the geometry stored in field.
	Value(field string) (any, error)
	// URL links to the change page of the record.
	URL() string
	// Label is the text shown in the popup.
	Label() string
}

// ModelAdmin holds the map configuration of one admin model.
type ModelAdmin struct {
	// Options are map options applied to every geometry field.
	Options options.Map
	// Maps optionally groups geometry fields on shared maps.
	Maps []regroup.Spec
	// ListMap names the geometry fields drawn on the changelist map. Empty
	// disables the changelist map.
	ListMap []string
	// ListMapOptions configure the changelist map.
	ListMapOptions options.Map
	// Template overrides the admin map template.
	Template string
	// Media configures provider endpoints and keys.
	Media media.Config
	// Registry resolves base layer scripts. Nil uses the built-in providers.
	Registry *media.Registry
	// Widgets are forwarded to every widget built.
	Widgets []widgets.Option
	Logger  *zap.Logger
}

// LayerOptionsFor returns the editable layer options for a geometry column
// of kind.
func LayerOptionsFor(kind geometry.Kind, name string) options.Map {
	out := kind.LayerDefaults()
	out["name"] = name
	return out
}

func (a *ModelAdmin) template() string {
	if a.Template != "" {
		return a.Template
	}
	return widgets.TemplateAdminMap
}

func (a *ModelAdmin) logger() *zap.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return zap.NewNop()
}

func (a *ModelAdmin) widgetOptions() []widgets.Option {
	out := append([]widgets.Option(nil), a.Widgets...)
	out = append(out, widgets.WithMedia(a.Media))
	if a.Registry != nil {
		out = append(out, widgets.WithMediaRegistry(a.Registry))
	}
	return out
}

func (a *ModelAdmin) grouped(name string) bool {
	for _, spec := range a.Maps {
		for _, member := range spec.Fields {
			if member == name {
				return true
			}
		}
	}
	return false
}

// FieldFor builds the form field of a geometry column: an editable map with
// the admin options, the column's layer defaults and the admin template.
// Columns named in Maps only get an editable layer since their group owns
// the map.
func (a *ModelAdmin) FieldFor(name string, kind geometry.Kind, opts ...fields.Option) *fields.Geometry {
	if a.grouped(name) {
		layerOpts := append([]fields.Option{fields.WithWidgetOptions(a.widgetOptions()...)}, opts...)
		return fields.NewEditableLayerField(kind, LayerOptionsFor(kind, name), layerOpts...)
	}
	mapOpts := options.Merge(a.Options, LayerOptionsFor(kind, name))
	widgetOpts := append(a.widgetOptions(), widgets.WithTemplate(a.template()))
	widget := widgets.NewEditableMap(mapOpts, widgetOpts...)
	return fields.NewGeometry(kind, append([]fields.Option{fields.WithWidget(widget)}, opts...)...)
}

// Form builds the change form of one record.
func (a *ModelAdmin) Form(set *fields.Set, opts ...forms.Option) (*forms.Form, error) {
	cfg := forms.Config{
		Maps:     a.Maps,
		Options:  a.Options,
		Template: a.template(),
		Widgets:  a.widgetOptions(),
	}
	all := append([]forms.Option{forms.WithLogger(a.logger())}, opts...)
	form, err := forms.New(set, cfg, all...)
	if err != nil {
		return nil, fmt.Errorf("admin: %w", err)
	}
	return form, nil
}

// ChangelistMap draws records on one info map. It returns nil when no list
// map fields are configured. Every record's geometries are collected in the
// default SRID; records without geometry are skipped.
func (a *ModelAdmin) ChangelistMap(records []Record) (*widgets.Map, error) {
	if len(a.ListMap) == 0 {
		return nil, nil
	}

	entries := make([]widgets.InfoEntry, 0, len(records))
	for idx, record := range records {
		values := make([]any, 0, len(a.ListMap))
		for _, field := range a.ListMap {
			value, err := record.Value(field)
			if err != nil {
				return nil, fmt.Errorf("admin: record %d field %q: %w", idx, field, err)
			}
			if value != nil {
				values = append(values, value)
			}
		}
		text, err := geometry.ToCollectionText(values, geometry.DefaultSRID)
		if err != nil {
			return nil, fmt.Errorf("admin: record %d: %w", idx, err)
		}
		if text == "" {
			continue
		}
		entries = append(entries, widgets.InfoEntry{
			Geometry: text,
			Popup:    fmt.Sprintf("<a href='%s'>%s</a>", html.EscapeString(record.URL()), html.EscapeString(record.Label())),
		})
	}

	a.logger().Debug("admin: changelist map", zap.Int("records", len(records)), zap.Int("entries", len(entries)))
	return widgets.NewInfoMap(entries, a.ListMapOptions, a.widgetOptions()...), nil
}
