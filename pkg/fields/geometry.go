package fields

import (
	"errors"
	"strings"

	"github.com/goliatone/go-mapform/pkg/geometry"
	"github.com/goliatone/go-mapform/pkg/options"
	"github.com/goliatone/go-mapform/pkg/widgets"
)

// Geometry is a field holding one geometry of a declared kind. Cleaned
// values are canonical EWKT in the field SRID.
type Geometry struct {
	kind     geometry.Kind
	srid     int
	required bool
	widget   widgets.Widget
}

// NewGeometry constructs a geometry field. Without WithWidget the field
// renders as a single editable layer map shaped by kind.
func NewGeometry(kind geometry.Kind, configure ...Option) *Geometry {
	if kind == "" {
		kind = geometry.KindGeometry
	}
	cfg := newSettings(configure)
	widget := cfg.widget
	if widget == nil {
		widget = widgets.NewEditableMap(kind.LayerDefaults(), cfg.widgetOpts...)
	}
	return &Geometry{kind: kind, srid: cfg.srid, required: cfg.required, widget: widget}
}

// NewEditableLayerField constructs a geometry field that renders as a bare
// editable layer, meant to be placed on a shared map.
func NewEditableLayerField(kind geometry.Kind, layerOpts options.Map, configure ...Option) *Geometry {
	if kind == "" {
		kind = geometry.KindGeometry
	}
	cfg := newSettings(configure)
	merged := options.Merge(kind.LayerDefaults(), layerOpts)
	return NewGeometry(kind, append(configure, WithWidget(widgets.NewEditableLayer(merged, cfg.widgetOpts...)))...)
}

func (f *Geometry) Required() bool {
	return f.required
}

func (f *Geometry) Widget() widgets.Widget {
	return f.widget
}

// GeometryKind reports the declared kind.
func (f *Geometry) GeometryKind() geometry.Kind {
	return f.kind
}

// SRID reports the storage spatial reference.
func (f *Geometry) SRID() int {
	return f.srid
}

// Clean decodes value, checks its kind and reprojects it into the field
// SRID.
func (f *Geometry) Clean(value any) (any, error) {
	if s, ok := value.(string); ok {
		value = strings.TrimSpace(s)
	}
	if IsEmpty(value) {
		if f.required {
			return nil, NewValidationError("", MessageRequired)
		}
		return nil, nil
	}

	geom, err := geometry.Decode(value, geometry.DefaultSRID)
	if err != nil || geom.IsEmpty() {
		return nil, NewValidationError("", MessageInvalidGeometry)
	}
	if !f.kind.Accepts(geom.Geom) {
		return nil, NewValidationError("", MessageGeometryType)
	}
	if geom.SRID != f.srid {
		geom, err = geom.Transform(f.srid)
		if err != nil {
			if errors.Is(err, geometry.ErrUnsupportedSRID) {
				return nil, NewValidationError("", "Unsupported spatial reference.")
			}
			return nil, NewValidationError("", MessageInvalidGeometry)
		}
	}
	return geom.EWKT(), nil
}

// HasChanged compares geometries after normalisation so textual noise in
// the submission does not count as a change.
func (f *Geometry) HasChanged(initial, data any) bool {
	before, errBefore := geometry.ToText(initial, f.srid)
	after, errAfter := geometry.ToText(data, f.srid)
	if errBefore != nil || errAfter != nil {
		return text(initial) != text(data)
	}
	return before != after
}

// InfoLayerField is a display only field rendering an info layer. It never
// contributes data.
type InfoLayerField struct {
	widget widgets.Widget
}

// NewInfoLayerField wraps entries in an info layer.
func NewInfoLayerField(entries []widgets.InfoEntry, layerOpts options.Map, configure ...widgets.Option) *InfoLayerField {
	return &InfoLayerField{widget: widgets.NewInfoLayer(entries, layerOpts, configure...)}
}

func (f *InfoLayerField) Required() bool {
	return false
}

func (f *InfoLayerField) Widget() widgets.Widget {
	return f.widget
}

// Clean discards the submission.
func (f *InfoLayerField) Clean(any) (any, error) {
	return nil, nil
}

// HasChanged is always false.
func (f *InfoLayerField) HasChanged(any, any) bool {
	return false
}
