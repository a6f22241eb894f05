package widgets

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-mapform/pkg/media"
	"github.com/goliatone/go-mapform/pkg/options"
)

// DefaultBaseLayers is applied when map options do not name base layers.
var DefaultBaseLayers = []string{"osm.mapnik"}

// Map is the container widget rendering several layers on one map.
type Map struct {
	layers   []Layer
	options  options.Map
	declared options.Map
	cfg      config
}

// NewMap constructs a map over layers with the supplied map options. The
// options are copied; "layers" defaults to DefaultBaseLayers.
func NewMap(layers []Layer, opts options.Map, configure ...Option) *Map {
	mapOpts := options.Clone(opts)
	if !mapOpts.Has("layers") {
		mapOpts["layers"] = append([]string(nil), DefaultBaseLayers...)
	}
	return &Map{
		layers:   append([]Layer(nil), layers...),
		options:  mapOpts,
		declared: options.Clone(opts),
		cfg:      newConfig(TemplateMultiLayerMap, configure),
	}
}

// Layers returns the map layers in render order.
func (m *Map) Layers() []Layer {
	return append([]Layer(nil), m.layers...)
}

// Options returns a copy of the map options.
func (m *Map) Options() options.Map {
	return options.Clone(m.options)
}

// DeclaredOptions returns a copy of the map options as supplied, without
// the DefaultBaseLayers fallback.
func (m *Map) DeclaredOptions() options.Map {
	return options.Clone(m.declared)
}

// Template returns the template identifier used by Render.
func (m *Map) Template() string {
	return m.cfg.template
}

// LayerName returns the input name of layer idx: the map name itself when
// the map has one layer, name_<idx> otherwise.
func (m *Map) LayerName(name string, idx int) string {
	if len(m.layers) == 1 {
		return name
	}
	return fmt.Sprintf("%s_%d", name, idx)
}

// Render renders every layer and wraps them in the map template. value holds
// one entry per layer; a single layer map also accepts the bare value.
func (m *Map) Render(name string, value any, attrs Attrs) (string, error) {
	renderer, err := m.cfg.renderer()
	if err != nil {
		return "", err
	}
	if name == "" {
		name = "data"
	}
	values := m.values(value)

	layerJS := make([]string, 0, len(m.layers))
	layerHTML := make([]string, 0, len(m.layers))
	for idx, layer := range m.layers {
		layerName := m.LayerName(name, idx)
		prepared, err := layer.Prepare(layerName, values[idx], Attrs{"id": "id_" + layerName})
		if err != nil {
			return "", fmt.Errorf("widgets: render map %q: %w", name, err)
		}
		layerJS = append(layerJS, prepared.Script)
		layerHTML = append(layerHTML, prepared.HTML)
	}

	payload, err := options.JSON(m.options)
	if err != nil {
		return "", fmt.Errorf("widgets: map %q options: %w", name, err)
	}

	id := attrs["id"]
	if id == "" {
		id = "id_" + name
	}
	out, err := renderer.Render(m.cfg.template, map[string]any{
		"id":         id,
		"layer_js":   layerJS,
		"layer_html": layerHTML,
		"map_opts":   payload,
	})
	if err != nil {
		return "", fmt.Errorf("widgets: render map %q: %w", name, err)
	}
	return strings.TrimSpace(out), nil
}

func (m *Map) values(value any) []any {
	values := make([]any, len(m.layers))
	switch typed := value.(type) {
	case nil:
	case []any:
		copy(values, typed)
	case []string:
		for idx := 0; idx < len(values) && idx < len(typed); idx++ {
			values[idx] = typed[idx]
		}
	default:
		if len(values) > 0 {
			values[0] = typed
		}
	}
	return values
}

// ValueFromData extracts the submitted per layer values. Single layer maps
// read the map name directly; multi layer maps read name_<idx>. It reports
// false when a single layer map received nothing.
func (m *Map) ValueFromData(data map[string]any, name string) ([]any, bool) {
	if len(m.layers) == 1 {
		value, ok := data[name]
		if !ok || value == nil {
			return nil, false
		}
		return []any{value}, true
	}
	values := make([]any, len(m.layers))
	found := false
	for idx := range m.layers {
		if value, ok := data[m.LayerName(name, idx)]; ok {
			values[idx] = value
			found = true
		}
	}
	return values, found
}

// IDForLabel points labels at the first layer input of multi layer maps.
func (m *Map) IDForLabel(id string) string {
	if id != "" && len(m.layers) > 1 {
		return id + "_0"
	}
	return id
}

// Media lists the scripts and stylesheets needed for the map's base layers.
func (m *Map) Media() media.Assets {
	layers, _ := m.options.Strings("layers")
	return m.cfg.mediaRegistry().Assets(m.cfg.media, layers)
}

// Single layer convenience constructors split layer specific keys out of
// the combined options they receive.
var (
	editableLayerKeys = []string{
		"name", "editable", "geometry", "hide_textarea", "hideTextarea",
		"is_collection", "isCollection",
	}
	infoLayerKeys = []string{"name"}
)

// NewEditableMap builds a map with a single editable layer. Layer keys
// (name, editable, geometry, hide_textarea, is_collection) go to the layer;
// everything else configures the map.
func NewEditableMap(opts options.Map, configure ...Option) *Map {
	mapOpts, layerOpts := options.Split(opts, editableLayerKeys...)
	return NewMap([]Layer{NewEditableLayer(layerOpts, layerOptions(configure)...)}, mapOpts, configure...)
}

// NewInfoMap builds a map with a single info layer.
func NewInfoMap(entries []InfoEntry, opts options.Map, configure ...Option) *Map {
	mapOpts, layerOpts := options.Split(opts, infoLayerKeys...)
	return NewMap([]Layer{NewInfoLayer(entries, layerOpts, layerOptions(configure)...)}, mapOpts, configure...)
}

// layerOptions drops the map template override so layers keep their own.
func layerOptions(configure []Option) []Option {
	cfg := newConfig("", configure)
	out := []Option{WithSRID(cfg.srid)}
	if cfg.templates != nil {
		out = append(out, WithTemplates(cfg.templates))
	}
	if cfg.sanitizer != nil {
		out = append(out, WithSanitizer(cfg.sanitizer))
	}
	return out
}
