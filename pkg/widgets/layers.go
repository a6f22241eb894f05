package widgets

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-mapform/pkg/geometry"
	"github.com/goliatone/go-mapform/pkg/options"
)

// EditableLayer wraps the client side editable vector layer. Its geometry is
// edited through a companion textarea holding EWKT.
type EditableLayer struct {
	options options.Map
	cfg     config
}

// NewEditableLayer constructs an editable layer with the supplied layer
// options (geometry, is_collection, name, overlay_style, ...).
func NewEditableLayer(opts options.Map, configure ...Option) *EditableLayer {
	return &EditableLayer{
		options: options.Clone(opts),
		cfg:     newConfig(TemplateEditableLayer, configure),
	}
}

// Options returns a copy of the layer options.
func (l *EditableLayer) Options() options.Map {
	return options.Clone(l.options)
}

// Prepare renders the layer script and its textarea. Values that decode as
// geometries are normalised to EWKT; anything else is echoed back verbatim
// so invalid submissions can be corrected.
func (l *EditableLayer) Prepare(name string, value any, attrs Attrs) (Prepared, error) {
	renderer, err := l.cfg.renderer()
	if err != nil {
		return Prepared{}, err
	}
	id := attrs["id"]
	if id == "" {
		id = "id_" + name
	}

	layerOpts := options.Clone(l.options)
	if name != "" && !layerOpts.Has("name") {
		layerOpts["name"] = PrettyName(name)
	}
	payload, err := options.JSON(layerOpts)
	if err != nil {
		return Prepared{}, fmt.Errorf("widgets: editable layer %q options: %w", name, err)
	}

	script, err := renderer.Render(l.cfg.template, map[string]any{
		"id":      id,
		"options": payload,
	})
	if err != nil {
		return Prepared{}, fmt.Errorf("widgets: render editable layer %q: %w", name, err)
	}

	html, err := NewTextarea(nil, WithTemplates(renderer)).Render(name, l.textValue(value), mergeAttrs(attrs, Attrs{"id": id}))
	if err != nil {
		return Prepared{}, err
	}
	return Prepared{Script: strings.TrimSpace(script), HTML: html}, nil
}

// Render returns only the script half of the layer.
func (l *EditableLayer) Render(name string, value any, attrs Attrs) (string, error) {
	prepared, err := l.Prepare(name, value, attrs)
	if err != nil {
		return "", err
	}
	return prepared.Script, nil
}

func (l *EditableLayer) textValue(value any) string {
	var srid []int
	if l.cfg.srid > 0 {
		srid = []int{l.cfg.srid}
	}
	text, err := geometry.ToText(value, srid...)
	if err != nil {
		return textValue(value)
	}
	return text
}

// InfoEntry is a read only geometry with its popup. Popup is either an HTML
// string or an options.Map of per feature style overrides.
type InfoEntry struct {
	Geometry any
	Popup    any
}

// InfoLayer wraps the client side read only layer displaying popups.
type InfoLayer struct {
	entries []InfoEntry
	options options.Map
	cfg     config
}

// NewInfoLayer constructs an info layer.
func NewInfoLayer(entries []InfoEntry, opts options.Map, configure ...Option) *InfoLayer {
	return &InfoLayer{
		entries: append([]InfoEntry(nil), entries...),
		options: options.Clone(opts),
		cfg:     newConfig(TemplateInfoLayer, configure),
	}
}

// Options returns a copy of the layer options.
func (l *InfoLayer) Options() options.Map {
	return options.Clone(l.options)
}

// Entries returns the displayed entries.
func (l *InfoLayer) Entries() []InfoEntry {
	return append([]InfoEntry(nil), l.entries...)
}

// Prepare renders the layer script. Info layers have no HTML half. Geometry
// failures are returned rather than dropping the entry.
func (l *InfoLayer) Prepare(name string, _ any, _ Attrs) (Prepared, error) {
	renderer, err := l.cfg.renderer()
	if err != nil {
		return Prepared{}, err
	}

	rows := make([][2]any, 0, len(l.entries))
	for idx, entry := range l.entries {
		text, err := geometry.ToText(entry.Geometry, l.outputSRID())
		if err != nil {
			return Prepared{}, fmt.Errorf("widgets: info layer %q entry %d: %w", name, idx, err)
		}
		popup, err := l.popup(entry.Popup)
		if err != nil {
			return Prepared{}, fmt.Errorf("widgets: info layer %q entry %d: %w", name, idx, err)
		}
		rows = append(rows, [2]any{text, popup})
	}
	info, err := json.Marshal(rows)
	if err != nil {
		return Prepared{}, fmt.Errorf("widgets: encode info layer %q: %w", name, err)
	}

	layerOpts := options.Clone(l.options)
	if name != "" && !layerOpts.Has("name") {
		layerOpts["name"] = PrettyName(name)
	}
	payload, err := options.JSON(layerOpts)
	if err != nil {
		return Prepared{}, fmt.Errorf("widgets: info layer %q options: %w", name, err)
	}

	script, err := renderer.Render(l.cfg.template, map[string]any{
		"info_array": string(info),
		"options":    payload,
	})
	if err != nil {
		return Prepared{}, fmt.Errorf("widgets: render info layer %q: %w", name, err)
	}
	return Prepared{Script: strings.TrimSpace(script)}, nil
}

// Render returns the layer script.
func (l *InfoLayer) Render(name string, value any, attrs Attrs) (string, error) {
	prepared, err := l.Prepare(name, value, attrs)
	if err != nil {
		return "", err
	}
	return prepared.Script, nil
}

func (l *InfoLayer) outputSRID() int {
	if l.cfg.srid > 0 {
		return l.cfg.srid
	}
	return geometry.DefaultSRID
}

func (l *InfoLayer) popup(value any) (any, error) {
	switch typed := value.(type) {
	case nil:
		return "", nil
	case string:
		return l.policy().Sanitize(typed), nil
	case options.Map:
		return options.Translate(typed, options.CamelCase)
	case map[string]any:
		return options.Translate(options.Map(typed), options.CamelCase)
	default:
		return l.policy().Sanitize(fmt.Sprint(typed)), nil
	}
}

func (l *InfoLayer) policy() *bluemonday.Policy {
	if l.cfg.sanitizer != nil {
		return l.cfg.sanitizer
	}
	return popupPolicy
}

var popupPolicy = bluemonday.UGCPolicy()

// WithDefaults returns a copy of the layer whose options fall back to
// defaults for keys it does not set itself.
func (l *EditableLayer) WithDefaults(defaults options.Map) Layer {
	return &EditableLayer{
		options: options.Merge(defaults, l.options),
		cfg:     l.cfg,
	}
}

// WithDefaults returns a copy of the layer whose options fall back to
// defaults for keys it does not set itself.
func (l *InfoLayer) WithDefaults(defaults options.Map) Layer {
	return &InfoLayer{
		entries: append([]InfoEntry(nil), l.entries...),
		options: options.Merge(defaults, l.options),
		cfg:     l.cfg,
	}
}
