package admin

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-mapform/pkg/fields"
	"github.com/goliatone/go-mapform/pkg/geometry"
	"github.com/goliatone/go-mapform/pkg/media"
	"github.com/goliatone/go-mapform/pkg/options"
	"github.com/goliatone/go-mapform/pkg/regroup"
	"github.com/goliatone/go-mapform/pkg/widgets"
)

type park struct {
	name   string
	url    string
	values map[string]any
}

func (p park) Value(field string) (any, error) {
	value, ok := p.values[field]
	if !ok {
		return nil, errors.New("no such field")
	}
	return value, nil
}

func (p park) URL() string   { return p.url }
func (p park) Label() string { return p.name }

func TestLayerOptionsFor(t *testing.T) {
	cases := []struct {
		kind geometry.Kind
		want options.Map
	}{
		{geometry.KindPoint, options.Map{"geometry": "point", "is_collection": false, "name": "loc"}},
		{geometry.KindMultiLineString, options.Map{"geometry": "linestring", "is_collection": true, "name": "loc"}},
		{geometry.KindGeometryCollection, options.Map{"geometry": []string{"polygon", "point", "linestring"}, "is_collection": true, "name": "loc"}},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, LayerOptionsFor(tc.kind, "loc")); diff != "" {
			t.Fatalf("%s options mismatch (-want +got):\n%s", tc.kind, diff)
		}
	}
}

func TestModelAdmin_FormUsesAdminTemplate(t *testing.T) {
	admin := &ModelAdmin{Options: options.Map{"layers": []string{"google.hybrid"}, "default_zoom": 4}}
	set := fields.NewSet(
		fields.Entry{Name: "name", Field: fields.NewChar()},
		fields.Entry{Name: "boundary", Field: admin.FieldFor("boundary", geometry.KindMultiPolygon)},
	)

	form, err := admin.Form(set)
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	html, err := form.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"olwidget-admin", `"defaultZoom":4`, `"layers":["google.hybrid"]`, `"isCollection":true`, `"name":"boundary"`} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
}

func TestModelAdmin_ChangelistMap(t *testing.T) {
	admin := &ModelAdmin{
		ListMap:        []string{"boundary", "entrance"},
		ListMapOptions: options.Map{"layers": []string{"osm.mapnik"}},
		Media:          media.Config{GoogleAPIKey: "k"},
	}
	records := []Record{
		park{name: "Fern & Oak", url: "/parks/1/", values: map[string]any{"boundary": "POINT(0 0)", "entrance": "POINT(1 1)"}},
		park{name: "Empty", url: "/parks/2/", values: map[string]any{"boundary": nil, "entrance": nil}},
		park{name: "Solo", url: "/parks/3/", values: map[string]any{"boundary": nil, "entrance": "SRID=4326;POINT(2 2)"}},
	}

	m, err := admin.ChangelistMap(records)
	if err != nil {
		t.Fatalf("changelist map: %v", err)
	}
	layers := m.Layers()
	if len(layers) != 1 {
		t.Fatalf("expected single info layer, got %d", len(layers))
	}
	info, ok := layers[0].(*widgets.InfoLayer)
	if !ok {
		t.Fatalf("expected info layer, got %T", layers[0])
	}
	want := []widgets.InfoEntry{
		{Geometry: "SRID=4326;GEOMETRYCOLLECTION(POINT(0 0),POINT(1 1))", Popup: "<a href='/parks/1/'>Fern &amp; Oak</a>"},
		{Geometry: "SRID=4326;POINT(2 2)", Popup: "<a href='/parks/3/'>Solo</a>"},
	}
	if diff := cmp.Diff(want, info.Entries()); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}

	html, err := m.Render("changelist", nil, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "new olwidget.InfoLayer(") {
		t.Fatalf("expected info layer script:\n%s", html)
	}
}

func TestModelAdmin_ChangelistMapDisabled(t *testing.T) {
	m, err := (&ModelAdmin{}).ChangelistMap([]Record{park{}})
	if err != nil || m != nil {
		t.Fatalf("expected nil map without list fields, got %v %v", m, err)
	}
}

func TestModelAdmin_ChangelistMapPropagatesErrors(t *testing.T) {
	admin := &ModelAdmin{ListMap: []string{"boundary"}}
	records := []Record{park{values: map[string]any{"boundary": "not wkt"}}}
	if _, err := admin.ChangelistMap(records); !errors.Is(err, geometry.ErrGeometry) {
		t.Fatalf("expected geometry error, got %v", err)
	}
}

func TestModelAdmin_GroupedColumnsRenderAsLayers(t *testing.T) {
	admin := &ModelAdmin{
		Options: options.Map{"default_zoom": 4},
		Maps:    []regroup.Spec{{Fields: []string{"start", "end"}, Options: options.Map{"layers": []string{"google.streets"}}}},
	}
	start := admin.FieldFor("start", geometry.KindPoint)
	if _, ok := start.Widget().(*widgets.EditableLayer); !ok {
		t.Fatalf("grouped column should render as a layer, got %T", start.Widget())
	}
	boundary := admin.FieldFor("boundary", geometry.KindPolygon)
	if _, ok := boundary.Widget().(*widgets.Map); !ok {
		t.Fatalf("ungrouped column should render as a map, got %T", boundary.Widget())
	}

	set := fields.NewSet(
		fields.Entry{Name: "start", Field: start},
		fields.Entry{Name: "end", Field: admin.FieldFor("end", geometry.KindPoint)},
	)
	form, err := admin.Form(set)
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	html, err := form.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{`"name":"start"`, `"name":"end"`, `"layers":["google.streets"]`, `"defaultZoom":4`} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
}

func TestModelAdmin_CustomMediaRegistry(t *testing.T) {
	registry := media.NewRegistry()
	registry.Register("acme", 100, func(layer string) bool {
		return strings.HasPrefix(layer, "acme.")
	}, func(media.Config) string {
		return "https://tiles.acme.test/api.js"
	})
	admin := &ModelAdmin{
		Options:  options.Map{"layers": []string{"acme.terrain"}},
		Registry: registry,
	}
	set := fields.NewSet(fields.Entry{Name: "spot", Field: admin.FieldFor("spot", geometry.KindPoint)})

	form, err := admin.Form(set)
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	scripts := form.Media().Scripts
	if !strings.Contains(strings.Join(scripts, " "), "https://tiles.acme.test/api.js") {
		t.Fatalf("expected custom provider script, got %v", scripts)
	}
}
