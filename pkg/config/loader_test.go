package config

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-mapform/pkg/options"
	"github.com/goliatone/go-mapform/pkg/regroup"
)

const baseYAML = `
options:
  layers: [osm.mapnik]
  overlay_style:
    fill_color: "#ff0000"
media:
  google_api_key: abc
forms:
  trip:
    template: templates/admin_map
    options:
      overlay_style:
        stroke_width: 3
    maps:
      - fields: [start, end]
        options:
          layers: [google.streets]
      - fields: [route]
    list_map: [route]
    fields:
      - name: koan
        max_length: 20
      - name: start
        type: geometry
        geometry: point
      - name: route
        type: geometry
        geometry: linestring
        required: false
      - name: end
        type: geometry
        geometry: point
`

const extraJSON = `{
  "options": {"overlay_style": {"fill_opacity": 0.5}},
  "forms": {
    "park": {"fields": [{"name": "boundary", "type": "geometry", "geometry": "multipolygon"}]}
  }
}`

func TestLoadFS_MergesDocuments(t *testing.T) {
	doc, err := LoadFS(fstest.MapFS{
		"a.yaml":      {Data: []byte(baseYAML)},
		"b/park.json": {Data: []byte(extraJSON)},
		"README.md":   {Data: []byte("ignored")},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"park", "trip"}, doc.Names()); diff != "" {
		t.Fatalf("form names mismatch (-want +got):\n%s", diff)
	}
	if doc.Media.GoogleAPIKey != "abc" {
		t.Fatalf("media not loaded: %#v", doc.Media)
	}

	trip, ok := doc.Form("trip")
	if !ok {
		t.Fatalf("trip form missing")
	}
	style, ok := trip.MapOptions()["overlay_style"].(options.Map)
	if !ok {
		t.Fatalf("expected nested overlay style, got %#v", trip.MapOptions()["overlay_style"])
	}
	want := options.Map{"fill_color": "#ff0000", "fill_opacity": 0.5, "stroke_width": 3}
	if diff := cmp.Diff(want, style); diff != "" {
		t.Fatalf("merged style mismatch (-want +got):\n%s", diff)
	}

	wantSpecs := []regroup.Spec{
		{Fields: []string{"start", "end"}, Options: options.Map{"layers": []any{"google.streets"}}},
		{Fields: []string{"route"}, Options: options.Map{}},
	}
	if diff := cmp.Diff(wantSpecs, trip.Specs()); diff != "" {
		t.Fatalf("specs mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFS_BuildsForm(t *testing.T) {
	doc, err := LoadFS(fstest.MapFS{"trip.yml": {Data: []byte(baseYAML)}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	trip, _ := doc.Form("trip")

	form, err := trip.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if diff := cmp.Diff([]string{"koan", "start_end", "route"}, form.Fields().Names()); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	field, _ := form.Fields().Get("route")
	if field.Required() {
		t.Fatalf("route declared optional")
	}

	assets := form.Media()
	if !strings.Contains(strings.Join(assets.Scripts, " "), "&key=abc") {
		t.Fatalf("expected google key in scripts, got %v", assets.Scripts)
	}

	html, err := form.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "olwidget-admin") {
		t.Fatalf("expected admin template:\n%s", html)
	}
}

func TestLoadFS_Admin(t *testing.T) {
	doc, err := LoadFS(fstest.MapFS{"trip.yaml": {Data: []byte(baseYAML)}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	trip, _ := doc.Form("trip")
	modelAdmin := trip.Admin()
	if diff := cmp.Diff([]string{"route"}, modelAdmin.ListMap); diff != "" {
		t.Fatalf("list map mismatch (-want +got):\n%s", diff)
	}

	set, err := trip.AdminFieldSet(modelAdmin)
	if err != nil {
		t.Fatalf("admin fields: %v", err)
	}
	form, err := modelAdmin.Form(set)
	if err != nil {
		t.Fatalf("admin form: %v", err)
	}
	if diff := cmp.Diff([]string{"koan", "start_end", "route"}, form.Fields().Names()); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"duplicate form": {
			"a.yaml": {Data: []byte("forms:\n  trip: {}\n")},
			"b.yaml": {Data: []byte("forms:\n  trip: {}\n")},
		},
		"empty map group": {
			"a.yaml": {Data: []byte("forms:\n  trip:\n    maps:\n      - fields: []\n")},
		},
		"duplicate field": {
			"a.yaml": {Data: []byte("forms:\n  trip:\n    fields:\n      - name: a\n      - name: a\n")},
		},
		"empty file": {
			"a.json": {Data: []byte("  ")},
		},
		"bad json": {
			"a.json": {Data: []byte("{")},
		},
	}
	for name, fsys := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadFS(fsys); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestFieldSet_UnknownType(t *testing.T) {
	form := FormConfig{Name: "x", Fields: []FieldConfig{{Name: "a", Type: "date"}}}
	if _, err := form.FieldSet(); err == nil || !strings.Contains(err.Error(), `unknown type "date"`) {
		t.Fatalf("expected unknown type error, got %v", err)
	}
}

func TestLoadFS_NilFS(t *testing.T) {
	doc, err := LoadFS(nil)
	if err != nil || !doc.Empty() {
		t.Fatalf("expected empty document, got %v %v", doc, err)
	}
}

func TestLoadFS_MixedConventionsResolveToOneKey(t *testing.T) {
	doc, err := LoadFS(fstest.MapFS{
		"a.yaml": {Data: []byte("options:\n  map_div_style:\n    width: 1px\n    height: 2px\nforms:\n  spot:\n    options:\n      mapDivStyle:\n        width: 9px\n    fields:\n      - name: where\n        type: geometry\n        geometry: point\n")},
		"b.json": {Data: []byte(`{"options": {"defaultZoom": 6}}`)},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	spot, _ := doc.Form("spot")
	want := options.Map{
		"map_div_style": options.Map{"width": "9px", "height": "2px"},
		"default_zoom":  float64(6),
	}
	if diff := cmp.Diff(want, spot.MapOptions()); diff != "" {
		t.Fatalf("map options mismatch (-want +got):\n%s", diff)
	}

	form, err := spot.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	html, err := form.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, `"mapDivStyle":{"height":"2px","width":"9px"}`) {
		t.Fatalf("expected merged style in output:\n%s", html)
	}
}

func TestLoadFS_RejectsKeySpelledTwice(t *testing.T) {
	_, err := LoadFS(fstest.MapFS{
		"a.yaml": {Data: []byte("forms:\n  spot:\n    options:\n      default_zoom: 1\n      defaultZoom: 2\n")},
	})
	if !errors.Is(err, options.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}
