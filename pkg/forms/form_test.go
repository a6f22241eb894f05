package forms

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-mapform/pkg/fields"
	"github.com/goliatone/go-mapform/pkg/geometry"
	"github.com/goliatone/go-mapform/pkg/options"
	"github.com/goliatone/go-mapform/pkg/regroup"
	"github.com/goliatone/go-mapform/pkg/render"
)

func zenSet() *fields.Set {
	return fields.NewSet(
		fields.Entry{Name: "koan", Field: fields.NewChar()},
		fields.Entry{Name: "start", Field: fields.NewGeometry(geometry.KindPoint)},
		fields.Entry{Name: "love", Field: fields.NewChar(fields.Required(false))},
		fields.Entry{Name: "route", Field: fields.NewGeometry(geometry.KindLineString)},
		fields.Entry{Name: "end", Field: fields.NewGeometry(geometry.KindPoint)},
		fields.Entry{Name: "death", Field: fields.NewChar()},
	)
}

func zenConfig() Config {
	return Config{
		Maps: []regroup.Spec{
			{Fields: []string{"start", "end"}, Options: options.Map{"layers": []string{"google.streets"}}},
			{Fields: []string{"route"}},
		},
		Options: options.Map{"map_div_style": options.Map{"width": "300px"}},
	}
}

func zenSubmission() map[string]any {
	return map[string]any{
		"koan":        "mu",
		"start_end_0": "POINT(0 0)",
		"start_end_1": "POINT (1 1)",
		"love":        "",
		"route":       "LINESTRING(0 0,1 1)",
		"death":       "rebirth",
	}
}

func TestNew_OrdersCompositesInPlace(t *testing.T) {
	form, err := New(zenSet(), zenConfig())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	want := []string{"koan", "start_end", "love", "route", "death"}
	if diff := cmp.Diff(want, form.Fields().Names()); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_ConfigurationErrors(t *testing.T) {
	cfg := Config{Maps: []regroup.Spec{{Fields: []string{"start", "missing"}}}}
	if _, err := New(zenSet(), cfg); !errors.Is(err, regroup.ErrFieldNotFound) {
		t.Fatalf("expected ErrFieldNotFound, got %v", err)
	}
}

func TestForm_InitialFanOut(t *testing.T) {
	form, err := New(zenSet(), zenConfig())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	form.SetInitial(map[string]any{"koan": "mu", "start": "POINT(0 0)", "route": "LINESTRING(0 0,1 1)"})

	want := map[string]any{
		"koan":      "mu",
		"start_end": []any{"POINT(0 0)", nil},
		"route":     []any{"LINESTRING(0 0,1 1)"},
	}
	if diff := cmp.Diff(want, form.Initial()); diff != "" {
		t.Fatalf("initial mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_CleanRestoresOriginalNames(t *testing.T) {
	form, err := New(zenSet(), zenConfig())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	form.Bind(zenSubmission())

	cleaned, err := form.Clean()
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	want := map[string]any{
		"koan":  "mu",
		"start": "SRID=4326;POINT(0 0)",
		"end":   "SRID=4326;POINT(1 1)",
		"love":  "",
		"route": "SRID=4326;LINESTRING(0 0,1 1)",
		"death": "rebirth",
	}
	if diff := cmp.Diff(want, cleaned); diff != "" {
		t.Fatalf("cleaned mismatch (-want +got):\n%s", diff)
	}
	if !form.IsValid() {
		t.Fatalf("expected valid form")
	}
}

func TestForm_LayerErrorsUseOriginalNames(t *testing.T) {
	form, err := New(zenSet(), zenConfig())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	data := zenSubmission()
	data["start_end_1"] = "LINESTRING(0 0,1 1)"
	delete(data, "koan")
	form.Bind(data)

	_, err = form.Clean()
	var errs *fields.Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected *fields.Errors, got %v", err)
	}
	want := map[string][]string{
		"end":  {fields.MessageGeometryType},
		"koan": {fields.MessageRequired},
	}
	if diff := cmp.Diff(want, errs.Fields); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if form.IsValid() {
		t.Fatalf("expected invalid form")
	}
}

func TestForm_CleanBeforeBind(t *testing.T) {
	form, err := New(zenSet(), zenConfig())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := form.Clean(); !errors.Is(err, ErrNotBound) {
		t.Fatalf("expected ErrNotBound, got %v", err)
	}
}

func TestForm_CleanHookSeesOriginalNames(t *testing.T) {
	var seen []string
	hook := func(cleaned map[string]any) (map[string]any, error) {
		for _, name := range []string{"start", "end", "route"} {
			if _, ok := cleaned[name]; ok {
				seen = append(seen, name)
			}
		}
		if cleaned["start"] == cleaned["end"] {
			return nil, fields.NewValidationError("end", "The route must end somewhere else.")
		}
		return nil, nil
	}

	form, err := New(zenSet(), zenConfig(), WithCleanHook(hook))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	data := zenSubmission()
	data["start_end_1"] = "POINT(0 0)"
	form.Bind(data)

	_, err = form.Clean()
	if !errors.Is(err, fields.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if diff := cmp.Diff([]string{"start", "end", "route"}, seen); diff != "" {
		t.Fatalf("hook input mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"The route must end somewhere else."}, form.Errors().For("end")); diff != "" {
		t.Fatalf("hook errors mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_ChangedFields(t *testing.T) {
	form, err := New(zenSet(), zenConfig())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	form.SetInitial(map[string]any{
		"koan":  "mu",
		"start": "SRID=4326;POINT(0 0)",
		"end":   "SRID=4326;POINT(1 1)",
		"route": "SRID=4326;LINESTRING(0 0,1 1)",
		"death": "rebirth",
	})
	data := zenSubmission()
	data["start_end_1"] = "POINT(5 5)"
	form.Bind(data)

	if diff := cmp.Diff([]string{"end"}, form.ChangedFields()); diff != "" {
		t.Fatalf("changed fields mismatch (-want +got):\n%s", diff)
	}
	if !form.HasChanged() {
		t.Fatalf("expected form to report a change")
	}
}

func TestForm_BindValues(t *testing.T) {
	form, err := New(zenSet(), zenConfig())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	values := url.Values{}
	for key, value := range zenSubmission() {
		values.Set(key, value.(string))
	}
	form.BindValues(values)

	if diff := cmp.Diff([]any{"POINT(0 0)", "POINT (1 1)"}, form.Value("start_end")); diff != "" {
		t.Fatalf("bound composite value mismatch (-want +got):\n%s", diff)
	}
	if !form.IsValid() {
		t.Fatalf("expected valid form, got %v", form.Errors())
	}
}

func TestForm_Render(t *testing.T) {
	form, err := New(zenSet(), zenConfig(), WithHiddenFields(render.CSRFToken("csrfmiddlewaretoken", "tok")))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	form.SetInitial(map[string]any{"koan": "mu", "start": "POINT(0 0)"})

	html, err := form.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	wants := []string{
		`<input type="hidden" name="csrfmiddlewaretoken" value="tok">`,
		`<label for="id_koan" class="required">Koan:</label>`,
		`<label for="id_start_end_0" class="required">Start end:</label>`,
		`<label for="id_route" class="required">Route:</label>`,
		`<label for="id_love">Love:</label>`,
		`new olwidget.Map("id_start_end_map"`,
		`"layers":["google.streets"]`,
		`"mapDivStyle":{"width":"300px"}`,
		`SRID=4326;POINT(0 0)`,
	}
	for _, want := range wants {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
	if strings.Index(html, "id_koan") > strings.Index(html, "id_start_end_0") {
		t.Fatalf("rows rendered out of order:\n%s", html)
	}
}

func TestForm_RenderShowsErrors(t *testing.T) {
	form, err := New(zenSet(), zenConfig())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	data := zenSubmission()
	data["start_end_1"] = "garbage"
	form.Bind(data)
	form.IsValid()
	form.AddErrors(map[string][]string{"__all__": {"Server rejected the trip."}})

	html, err := form.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		`<ul class="errorlist nonfield"><li>Server rejected the trip.</li></ul>`,
		`<div class="form-row errors">`,
		"<li>" + fields.MessageInvalidGeometry + "</li>",
		">garbage</textarea>",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
}

func TestForm_Media(t *testing.T) {
	form, err := New(zenSet(), zenConfig())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	assets := form.Media()
	if len(assets.Scripts) == 0 {
		t.Fatalf("expected scripts")
	}
	joined := strings.Join(assets.Scripts, " ")
	for _, want := range []string{"maps.google.com", "openstreetmap"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %q among scripts %v", want, assets.Scripts)
		}
	}
}
