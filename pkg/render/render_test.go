package render_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-mapform/pkg/render"
)

func TestMergeAndSortHiddenFields(t *testing.T) {
	base := map[string]string{
		" existing ": "keep",
		"":           "ignored",
	}

	merged := render.MergeHiddenFields(base,
		render.CSRFToken("csrfmiddlewaretoken", "token123"),
		render.Hidden("version", 4),
		render.Hidden("  ", "skip"),
	)

	wantMerged := map[string]string{
		"existing":            "keep",
		"csrfmiddlewaretoken": "token123",
		"version":             "4",
	}
	if diff := cmp.Diff(wantMerged, merged); diff != "" {
		t.Fatalf("merged hidden fields mismatch (-want +got):\n%s", diff)
	}

	wantSorted := []render.HiddenField{
		{Name: "csrfmiddlewaretoken", Value: "token123"},
		{Name: "existing", Value: "keep"},
		{Name: "version", Value: "4"},
	}
	if diff := cmp.Diff(wantSorted, render.SortedHiddenFields(merged)); diff != "" {
		t.Fatalf("sorted hidden fields mismatch (-want +got):\n%s", diff)
	}
}

func TestMapErrorPayload_RoutesOriginalsToRows(t *testing.T) {
	rows := map[string]string{"start": "start_end", "end": "start_end", "koan": "koan"}
	resolve := func(name string) (string, bool) {
		row, ok := rows[name]
		return row, ok
	}

	payload := map[string][]string{
		"/body/start":      {"Start is outside the park"},
		"data.end":         {"End is outside the park", " "},
		"koan[0]":          {"Too short"},
		"__all__":          {"Form level error"},
		"request/whatever": {"Unknown field"},
	}

	mapped := render.MapErrorPayload(payload, resolve)

	wantFields := map[string][]string{
		"start_end": {"Start is outside the park", "End is outside the park"},
		"koan":      {"Too short"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Form level error", "Unknown field"}, mapped.Form); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	if diff := cmp.Diff([]string{"First", "Second", "third"}, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestLocalizer_Label(t *testing.T) {
	translations := map[string]string{"fields.route.label": "Itinéraire"}
	localizer := render.Localizer{
		Locale: "fr",
		Translator: render.TranslatorFunc(func(_ string, key string, _ ...any) (string, error) {
			if msg, ok := translations[key]; ok {
				return msg, nil
			}
			return "", errors.New("missing")
		}),
	}

	if got := localizer.Label("fields.route.label", "Route"); got != "Itinéraire" {
		t.Fatalf("expected translation, got %q", got)
	}
	if got := localizer.Label("fields.koan.label", "Koan"); got != "Koan" {
		t.Fatalf("expected fallback, got %q", got)
	}
	if got := (render.Localizer{}).Label("fields.koan.label", ""); got != "fields.koan.label" {
		t.Fatalf("expected key without translator or fallback, got %q", got)
	}
}
