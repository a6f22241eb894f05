package fields

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/paulmach/orb"

	"github.com/goliatone/go-mapform/pkg/geometry"
	"github.com/goliatone/go-mapform/pkg/widgets"
)

func TestSet_OrderAndMutation(t *testing.T) {
	set := NewSet(
		Entry{Name: "a", Field: NewChar()},
		Entry{Name: "b", Field: NewChar()},
		Entry{Name: "c", Field: NewChar()},
	)

	set.Insert(1, "z", NewChar())
	if diff := cmp.Diff([]string{"a", "z", "b", "c"}, set.Names()); diff != "" {
		t.Fatalf("names after insert mismatch (-want +got):\n%s", diff)
	}

	if _, idx, ok := set.Remove("b"); !ok || idx != 2 {
		t.Fatalf("expected b removed at 2, got idx=%d ok=%v", idx, ok)
	}

	clone := set.Clone()
	clone.Insert(99, "tail", NewChar())
	if diff := cmp.Diff([]string{"a", "z", "c"}, set.Names()); diff != "" {
		t.Fatalf("clone mutated original (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "z", "c", "tail"}, clone.Names()); diff != "" {
		t.Fatalf("clone names mismatch (-want +got):\n%s", diff)
	}
}

func TestSet_AddReplacesInPlace(t *testing.T) {
	first, second := NewChar(), NewChar(Required(false))
	set := NewSet(Entry{Name: "a", Field: first}, Entry{Name: "b", Field: NewChar()})
	set.Add("a", second)

	got, ok := set.Get("a")
	if !ok || got != Definition(second) {
		t.Fatalf("expected replacement field, got %v", got)
	}
	if idx := set.Index("a"); idx != 0 {
		t.Fatalf("expected a to keep position 0, got %d", idx)
	}
}

func TestChar_Clean(t *testing.T) {
	field := NewChar(WithMaxLength(3))

	if _, err := field.Clean("  "); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected required validation error, got %v", err)
	}
	if _, err := field.Clean("abcd"); err == nil || !strings.Contains(err.Error(), "at most 3") {
		t.Fatalf("expected max length error, got %v", err)
	}
	got, err := field.Clean(" ab ")
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if got != "ab" {
		t.Fatalf("expected trimmed value, got %q", got)
	}

	optional := NewChar(Required(false))
	if got, err := optional.Clean(nil); err != nil || got != "" {
		t.Fatalf("expected empty optional value, got %v %v", got, err)
	}
}

func TestGeometry_CleanNormalisesToEWKT(t *testing.T) {
	field := NewGeometry(geometry.KindPoint)

	got, err := field.Clean("POINT (1 2)")
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if got != "SRID=4326;POINT(1 2)" {
		t.Fatalf("unexpected cleaned value %q", got)
	}
}

func TestGeometry_CleanRejectsWrongKind(t *testing.T) {
	field := NewGeometry(geometry.KindPoint)

	_, err := field.Clean("LINESTRING(0 0,1 1)")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if diff := cmp.Diff([]string{MessageGeometryType}, verr.Messages); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestGeometry_CleanRejectsGarbage(t *testing.T) {
	field := NewGeometry(geometry.KindGeometry)

	_, err := field.Clean("not a geometry")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if diff := cmp.Diff([]string{MessageInvalidGeometry}, verr.Messages); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestGeometry_RequiredAndOptional(t *testing.T) {
	if _, err := NewGeometry(geometry.KindPolygon).Clean(""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected required error, got %v", err)
	}
	got, err := NewGeometry(geometry.KindPolygon, Required(false)).Clean("")
	if err != nil || got != nil {
		t.Fatalf("expected nil for empty optional geometry, got %v %v", got, err)
	}
}

func TestGeometry_ReprojectsIntoFieldSRID(t *testing.T) {
	field := NewGeometry(geometry.KindPoint, WithSRID(geometry.MercatorSRID))

	got, err := field.Clean("SRID=4326;POINT(180 0)")
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	parsed, err := geometry.Parse(got.(string), 0)
	if err != nil {
		t.Fatalf("parse cleaned value %q: %v", got, err)
	}
	if parsed.SRID != geometry.MercatorSRID {
		t.Fatalf("expected srid 3857, got %d", parsed.SRID)
	}
	point, ok := parsed.Geom.(orb.Point)
	if !ok || math.Abs(point.X()-20037508.34) > 1 || math.Abs(point.Y()) > 1e-3 {
		t.Fatalf("unexpected reprojected point %v", parsed.Geom)
	}
}

func TestGeometry_DefaultWidgetIsEditableMap(t *testing.T) {
	field := NewGeometry(geometry.KindMultiPolygon)

	m, ok := field.Widget().(*widgets.Map)
	if !ok {
		t.Fatalf("expected *widgets.Map, got %T", field.Widget())
	}
	layers := m.Layers()
	if len(layers) != 1 {
		t.Fatalf("expected one layer, got %d", len(layers))
	}
	want := map[string]any{"geometry": "polygon", "is_collection": true}
	got := map[string]any(layers[0].Options())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("layer options mismatch (-want +got):\n%s", diff)
	}
}

func TestGeometry_HasChangedIgnoresFormatting(t *testing.T) {
	field := NewGeometry(geometry.KindPoint)

	if HasChanged(field, "SRID=4326;POINT(1 2)", "POINT (1 2)") {
		t.Fatalf("expected equivalent geometries to be unchanged")
	}
	if !HasChanged(field, "SRID=4326;POINT(1 2)", "POINT(2 2)") {
		t.Fatalf("expected moved point to be changed")
	}
}

func TestRewidgetKeepsGeometryKind(t *testing.T) {
	field := Rewidget(NewGeometry(geometry.KindLineString), widgets.NewTextarea(nil))

	bearer, ok := field.(GeometryBearer)
	if !ok {
		t.Fatalf("expected rewidgeted field to keep GeometryBearer")
	}
	if bearer.GeometryKind() != geometry.KindLineString {
		t.Fatalf("unexpected kind %s", bearer.GeometryKind())
	}
	if _, ok := field.Widget().(*widgets.Textarea); !ok {
		t.Fatalf("expected textarea widget, got %T", field.Widget())
	}
	if _, ok := Rewidget(NewChar(), widgets.NewTextarea(nil)).(GeometryBearer); ok {
		t.Fatalf("char field should not become a geometry bearer")
	}
}

func TestInfoLayerField(t *testing.T) {
	field := NewInfoLayerField(nil, nil)
	if field.Required() {
		t.Fatalf("info layer field must not be required")
	}
	if got, err := field.Clean("anything"); got != nil || err != nil {
		t.Fatalf("expected nil clean, got %v %v", got, err)
	}
}

func TestErrors_Accumulate(t *testing.T) {
	var errs Errors
	if !errs.Empty() {
		t.Fatalf("zero value should be empty")
	}
	errs.Add("start", "bad")
	errs.Add("", "form problem")
	errs.Add("start", "worse")

	if diff := cmp.Diff([]string{"bad", "worse"}, errs.For("start")); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
	if !errors.Is(&errs, ErrValidation) {
		t.Fatalf("expected Errors to unwrap to ErrValidation")
	}
	if got := errs.Error(); got != "fields: form problem, start: bad; worse" {
		t.Fatalf("unexpected message %q", got)
	}
}
