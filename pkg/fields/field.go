package fields

import (
	"fmt"

	"github.com/goliatone/go-mapform/pkg/geometry"
	"github.com/goliatone/go-mapform/pkg/widgets"
)

// Definition is a single form input.
type Definition interface {
	Required() bool
	Widget() widgets.Widget
	Clean(value any) (any, error)
}

// GeometryBearer is implemented by fields holding a geometry of a declared
// kind. The regrouper wraps every geometry bearing field in a map.
type GeometryBearer interface {
	GeometryKind() geometry.Kind
}

// Changer lets a field decide whether submitted data differs from the
// initial value. Fields without it are compared textually.
type Changer interface {
	HasChanged(initial, data any) bool
}

// HasChanged reports whether data differs from initial for field.
func HasChanged(field Definition, initial, data any) bool {
	if changer, ok := field.(Changer); ok {
		return changer.HasChanged(initial, data)
	}
	return text(initial) != text(data)
}

// Rewidget returns field rendered through widget instead of its own. The
// geometry kind of field, if any, is preserved.
func Rewidget(field Definition, widget widgets.Widget) Definition {
	if bearer, ok := field.(GeometryBearer); ok {
		return &rewidgetedGeometry{rewidgeted: rewidgeted{Definition: field, widget: widget}, kind: bearer.GeometryKind()}
	}
	return &rewidgeted{Definition: field, widget: widget}
}

type rewidgeted struct {
	Definition
	widget widgets.Widget
}

func (r *rewidgeted) Widget() widgets.Widget {
	return r.widget
}

func (r *rewidgeted) HasChanged(initial, data any) bool {
	return HasChanged(r.Definition, initial, data)
}

// Unwrap returns the field Rewidget wrapped.
func (r *rewidgeted) Unwrap() Definition {
	return r.Definition
}

type rewidgetedGeometry struct {
	rewidgeted
	kind geometry.Kind
}

func (r *rewidgetedGeometry) GeometryKind() geometry.Kind {
	return r.kind
}

func text(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case fmt.Stringer:
		return typed.String()
	default:
		return fmt.Sprint(typed)
	}
}

// IsEmpty reports whether a submitted value counts as missing.
func IsEmpty(value any) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case string:
		return len(typed) == 0
	case []any:
		return len(typed) == 0
	case []string:
		return len(typed) == 0
	case []byte:
		return len(typed) == 0
	default:
		return false
	}
}
