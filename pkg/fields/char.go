package fields

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-mapform/pkg/widgets"
)

// Char is a single line text field.
type Char struct {
	required  bool
	maxLength int
	widget    widgets.Widget
}

// NewChar constructs a text field.
func NewChar(configure ...Option) *Char {
	cfg := newSettings(configure)
	widget := cfg.widget
	if widget == nil {
		attrs := widgets.Attrs{}
		if cfg.maxLength > 0 {
			attrs["maxlength"] = fmt.Sprint(cfg.maxLength)
		}
		widget = widgets.NewTextInput(attrs, cfg.widgetOpts...)
	}
	return &Char{required: cfg.required, maxLength: cfg.maxLength, widget: widget}
}

func (f *Char) Required() bool {
	return f.required
}

func (f *Char) Widget() widgets.Widget {
	return f.widget
}

// Clean trims the value and enforces required and max length.
func (f *Char) Clean(value any) (any, error) {
	text := strings.TrimSpace(textValue(value))
	if text == "" {
		if f.required {
			return nil, NewValidationError("", MessageRequired)
		}
		return "", nil
	}
	if f.maxLength > 0 && utf8.RuneCountInString(text) > f.maxLength {
		return nil, NewValidationError("", fmt.Sprintf(
			"Ensure this value has at most %d characters (it has %d).",
			f.maxLength, utf8.RuneCountInString(text)))
	}
	return text, nil
}

func textValue(value any) string {
	if items, ok := value.([]string); ok {
		if len(items) == 0 {
			return ""
		}
		return items[len(items)-1]
	}
	return text(value)
}
