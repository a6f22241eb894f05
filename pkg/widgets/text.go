package widgets

import (
	"fmt"
	"strings"
)

// Textarea renders a multi line text control.
type Textarea struct {
	attrs Attrs
	cfg   config
}

// NewTextarea constructs a textarea with default rows and cols.
func NewTextarea(attrs Attrs, configure ...Option) *Textarea {
	return &Textarea{
		attrs: mergeAttrs(Attrs{"rows": "10", "cols": "40"}, attrs),
		cfg:   newConfig(TemplateTextarea, configure),
	}
}

// Render implements Widget.
func (w *Textarea) Render(name string, value any, attrs Attrs) (string, error) {
	renderer, err := w.cfg.renderer()
	if err != nil {
		return "", err
	}
	merged := mergeAttrs(w.attrs, attrs)
	if name != "" {
		merged["name"] = name
	}
	out, err := renderer.Render(w.cfg.template, map[string]any{
		"attrs": sortedAttrs(merged),
		"value": textValue(value),
	})
	if err != nil {
		return "", fmt.Errorf("widgets: render textarea %q: %w", name, err)
	}
	return strings.TrimSpace(out), nil
}

// TextInput renders a single line input.
type TextInput struct {
	inputType string
	attrs     Attrs
	cfg       config
}

// NewTextInput constructs a text input.
func NewTextInput(attrs Attrs, configure ...Option) *TextInput {
	return &TextInput{
		inputType: "text",
		attrs:     mergeAttrs(nil, attrs),
		cfg:       newConfig(TemplateTextInput, configure),
	}
}

// Render implements Widget.
func (w *TextInput) Render(name string, value any, attrs Attrs) (string, error) {
	renderer, err := w.cfg.renderer()
	if err != nil {
		return "", err
	}
	merged := mergeAttrs(w.attrs, attrs)
	merged["type"] = w.inputType
	if name != "" {
		merged["name"] = name
	}
	if text := textValue(value); text != "" {
		merged["value"] = text
	}
	out, err := renderer.Render(w.cfg.template, map[string]any{
		"attrs": sortedAttrs(merged),
	})
	if err != nil {
		return "", fmt.Errorf("widgets: render input %q: %w", name, err)
	}
	return strings.TrimSpace(out), nil
}

func textValue(value any) string {
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
