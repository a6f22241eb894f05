package fields

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrValidation is wrapped by every validation failure.
var ErrValidation = errors.New("fields: validation failed")

// Messages used by the built-in fields.
const (
	MessageRequired        = "This field is required."
	MessageInvalidGeometry = "Invalid geometry value."
	MessageGeometryType    = "Invalid geometry type."
)

// ValidationError carries the messages raised while cleaning one field.
type ValidationError struct {
	Field    string
	Messages []string
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field string, messages ...string) *ValidationError {
	return &ValidationError{Field: field, Messages: append([]string(nil), messages...)}
}

func (e *ValidationError) Error() string {
	joined := strings.Join(e.Messages, "; ")
	if e.Field == "" {
		return fmt.Sprintf("fields: %s", joined)
	}
	return fmt.Sprintf("fields: %s: %s", e.Field, joined)
}

// Unwrap allows errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Errors gathers field level and form level validation messages for a
// whole form, keyed by field name.
type Errors struct {
	Fields map[string][]string
	Form   []string
}

// Add records messages against field. An empty field name records form
// level messages.
func (e *Errors) Add(field string, messages ...string) {
	if len(messages) == 0 {
		return
	}
	if field == "" {
		e.Form = append(e.Form, messages...)
		return
	}
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], messages...)
}

// Empty reports whether no messages were recorded.
func (e *Errors) Empty() bool {
	return e == nil || (len(e.Fields) == 0 && len(e.Form) == 0)
}

// For returns the messages recorded for field.
func (e *Errors) For(field string) []string {
	if e == nil {
		return nil
	}
	return e.Fields[field]
}

func (e *Errors) Error() string {
	if e.Empty() {
		return "fields: no errors"
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names)+1)
	if len(e.Form) > 0 {
		parts = append(parts, strings.Join(e.Form, "; "))
	}
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(e.Fields[name], "; ")))
	}
	return "fields: " + strings.Join(parts, ", ")
}

// Unwrap allows errors.Is(err, ErrValidation).
func (e *Errors) Unwrap() error {
	return ErrValidation
}
