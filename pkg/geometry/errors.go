package geometry

import (
	"errors"
	"fmt"
)

var (
	// ErrGeometry is the sentinel wrapped by every geometry failure.
	ErrGeometry = errors.New("geometry: invalid geometry")
	// ErrUnsupportedSRID reports a reprojection to or from an unknown
	// spatial reference.
	ErrUnsupportedSRID = errors.New("geometry: unsupported srid")
)

// Error describes a parse or reprojection failure for a single input.
type Error struct {
	Op    string
	Input string
	Err   error
}

func (e *Error) Error() string {
	input := e.Input
	if len(input) > 64 {
		input = input[:61] + "..."
	}
	if input == "" {
		return fmt.Sprintf("geometry: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("geometry: %s %q: %v", e.Op, input, e.Err)
}

// Unwrap exposes both ErrGeometry and the underlying cause.
func (e *Error) Unwrap() []error {
	return []error{ErrGeometry, e.Err}
}

func newError(op, input string, err error) error {
	return &Error{Op: op, Input: input, Err: err}
}
