// Package validation provides field-level input checks shared by repositories.
package validation

import (
	"errors"
	"fmt"
)

// ErrValidation is matched by every error produced in this package.
var ErrValidation = errors.New("validation failed")

// FieldError reports a problem with one named input field. It unwraps to both
// ErrValidation and the underlying reason, so callers can match either.
type FieldError struct {
	Field string
	Err   error
}

func NewFieldError(field string, err error) *FieldError {
	return &FieldError{Field: field, Err: err}
}

func (fe *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", fe.Field, fe.Err)
}

func (fe *FieldError) Unwrap() []error {
	return []error{ErrValidation, fe.Err}
}

// Required returns a FieldError wrapping reason when value is empty.
func Required(field, value string, reason error) error {
	if value == "" {
		return NewFieldError(field, reason)
	}
	return nil
}
