// Package apperr holds the error taxonomy shared by the engine packages.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when a caller supplies a value the engine rejects.
	ErrInvalidInput = errors.New("invalid input")
	// ErrSerialization is returned when output cannot be encoded faithfully.
	ErrSerialization = errors.New("serialization failure")
	// ErrNotFound is returned by lookups that match nothing.
	ErrNotFound = errors.New("not found")
)

// FieldError names the rejected field and value.
type FieldError struct {
	Field  string
	Value  any
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s %v", e.Field, e.Reason, e.Value)
}

func (e *FieldError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Invalid builds a FieldError.
func Invalid(field string, value any, reason string) error {
	return &FieldError{Field: field, Value: value, Reason: reason}
}

// NotNegative rejects negative values for the named field.
func NotNegative(field string, value float64) error {
	if value < 0 {
		return Invalid(field, value, "must be >= 0, got")
	}
	return nil
}
