package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for record validation and connection planning.
var (
	ErrInvalidID         = errors.New("invalid id")
	ErrDuplicateID       = errors.New("duplicate id")
	ErrNotFound          = errors.New("not found")
	ErrInvalidEndpoint   = errors.New("invalid endpoint")
	ErrSameEndpoint      = errors.New("input and output station must differ")
	ErrInvalidDiameter   = errors.New("invalid diameter")
	ErrInvalidWorkshops  = errors.New("invalid workshop count")
	ErrInvalidEfficiency = errors.New("invalid efficiency")
)

// ValidationError wraps a sentinel with the offending field and value.
type ValidationError struct {
	Field   string
	Value   string
	Wrapped error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s (value=%q)", e.Wrapped, e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error { return e.Wrapped }

// NewValidationError creates a ValidationError.
func NewValidationError(field, value string, wrapped error) *ValidationError {
	return &ValidationError{Field: field, Value: value, Wrapped: wrapped}
}
