package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange: start after end, or a zero/negative day count when
	// pricing a range.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrUnavailableRange: at least one day in the requested range is
	// blocked, or an overlapping booking already holds it.
	ErrUnavailableRange = errors.New("requested range is not available")

	// ErrSelfBooking: a guest attempted to book their own equipment.
	ErrSelfBooking = errors.New("cannot book your own equipment")

	ErrNotFound      = errors.New("not found")
	ErrNotAuthorized = errors.New("not authorized")
	ErrInvalidStatus = errors.New("invalid status transition")
	ErrAlreadyExists = errors.New("already exists")
)

// ValidationError carries field-level detail for malformed input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
