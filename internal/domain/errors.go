package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation error")
	ErrNotLoggedIn     = errors.New("not logged in")
	ErrProfileRequired = errors.New("personal profile not filled in")

	// ErrSpeechUnavailable means the speech capture capability is not
	// present on this machine. Fatal for the current attempt only.
	ErrSpeechUnavailable = errors.New("speech capture unavailable")

	// ErrMalformedExtraction means the language model's response did not
	// match the strict extraction contract. The whole analysis step
	// failed; nothing from the response is salvaged.
	ErrMalformedExtraction = errors.New("malformed extraction response")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s — %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
