package domain

import (
	"errors" // Sentinel errors
	"fmt"    // Error formatting
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("admin access required")
	ErrStorage      = errors.New("operation failed")
)

// ValidationError reports a single malformed or missing field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrValidation
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError builds a ValidationError for field
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewError prefixes err with the entity name, keeping it matchable with errors.Is
func NewError(entity string, err error) error {
	return fmt.Errorf("%s: %w", entity, err)
}
