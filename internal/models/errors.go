package models

import (
	"errors"
	"strings"
)

// ErrNotFound is returned (wrapped) when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports input that breaks a domain rule. Errors holds one
// message per offending field.
type ValidationError struct {
	Message string
	Errors  []string
}

// NewValidationError builds a ValidationError with the given field messages.
func NewValidationError(message string, errs ...string) *ValidationError {
	return &ValidationError{Message: message, Errors: errs}
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Errors, "; ")
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
