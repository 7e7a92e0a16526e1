package services

import "errors"

// Service-level errors mapped onto HTTP statuses by the controllers.
var (
	ErrNotFound  = errors.New("record not found")
	ErrForbidden = errors.New("access denied")
)

// ValidationError marks a malformed or rejected payload (400).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}
