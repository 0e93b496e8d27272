package compliance

import (
	"errors"
	"fmt"
)

// ErrNotFound signals that a referenced entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidState signals a status transition attempted from a non-eligible
// state, e.g. approving a document that is no longer pending.
var ErrInvalidState = errors.New("invalid document state")

// ValidationError reports malformed or inconsistent input with field-level
// detail. It is never retried automatically.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
