package services

import (
	"errors"
	"fmt"
)

// ErrForbidden marks an authenticated caller who is not an author of
// the target post.
var ErrForbidden = errors.New("user is not an author of this post")

// ValidationError reports a malformed or out-of-policy field. Message
// is human-readable and names the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
