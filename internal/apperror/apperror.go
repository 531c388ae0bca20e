// Package apperror defines the domain error values the service and
// repository layers return. Callers classify failures with errors.Is
// against the sentinels; the handlers decide what, if anything, to do
// with them (for the webhook, usually nothing beyond logging — the ack
// path never depends on them).
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

// AppError pairs a sentinel with a human-readable message and, for
// validation failures, the offending field.
type AppError struct {
	Err     error
	Message string
	Field   string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports that no resource exists under the given id. The
// conversation engine relies on this from the user directory to detect
// senders still in name capture.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("no %s exists with id %q", resource, id),
	}
}

// ValidationFailed reports a rejected input value on the named field.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}
