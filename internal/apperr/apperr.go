// Package apperr is the error taxonomy of the API: every handler-level
// failure maps to one of Validation, Unauthenticated, Forbidden, NotFound
// or Internal before it reaches the caller.
package apperr

import (
	"fmt"
	"net/http"
)

// Error is an operational error with an HTTP status, rendered to callers as
// {success:false, message, statusCode}.
type Error struct {
	StatusCode int
	Message    string
	Err        error // underlying cause, logged but only exposed in development
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation marks malformed, missing or out-of-range input.
func Validation(msg string) *Error {
	return &Error{StatusCode: http.StatusBadRequest, Message: msg}
}

// Unauthenticated marks a request with no resolvable identity.
func Unauthenticated(msg string) *Error {
	return &Error{StatusCode: http.StatusUnauthorized, Message: msg}
}

// Forbidden marks a request whose credential failed verification.
func Forbidden(msg string) *Error {
	return &Error{StatusCode: http.StatusForbidden, Message: msg}
}

// NotFound marks a resource that is missing or not owned by the caller; the
// two cases are deliberately indistinguishable.
func NotFound(msg string) *Error {
	return &Error{StatusCode: http.StatusNotFound, Message: msg}
}

// Internal wraps an unexpected store or runtime failure. The cause is kept
// for the log; the caller only ever sees msg.
func Internal(msg string, err error) *Error {
	return &Error{StatusCode: http.StatusInternalServerError, Message: msg, Err: err}
}
