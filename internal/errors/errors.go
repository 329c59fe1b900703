// Package errors provides standardized domain errors with codes for the
// ballplayer guessing game.
//
// Usage:
//
//	// In services - return typed errors
//	if len(pool) == 0 {
//	    return errors.NoEligiblePlayers("no players match the active filters")
//	}
//
//	// In handlers - check with errors.Is
//	if errors.Is(err, errors.ErrNoEligiblePlayers) {
//	    // prompt the user to loosen the filters
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the application.
const (
	// CodeDataLoad marks malformed or missing source tables. Fatal at
	// startup: the process exits with a diagnostic.
	CodeDataLoad Code = "DATA_LOAD"
	// CodeNoEligiblePlayers marks an empty eligibility set. Recoverable:
	// the caller prompts for looser filters instead of crashing.
	CodeNoEligiblePlayers Code = "NO_ELIGIBLE_PLAYERS"
	// CodeRender marks an empty or inconsistent table reaching the
	// renderer. Indicates an upstream aggregation bug; aborts the round.
	CodeRender Code = "RENDER"

	CodeNotFound   Code = "NOT_FOUND"
	CodeValidation Code = "VALIDATION"
	CodeInternal   Code = "INTERNAL"
)

// HTTPStatus returns the appropriate HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidation:
		return http.StatusBadRequest
	case CodeNoEligiblePlayers:
		return http.StatusUnprocessableEntity
	case CodeDataLoad, CodeRender:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error  // unexported, for wrapping
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		cause:   err,
	}
}

// Sentinel errors for use with errors.Is().
var (
	ErrDataLoad          = &Error{Code: CodeDataLoad, Message: "data load failed"}
	ErrNoEligiblePlayers = &Error{Code: CodeNoEligiblePlayers, Message: "no eligible players"}
	ErrRender            = &Error{Code: CodeRender, Message: "render failed"}
	ErrNotFound          = &Error{Code: CodeNotFound, Message: "not found"}
	ErrValidation        = &Error{Code: CodeValidation, Message: "validation error"}
	ErrInternal          = &Error{Code: CodeInternal, Message: "internal error"}
)

// Constructor functions for creating errors with custom messages.

// DataLoad creates a data load error.
func DataLoad(msg string) *Error {
	return &Error{Code: CodeDataLoad, Message: msg}
}

// DataLoadf creates a data load error with formatted message.
func DataLoadf(format string, args ...any) *Error {
	return &Error{Code: CodeDataLoad, Message: fmt.Sprintf(format, args...)}
}

// NoEligiblePlayers creates a no-eligible-players error.
func NoEligiblePlayers(msg string) *Error {
	return &Error{Code: CodeNoEligiblePlayers, Message: msg}
}

// Render creates a render error.
func Render(msg string) *Error {
	return &Error{Code: CodeRender, Message: msg}
}

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NotFoundf creates a not found error with formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// ValidationWithDetails creates a validation error with details.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// Internal creates an internal error.
func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// Wrapf wraps an error with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}
