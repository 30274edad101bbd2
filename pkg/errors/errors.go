// Package errors provides structured error types for kolam.
//
// Every error surfaced by the renderer, the remote design service client and
// the CLI carries a machine-readable [Code], so callers can branch on the
// failure class without string matching:
//
//	err := errors.New(errors.ErrCodeInvalidGrid, "invalid grid type: %q", g)
//	if errors.Is(err, errors.ErrCodeInvalidGrid) {
//	    // reject the request
//	}
//
//	// Wrap lower-level failures with context
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "POST %s", url)
//
// # Error Codes
//
//   - INVALID_*: Input validation failures
//   - NOT_FOUND: Missing files or cache entries
//   - NETWORK_ERROR, TIMEOUT, REMOTE_ERROR: Remote design service failures
//   - INTERNAL_ERROR, UNSUPPORTED: Everything else
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidGrid     Code = "INVALID_GRID"
	ErrCodeInvalidStroke   Code = "INVALID_STROKE"
	ErrCodeInvalidSymmetry Code = "INVALID_SYMMETRY"
	ErrCodeInvalidDesign   Code = "INVALID_DESIGN"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"
	ErrCodeRemote  Code = "REMOTE_ERROR"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
// A [*RemoteError] anywhere in the chain matches [ErrCodeRemote].
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error carries no code.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var re *RemoteError
	if errors.As(err, &re) {
		return ErrCodeRemote
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For remote failures, returns the server's response text verbatim.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Body
	}
	return err.Error()
}

// RemoteError is returned when the design service answers with a non-2xx
// status. Body is the response text exactly as received.
type RemoteError struct {
	Status int    // HTTP status code
	Body   string // Response body, verbatim
}

// Error returns the response body so the service's own message reaches the
// user unchanged. An empty body falls back to the status code.
func (e *RemoteError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("remote service returned status %d", e.Status)
	}
	return e.Body
}

// Code returns the error code for this error type.
func (e *RemoteError) Code() Code {
	return ErrCodeRemote
}

// AsRemote returns the first *RemoteError in err's chain.
func AsRemote(err error) (*RemoteError, bool) {
	var re *RemoteError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
