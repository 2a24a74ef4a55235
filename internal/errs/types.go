package errs

import (
	"errors"
	"net/http"
)

// ErrorCode is a closed, string-based enum of machine-readable error codes.
type ErrorCode string

const (
	// ErrorCodeBadRequest is used exclusively for validation failures.
	// Details is always a ViolationDetails.
	ErrorCodeBadRequest ErrorCode = "BAD_REQUEST"

	// ErrorCodeNotFound means the addressed resource or route does not exist.
	ErrorCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrorCodeConflict means the request collides with existing state
	// (e.g. a shortcode that is already taken).
	ErrorCodeConflict ErrorCode = "CONFLICT"

	// ErrorCodeInternal covers every failure the client cannot fix.
	ErrorCodeInternal ErrorCode = "INTERNAL"
)

// HTTPStatus maps the code onto the status the transport layer writes.
//
// Unknown codes map to 500 so a typo can never turn into a success status.
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case ErrorCodeBadRequest:
		return http.StatusBadRequest
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Valid reports whether c is one of the declared codes.
func (c ErrorCode) Valid() bool {
	switch c {
	case ErrorCodeBadRequest, ErrorCodeNotFound, ErrorCodeConflict, ErrorCodeInternal:
		return true
	}
	return false
}

// ViolationDetails is the details payload of a BAD_REQUEST error.
// Example:
//
//	{ "violations": ["Shortcode must be only 4 characters long"] }
type ViolationDetails struct {
	// Violations is ordered by the rule table that produced it.
	Violations []string `json:"violations"`
}

// AppError is the main custom error type for the whole application.
//
// It implements the `error` interface via Error().
// It is designed to be serialized directly to JSON.
// Fields:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST").
//   - Message: human-friendly message.
//   - Details: optional structured payload (ViolationDetails for bad requests).
//
// The wrapped cause is never serialized; it only shows up in logs.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details any       `json:"details,omitempty"`

	cause error
}

// New creates an AppError. details may be nil.
func New(code ErrorCode, message string, details any) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// Error makes *AppError satisfy the built-in `error` interface.
//
// It returns the Message, so printing/logging the error shows the message.
// The cause, if any, is appended for logs.
func (e *AppError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap exposes the lower-layer cause to errors.Is / errors.As.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Is customizes how errors.Is(...) treats AppError.
//
// Two AppErrors match when they carry the same Code. Message and Details are
// not compared, so callers can test for a category:
//
//	errors.Is(err, errs.New(errs.ErrorCodeConflict, "", nil))
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// HTTPStatus is a shortcut for e.Code.HTTPStatus().
func (e *AppError) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// Violations returns the violation list for BAD_REQUEST errors, nil otherwise.
func (e *AppError) Violations() []string {
	if d, ok := e.Details.(ViolationDetails); ok {
		return d.Violations
	}
	return nil
}

// WithMessage returns a *copy* of this AppError with Message replaced.
//
// Useful if you have a base error template and want to customize message
// without mutating the original.
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: message,
		Details: e.Details,
		cause:   e.cause,
	}
}

// WithCause returns a copy of this AppError that wraps cause.
func (e *AppError) WithCause(cause error) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		cause:   cause,
	}
}

// AsAppError finds the first *AppError in err's chain. A nil *AppError
// stored in an error interface does not count.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr != nil {
		return appErr, true
	}
	return nil, false
}
