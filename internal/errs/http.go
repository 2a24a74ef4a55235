package errs

import (
	"net/http"
)

// NewBadRequestError creates a BAD_REQUEST AppError.
//
// violations is stored as ViolationDetails and always serialized, even when
// empty, so clients can rely on `details.violations` being present.
func NewBadRequestError(message string, violations []string) *AppError {
	if violations == nil {
		violations = []string{}
	}

	return New(ErrorCodeBadRequest, message, ViolationDetails{Violations: violations})
}

// NewNotFoundError creates a NOT_FOUND AppError.
func NewNotFoundError(message string) *AppError {
	return New(ErrorCodeNotFound, message, nil)
}

// NewConflictError creates a CONFLICT AppError.
func NewConflictError(message string) *AppError {
	return New(ErrorCodeConflict, message, nil)
}

// NewInternalServerError creates an INTERNAL AppError.
//
// Note:
//   - message is the generic status text, not the real internal error message.
//   - clients don't need your stack traces; attach the real error with WithCause
//     so it still reaches the logs.
func NewInternalServerError() *AppError {
	return New(ErrorCodeInternal, http.StatusText(http.StatusInternalServerError), nil)
}

// FromHTTPStatus converts a bare transport status (e.g. from echo's own
// errors) into an AppError of the closest code.
func FromHTTPStatus(status int, message string) *AppError {
	if message == "" {
		message = http.StatusText(status)
	}

	switch {
	case status == http.StatusNotFound, status == http.StatusMethodNotAllowed:
		return NewNotFoundError(message)
	case status == http.StatusConflict:
		return NewConflictError(message)
	case status >= 400 && status < 500:
		return NewBadRequestError(http.StatusText(http.StatusBadRequest), []string{message})
	default:
		return NewInternalServerError()
	}
}

// Internal maps any error onto an AppError.
//
// An AppError anywhere in the chain is returned unchanged; everything else
// becomes an INTERNAL error wrapping err.
func Internal(err error) *AppError {
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	return NewInternalServerError().WithCause(err)
}
