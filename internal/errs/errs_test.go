package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodeHTTPStatus(t *testing.T) {
	cases := map[ErrorCode]int{
		ErrorCodeBadRequest:  http.StatusBadRequest,
		ErrorCodeNotFound:    http.StatusNotFound,
		ErrorCodeConflict:    http.StatusConflict,
		ErrorCodeInternal:    http.StatusInternalServerError,
		ErrorCode("UNKNOWN"): http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, code.HTTPStatus(), code)
	}
	assert.False(t, ErrorCode("UNKNOWN").Valid())
	assert.True(t, ErrorCodeConflict.Valid())
}

func TestNewBadRequestErrorCarriesViolations(t *testing.T) {
	err := NewBadRequestError("Invalid create vehicle request", []string{"a", "b"})

	assert.Equal(t, ErrorCodeBadRequest, err.Code)
	assert.Equal(t, "Invalid create vehicle request", err.Message)
	assert.Equal(t, ViolationDetails{Violations: []string{"a", "b"}}, err.Details)
	assert.Equal(t, []string{"a", "b"}, err.Violations())
}

func TestNewBadRequestErrorNilViolationsSerializesEmptyList(t *testing.T) {
	body, err := json.Marshal(NewBadRequestError("bad", nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"BAD_REQUEST","message":"bad","details":{"violations":[]}}`, string(body))
}

func TestAppErrorJSONOmitsCause(t *testing.T) {
	appErr := NewInternalServerError().WithCause(errors.New("connection refused"))

	body, err := json.Marshal(appErr)
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"INTERNAL","message":"Internal Server Error"}`, string(body))
	assert.Contains(t, appErr.Error(), "connection refused")
}

func TestAppErrorIsMatchesCode(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewConflictError("A Vehicle with this Shortcode already exists"))

	assert.True(t, errors.Is(err, New(ErrorCodeConflict, "", nil)))
	assert.False(t, errors.Is(err, New(ErrorCodeNotFound, "", nil)))
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	appErr := NewInternalServerError().WithCause(cause)

	assert.ErrorIs(t, appErr, cause)
}

func TestWithMessageDoesNotMutate(t *testing.T) {
	base := NewNotFoundError("Resource not found")
	custom := base.WithMessage("Vehicle not found")

	assert.Equal(t, "Resource not found", base.Message)
	assert.Equal(t, "Vehicle not found", custom.Message)
	assert.Equal(t, base.Code, custom.Code)
}

func TestFromHTTPStatus(t *testing.T) {
	assert.Equal(t, ErrorCodeNotFound, FromHTTPStatus(http.StatusNotFound, "").Code)
	assert.Equal(t, ErrorCodeNotFound, FromHTTPStatus(http.StatusMethodNotAllowed, "").Code)
	assert.Equal(t, ErrorCodeConflict, FromHTTPStatus(http.StatusConflict, "").Code)

	bad := FromHTTPStatus(http.StatusUnsupportedMediaType, "Unsupported Media Type")
	assert.Equal(t, ErrorCodeBadRequest, bad.Code)
	assert.Equal(t, []string{"Unsupported Media Type"}, bad.Violations())

	assert.Equal(t, ErrorCodeInternal, FromHTTPStatus(http.StatusBadGateway, "").Code)
}

func TestInternalKeepsAppErrors(t *testing.T) {
	conflict := NewConflictError("taken")
	assert.Same(t, conflict, Internal(fmt.Errorf("store: %w", conflict)))

	plain := errors.New("disk full")
	mapped := Internal(plain)
	assert.Equal(t, ErrorCodeInternal, mapped.Code)
	assert.ErrorIs(t, mapped, plain)
}

func TestInternalTypedNilAppError(t *testing.T) {
	var nilAppErr *AppError
	var err error = nilAppErr

	_, ok := AsAppError(err)
	assert.False(t, ok)

	mapped := Internal(err)
	require.NotNil(t, mapped)
	assert.Equal(t, ErrorCodeInternal, mapped.Code)
	assert.NotPanics(t, func() { _ = mapped.Error() })
}
