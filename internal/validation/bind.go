package validation

import (
	"github.com/deppfellow/vehicle-api/internal/errs"
	"github.com/labstack/echo/v4"
)

// MsgMalformedBody is the violation reported when the body cannot be decoded.
const MsgMalformedBody = "Request body must be a JSON object"

// Bind decodes request data into payload.
//
// Echo returns an error when JSON is malformed or types mismatch. That error
// is turned into a BAD_REQUEST AppError so the client gets the same shape as
// for rule violations. message is the AppError message.
//
// NOTE: c.Bind expects a pointer. If payload is not a pointer,
// binding will fail or behave unexpectedly.
func Bind(c echo.Context, payload any, message string) error {
	if err := c.Bind(payload); err != nil {
		return errs.NewBadRequestError(message, []string{MsgMalformedBody}).WithCause(err)
	}
	return nil
}
