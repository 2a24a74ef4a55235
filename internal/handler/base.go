package handler

import (
	"net/http"
	"time"

	"github.com/deppfellow/vehicle-api/internal/middleware"
	"github.com/deppfellow/vehicle-api/internal/server"
	"github.com/deppfellow/vehicle-api/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler is the base handler type that holds shared application dependencies.
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// --- Generic typed handler plumbing -----------------------------------------

// HandlerFunc is a typed endpoint receiving the decoded request payload.
type HandlerFunc[Req any, Res any] func(c echo.Context, req Req) (Res, error)

// Result is implemented by handler results that pick their own status code
// and response body.
type Result interface {
	StatusCode() int
	Payload() any
}

// ResponseHandler defines how a successful handler result is written and
// which New Relic attributes it adds.
type ResponseHandler interface {
	Handle(c echo.Context, result any) error
	GetOperation() string
	AddAttributes(txn *newrelic.Transaction, result any)
}

// JSONResponseHandler writes JSON responses. Results implementing Result
// override the default status and body.
type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result any) error {
	if r, ok := result.(Result); ok {
		return c.JSON(r.StatusCode(), r.Payload())
	}
	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, result any) {
	if r, ok := result.(Result); ok {
		txn.AddAttribute("response.status", r.StatusCode())
	}
}

// handleRequest is the shared execution pipeline for all typed handlers:
// bind, run, trace, log and write the response.
//
// A fresh payload is allocated per request. Bind failures are returned as
// BAD_REQUEST AppErrors carrying bindMessage.
func handleRequest[Req any](
	c echo.Context,
	bindMessage string,
	handler func(c echo.Context, req Req) (any, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling request")

	// ---------------- Bind phase ---------------------------------------------
	bindStart := time.Now()

	req := new(Req)
	if err := validation.Bind(c, req, bindMessage); err != nil {
		bindDuration := time.Since(bindStart)

		logger.Warn().
			Err(err).
			Dur("bind_duration", bindDuration).
			Msg("request binding failed")

		if txn != nil {
			txn.AddAttribute("bind.status", "failed")
			txn.AddAttribute("bind.duration_ms", bindDuration.Milliseconds())
		}

		return err
	}

	bindDuration := time.Since(bindStart)
	if txn != nil {
		txn.AddAttribute("bind.status", "success")
		txn.AddAttribute("bind.duration_ms", bindDuration.Milliseconds())
	}

	// ---------------- Handler execution phase --------------------------------
	handlerStart := time.Now()
	result, err := handler(c, *req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		totalDuration := time.Since(start)

		logger.Debug().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", totalDuration).
			Msg("handler execution failed")

		if txn != nil {
			if noticeable(err) {
				txn.NoticeError(nrpkgerrors.Wrap(err))
			}
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
			txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		}
		return err
	}

	totalDuration := time.Since(start)

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		responseHandler.AddAttributes(txn, result)
	}

	logger.Debug().
		Dur("handler_duration", handlerDuration).
		Dur("bind_duration", bindDuration).
		Dur("total_duration", totalDuration).
		Msg("request completed successfully")

	return responseHandler.Handle(c, result)
}

// noticeable reports whether err is recorded as a New Relic error.
// Client errors only get the handler.status attribute.
func noticeable(err error) bool {
	return middleware.ToAppError(err).HTTPStatus() >= http.StatusInternalServerError
}

// Handle wraps a typed handler into an echo.HandlerFunc.
//
//	router.POST("/vehicles", handler.Handle(h, fn, http.StatusOK, "Invalid create vehicle request"))
func Handle[Req any, Res any](
	h Handler,
	handler HandlerFunc[Req, Res],
	status int,
	bindMessage string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, bindMessage, func(c echo.Context, req Req) (any, error) {
			return handler(c, req)
		}, JSONResponseHandler{status: status})
	}
}
