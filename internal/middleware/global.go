package middleware

import (
	"errors"
	"net/http"

	"github.com/deppfellow/vehicle-api/internal/errs"
	"github.com/deppfellow/vehicle-api/internal/server"
	"github.com/deppfellow/vehicle-api/internal/sqlerr"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// GlobalMiddlewares groups “global” middleware and the global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

// NewGlobalMiddlewares constructs the middleware bundle.
func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS returns Echo’s CORS middleware limited to the configured origins.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// RequestLogger writes one "API" log line per request, leveled by status.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status

			// The error handler writes the response after this runs, so an
			// error's status has to be derived here.
			// See https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			if v.Error != nil {
				statusCode = ToAppError(v.Error).HTTPStatus()
			}

			logger := global.logger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// logger prefers the request-scoped logger and falls back to the
// application logger when ContextEnhancer did not run.
func (global *GlobalMiddlewares) logger(c echo.Context) *zerolog.Logger {
	if logger, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return logger
	}
	return global.server.Logger
}

// Recover turns handler panics into errors for GlobalErrorHandler.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

// Secure returns Echo’s secure headers middleware.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// ToAppError classifies any error reaching the HTTP boundary.
//
//   - an *errs.AppError anywhere in the chain is used as is
//   - an *echo.HTTPError (unknown route, bad method, oversized body) maps by status
//   - anything else goes through sqlerr.HandleError, which falls back to INTERNAL
func ToAppError(err error) *errs.AppError {
	if appErr, ok := errs.AsAppError(err); ok {
		return appErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		message, ok := echoErr.Message.(string)
		if !ok {
			message = http.StatusText(echoErr.Code)
		}
		return errs.FromHTTPStatus(echoErr.Code, message).WithCause(err)
	}

	return sqlerr.HandleError(err)
}

// GlobalErrorHandler is the final error funnel for the entire HTTP server.
//
// The client receives the AppError's JSON form with its HTTP status. The
// underlying cause is logged only.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	appErr := ToAppError(err)
	status := appErr.HTTPStatus()

	logger := global.logger(c)

	var e *zerolog.Event
	if status >= 500 {
		e = logger.Error().Stack()
	} else {
		e = logger.Warn()
	}
	e.
		Err(err).
		Int("status", status).
		Str("error_code", string(appErr.Code)).
		Msg(appErr.Message)

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, appErr)
	}
	if err != nil {
		logger.Error().Err(err).Msg("failed to write error response")
	}
}
