// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"net/http"

	"github.com/deppfellow/vehicle-api/internal/controller"
	"github.com/deppfellow/vehicle-api/internal/handler"
	"github.com/deppfellow/vehicle-api/internal/middleware"
	"github.com/deppfellow/vehicle-api/internal/server"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// maxBodySize bounds request bodies; a vehicle payload is a few dozen bytes.
const maxBodySize = "64K"

// NewRouter builds the Echo instance with the global middleware chain and
// every route.
//
// Order matters: New Relic starts the transaction before the request id
// exists, the context enhancer needs the request id, and the request
// logger needs the enhanced logger.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middleware.RequestID(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		echoMiddleware.BodyLimit(maxBodySize),
	)

	registerSystemRoutes(router, s, h)

	v := router.Group("/vehicles")
	v.POST("", handler.Handle(
		h.Vehicle.Handler,
		h.Vehicle.CreateVehicle,
		http.StatusOK,
		controller.MsgInvalidCreateVehicle,
	))

	return router
}
