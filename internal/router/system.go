package router

import (
	"github.com/deppfellow/vehicle-api/internal/handler"
	"github.com/deppfellow/vehicle-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerSystemRoutes registers endpoints that are not part of the
// vehicle API itself: health, docs, static assets and metrics.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.Static("/static", handler.StaticDir)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)

	if s.Metrics != nil {
		r.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.Metrics, promhttp.HandlerOpts{
			Registry: s.Metrics,
		})))
	}
}
