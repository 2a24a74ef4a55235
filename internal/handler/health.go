package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/deppfellow/vehicle-api/internal/middleware"
	"github.com/deppfellow/vehicle-api/internal/server"
	"github.com/labstack/echo/v4"
)

var errDatabaseNotConfigured = errors.New("database not configured")

// defaultHealthTimeout applies when observability config is absent.
const defaultHealthTimeout = 5 * time.Second

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
	db Pinger
}

// NewHealthHandler constructs a HealthHandler checking the server's pool.
func NewHealthHandler(s *server.Server) *HealthHandler {
	h := &HealthHandler{Handler: NewHandler(s)}
	if s.DB != nil {
		h.db = s.DB.Pool
	}
	return h
}

// CheckHealth returns system health status and dependency checks.
//
// It answers 200 when every check passes and 503 otherwise. With health
// checks disabled in config only liveness is reported.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := map[string]any{}
	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	timeout := defaultHealthTimeout
	enabled := true
	if obs := h.server.Config.Observability; obs != nil {
		timeout = obs.HealthChecks.Timeout
		enabled = obs.HealthChecks.Enabled
	}

	if !enabled {
		return c.JSON(http.StatusOK, response)
	}

	isHealthy := true

	ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
	defer cancel()

	dbStart := time.Now()
	err := h.pingDB(ctx)
	if err != nil {
		isHealthy = false

		checks["database"] = map[string]any{
			"status":        "unhealthy",
			"response_time": time.Since(dbStart).String(),
			"error":         err.Error(),
		}

		logger.Error().
			Err(err).
			Dur("response_time", time.Since(dbStart)).
			Msg("database health check failed")

		if app := h.server.LoggerService.GetApplication(); app != nil {
			app.RecordCustomEvent("HealthCheckError", map[string]any{
				"check_type":       "database",
				"operation":        "health_check",
				"error_type":       "database_unhealthy",
				"response_time_ms": time.Since(dbStart).Milliseconds(),
				"error_message":    err.Error(),
			})
		}
	} else {
		checks["database"] = map[string]any{
			"status":        "healthy",
			"response_time": time.Since(dbStart).String(),
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) pingDB(ctx context.Context) error {
	if h.db == nil {
		return errDatabaseNotConfigured
	}
	return h.db.Ping(ctx)
}
