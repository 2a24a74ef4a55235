package middleware

import (
	"github.com/deppfellow/vehicle-api/internal/server"
)

// Middlewares groups all middleware components used by the HTTP server, so
// router setup receives one value.
type Middlewares struct {
	// Global holds CORS, request logging, recovery, secure headers
	// and the global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer enriches each request with a request-scoped logger.
	ContextEnhancer *ContextEnhancer

	// Tracing provides New Relic middleware and transaction attributes.
	Tracing *TracingMiddleware
}

// NewMiddlewares constructs all middleware components.
//
// When New Relic is not configured the tracing middleware degrades into
// a pass-through.
func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
	}
}
