// Package handler is the first layer. The first entry point
// for business logic after the router.
//
// It decodes requests and hands them to the controller layer,
// which validates and persists. It acts as the interface between
// the HTTP request and the core business logic.
package handler

import (
	"github.com/deppfellow/vehicle-api/internal/controller"
	"github.com/deppfellow/vehicle-api/internal/server"
)

// Handlers groups all HTTP handlers so router setup receives one value.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Vehicle *VehicleHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, controllers *controller.Controllers) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Vehicle: NewVehicleHandler(s, controllers.CreateVehicle),
	}
}
