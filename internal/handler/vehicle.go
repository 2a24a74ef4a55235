package handler

import (
	"github.com/deppfellow/vehicle-api/internal/controller"
	"github.com/deppfellow/vehicle-api/internal/server"
	"github.com/labstack/echo/v4"
)

// VehicleHandler exposes the vehicle controllers over HTTP.
type VehicleHandler struct {
	Handler
	create *controller.CreateVehicleController
}

// NewVehicleHandler constructs a VehicleHandler.
func NewVehicleHandler(s *server.Server, create *controller.CreateVehicleController) *VehicleHandler {
	return &VehicleHandler{
		Handler: NewHandler(s),
		create:  create,
	}
}

// CreateVehicle hands the decoded JSON object to the controller unchanged;
// all coercion and validation happens there.
func (h *VehicleHandler) CreateVehicle(c echo.Context, body map[string]any) (*controller.Response, error) {
	return h.create.Handle(c.Request().Context(), controller.Request{Body: body})
}
