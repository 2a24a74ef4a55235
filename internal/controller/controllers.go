package controller

import (
	"github.com/deppfellow/vehicle-api/internal/repository"
)

// Controllers groups every controller so router setup passes one object around.
type Controllers struct {
	CreateVehicle *CreateVehicleController
}

// NewControllers wires controllers to their repositories.
//
// opts are applied to every controller (e.g. a metrics recorder).
func NewControllers(repos *repository.Repositories, opts ...Option) *Controllers {
	return &Controllers{
		CreateVehicle: NewCreateVehicleController(repos.Vehicles, opts...),
	}
}
