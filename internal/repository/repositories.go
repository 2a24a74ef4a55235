package repository

import (
	"time"

	"github.com/deppfellow/vehicle-api/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Vehicles *VehicleRepository
}

// NewRepositories constructs the repository container.
//
// Repositories share the pool on s.DB; every query is bounded by
// database.query_timeout (seconds).
func NewRepositories(s *server.Server) *Repositories {
	queryTimeout := time.Duration(s.Config.Database.QueryTimeout) * time.Second

	return &Repositories{
		Vehicles: NewVehicleRepository(s.DB.Pool, queryTimeout),
	}
}
