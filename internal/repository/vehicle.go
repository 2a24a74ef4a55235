package repository

import (
	"context"
	"time"

	"github.com/deppfellow/vehicle-api/internal/model"
	"github.com/deppfellow/vehicle-api/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

// Querier is the subset of *pgxpool.Pool the repositories use.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const createVehicleQuery = `
INSERT INTO vehicles (shortcode, battery, longitude, latitude)
VALUES ($1, $2, $3, $4)
RETURNING id, shortcode, battery, longitude, latitude`

// VehicleRepository stores vehicles in PostgreSQL.
type VehicleRepository struct {
	db           Querier
	queryTimeout time.Duration
}

// NewVehicleRepository creates a VehicleRepository. A zero queryTimeout
// leaves the caller's context deadline untouched.
func NewVehicleRepository(db Querier, queryTimeout time.Duration) *VehicleRepository {
	return &VehicleRepository{
		db:           db,
		queryTimeout: queryTimeout,
	}
}

// CreateVehicle inserts one vehicle and returns it with its assigned id.
//
// Failures are returned as *errs.AppError (see sqlerr.HandleError).
// Nothing is retried here.
func (r *VehicleRepository) CreateVehicle(ctx context.Context, input model.CreateVehicleInput) (model.Vehicle, error) {
	if r.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.queryTimeout)
		defer cancel()
	}

	var (
		id        int64
		shortcode string
		battery   int
		position  model.Position
	)

	err := r.db.QueryRow(ctx, createVehicleQuery,
		input.Shortcode,
		input.Battery,
		input.Position.Longitude,
		input.Position.Latitude,
	).Scan(&id, &shortcode, &battery, &position.Longitude, &position.Latitude)
	if err != nil {
		return model.Vehicle{}, sqlerr.HandleError(errors.Wrap(err, "insert vehicle"))
	}

	return model.NewVehicle(id, shortcode, battery, position), nil
}
