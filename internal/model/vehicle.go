package model

// Position is a geographic coordinate pair.
type Position struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// Vehicle is a persisted vehicle as returned by the store.
//
// ID is assigned by the store, never by callers.
type Vehicle struct {
	ID        int64    `json:"id"`
	Shortcode string   `json:"shortcode"`
	Battery   int      `json:"battery"`
	Position  Position `json:"position"`
}

// NewVehicle builds a Vehicle from already validated values or a store row.
func NewVehicle(id int64, shortcode string, battery int, position Position) Vehicle {
	return Vehicle{
		ID:        id,
		Shortcode: shortcode,
		Battery:   battery,
		Position:  position,
	}
}

// CreateVehicleRequest is the parsed, still untrusted, create payload.
//
// Battery stays a float so non-integral or missing values reach the rules
// instead of being truncated during parsing. Missing numbers are NaN.
type CreateVehicleRequest struct {
	Shortcode string
	Battery   float64
	Longitude float64
	Latitude  float64
}

// Position returns the coordinate pair built from the raw longitude/latitude.
func (r CreateVehicleRequest) Position() Position {
	return Position{Longitude: r.Longitude, Latitude: r.Latitude}
}

// CreateVehicleInput is what the store receives once a request is valid.
type CreateVehicleInput struct {
	Shortcode string
	Battery   int
	Position  Position
}

// Input converts a validated request into the store input.
// Callers must only use it after validation passed.
func (r CreateVehicleRequest) Input() CreateVehicleInput {
	return CreateVehicleInput{
		Shortcode: r.Shortcode,
		Battery:   int(r.Battery),
		Position:  r.Position(),
	}
}
