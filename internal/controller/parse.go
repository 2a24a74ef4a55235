package controller

import (
	"math"

	"github.com/deppfellow/vehicle-api/internal/model"
	"github.com/spf13/cast"
)

// parseCreateVehicleRequest extracts the create fields from an untyped body.
//
// Parsing never fails: a missing or non-coercible value becomes a value the
// rule owning that field rejects ("" for the shortcode, NaN for numbers).
func parseCreateVehicleRequest(body map[string]any) model.CreateVehicleRequest {
	return model.CreateVehicleRequest{
		Shortcode: parseString(body["shortcode"]),
		Battery:   parseNumber(body["battery"]),
		Longitude: parseNumber(body["longitude"]),
		Latitude:  parseNumber(body["latitude"]),
	}
}

func parseString(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

// parseNumber accepts JSON numbers and numeric strings.
// Booleans are refused even though cast would map them to 0/1.
func parseNumber(v any) float64 {
	switch v.(type) {
	case nil, bool:
		return math.NaN()
	}

	f, err := cast.ToFloat64E(v)
	if err != nil {
		return math.NaN()
	}
	return f
}
