package validation

import (
	"errors"
	"math"

	"github.com/deppfellow/vehicle-api/internal/model"
	"github.com/go-playground/validator/v10"
)

const (
	// MsgShortcodeLength is reported when the shortcode is not exactly 4 characters.
	MsgShortcodeLength = "Shortcode must be only 4 characters long"

	// MsgBatteryRange is reported when the battery is not an integer in [0,100].
	MsgBatteryRange = "Battery must be between 0 and 100"

	// MsgInvalidPosition is reported when longitude or latitude is out of range.
	MsgInvalidPosition = "Position must be a valid coordinate"
)

// validate is shared by all rules. validator.Validate caches struct and tag
// metadata and is safe for concurrent use.
var validate = validator.New()

var errNotInteger = errors.New("value is not an integer")

// Rule is one entry of a rule table.
//
// Check returns nil when the request satisfies the rule. Any error means the
// rule is violated; the error itself is not shown to clients, Message is.
type Rule[T any] struct {
	Field   string
	Message string
	Check   func(T) error
}

// Rules is an ordered rule table. The order defines the reporting order.
type Rules[T any] []Rule[T]

// Check evaluates every rule against v and returns the messages of the
// violated ones, in table order.
//
// All rules run; a failing rule does not stop the ones after it, so a client
// gets every problem in one round trip. An empty result means v is valid.
func (rules Rules[T]) Check(v T) []string {
	var violations []string
	for _, rule := range rules {
		if err := rule.Check(v); err != nil {
			violations = append(violations, rule.Message)
		}
	}
	return violations
}

// CreateVehicleRules is the rule table for vehicle creation.
var CreateVehicleRules = Rules[model.CreateVehicleRequest]{
	{
		Field:   "shortcode",
		Message: MsgShortcodeLength,
		Check: func(r model.CreateVehicleRequest) error {
			// len counts runes for strings.
			return validate.Var(r.Shortcode, "len=4")
		},
	},
	{
		Field:   "battery",
		Message: MsgBatteryRange,
		Check: func(r model.CreateVehicleRequest) error {
			if r.Battery != math.Trunc(r.Battery) {
				return errNotInteger
			}
			return validate.Var(r.Battery, "gte=0,lte=100")
		},
	},
	{
		Field:   "position",
		Message: MsgInvalidPosition,
		Check: func(r model.CreateVehicleRequest) error {
			if err := validate.Var(r.Longitude, "gte=-180,lte=180"); err != nil {
				return err
			}
			return validate.Var(r.Latitude, "gte=-90,lte=90")
		},
	},
}

// CheckCreateVehicle runs CreateVehicleRules against req.
func CheckCreateVehicle(req model.CreateVehicleRequest) []string {
	return CreateVehicleRules.Check(req)
}
