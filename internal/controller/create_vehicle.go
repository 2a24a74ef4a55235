package controller

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/vehicle-api/internal/errs"
	"github.com/deppfellow/vehicle-api/internal/model"
	"github.com/deppfellow/vehicle-api/internal/validation"
	"github.com/rs/zerolog"
)

// MsgInvalidCreateVehicle is the AppError message for rejected create requests.
const MsgInvalidCreateVehicle = "Invalid create vehicle request"

// VehicleStore persists vehicles.
//
// Implementations own connection pooling, transactions, timeouts and any
// retry policy, and must be safe for concurrent use.
type VehicleStore interface {
	CreateVehicle(ctx context.Context, input model.CreateVehicleInput) (model.Vehicle, error)
}

// Outcome is the terminal state of one create request.
type Outcome string

const (
	// OutcomeRejected: validation failed, the store was never called.
	OutcomeRejected Outcome = "rejected"
	// OutcomePersisted: the store returned a vehicle.
	OutcomePersisted Outcome = "persisted"
	// OutcomePersistFailed: the store reported a failure.
	OutcomePersistFailed Outcome = "persist_failed"
)

// Recorder observes terminal outcomes. It must be safe for concurrent use.
type Recorder interface {
	RecordCreateVehicle(outcome Outcome, duration time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) RecordCreateVehicle(Outcome, time.Duration) {}

// Option configures a controller.
type Option func(*CreateVehicleController)

// WithRecorder sets the outcome recorder. A nil recorder is ignored.
func WithRecorder(r Recorder) Option {
	return func(c *CreateVehicleController) {
		if r != nil {
			c.recorder = r
		}
	}
}

// Request is the inbound request as handed over by the transport layer.
//
// Body is the decoded JSON object; field types are not trusted.
type Request struct {
	Body map[string]any
}

// Envelope is the success body: {"vehicle": {...}}.
type Envelope struct {
	Vehicle model.Vehicle `json:"vehicle"`
}

// Response is a successful outcome of Handle.
type Response struct {
	Status int
	Body   Envelope
}

// StatusCode returns the HTTP status the transport should write.
func (r *Response) StatusCode() int {
	return r.Status
}

// Payload returns the body the transport should serialize.
func (r *Response) Payload() any {
	return r.Body
}

// CreateVehicleController handles vehicle creation.
//
// It keeps no per-request state, so one instance serves concurrent requests.
type CreateVehicleController struct {
	store    VehicleStore
	recorder Recorder
}

// NewCreateVehicleController injects the store the controller persists into.
func NewCreateVehicleController(store VehicleStore, opts ...Option) *CreateVehicleController {
	c := &CreateVehicleController{
		store:    store,
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Handle parses, validates and persists one vehicle.
//
// Flow:
//  1. parse req.Body into a CreateVehicleRequest
//  2. run the rule table; on any violation return a BAD_REQUEST AppError
//     carrying all of them, without calling the store
//  3. call the store exactly once; wrap the vehicle in an Envelope
//
// The returned error, when non-nil, is always an *errs.AppError.
func (c *CreateVehicleController) Handle(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	logger := zerolog.Ctx(ctx).With().
		Str("operation", "create_vehicle").
		Logger()

	parsed := parseCreateVehicleRequest(req.Body)

	if violations := validation.CheckCreateVehicle(parsed); len(violations) > 0 {
		logger.Warn().
			Strs("violations", violations).
			Msg("create vehicle request rejected")

		c.recorder.RecordCreateVehicle(OutcomeRejected, time.Since(start))
		return nil, errs.NewBadRequestError(MsgInvalidCreateVehicle, violations)
	}

	vehicle, err := c.createVehicle(ctx, parsed.Input())
	if err != nil {
		appErr := errs.Internal(err)

		logger.Error().
			Err(err).
			Str("error_code", string(appErr.Code)).
			Dur("duration", time.Since(start)).
			Msg("failed to persist vehicle")

		c.recorder.RecordCreateVehicle(OutcomePersistFailed, time.Since(start))
		return nil, appErr
	}

	logger.Info().
		Int64("vehicle_id", vehicle.ID).
		Str("shortcode", vehicle.Shortcode).
		Dur("duration", time.Since(start)).
		Msg("vehicle created")

	c.recorder.RecordCreateVehicle(OutcomePersisted, time.Since(start))

	return &Response{
		Status: http.StatusOK,
		Body:   Envelope{Vehicle: vehicle},
	}, nil
}

// createVehicle calls the store and turns a panic into an error so it is
// reported like any other store failure.
func (c *CreateVehicleController) createVehicle(ctx context.Context, input model.CreateVehicleInput) (vehicle model.Vehicle, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("vehicle store panicked: %v", r)
		}
	}()

	return c.store.CreateVehicle(ctx, input)
}
