// Package metrics exposes request outcomes as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/deppfellow/vehicle-api/internal/controller"
	"github.com/prometheus/client_golang/prometheus"
)

// VehicleMetrics counts and times create vehicle requests by outcome.
type VehicleMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ controller.Recorder = (*VehicleMetrics)(nil)

// NewVehicleMetrics registers the vehicle metrics on reg.
// A nil registerer defaults to the global Prometheus registerer. Registering
// twice on the same registerer reuses the existing collectors.
func NewVehicleMetrics(reg prometheus.Registerer) (*VehicleMetrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vehicles",
		Name:      "create_requests_total",
		Help:      "Create vehicle requests by outcome",
	}, []string{"outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "vehicles",
		Name:      "create_duration_seconds",
		Help:      "Time spent handling create vehicle requests",
		Buckets:   prometheus.DefBuckets,
	}, []string{"outcome"})

	if err := reg.Register(requests); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			requests = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}

	return &VehicleMetrics{requests: requests, duration: duration}, nil
}

// RecordCreateVehicle implements controller.Recorder.
func (m *VehicleMetrics) RecordCreateVehicle(outcome controller.Outcome, d time.Duration) {
	m.requests.WithLabelValues(string(outcome)).Inc()
	m.duration.WithLabelValues(string(outcome)).Observe(d.Seconds())
}
