package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the validation service.
type Metrics struct {
	Validations   *prometheus.CounterVec
	ValidationDur prometheus.Histogram
	StoreOps      *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sieve_validations_total",
				Help: "Total number of document validations",
			},
			[]string{"outcome"},
		),
		ValidationDur: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name: "sieve_validation_duration_seconds",
				Help: "Duration of document validations",
			},
		),
		StoreOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sieve_schema_store_ops_total",
				Help: "Total number of schema store operations",
			},
			[]string{"op", "status"},
		),
	}
	reg.MustRegister(m.Validations, m.ValidationDur, m.StoreOps)
	return m
}

// ObserveValidation records one validation outcome.
func (m *Metrics) ObserveValidation(valid bool, seconds float64) {
	outcome := "valid"
	if !valid {
		outcome = "invalid"
	}
	m.Validations.WithLabelValues(outcome).Inc()
	m.ValidationDur.Observe(seconds)
}
