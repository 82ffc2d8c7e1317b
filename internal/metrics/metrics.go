// Package metrics records validation outcomes for Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "vercel_config"

// Outcome labels.
const (
	OutcomeValid   = "valid"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// Collector owns the validation metrics and the registry they live in.
type Collector struct {
	registry *prometheus.Registry

	validations *prometheus.CounterVec
	failures    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	searches    prometheus.Counter
}

// NewCollector registers the metrics on registry, or on a fresh registry
// when nil.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: registry,
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validations_total",
			Help:      "Validations by source and outcome.",
		}, []string{"source", "outcome"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures_total",
			Help:      "Reported problems by top-level field and code.",
		}, []string{"field", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "validation_duration_seconds",
			Help:      "Time spent validating one document.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"source"}),
		searches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "doc_searches_total",
			Help:      "Documentation searches served.",
		}),
	}

	registry.MustRegister(c.validations, c.failures, c.duration, c.searches)
	return c
}

// RecordValidation records one validation. field and code are only used for
// invalid outcomes.
func (c *Collector) RecordValidation(source, outcome, field, code string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.validations.WithLabelValues(source, outcome).Inc()
	c.duration.WithLabelValues(source).Observe(elapsed.Seconds())
	if outcome == OutcomeInvalid {
		if field == "" {
			field = "none"
		}
		c.failures.WithLabelValues(field, code).Inc()
	}
}

// RecordSearch counts one documentation search.
func (c *Collector) RecordSearch() {
	if c == nil {
		return
	}
	c.searches.Inc()
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
