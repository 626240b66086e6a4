package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the catalog module.
type Metrics struct {
	// Mutation outcomes by operation and result tag
	MutationOutcome *prometheus.CounterVec

	// End-to-end pipeline latency by operation
	PipelineLatency *prometheus.HistogramVec

	// Notification publish attempts by status
	NotifyOutcome *prometheus.CounterVec
}

// New creates a Metrics instance with all catalog metrics registered.
func New() *Metrics {
	return &Metrics{
		MutationOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_mutation_outcomes_total",
			Help: "Total mutation pipeline outcomes by operation and result tag",
		}, []string{"operation", "outcome"}), // operation: "create", "update", "delete"

		PipelineLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "catalog_pipeline_duration_seconds",
			Help:    "Duration of mutation pipeline operations including store I/O",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),

		NotifyOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_notifications_total",
			Help: "Total best-effort notification attempts by status",
		}, []string{"status"}), // status: "sent", "failed"
	}
}

// IncrementOutcome records a pipeline outcome.
func (m *Metrics) IncrementOutcome(operation, outcome string) {
	if m != nil {
		m.MutationOutcome.WithLabelValues(operation, outcome).Inc()
	}
}

// ObservePipelineLatency records the duration of a pipeline operation.
func (m *Metrics) ObservePipelineLatency(operation string, d time.Duration) {
	if m != nil {
		m.PipelineLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}

// IncrementNotify records a notification attempt.
func (m *Metrics) IncrementNotify(status string) {
	if m != nil {
		m.NotifyOutcome.WithLabelValues(status).Inc()
	}
}
