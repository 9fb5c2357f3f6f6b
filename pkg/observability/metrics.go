package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "claimform"

// Metrics tracks engine activity.
//
// Metrics:
//   - claimform_validation_runs_total: validation passes by form
//   - claimform_validation_failures_total: recorded field failures by form and field
//   - claimform_evaluation_errors_total: failed expressions by function ("variable" for plain lookups)
//   - claimform_assembly_duration_seconds: time spent assembling one document
//   - claimform_assembled_nodes_total: elements created across all documents
type Metrics struct {
	validationRuns     *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	evaluationErrors   *prometheus.CounterVec
	assemblyDuration   prometheus.Histogram
	assembledNodes     prometheus.Counter
}

// NewMetrics creates the metrics and registers them with registry.
// A nil registry uses a private registry, which is handy in tests.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &Metrics{
		validationRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "validation_runs_total",
				Help:      "Validation passes by form",
			},
			[]string{"form"},
		),
		validationFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "validation_failures_total",
				Help:      "Field failures recorded by form and field",
			},
			[]string{"form", "field"},
		),
		evaluationErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "evaluation_errors_total",
				Help:      "Expressions that failed to evaluate, by function",
			},
			[]string{"function"},
		),
		assemblyDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "assembly_duration_seconds",
				Help:      "Time spent assembling one claim document",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		),
		assembledNodes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "assembled_nodes_total",
				Help:      "Elements created while assembling claim documents",
			},
		),
	}

	registry.MustRegister(
		m.validationRuns,
		m.validationFailures,
		m.evaluationErrors,
		m.assemblyDuration,
		m.assembledNodes,
	)
	return m
}

// RecordValidation records one validation pass and the fields that failed.
// A field failing several rules is counted once per failure.
func (m *Metrics) RecordValidation(form string, failedFields []string) {
	if m == nil {
		return
	}
	m.validationRuns.WithLabelValues(form).Inc()
	for _, field := range failedFields {
		m.validationFailures.WithLabelValues(form, field).Inc()
	}
}

// RecordEvaluationError counts an expression failure.
func (m *Metrics) RecordEvaluationError(function string) {
	if m == nil {
		return
	}
	if function == "" {
		function = "variable"
	}
	m.evaluationErrors.WithLabelValues(function).Inc()
}

// RecordAssembly records the duration and size of one assembled document.
func (m *Metrics) RecordAssembly(duration time.Duration, nodes int) {
	if m == nil {
		return
	}
	m.assemblyDuration.Observe(duration.Seconds())
	m.assembledNodes.Add(float64(nodes))
}
