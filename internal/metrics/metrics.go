package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts request pipeline outcomes.
type Metrics struct {
	PipelineResults *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PipelineResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vocabulary_pipeline_results_total",
			Help: "Request pipeline outcomes by entity, operation and result kind",
		}, []string{"entity", "operation", "result"}),
	}
	reg.MustRegister(m.PipelineResults)
	return m
}

// ObserveResult records one pipeline outcome. A nil Metrics is a no-op.
func (m *Metrics) ObserveResult(entity, operation, result string) {
	if m == nil {
		return
	}
	m.PipelineResults.WithLabelValues(entity, operation, result).Inc()
}
