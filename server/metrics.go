package server

import (
	"net/http"

	"github.com/kgrid-demos/score/score"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Computation outcomes.
const (
	OutcomeScored    = "scored"
	OutcomeCorrected = "corrected"
	OutcomeRefused   = "refused"
)

// Metrics holds the service's Prometheus collectors.  Each Metrics has its
// own registry so that several servers can live in one process.
type Metrics struct {
	registry *prometheus.Registry

	// ComputationsTotal counts risk computations by outcome
	ComputationsTotal *prometheus.CounterVec
	// DiagnosticsTotal counts corrected or rejected input fields
	DiagnosticsTotal *prometheus.CounterVec
	// TotalRisk tracks the distribution of computed total risk
	TotalRisk prometheus.Histogram
	// CalculationsTotal counts risk service runs by result
	CalculationsTotal *prometheus.CounterVec
}

// NewMetrics creates the collectors on a fresh registry that also carries
// the Go runtime and process collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGoCollector(), prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		ComputationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scoreservice_computations_total",
			Help: "Total SCORE risk computations by outcome",
		}, []string{"outcome"}),
		DiagnosticsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scoreservice_diagnostics_total",
			Help: "Total input diagnostics by field",
		}, []string{"field"}),
		TotalRisk: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "scoreservice_total_risk",
			Help:    "Computed 10-year total risk fraction",
			Buckets: []float64{0.005, 0.01, 0.02, 0.05, 0.1, 0.15, 0.25, 0.5},
		}),
		CalculationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scoreservice_calculations_total",
			Help: "Total risk service calculations by result",
		}, []string{"result"}),
	}
}

// ObserveAssessment records the outcome of one risk computation.
func (m *Metrics) ObserveAssessment(a *score.Assessment) {
	if a == nil {
		return
	}
	for field := range a.Diagnostics {
		m.DiagnosticsTotal.WithLabelValues(field).Inc()
	}
	switch {
	case a.Refused():
		m.ComputationsTotal.WithLabelValues(OutcomeRefused).Inc()
		return
	case a.Corrected():
		m.ComputationsTotal.WithLabelValues(OutcomeCorrected).Inc()
	default:
		m.ComputationsTotal.WithLabelValues(OutcomeScored).Inc()
	}
	m.TotalRisk.Observe(a.Result.TotalRisk)
}

// ObserveCalculation records the result of one risk service run.
func (m *Metrics) ObserveCalculation(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.CalculationsTotal.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
