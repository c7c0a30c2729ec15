package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	AnalysesTotal    *prometheus.CounterVec
	FailuresTotal    *prometheus.CounterVec
	DegradedSignals  *prometheus.CounterVec
	PipelineDuration prometheus.Histogram
}

func NewMetrics() *Metrics {
	return &Metrics{
		AnalysesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "analyzer_analyses_total",
			Help: "The total number of URL analyses completed",
		}, nil),
		FailuresTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "analyzer_failures_total",
			Help: "The total number of failed analyses",
		}, []string{"kind"}), // e.g. 'TIMEOUT', 'DNS', 'HTTP_5XX'
		DegradedSignals: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "analyzer_degraded_signals_total",
			Help: "The total number of signals degraded to an unknown value",
		}, []string{"signal"}), // 'reputation', 'hosting'
		PipelineDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "analyzer_pipeline_duration_seconds",
			Help:    "Duration of a single URL analysis pipeline",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncAnalysesTotal() {
	m.AnalysesTotal.WithLabelValues().Inc()
}

func (m *Metrics) IncFailuresTotal(kind string) {
	m.FailuresTotal.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncDegradedSignal(signal string) {
	m.DegradedSignals.WithLabelValues(signal).Inc()
}

func (m *Metrics) ObservePipelineDuration(seconds float64) {
	m.PipelineDuration.Observe(seconds)
}
