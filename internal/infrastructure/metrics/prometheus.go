package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusExporter exports metrics to Prometheus format.
type PrometheusExporter struct {
	collector *Collector

	// Prometheus metrics
	requests       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	errors         *prometheus.CounterVec
	authzDecisions *prometheus.CounterVec
}

// NewPrometheusExporter creates a new Prometheus exporter.
// The method label carries the HTTP route pattern or the gRPC full method,
// depending on which transport served the request.
func NewPrometheusExporter(collector *Collector) *PrometheusExporter {
	return &PrometheusExporter{
		collector: collector,
		requests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "projectagents_requests_total",
				Help: "Total number of API requests",
			},
			[]string{"method"},
		),
		duration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "projectagents_request_duration_seconds",
				Help:    "Duration of API requests in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0},
			},
			[]string{"method"},
		),
		errors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "projectagents_errors_total",
				Help: "Total number of API errors",
			},
			[]string{"method"},
		),
		authzDecisions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "projectagents_authz_decisions_total",
				Help: "Total number of authorization decisions by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// RecordRequest records a request in Prometheus.
func (e *PrometheusExporter) RecordRequest(method string) {
	e.requests.WithLabelValues(method).Inc()
}

// RecordDuration records a duration in Prometheus.
func (e *PrometheusExporter) RecordDuration(method string, durationSeconds float64) {
	e.duration.WithLabelValues(method).Observe(durationSeconds)
}

// RecordError records an error in Prometheus.
func (e *PrometheusExporter) RecordError(method string) {
	e.errors.WithLabelValues(method).Inc()
}

// RecordDecision records an authorization decision outcome.
func (e *PrometheusExporter) RecordDecision(outcome string) {
	e.authzDecisions.WithLabelValues(outcome).Inc()
}
