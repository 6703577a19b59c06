package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instrumentation for the HTTP server. Each
// Metrics value owns its own registry, so multiple instances (as created in
// tests) never collide on metric registration.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	activeRequests  prometheus.Gauge
	requestsTotal   prometheus.Counter
	requestDuration prometheus.Histogram
	computeErrors   prometheus.Counter
}

// NewMetrics creates a Metrics instance with all collectors registered,
// including the Go runtime collector.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "apcalc_active_requests",
			Help: "Number of HTTP requests currently being served.",
		}),
		requestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "apcalc_requests_total",
			Help: "Total number of HTTP requests served.",
		}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "apcalc_request_duration_seconds",
			Help:    "HTTP request latency distribution.",
			Buckets: prometheus.DefBuckets,
		}),
		computeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "apcalc_compute_errors_total",
			Help: "Total number of arithmetic requests that failed.",
		}),
	}

	reg.MustRegister(
		m.activeRequests,
		m.requestsTotal,
		m.requestDuration,
		m.computeErrors,
		collectors.NewGoCollector(),
	)
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})

	return m
}

// IncrementActiveRequests increments the in-flight request gauge.
func (m *Metrics) IncrementActiveRequests() { m.activeRequests.Inc() }

// DecrementActiveRequests decrements the in-flight request gauge.
func (m *Metrics) DecrementActiveRequests() { m.activeRequests.Dec() }

// ObserveRequest records one completed request and its latency.
func (m *Metrics) ObserveRequest(d time.Duration) {
	m.requestsTotal.Inc()
	m.requestDuration.Observe(d.Seconds())
}

// IncrementComputeErrors records one failed arithmetic request.
func (m *Metrics) IncrementComputeErrors() { m.computeErrors.Inc() }

// WritePrometheus serves the metrics in Prometheus exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
