// Package server exposes the factorization engine's Prometheus metrics over
// HTTP. It is optional: the CLI only starts it when a listen address is
// configured.
package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/primpoly/factorcalc/internal/metrics"
)

// Metrics bundles the metrics registry with its HTTP handler and the
// request-level gauges of the server itself.
type Metrics struct {
	registry       *prometheus.Registry
	handler        http.Handler
	activeRequests prometheus.Gauge
	totalRequests  prometheus.Counter

	// Engine is the factorization collector backed by the same registry.
	Engine *metrics.Collector
}

// NewMetrics creates a Metrics instance with its own registry, Go runtime
// collectors and the engine collector pre-registered.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "factorcalc_active_requests",
			Help: "HTTP requests currently in flight.",
		}),
		totalRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "factorcalc_requests_total",
			Help: "HTTP requests served.",
		}),
		Engine: metrics.NewCollector(registry),
	}
	registry.MustRegister(m.activeRequests, m.totalRequests)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// IncrementActiveRequests marks a request as in flight.
func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
	m.totalRequests.Inc()
}

// DecrementActiveRequests marks a request as finished.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// WritePrometheus serves the metrics in the Prometheus exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
