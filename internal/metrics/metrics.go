// Package metrics exports formatter request metrics in Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Exporter records formatting calls on its own registry.
type Exporter struct {
	registry *prometheus.Registry

	requests   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	inputBytes prometheus.Histogram
}

// Config configures the exporter.
type Config struct {
	// Registry to use (if nil, creates a new one)
	Registry *prometheus.Registry

	// Buckets for latency histograms (in seconds)
	LatencyBuckets []float64
}

// DefaultConfig returns default Prometheus configuration.
func DefaultConfig() Config {
	return Config{
		LatencyBuckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}
}

// NewExporter creates a new exporter and registers its collectors.
func NewExporter(cfg Config) *Exporter {
	if len(cfg.LatencyBuckets) == 0 {
		cfg.LatencyBuckets = DefaultConfig().LatencyBuckets
	}
	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	e := &Exporter{registry: registry}

	e.requests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reindent",
			Subsystem: "format",
			Name:      "requests_total",
			Help:      "Total number of format requests",
		},
		[]string{"language", "status"},
	)

	e.duration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "reindent",
			Subsystem: "format",
			Name:      "duration_seconds",
			Help:      "Time spent formatting a request in seconds",
			Buckets:   cfg.LatencyBuckets,
		},
		[]string{"language"},
	)

	e.inputBytes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "reindent",
			Subsystem: "format",
			Name:      "input_bytes",
			Help:      "Size of formatted inputs in bytes",
			Buckets:   prometheus.ExponentialBuckets(64, 4, 10),
		},
	)

	registry.MustRegister(e.requests, e.duration, e.inputBytes)
	return e
}

// RecordFormat records one request for language.
func (e *Exporter) RecordFormat(language string, size int, latency time.Duration, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	e.requests.WithLabelValues(language, status).Inc()
	e.duration.WithLabelValues(language).Observe(latency.Seconds())
	e.inputBytes.Observe(float64(size))
}

// Handler returns the HTTP handler for the metrics endpoint.
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}

// Registry returns the Prometheus registry.
func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}
