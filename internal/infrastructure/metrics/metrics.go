// Package metrics provides Prometheus metrics for the session proxy service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ActiveSessions tracks the number of unexpired sessions in the ledger.
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "audio_active_sessions",
			Help: "Number of issued audio sessions whose credential has not expired",
		},
	)

	// SessionsIssued tracks the total number of sessions issued, by key source.
	SessionsIssued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audio_sessions_issued_total",
			Help: "Total number of audio sessions issued",
		},
		[]string{"key_source"},
	)

	// SessionsEvicted tracks the total number of ledger entries removed.
	SessionsEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "audio_sessions_evicted_total",
			Help: "Total number of audio sessions evicted from the ledger",
		},
	)

	// UpstreamDuration tracks the latency of upstream session requests.
	UpstreamDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "audio_upstream_request_duration_seconds",
			Help:    "Duration of upstream realtime session requests",
			Buckets: prometheus.DefBuckets,
		},
	)

	// UpstreamErrors tracks failed upstream session requests by reason.
	UpstreamErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audio_upstream_errors_total",
			Help: "Total number of failed upstream realtime session requests",
		},
		[]string{"reason"},
	)

	// JanitorSweepDuration tracks the duration of ledger cleanup passes.
	JanitorSweepDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "audio_janitor_sweep_duration_seconds",
			Help:    "Duration of session ledger cleanup passes",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		},
	)

	// HTTPRequests counts HTTP requests by route and status.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPDuration tracks HTTP request latency by route.
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RecordSessionIssued increments session issue metrics.
func RecordSessionIssued(keySource string) {
	SessionsIssued.WithLabelValues(keySource).Inc()
	ActiveSessions.Inc()
}

// RecordSessionEvicted increments session eviction metrics.
func RecordSessionEvicted() {
	SessionsEvicted.Inc()
	ActiveSessions.Dec()
}

// RecordUpstreamError records a failed upstream request.
func RecordUpstreamError(reason string) {
	UpstreamErrors.WithLabelValues(reason).Inc()
}
