package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultSuccess = "success"
	resultMissing = "missing"
	resultInvalid = "invalid"
)

var (
	// authRequestsTotal counts authentication attempts on protected paths by result.
	authRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_requests_total",
			Help: "Total authentication requests by result",
		},
		[]string{"result"}, // success | missing | invalid
	)

	// authDuration tracks token verification latency, JWKS refreshes included.
	authDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "auth_duration_seconds",
			Help:    "Bearer token verification duration",
			Buckets: []float64{0.0005, 0.001, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
	)
)

// RecordAuthRequest records an authentication attempt.
func RecordAuthRequest(result string) {
	authRequestsTotal.WithLabelValues(result).Inc()
}

// RecordAuthDuration records token verification duration.
func RecordAuthDuration(durationSeconds float64) {
	authDuration.Observe(durationSeconds)
}
