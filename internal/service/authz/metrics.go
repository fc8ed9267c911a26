package authz

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// authzCheckDuration tracks authorization check duration.
	authzCheckDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "authz_check_duration_seconds",
			Help:    "Authorization check duration",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01},
		},
	)

	// forbiddenAttempts counts denied operations by role and resource.
	forbiddenAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forbidden_attempts_total",
			Help: "Forbidden operation attempts by role and resource",
		},
		[]string{"role", "resource"},
	)
)

func recordForbidden(roles []string, resource string) {
	role := "none"
	if len(roles) > 0 {
		role = roles[0]
	}
	forbiddenAttempts.WithLabelValues(role, resource).Inc()
}
