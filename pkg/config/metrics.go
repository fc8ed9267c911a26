package config

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// fallbacksTotal counts environment values that were set but rejected.
var fallbacksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "config_fallbacks_total",
		Help: "Environment values that failed to parse and fell back to the default",
	},
	[]string{"key"},
)
