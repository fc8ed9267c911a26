package oidc

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	jwksRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oidc_jwks_refresh_total",
			Help: "Key set downloads by result",
		},
		[]string{"result"},
	)

	tokenRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oidc_token_rejections_total",
			Help: "Rejected bearer tokens by reason",
		},
		[]string{"reason"},
	)
)
