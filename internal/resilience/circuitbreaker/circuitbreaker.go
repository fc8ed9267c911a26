// Package circuitbreaker puts github.com/sony/gobreaker in front of the database and the
// identity provider, and exports each breaker's state as a Prometheus gauge.
package circuitbreaker

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"
)

var (
	stateGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Breaker state: 0 closed, 1 half-open, 2 open",
		},
		[]string{"name"},
	)
	transitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Breaker state changes by target state",
		},
		[]string{"name", "to"},
	)
)

// Settings tune one breaker.
type Settings struct {
	Name string
	// TrialCalls is how many calls pass while half-open.
	TrialCalls uint32
	// Window clears the closed-state counts periodically; zero never clears.
	Window time.Duration
	// Cooldown is how long the breaker stays open before allowing trial calls.
	Cooldown time.Duration
	// TripRatio of failed calls opens the breaker once MinCalls were seen.
	TripRatio float64
	MinCalls  uint32
	// Healthy decides which errors are not failures. nil treats every error as a failure.
	Healthy func(err error) bool
}

// JWKS guards key set downloads from the identity provider.
func JWKS() Settings {
	return Settings{Name: "jwks", TrialCalls: 1, Window: time.Minute, Cooldown: 30 * time.Second, TripRatio: 0.5, MinCalls: 3}
}

// Breaker is a named gobreaker.CircuitBreaker.
type Breaker struct {
	cb *gobreaker.CircuitBreaker
}

// New builds a closed breaker.
func New(s Settings) *Breaker {
	stateGauge.WithLabelValues(s.Name).Set(0)
	return &Breaker{cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:         s.Name,
		MaxRequests:  s.TrialCalls,
		Interval:     s.Window,
		Timeout:      s.Cooldown,
		IsSuccessful: s.Healthy,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.Requests >= s.MinCalls && float64(c.TotalFailures)/float64(c.Requests) >= s.TripRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			stateGauge.WithLabelValues(name).Set(float64(to))
			transitionsTotal.WithLabelValues(name, to.String()).Inc()
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	})}
}

// Execute calls fn unless the breaker is open, in which case it returns
// gobreaker.ErrOpenState (or gobreaker.ErrTooManyRequests while half-open).
func (b *Breaker) Execute(fn func() error) error {
	_, err := b.cb.Execute(func() (any, error) { return nil, fn() })
	return err
}

func (b *Breaker) Name() string { return b.cb.Name() }

func (b *Breaker) State() gobreaker.State { return b.cb.State() }

// Open reports whether calls are currently rejected.
func (b *Breaker) Open() bool { return b.cb.State() == gobreaker.StateOpen }
