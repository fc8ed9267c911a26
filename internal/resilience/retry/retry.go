// Package retry repeats calls that failed for transient reasons, backing off exponentially.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var attemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "retry_attempts_total",
		Help: "Calls made through a retry policy by policy name and outcome",
	},
	[]string{"policy", "outcome"},
)

// Policy describes how often and how fast a call is repeated.
type Policy struct {
	// Name labels log lines and the retry_attempts_total metric.
	Name string
	// Attempts counts every call, the first one included.
	Attempts int
	// Base is the wait after the first failure; it doubles up to Max.
	Base time.Duration
	Max  time.Duration
	// Jitter adds up to this fraction of the wait at random.
	Jitter float64
	// Retryable overrides Transient when set.
	Retryable func(error) bool
}

// JWKS is used for key set downloads. Token verification waits on it.
func JWKS() Policy {
	return Policy{Name: "jwks", Attempts: 3, Base: 200 * time.Millisecond, Max: 2 * time.Second, Jitter: 0.2}
}

// DBConnect is used while waiting for the database at startup.
// Everything except cancellation is retried; the server is useless without its store.
func DBConnect() Policy {
	return Policy{
		Name:     "db_connect",
		Attempts: 10,
		Base:     500 * time.Millisecond,
		Max:      5 * time.Second,
		Jitter:   0.1,
		Retryable: func(err error) bool {
			return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
		},
	}
}

// Do calls fn until it succeeds, fails permanently, runs out of attempts or ctx ends.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	retryable := p.Retryable
	if retryable == nil {
		retryable = Transient
	}

	wait := p.Base
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(ctx); err == nil {
			attemptsTotal.WithLabelValues(p.Name, "success").Inc()
			if attempt > 1 {
				slog.Info("call recovered after retry", slog.String("policy", p.Name), slog.Int("attempt", attempt))
			}
			return nil
		}
		if !retryable(err) {
			attemptsTotal.WithLabelValues(p.Name, "permanent").Inc()
			return err
		}
		if attempt >= p.Attempts {
			attemptsTotal.WithLabelValues(p.Name, "exhausted").Inc()
			return fmt.Errorf("%s: gave up after %d attempts: %w", p.Name, attempt, err)
		}
		attemptsTotal.WithLabelValues(p.Name, "retry").Inc()

		sleep := jittered(wait, p.Jitter)
		slog.Warn("transient failure, retrying",
			slog.String("policy", p.Name),
			slog.Int("attempt", attempt),
			slog.Duration("wait", sleep),
			slog.Any("error", err))

		timer := time.NewTimer(sleep)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%s: %w", p.Name, ctx.Err())
		}
		wait = min(2*wait, p.Max)
	}
}

// Transient reports whether err is worth another try: network timeouts, refused or reset
// connections, and 408/429/5xx answers from a remote endpoint.
func Transient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	for _, errno := range []syscall.Errno{syscall.ECONNREFUSED, syscall.ECONNRESET, syscall.ETIMEDOUT, syscall.ENETUNREACH} {
		if errors.Is(err, errno) {
			return true
		}
	}

	var status *StatusError
	if errors.As(err, &status) {
		return status.Code >= 500 || status.Code == http.StatusTooManyRequests || status.Code == http.StatusRequestTimeout
	}
	return false
}

// StatusError is a non-2xx answer from a remote endpoint.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

func jittered(d time.Duration, fraction float64) time.Duration {
	if fraction <= 0 || d <= 0 {
		return d
	}
	fraction = min(fraction, 1)
	// #nosec G404 -- jitter does not need cryptographic randomness
	return d + time.Duration(rand.Float64()*fraction*float64(d))
}
