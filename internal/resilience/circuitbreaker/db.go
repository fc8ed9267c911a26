package circuitbreaker

import (
	"context"
	"errors"
	"time"

	"lingua-cms/internal/domain/entity"
	"lingua-cms/internal/repository"
)

// Database returns the settings of the transaction breaker.
// It opens after five consecutive infrastructure failures and admits trial calls again after 30s.
func Database() Settings {
	return Settings{
		Name:       "database",
		TrialCalls: 3,
		Window:     time.Minute,
		Cooldown:   30 * time.Second,
		TripRatio:  1.0,
		MinCalls:   5,
		Healthy:    deliberateOutcome,
	}
}

// deliberateOutcome treats answers the database gave on purpose as successes:
// domain errors, constraint violations and caller cancellation say nothing about availability.
func deliberateOutcome(err error) bool {
	return err == nil ||
		entity.IsDomainError(err) ||
		errors.Is(err, repository.ErrDuplicate) ||
		errors.Is(err, repository.ErrReferenced) ||
		errors.Is(err, context.Canceled)
}

// TxRunner is a repository.TxRunner that refuses to start transactions while the
// database breaker is open.
type TxRunner struct {
	breaker *Breaker
	inner   repository.TxRunner
}

// NewTxRunner wraps inner with a breaker built from Database().
func NewTxRunner(inner repository.TxRunner) *TxRunner {
	return NewTxRunnerWith(inner, Database())
}

func NewTxRunnerWith(inner repository.TxRunner, s Settings) *TxRunner {
	if s.Healthy == nil {
		s.Healthy = deliberateOutcome
	}
	return &TxRunner{breaker: New(s), inner: inner}
}

func (r *TxRunner) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.breaker.Execute(func() error {
		return r.inner.InTx(ctx, fn)
	})
}

// Open reports whether transactions are currently rejected.
func (r *TxRunner) Open() bool {
	return r.breaker.Open()
}
