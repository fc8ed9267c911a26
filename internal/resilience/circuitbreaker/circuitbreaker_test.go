package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
)

func testSettings(name string) Settings {
	return Settings{Name: name, TrialCalls: 1, Window: 10 * time.Second, Cooldown: time.Hour, TripRatio: 0.6, MinCalls: 3}
}

func TestNew_StartsClosed(t *testing.T) {
	b := New(testSettings("closed"))
	assert.Equal(t, "closed", b.Name())
	assert.Equal(t, gobreaker.StateClosed, b.State())
	assert.False(t, b.Open())
	assert.Equal(t, 0.0, testutil.ToFloat64(stateGauge.WithLabelValues("closed")))
}

func TestBreaker_Execute(t *testing.T) {
	b := New(testSettings("execute"))
	called := false
	assert.NoError(t, b.Execute(func() error {
		called = true
		return nil
	}))
	assert.True(t, called)
}

func TestBreaker_OpensAfterFailures(t *testing.T) {
	b := New(testSettings("trips"))
	boom := errors.New("boom")

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, b.Execute(func() error { return boom }), boom)
	}
	assert.True(t, b.Open())
	assert.Equal(t, 2.0, testutil.ToFloat64(stateGauge.WithLabelValues("trips")))
	assert.Equal(t, 1.0, testutil.ToFloat64(transitionsTotal.WithLabelValues("trips", "open")))

	called := false
	err := b.Execute(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.False(t, called, "open breaker must not call through")
}

func TestBreaker_Healthy(t *testing.T) {
	expected := errors.New("expected")
	s := testSettings("healthy")
	s.Healthy = func(err error) bool { return err == nil || errors.Is(err, expected) }
	b := New(s)

	for i := 0; i < 10; i++ {
		_ = b.Execute(func() error { return expected })
	}
	assert.Equal(t, gobreaker.StateClosed, b.State())
}

func TestSettings(t *testing.T) {
	for _, s := range []Settings{JWKS(), Database()} {
		assert.NotEmpty(t, s.Name)
		assert.Greater(t, s.MinCalls, uint32(0))
		assert.Greater(t, s.Cooldown, time.Duration(0))
	}
}
