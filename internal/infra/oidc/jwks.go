package oidc

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"lingua-cms/internal/resilience/circuitbreaker"
	"lingua-cms/internal/resilience/retry"
)

var errUnknownKey = errors.New("unknown key id")

type jwk struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
	Crv string `json:"crv"`
	X   string `json:"x"`
	Y   string `json:"y"`
}

// keySet caches the provider's public keys by kid.
type keySet struct {
	uri     string
	client  *http.Client
	ttl     time.Duration
	now     func() time.Time
	limiter *rate.Limiter
	breaker *circuitbreaker.Breaker
	retry   retry.Policy
	group   singleflight.Group

	mu        sync.RWMutex
	keys      map[string]any
	fetchedAt time.Time
}

func newKeySet(cfg Config) *keySet {
	return &keySet{
		uri:     cfg.JWKSURI,
		client:  cfg.HTTPClient,
		ttl:     cfg.JWKSTTL,
		now:     time.Now,
		limiter: rate.NewLimiter(rate.Every(cfg.MinRefreshInterval), 1),
		breaker: circuitbreaker.New(circuitbreaker.JWKS()),
		retry:   retry.JWKS(),
		keys:    map[string]any{},
	}
}

// Key returns the public key for kid. A stale set is refreshed first; an unknown kid
// triggers one throttled refresh in case the provider rotated its keys.
func (s *keySet) Key(ctx context.Context, kid string) (any, error) {
	s.mu.RLock()
	key, ok := s.keys[kid]
	stale := s.staleLocked()
	s.mu.RUnlock()

	switch {
	case ok && !stale:
		return key, nil
	case stale:
		if err := s.refresh(ctx, false); err != nil {
			if ok {
				// keep serving the cached key while the provider is unreachable
				slog.WarnContext(ctx, "jwks refresh failed, using cached key", slog.Any("error", err))
				return key, nil
			}
			return nil, err
		}
	default:
		if !s.limiter.Allow() {
			return nil, fmt.Errorf("%w %q", errUnknownKey, kid)
		}
		if err := s.refresh(ctx, true); err != nil {
			return nil, err
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if key, ok := s.keys[kid]; ok {
		return key, nil
	}
	return nil, fmt.Errorf("%w %q", errUnknownKey, kid)
}

func (s *keySet) staleLocked() bool {
	return s.fetchedAt.IsZero() || s.now().Sub(s.fetchedAt) > s.ttl
}

// refreshTimeout bounds one shared key set download.
const refreshTimeout = 10 * time.Second

// refresh downloads the key set. Concurrent callers share one download, and a caller
// that only saw a stale set skips the download when another caller just finished one.
// The download runs detached from ctx so that a cancelled caller only stops waiting;
// the others still get the result.
func (s *keySet) refresh(ctx context.Context, force bool) error {
	detached := context.WithoutCancel(ctx)
	ch := s.group.DoChan("jwks", func() (any, error) {
		if !force {
			s.mu.RLock()
			stale := s.staleLocked()
			s.mu.RUnlock()
			if !stale {
				return nil, nil
			}
		}
		ctx, cancel := context.WithTimeout(detached, refreshTimeout)
		defer cancel()

		var keys map[string]any
		err := s.breaker.Execute(func() error {
			return retry.Do(ctx, s.retry, func(ctx context.Context) error {
				var err error
				keys, err = s.fetch(ctx)
				return err
			})
		})
		if err != nil {
			jwksRefreshTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("fetch jwks: %w", err)
		}

		s.mu.Lock()
		s.keys = keys
		s.fetchedAt = s.now()
		s.mu.Unlock()
		jwksRefreshTotal.WithLabelValues("success").Inc()
		return nil, nil
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *keySet) fetch(ctx context.Context) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.uri, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &retry.StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	var doc struct {
		Keys []jwk `json:"keys"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode jwks: %w", err)
	}

	keys := make(map[string]any, len(doc.Keys))
	for _, k := range doc.Keys {
		if k.Kid == "" || (k.Use != "" && k.Use != "sig") {
			continue
		}
		pub, err := k.publicKey()
		if err != nil {
			slog.Warn("skipping unusable jwk", slog.String("kid", k.Kid), slog.Any("error", err))
			continue
		}
		keys[k.Kid] = pub
	}
	if len(keys) == 0 {
		return nil, errors.New("jwks contains no usable signing keys")
	}
	return keys, nil
}

func (k jwk) publicKey() (any, error) {
	switch k.Kty {
	case "RSA":
		n, err := decodeBigInt(k.N)
		if err != nil {
			return nil, fmt.Errorf("modulus: %w", err)
		}
		e, err := decodeBigInt(k.E)
		if err != nil {
			return nil, fmt.Errorf("exponent: %w", err)
		}
		if !e.IsInt64() || e.Int64() < 3 {
			return nil, errors.New("invalid exponent")
		}
		return &rsa.PublicKey{N: n, E: int(e.Int64())}, nil
	case "EC":
		if k.Crv != "P-256" {
			return nil, fmt.Errorf("unsupported curve %q", k.Crv)
		}
		x, err := decodeBigInt(k.X)
		if err != nil {
			return nil, err
		}
		y, err := decodeBigInt(k.Y)
		if err != nil {
			return nil, err
		}
		curve := elliptic.P256()
		if !curve.IsOnCurve(x, y) {
			return nil, errors.New("point is not on curve")
		}
		return &ecdsa.PublicKey{Curve: curve, X: x, Y: y}, nil
	default:
		return nil, fmt.Errorf("unsupported key type %q", k.Kty)
	}
}

func decodeBigInt(s string) (*big.Int, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, errors.New("empty value")
	}
	return new(big.Int).SetBytes(b), nil
}
