package oidc

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"lingua-cms/internal/domain/entity"
	"lingua-cms/internal/service/authz"
)

// allowedAlgs are the signing algorithms accepted from the provider.
var allowedAlgs = []string{"RS256", "RS384", "RS512", "ES256"}

// requiredClaims must be present in every token.
var requiredClaims = []string{"sub", "iss", "exp", "iat", "aud"}

// Verifier validates bearer tokens against the provider's published key set.
type Verifier struct {
	cfg    Config
	keys   *keySet
	parser *jwt.Parser
	now    func() time.Time
	logger *slog.Logger
}

// NewVerifier returns a Verifier. It does not contact the provider; keys are fetched on
// the first verification.
func NewVerifier(cfg Config, logger *slog.Logger) (*Verifier, error) {
	if err := cfg.setDefaults(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	v := &Verifier{cfg: cfg, keys: newKeySet(cfg), now: time.Now, logger: logger}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods(allowedAlgs),
		jwt.WithLeeway(cfg.Leeway),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(func() time.Time { return v.now() }),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}
	v.parser = jwt.NewParser(opts...)
	return v, nil
}

// Verify checks the token and returns the caller it identifies.
// Every failure is an Unauthenticated domain error; the reason is logged, not returned.
func (v *Verifier) Verify(ctx context.Context, raw string) (authz.Principal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return authz.Principal{}, v.reject(ctx, "missing", errors.New("empty token"))
	}

	claims := jwt.MapClaims{}
	_, err := v.parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("token header has no kid")
		}
		return v.keys.Key(ctx, kid)
	})
	if err != nil {
		return authz.Principal{}, v.reject(ctx, reasonOf(err), err)
	}

	for _, name := range requiredClaims {
		if _, ok := claims[name]; !ok {
			return authz.Principal{}, v.reject(ctx, "claims", errors.New("missing claim "+name))
		}
	}
	sub, err := claims.GetSubject()
	if err != nil || strings.TrimSpace(sub) == "" {
		return authz.Principal{}, v.reject(ctx, "claims", errors.New("empty sub claim"))
	}

	return authz.Principal{Subject: sub, Roles: rolesAt(claims, v.cfg.RolesClaim)}, nil
}

func (v *Verifier) reject(ctx context.Context, reason string, err error) error {
	tokenRejectionsTotal.WithLabelValues(reason).Inc()
	v.logger.DebugContext(ctx, "bearer token rejected", slog.String("reason", reason), slog.Any("error", err))
	return entity.Unauthenticated("invalid bearer token")
}

func reasonOf(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "signature"
	case errors.Is(err, jwt.ErrTokenExpired), errors.Is(err, jwt.ErrTokenUsedBeforeIssued), errors.Is(err, jwt.ErrTokenNotValidYet):
		return "expired"
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return "key"
	default:
		return "claims"
	}
}

// rolesAt walks a dotted claim path. A list of strings or a single
// space-separated string are both accepted.
func rolesAt(claims jwt.MapClaims, path string) []string {
	var cur any = map[string]any(claims)
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[part]
	}

	switch v := cur.(type) {
	case []any:
		roles := make([]string, 0, len(v))
		for _, r := range v {
			if s, ok := r.(string); ok && s != "" {
				roles = append(roles, s)
			}
		}
		return roles
	case []string:
		return v
	case string:
		return strings.Fields(v)
	default:
		return nil
	}
}
