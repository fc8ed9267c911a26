// Package auth authenticates requests with OIDC bearer tokens.
// A verified token becomes an authz.Principal in the request context; what the
// principal may do is decided later by the authorization gate.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"lingua-cms/internal/domain/entity"
	"lingua-cms/internal/handler/http/respond"
	"lingua-cms/internal/service/authz"
)

// TokenVerifier turns a raw bearer token into the caller's principal.
// *oidc.Verifier implements it.
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (authz.Principal, error)
}

// Middleware rejects requests without a valid bearer token unless the path is public.
type Middleware struct {
	verifier TokenVerifier
	public   []string
	logger   *slog.Logger
}

// New returns the middleware. An empty public list means DefaultPublicEndpoints.
func New(verifier TokenVerifier, public []string, logger *slog.Logger) *Middleware {
	if len(public) == 0 {
		public = DefaultPublicEndpoints
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Middleware{verifier: verifier, public: public, logger: logger}
}

var errMissingToken = errors.New("missing bearer token")

// Wrap requires authentication for every method on every non-public path.
func (m *Middleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IsPublicEndpoint(r.URL.Path, m.public) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		raw, err := bearerToken(r.Header.Get("Authorization"))
		if err != nil {
			RecordAuthRequest(resultMissing)
			unauthorized(w, entity.Unauthenticated("authentication required"))
			return
		}

		p, err := m.verifier.Verify(r.Context(), raw)
		RecordAuthDuration(time.Since(start).Seconds())
		if err != nil {
			RecordAuthRequest(resultInvalid)
			m.logger.DebugContext(r.Context(), "bearer token rejected",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Any("error", err))
			if !errors.Is(err, entity.ErrUnauthenticated) {
				err = entity.Unauthenticated("invalid bearer token")
			}
			unauthorized(w, err)
			return
		}

		RecordAuthRequest(resultSuccess)
		next.ServeHTTP(w, r.WithContext(authz.WithPrincipal(r.Context(), p)))
	})
}

func bearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", errMissingToken
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errMissingToken
	}
	return token, nil
}

func unauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="lingua-cms"`)
	respond.SafeError(w, http.StatusUnauthorized, err)
}
