package authz

import (
	"context"
	"log/slog"
	"time"

	"lingua-cms/internal/domain/entity"
)

// Authorizer is what the usecase layer depends on.
type Authorizer interface {
	Authorize(ctx context.Context, op Operation) error
}

// Gate checks operations against a Policy and role Grants.
type Gate struct {
	policy Policy
	grants Grants
	logger *slog.Logger
}

// NewGate builds a gate over the default policy. A nil grants uses DefaultGrants.
func NewGate(grants Grants, logger *slog.Logger) *Gate {
	if grants == nil {
		grants = DefaultGrants()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{policy: DefaultPolicy(), grants: grants, logger: logger}
}

// Authorize returns nil when the principal in ctx may run op.
// It fails with entity.ErrUnauthenticated when no principal is present and with
// entity.ErrForbidden when the permission is missing or op is unknown.
func (g *Gate) Authorize(ctx context.Context, op Operation) error {
	start := time.Now()
	defer func() {
		authzCheckDuration.Observe(time.Since(start).Seconds())
	}()

	p, ok := PrincipalFromContext(ctx)
	if !ok || p.Subject == "" {
		return entity.Unauthenticated("authentication required for %s", op)
	}

	perm, known := g.policy.Required(op)
	if !known {
		recordForbidden(p.Roles, op.Resource)
		g.logger.WarnContext(ctx, "operation missing from policy",
			slog.String("operation", op.String()),
			slog.String("subject", p.Subject))
		return entity.Forbidden("access denied for %s", op)
	}

	if !g.grants.Allows(p.Roles, perm) {
		recordForbidden(p.Roles, op.Resource)
		g.logger.InfoContext(ctx, "operation forbidden",
			slog.String("operation", op.String()),
			slog.String("permission", string(perm)),
			slog.String("subject", p.Subject),
			slog.Any("roles", p.Roles))
		return entity.Forbidden("missing permission %s", perm)
	}
	return nil
}
