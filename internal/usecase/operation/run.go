// Package operation runs one service operation: authorization first, then a single
// transaction, with a span and metrics around both.
package operation

import (
	"context"
	"fmt"
	"time"

	"lingua-cms/internal/domain/entity"
	"lingua-cms/internal/observability/metrics"
	"lingua-cms/internal/observability/tracing"
	"lingua-cms/internal/repository"
	"lingua-cms/internal/service/authz"
)

// Run authorizes op and then calls fn inside one transaction.
// When the gate denies op, fn is never called and the store is not touched.
// Domain errors are returned unchanged; other errors are wrapped with the operation name.
func Run(ctx context.Context, gate authz.Authorizer, tx repository.TxRunner, op authz.Operation, fn func(ctx context.Context) error) (err error) {
	start := time.Now()
	ctx, span := tracing.Start(ctx, op.String())
	defer func() {
		metrics.RecordOperation(op.Resource, string(op.Action), err, time.Since(start))
		tracing.End(span, err, entity.IsDomainError(err))
	}()

	if err = gate.Authorize(ctx, op); err != nil {
		return err
	}

	err = tx.InTx(ctx, fn)
	if err != nil && !entity.IsDomainError(err) {
		err = fmt.Errorf("%s: %w", op, err)
	}
	return err
}
