package repository

import "context"

// TxRunner runs fn inside one database transaction.
// Repositories called with the ctx passed to fn join that transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}
