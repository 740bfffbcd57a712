package service

import (
	"context"
	"time"

	dErrors "toonpass/pkg/domain-errors"
)

// StoreTx provides a transactional boundary for grant mutations.
// Implementations may wrap a database transaction or, in-memory, run fn
// against the shared stores.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error
}

// defaultTxTimeout is the maximum duration of a grant transaction.
const defaultTxTimeout = 5 * time.Second

type inMemoryTx struct {
	stores  Stores
	timeout time.Duration
}

// NewInMemoryTx runs fn directly against stores. Isolation comes from the
// per-reader lock the service holds around every call. There is no rollback,
// so the service writes the entitlement record before the reader.
func NewInMemoryTx(stores Stores) StoreTx {
	return &inMemoryTx{stores: stores, timeout: defaultTxTimeout}
}

func (t *inMemoryTx) RunInTx(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	return fn(ctx, t.stores)
}
