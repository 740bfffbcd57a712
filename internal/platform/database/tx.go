package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	dErrors "toonpass/pkg/domain-errors"
)

// DefaultTxTimeout applies when the caller's context has no deadline.
const DefaultTxTimeout = 5 * time.Second

// RunInTx commits when fn returns nil and rolls back otherwise. An expired
// context at any stage surfaces as CodeTimeout; fn's own errors pass through
// untouched so callers can still match their sentinels.
func RunInTx(ctx context.Context, db *sql.DB, timeout time.Duration, fn func(ctx context.Context, tx *sql.Tx) error) error {
	if ctx.Err() != nil {
		return dErrors.Wrap(ctx.Err(), dErrors.CodeTimeout, "transaction not started")
	}
	if _, ok := ctx.Deadline(); !ok {
		if timeout <= 0 {
			timeout = DefaultTxTimeout
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return txError(err, "begin")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return txError(err, "commit")
	}
	committed = true
	return nil
}

func txError(err error, stage string) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction "+stage+" timed out")
	}
	return fmt.Errorf("%s transaction: %w", stage, err)
}
