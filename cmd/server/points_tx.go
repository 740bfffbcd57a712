package main

import (
	"context"
	"database/sql"

	"toonpass/internal/platform/database"
	pointsservice "toonpass/internal/points/service"
	pointsstore "toonpass/internal/points/store"
	readerstore "toonpass/internal/reader/store"
)

// pointsSQLTx binds the reader and payment stores to one transaction.
type pointsSQLTx struct {
	pool *database.Pool
}

func newPointsSQLTx(pool *database.Pool) *pointsSQLTx {
	return &pointsSQLTx{pool: pool}
}

func (t *pointsSQLTx) RunInTx(ctx context.Context, fn func(ctx context.Context, stores pointsservice.Stores) error) error {
	return database.RunInTx(ctx, t.pool.DB(), database.DefaultTxTimeout, func(ctx context.Context, tx *sql.Tx) error {
		db := database.Bind(tx, t.pool.Dialect())
		return fn(ctx, pointsservice.Stores{
			Readers:  readerstore.NewPostgres(db, t.pool.Dialect()),
			Payments: pointsstore.NewPostgres(db),
		})
	})
}
