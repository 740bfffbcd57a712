package main

import (
	"context"
	"database/sql"

	entitlementservice "toonpass/internal/entitlement/service"
	entitlementstore "toonpass/internal/entitlement/store"
	"toonpass/internal/platform/database"
	readerstore "toonpass/internal/reader/store"
)

// entitlementSQLTx binds the reader, rental and purchase stores to one
// database transaction, so a wallet debit commits with its entitlement.
type entitlementSQLTx struct {
	pool *database.Pool
}

func newEntitlementSQLTx(pool *database.Pool) *entitlementSQLTx {
	return &entitlementSQLTx{pool: pool}
}

func (t *entitlementSQLTx) RunInTx(ctx context.Context, fn func(ctx context.Context, stores entitlementservice.Stores) error) error {
	return database.RunInTx(ctx, t.pool.DB(), database.DefaultTxTimeout, func(ctx context.Context, tx *sql.Tx) error {
		db := database.Bind(tx, t.pool.Dialect())
		return fn(ctx, entitlementservice.Stores{
			Readers:   readerstore.NewPostgres(db, t.pool.Dialect()),
			Rentals:   entitlementstore.NewPostgresRentals(db),
			Purchases: entitlementstore.NewPostgresPurchases(db),
		})
	})
}
