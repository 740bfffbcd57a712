package testutil

import (
	"context"
	"testing"

	"toonpass/internal/platform/config"
	"toonpass/internal/platform/database"
)

// SQLite opens a private in-memory SQLite database with the schema applied.
// The SQL stores run against it unchanged, so their queries are exercised
// without a container.
func SQLite(t testing.TB) (*database.Pool, database.DBTX) {
	t.Helper()
	pool, err := database.New(context.Background(), config.DatabaseConfig{SQLitePath: ":memory:"})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = pool.Close() })
	if _, err := database.Migrate(context.Background(), pool.DB(), pool.Dialect()); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return pool, database.Bind(pool.DB(), pool.Dialect())
}
