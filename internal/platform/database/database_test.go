package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toonpass/internal/platform/config"
	dErrors "toonpass/pkg/domain-errors"
)

func TestRebind(t *testing.T) {
	q, args := Rebind("UPDATE t SET a = $2, b = $3 WHERE id = $1 AND c = $2", []any{"id", "a", "b"})
	assert.Equal(t, "UPDATE t SET a = ?, b = ? WHERE id = ? AND c = ?", q)
	assert.Equal(t, []any{"a", "b", "id", "a"}, args)

	q, args = Rebind("SELECT $9, '$'", []any{1})
	assert.Equal(t, "SELECT $9, '$'", q)
	assert.Empty(t, args)
}

func TestSplitStatements(t *testing.T) {
	stmts := splitStatements("-- header\nCREATE TABLE a (id INT);\n\n-- next\nCREATE TABLE b (id INT);\n")
	assert.Equal(t, []string{"CREATE TABLE a (id INT)", "CREATE TABLE b (id INT)"}, stmts)
}

func TestNewReturnsNilWithoutConfig(t *testing.T) {
	pool, err := New(context.Background(), config.DatabaseConfig{})
	require.NoError(t, err)
	assert.Nil(t, pool)
	assert.Error(t, pool.Health(context.Background()))
	assert.NoError(t, pool.Close())
}

func TestSQLiteMigrateAndRunInTx(t *testing.T) {
	ctx := context.Background()
	pool, err := New(context.Background(), config.DatabaseConfig{SQLitePath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Close() })
	assert.Equal(t, DialectSQLite, pool.Dialect())
	assert.False(t, pool.Dialect().SupportsRowLocks())

	applied, err := Migrate(ctx, pool.DB(), pool.Dialect())
	require.NoError(t, err)
	assert.NotEmpty(t, applied)
	_, err = Migrate(ctx, pool.DB(), pool.Dialect())
	require.NoError(t, err, "migrations are rerunnable")

	db := Bind(pool.DB(), pool.Dialect())
	insert := func(ctx context.Context, tx *sql.Tx) error {
		_, err := Bind(tx, pool.Dialect()).ExecContext(ctx,
			`INSERT INTO audit_events (occurred_at, reader_id, episode_id, action, kind, points, balance, decision, reason, request_id)
			 VALUES (CURRENT_TIMESTAMP, $1, '', $2, '', $3, 0, '', '', '')`,
			"r1", "points_charged", 100)
		return err
	}

	boom := errors.New("boom")
	err = RunInTx(ctx, pool.DB(), 0, func(ctx context.Context, tx *sql.Tx) error {
		require.NoError(t, insert(ctx, tx))
		return boom
	})
	require.ErrorIs(t, err, boom)

	var count int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_events WHERE reader_id = $1`, "r1").Scan(&count))
	assert.Equal(t, 0, count, "rolled back")

	require.NoError(t, RunInTx(ctx, pool.DB(), 0, insert))
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_events WHERE reader_id = $1`, "r1").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestRunInTxCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RunInTx(ctx, nil, 0, func(context.Context, *sql.Tx) error { return nil })
	assert.True(t, dErrors.HasCode(err, dErrors.CodeTimeout))
}
