package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	_ "modernc.org/sqlite"

	"toonpass/internal/platform/config"
)

// Dialect identifies the SQL backend behind a Pool. Stores use it for the few
// statements that differ between engines.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// SupportsRowLocks reports whether SELECT ... FOR UPDATE is available.
// SQLite serializes writers at the database level instead.
func (d Dialect) SupportsRowLocks() bool {
	return d == DialectPostgres
}

// DBTX is the subset of *sql.DB and *sql.Tx the stores need, so one store
// implementation serves both pooled and transactional access.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Pool is the process's *sql.DB together with the dialect it speaks.
type Pool struct {
	db      *sql.DB
	dialect Dialect
}

const pingTimeout = 5 * time.Second

// New opens Postgres when cfg.URL is set and SQLite when cfg.SQLitePath is
// set. With neither it returns nil, nil and the caller falls back to the
// in-memory stores.
func New(ctx context.Context, cfg config.DatabaseConfig) (*Pool, error) {
	p := &Pool{}
	var driver, dsn string
	switch {
	case cfg.URL != "":
		driver, dsn, p.dialect = "pgx", cfg.URL, DialectPostgres
	case cfg.SQLitePath != "":
		driver, dsn, p.dialect = "sqlite", sqliteDSN(cfg.SQLitePath), DialectSQLite
	default:
		return nil, nil
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", p.dialect, err)
	}
	if p.dialect == DialectSQLite {
		// SQLite allows one writer; a second connection only produces SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", p.dialect, err)
	}
	p.db = db
	return p, nil
}

func sqliteDSN(path string) string {
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_time_format=sqlite"
}

func (p *Pool) DB() *sql.DB {
	return p.db
}

func (p *Pool) Dialect() Dialect {
	return p.dialect
}

// Health pings the database; it backs the readiness probe.
func (p *Pool) Health(ctx context.Context) error {
	if p == nil || p.db == nil {
		return errors.New("database not configured")
	}
	return p.db.PingContext(ctx)
}

// Close is safe on a nil Pool.
func (p *Pool) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	return p.db.Close()
}

// Collector exports database/sql pool stats under the toonpass_ prefix.
func (p *Pool) Collector() prometheus.Collector {
	return collectors.NewDBStatsCollector(p.db, "toonpass")
}
