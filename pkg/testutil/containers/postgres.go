//go:build integration

package containers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"toonpass/internal/platform/config"
	"toonpass/internal/platform/database"
)

// tables lists every toonpass table, children before parents.
var tables = []string{"audit_events", "payments", "purchases", "rentals", "episodes", "readers"}

// PostgresContainer is a running Postgres with the schema applied.
type PostgresContainer struct {
	Container *postgres.PostgresContainer
	DSN       string
	Pool      *database.Pool
}

func startPostgres(ctx context.Context) (*PostgresContainer, error) {
	container, err := postgres.Run(ctx,
		"postgres:18-alpine",
		postgres.WithDatabase("toonpass_test"),
		postgres.WithUsername("toonpass"),
		postgres.WithPassword("toonpass_test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}
	fail := func(err error) (*PostgresContainer, error) {
		_ = container.Terminate(context.WithoutCancel(ctx))
		return nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return fail(fmt.Errorf("connection string: %w", err))
	}
	pool, err := database.New(ctx, config.DatabaseConfig{
		URL:             dsn,
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
	})
	if err != nil {
		return fail(err)
	}
	if _, err := database.Migrate(ctx, pool.DB(), pool.Dialect()); err != nil {
		_ = pool.Close()
		return fail(fmt.Errorf("migrate: %w", err))
	}
	return &PostgresContainer{Container: container, DSN: dsn, Pool: pool}, nil
}

// TruncateAll empties every table in one statement.
func (p *PostgresContainer) TruncateAll(ctx context.Context) error {
	_, err := p.Pool.DB().ExecContext(ctx, "TRUNCATE TABLE "+strings.Join(tables, ", ")+" CASCADE")
	return err
}
