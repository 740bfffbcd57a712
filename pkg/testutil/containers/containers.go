//go:build integration

// Package containers starts Postgres and Redis for integration tests. Each
// container starts at most once per test binary and is shared by every
// suite in it; Ryuk removes them when the process exits.
package containers

import (
	"context"
	"sync"
	"testing"
	"time"
)

const startupTimeout = 90 * time.Second

type lazy[T any] struct {
	once sync.Once
	val  T
	err  error
}

func (l *lazy[T]) get(t testing.TB, what string, start func(ctx context.Context) (T, error)) T {
	t.Helper()
	l.once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
		defer cancel()
		l.val, l.err = start(ctx)
	})
	if l.err != nil {
		t.Fatalf("start %s container: %v", what, l.err)
	}
	return l.val
}

// Manager hands out the shared containers.
type Manager struct {
	postgres lazy[*PostgresContainer]
	redis    lazy[*RedisContainer]
}

var manager = &Manager{}

// GetManager returns the process-wide container manager.
func GetManager() *Manager {
	return manager
}

// GetPostgres returns a migrated Postgres, starting it on first use.
func (m *Manager) GetPostgres(t testing.TB) *PostgresContainer {
	t.Helper()
	return m.postgres.get(t, "postgres", startPostgres)
}

// GetRedis returns a Redis, starting it on first use.
func (m *Manager) GetRedis(t testing.TB) *RedisContainer {
	t.Helper()
	return m.redis.get(t, "redis", startRedis)
}
