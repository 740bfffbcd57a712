//go:build integration

package containers

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// RedisContainer is a running Redis.
type RedisContainer struct {
	Container *tcredis.RedisContainer
	URL       string
}

func startRedis(ctx context.Context) (*RedisContainer, error) {
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		return nil, err
	}
	url, err := container.ConnectionString(ctx)
	if err != nil {
		_ = container.Terminate(context.WithoutCancel(ctx))
		return nil, fmt.Errorf("connection string: %w", err)
	}
	return &RedisContainer{Container: container, URL: url}, nil
}

// Client opens a go-redis client; the caller closes it.
func (r *RedisContainer) Client() (*redis.Client, error) {
	opts, err := redis.ParseURL(r.URL)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opts), nil
}

// Flush drops every key, including lock keys left by a failed test.
func (r *RedisContainer) Flush(ctx context.Context) error {
	client, err := r.Client()
	if err != nil {
		return err
	}
	defer client.Close()
	return client.FlushAll(ctx).Err()
}
