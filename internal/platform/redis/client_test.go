package redis

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toonpass/internal/platform/config"
)

func TestNewWithoutURLIsDisabled(t *testing.T) {
	c, err := New(context.Background(), config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New(context.Background(), config.RedisConfig{URL: "mysql://nope"})
	require.Error(t, err)
}

func TestPoolCollectorReadsStatsAtScrape(t *testing.T) {
	stats := &redis.PoolStats{Hits: 7, Misses: 2, TotalConns: 3, IdleConns: 1}
	c := newPoolCollector(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}))
	c.stats = func() *redis.PoolStats { return stats }

	assert.Equal(t, 6, testutil.CollectAndCount(c))

	expected := `
# HELP toonpass_redis_pool_hits_total Connections found idle in the pool.
# TYPE toonpass_redis_pool_hits_total counter
toonpass_redis_pool_hits_total 7
# HELP toonpass_redis_pool_conns Open connections.
# TYPE toonpass_redis_pool_conns gauge
toonpass_redis_pool_conns 3
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected),
		"toonpass_redis_pool_hits_total", "toonpass_redis_pool_conns"))
}
