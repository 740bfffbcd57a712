//go:build integration

package redis_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toonpass/internal/platform/config"
	platformredis "toonpass/internal/platform/redis"
	"toonpass/pkg/testutil"
	"toonpass/pkg/testutil/containers"
)

func TestLockerSerializesHolders(t *testing.T) {
	rc := containers.GetManager().GetRedis(t)
	ctx := context.Background()
	client, err := platformredis.New(ctx, config.RedisConfig{URL: rc.URL, PoolSize: 20})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	locker := platformredis.NewLocker(client.Client, 5*time.Second)
	var inside, maxInside atomic.Int32
	result := testutil.RunConcurrent(10, func(int) error {
		release, err := locker.Acquire(ctx, "reader-1")
		if err != nil {
			return err
		}
		defer release()
		n := inside.Add(1)
		for {
			m := maxInside.Load()
			if n <= m || maxInside.CompareAndSwap(m, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inside.Add(-1)
		return nil
	})

	assert.Equal(t, int32(10), result.Successes)
	assert.Equal(t, int32(1), maxInside.Load())
}

func TestLockerAcquireHonoursContext(t *testing.T) {
	rc := containers.GetManager().GetRedis(t)
	ctx := context.Background()
	client, err := platformredis.New(ctx, config.RedisConfig{URL: rc.URL})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	locker := platformredis.NewLocker(client.Client, 5*time.Second)
	release, err := locker.Acquire(ctx, "reader-2")
	require.NoError(t, err)
	defer release()

	waitCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	_, err = locker.Acquire(waitCtx, "reader-2")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	release()
	again, err := locker.Acquire(ctx, "reader-2")
	require.NoError(t, err)
	again()
}

func TestLockerExpiredHolderDoesNotReleaseNewOwner(t *testing.T) {
	rc := containers.GetManager().GetRedis(t)
	ctx := context.Background()
	client, err := platformredis.New(ctx, config.RedisConfig{URL: rc.URL})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	short := platformredis.NewLocker(client.Client, 50*time.Millisecond)
	stale, err := short.Acquire(ctx, "reader-3")
	require.NoError(t, err)
	time.Sleep(100 * time.Millisecond)

	owner, err := platformredis.NewLocker(client.Client, 5*time.Second).Acquire(ctx, "reader-3")
	require.NoError(t, err)
	stale()

	exists, err := client.Exists(ctx, "toonpass:lock:reader:reader-3").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists)
	owner()
}
