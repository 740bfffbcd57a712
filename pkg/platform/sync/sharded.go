// Package sync holds in-process locking primitives.
package sync

import (
	"context"
	"hash/fnv"
	"sync"
)

const shardCount = 32

// ShardedMutex serializes work per key inside one process. Keys hash onto a
// fixed set of shards, so two readers may share a shard but one reader
// always maps to the same one.
//
// Each shard is a one-slot channel rather than a sync.Mutex so a waiter can
// give up when its context ends.
type ShardedMutex struct {
	shards [shardCount]chan struct{}
}

func NewShardedMutex() *ShardedMutex {
	m := &ShardedMutex{}
	for i := range m.shards {
		m.shards[i] = make(chan struct{}, 1)
	}
	return m
}

// Acquire blocks until the key's shard is free or ctx is done. The returned
// release func may be called more than once.
func (m *ShardedMutex) Acquire(ctx context.Context, key string) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	shard := m.shards[shardFor(key)]
	select {
	case shard <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	var once sync.Once
	return func() { once.Do(func() { <-shard }) }, nil
}

func shardFor(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % shardCount)
}
