package cacheinfra

import (
	"context"
	"time"

	rdb "github.com/redis/go-redis/v9"
)

// redisStore backs the cache with a shared Redis instance so several SDK
// processes can share one namespace. Errors from Redis degrade to cache
// misses; the remote API remains the source of truth either way.
type redisStore struct {
	c *rdb.Client
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(addr string, db int) *redisStore {
	return &redisStore{c: rdb.NewClient(&rdb.Options{Addr: addr, DB: db})}
}

func (r *redisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	b, err := r.c.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

func (r *redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	_ = r.c.Set(ctx, key, value, ttl).Err()
}

func (r *redisStore) Delete(ctx context.Context, key string) {
	_ = r.c.Del(ctx, key).Err()
}

func (r *redisStore) DeletePattern(ctx context.Context, pattern string) {
	// Redis glob "*" crosses segment boundaries, so SCAN over-selects and
	// MatchPattern filters to the exact segment semantics.
	iter := r.c.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if MatchPattern(pattern, key) {
			_ = r.c.Del(ctx, key).Err()
		}
	}
}
