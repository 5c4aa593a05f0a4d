package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Store is the key/value contract every cache backend implements. Values are
// stored as raw JSON bytes so any backend (memory, Redis, sturdyc) can hold
// them without knowing entity shapes. Individual operations are atomic by the
// backend's own contract; no multi-key transactionality is required.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
	// DeletePattern removes every key matching pattern, where "*" matches a
	// single key segment and a trailing "*" matches the remainder of the key.
	DeletePattern(ctx context.Context, pattern string)
}

// FetchFn is the loader signature GetOrFetch expects when fetching from the
// source of truth.
type FetchFn[T any] func(ctx context.Context) (T, error)

// GetOrFetch is the read-through building block every cached finder is built
// from. On a hit the loader is never invoked; on a miss the loader runs
// exactly once and its result is stored under key with the given TTL. A
// loader error propagates uncached, so a failed fetch is never served from
// the cache on a later call.
func GetOrFetch[T any](ctx context.Context, store Store, key string, ttl time.Duration, fetch FetchFn[T]) (T, error) {
	var zero T
	if raw, ok := store.Get(ctx, key); ok {
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
		// An undecodable entry is treated as absent.
		store.Delete(ctx, key)
	}

	result, err := fetch(ctx)
	if err != nil {
		return zero, err
	}

	if raw, err := json.Marshal(result); err == nil {
		store.Set(ctx, key, raw, ttl)
	}
	return result, nil
}
