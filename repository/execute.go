package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/clubify/checkout-go/cache"
)

// ExecuteWithMetrics wraps op with timing and outcome reporting. It is purely
// observational: failures are logged with their context and the error is
// re-raised unchanged, never swallowed or transformed.
func ExecuteWithMetrics[T any](ctx context.Context, c *Core, name string, op func(context.Context) (T, error)) (T, error) {
	start := time.Now()
	result, err := op(ctx)
	c.rec.ObserveOperation(c.resource, name, time.Since(start), err == nil)

	if err != nil {
		c.log.WithFields(logrus.Fields{
			"operation": name,
			"endpoint":  c.endpoint,
		}).WithError(err).Error("operation failed")
	}
	return result, err
}

// CachedOrExecute is the building block domain finders are built from: check
// the store under key, and only on a miss invoke loader (exactly once),
// caching its result with the given TTL. A zero ttl uses the core's default.
// Loader errors propagate uncached.
func CachedOrExecute[T any](ctx context.Context, c *Core, key string, ttl time.Duration, loader cache.FetchFn[T]) (T, error) {
	if ttl <= 0 {
		ttl = c.ttl
	}

	if raw, ok := c.store.Get(ctx, key); ok {
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			c.rec.RecordCacheHit(c.resource)
			return cached, nil
		}
		c.store.Delete(ctx, key)
	}

	c.rec.RecordCacheMiss(c.resource)
	return cache.GetOrFetch(ctx, c.store, key, ttl, loader)
}
