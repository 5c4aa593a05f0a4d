package cacheinfra

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// memoryStore is the default in-process cache backend. Per-entry TTLs and
// background eviction are handled by go-cache.
type memoryStore struct {
	c *gocache.Cache
}

// NewMemoryStore creates an in-memory store with the given default TTL for
// entries stored without an explicit one.
func NewMemoryStore(defaultTTL time.Duration) *memoryStore {
	return &memoryStore{c: gocache.New(defaultTTL, time.Minute)}
}

func (m *memoryStore) Get(ctx context.Context, key string) ([]byte, bool) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

func (m *memoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	m.c.Set(key, value, ttl)
}

func (m *memoryStore) Delete(ctx context.Context, key string) {
	m.c.Delete(key)
}

func (m *memoryStore) DeletePattern(ctx context.Context, pattern string) {
	for key := range m.c.Items() {
		if MatchPattern(pattern, key) {
			m.c.Delete(key)
		}
	}
}
