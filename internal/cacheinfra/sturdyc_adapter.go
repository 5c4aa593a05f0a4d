package cacheinfra

import (
	"context"
	"time"

	"github.com/viccon/sturdyc"
)

// Config holds the configuration for the sturdyc cache adapter.
type Config struct {
	// Capacity defines the maximum number of entries that the cache can store.
	// Must be greater than 0.
	Capacity int

	// NumShards determines the number of cache shards for concurrent access.
	// Higher values improve concurrency but increase memory overhead.
	// Must be greater than 0. Default: 256
	NumShards int

	// TTL is the client-wide time-to-live sturdyc applies to entries. Per-key
	// TTLs passed to Set are enforced on top of it, so this acts as an upper
	// bound. Must be greater than 0.
	TTL time.Duration

	// EvictionPercentage specifies what percentage of entries to evict
	// when the cache reaches its capacity. Must be between 1-100.
	// Default: 10 (evict 10% of entries)
	EvictionPercentage int

	// EvictionInterval sets how often the cache checks for expired entries.
	// Zero value uses the default interval.
	EvictionInterval time.Duration
}

// DefaultConfig returns a Config with sensible defaults for most use cases.
func DefaultConfig() Config {
	return Config{
		Capacity:           10000,
		NumShards:          256,
		TTL:                time.Hour,
		EvictionPercentage: 10,
	}
}

// ToSturdycOptions converts the Config to a sturdyc.Option slice. Capacity,
// NumShards, TTL, and EvictionPercentage are passed directly to sturdyc.New
// and are not included in the options.
func (c Config) ToSturdycOptions() []sturdyc.Option {
	var options []sturdyc.Option

	if c.EvictionInterval > 0 {
		options = append(options, sturdyc.WithEvictionInterval(c.EvictionInterval))
	}

	return options
}

// Validate checks if the configuration values are valid.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}

	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}

	if c.TTL <= 0 {
		return &ConfigError{Field: "TTL", Message: "must be greater than 0"}
	}

	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}

	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}

// sturdycEntry wraps a stored value with its own expiry so callers get
// per-key TTL semantics on top of sturdyc's client-wide TTL.
type sturdycEntry struct {
	Value     []byte
	ExpiresAt time.Time
}

// sturdycStore adapts a sturdyc client to the Store contract.
type sturdycStore struct {
	client *sturdyc.Client[sturdycEntry]
}

// NewSturdycStore validates the configuration and initializes a sturdyc
// client with the provided settings.
//
// Version compatibility note: this implementation assumes the sturdyc v1.x
// API. Monitor sturdyc version upgrades for potential option mapping changes.
func NewSturdycStore(cfg Config) (*sturdycStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := sturdyc.New[sturdycEntry](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		cfg.ToSturdycOptions()...,
	)

	return &sturdycStore{client: client}, nil
}

func (s *sturdycStore) Get(ctx context.Context, key string) ([]byte, bool) {
	entry, ok := s.client.Get(key)
	if !ok {
		return nil, false
	}
	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		// Expired entries must never be returned.
		s.client.Delete(key)
		return nil, false
	}
	return entry.Value, true
}

func (s *sturdycStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	entry := sturdycEntry{Value: value}
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}
	s.client.Set(key, entry)
}

func (s *sturdycStore) Delete(ctx context.Context, key string) {
	s.client.Delete(key)
}

func (s *sturdycStore) DeletePattern(ctx context.Context, pattern string) {
	for _, key := range s.client.ScanKeys() {
		if MatchPattern(pattern, key) {
			s.client.Delete(key)
		}
	}
}
