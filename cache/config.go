package cache

import (
	"fmt"
	"time"

	"github.com/clubify/checkout-go/internal/cacheinfra"
)

// Backend names accepted by Config.
const (
	BackendMemory  = "memory"
	BackendRedis   = "redis"
	BackendSturdyc = "sturdyc"
)

// Config selects and configures the cache backend shared by all repositories.
type Config struct {
	// Backend is one of "memory", "redis", or "sturdyc". Default: "memory".
	Backend string

	// DefaultTTL applies to entries stored without an explicit TTL.
	DefaultTTL time.Duration

	// Capacity and NumShards configure the sturdyc backend.
	Capacity  int
	NumShards int

	// EvictionPercentage configures the sturdyc backend (1-100).
	EvictionPercentage int

	// RedisAddr and RedisDB configure the redis backend.
	RedisAddr string
	RedisDB   int
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Backend:            BackendMemory,
		DefaultTTL:         5 * time.Minute,
		Capacity:           10000,
		NumShards:          256,
		EvictionPercentage: 10,
	}
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendMemory, BackendSturdyc:
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("cache config: redis backend requires RedisAddr")
		}
	default:
		return fmt.Errorf("cache config: unknown backend %q", c.Backend)
	}
	if c.DefaultTTL <= 0 {
		return fmt.Errorf("cache config: DefaultTTL must be greater than 0")
	}
	return nil
}

// NewStore constructs the configured Store implementation.
func NewStore(cfg Config) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case BackendRedis:
		return cacheinfra.NewRedisStore(cfg.RedisAddr, cfg.RedisDB), nil
	case BackendSturdyc:
		return cacheinfra.NewSturdycStore(cacheinfra.Config{
			Capacity:           cfg.Capacity,
			NumShards:          cfg.NumShards,
			TTL:                cfg.DefaultTTL * 4,
			EvictionPercentage: cfg.EvictionPercentage,
		})
	default:
		return cacheinfra.NewMemoryStore(cfg.DefaultTTL), nil
	}
}

// MatchPattern reports whether key matches an invalidation pattern. A "*"
// segment matches exactly one key segment; a trailing "*" matches the
// remainder of the key.
func MatchPattern(pattern, key string) bool {
	return cacheinfra.MatchPattern(pattern, key)
}
