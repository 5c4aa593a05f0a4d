package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
)

// Config holds everything needed to construct an SDK client.
type Config struct {
	// BaseURL of the remote Clubify Checkout API.
	BaseURL string
	// APIKey sent as a bearer token on every request.
	APIKey string
	// TenantID scopes requests to one tenant when set.
	TenantID string
	// UserAgent identifies this client to the remote API.
	UserAgent string

	// Timeout applies to each HTTP round trip.
	Timeout time.Duration
	// MaxRetries bounds gateway retries on 5xx responses.
	MaxRetries int

	// CacheBackend is one of "memory", "redis", or "sturdyc".
	CacheBackend string
	// CacheTTL is the default TTL for cached reads.
	CacheTTL  time.Duration
	RedisAddr string
	RedisDB   int

	// KafkaBrokers, when set, routes events to Kafka instead of the log.
	KafkaBrokers []string
	EventTopic   string

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string
}

// Default returns a Config with sensible defaults; BaseURL and APIKey still
// need to be filled in.
func Default() Config {
	return Config{
		UserAgent:    "clubify-checkout-go",
		Timeout:      10 * time.Second,
		MaxRetries:   3,
		CacheBackend: "memory",
		CacheTTL:     5 * time.Minute,
		EventTopic:   "clubify.sdk.events",
		LogLevel:     "info",
	}
}

// FromEnv loads configuration from CLUBIFY_* environment variables, reading a
// .env file first when one is present.
func FromEnv() Config {
	_ = godotenv.Load()

	cfg := Default()
	cfg.BaseURL = envString("CLUBIFY_BASE_URL", cfg.BaseURL)
	cfg.APIKey = envString("CLUBIFY_API_KEY", cfg.APIKey)
	cfg.TenantID = envString("CLUBIFY_TENANT_ID", cfg.TenantID)
	cfg.UserAgent = envString("CLUBIFY_USER_AGENT", cfg.UserAgent)
	cfg.Timeout = envDuration("CLUBIFY_TIMEOUT", cfg.Timeout)
	cfg.MaxRetries = envInt("CLUBIFY_MAX_RETRIES", cfg.MaxRetries)
	cfg.CacheBackend = envString("CLUBIFY_CACHE_BACKEND", cfg.CacheBackend)
	cfg.CacheTTL = envDuration("CLUBIFY_CACHE_TTL", cfg.CacheTTL)
	cfg.RedisAddr = envString("CLUBIFY_REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisDB = envInt("CLUBIFY_REDIS_DB", cfg.RedisDB)
	cfg.EventTopic = envString("CLUBIFY_EVENT_TOPIC", cfg.EventTopic)
	cfg.LogLevel = envString("CLUBIFY_LOG_LEVEL", cfg.LogLevel)

	if brokers := envString("CLUBIFY_KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	return cfg
}

// Validate checks the configuration before any client is constructed.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.BaseURL, validation.Required, is.URL),
		validation.Field(&c.APIKey, validation.Required),
		validation.Field(&c.Timeout, validation.Min(time.Second)),
		validation.Field(&c.MaxRetries, validation.Min(0), validation.Max(10)),
		validation.Field(&c.CacheBackend, validation.In("memory", "redis", "sturdyc")),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
	)
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
