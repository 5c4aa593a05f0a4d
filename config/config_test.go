package config

import (
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.CacheBackend != "memory" {
		t.Errorf("expected memory backend default, got %q", cfg.CacheBackend)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("expected 10s timeout default, got %v", cfg.Timeout)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("expected 3 retries default, got %d", cfg.MaxRetries)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("CLUBIFY_BASE_URL", "https://api.example.com")
	t.Setenv("CLUBIFY_API_KEY", "key_123")
	t.Setenv("CLUBIFY_TIMEOUT", "30s")
	t.Setenv("CLUBIFY_MAX_RETRIES", "5")
	t.Setenv("CLUBIFY_CACHE_BACKEND", "sturdyc")
	t.Setenv("CLUBIFY_KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")

	cfg := FromEnv()
	if cfg.BaseURL != "https://api.example.com" {
		t.Errorf("unexpected BaseURL: %q", cfg.BaseURL)
	}
	if cfg.APIKey != "key_123" {
		t.Errorf("unexpected APIKey: %q", cfg.APIKey)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("unexpected Timeout: %v", cfg.Timeout)
	}
	if cfg.MaxRetries != 5 {
		t.Errorf("unexpected MaxRetries: %d", cfg.MaxRetries)
	}
	if cfg.CacheBackend != "sturdyc" {
		t.Errorf("unexpected CacheBackend: %q", cfg.CacheBackend)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[0] != "kafka-1:9092" {
		t.Errorf("unexpected KafkaBrokers: %v", cfg.KafkaBrokers)
	}
}

func TestFromEnv_BadValuesFallBack(t *testing.T) {
	t.Setenv("CLUBIFY_TIMEOUT", "soon")
	t.Setenv("CLUBIFY_MAX_RETRIES", "many")

	cfg := FromEnv()
	if cfg.Timeout != Default().Timeout {
		t.Errorf("expected fallback timeout, got %v", cfg.Timeout)
	}
	if cfg.MaxRetries != Default().MaxRetries {
		t.Errorf("expected fallback retries, got %d", cfg.MaxRetries)
	}
}

func TestValidate(t *testing.T) {
	valid := Default()
	valid.BaseURL = "https://api.example.com"
	valid.APIKey = "key_123"
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid config, got: %v", err)
	}

	tests := []struct {
		name string
		mut  func(*Config)
	}{
		{"missing base url", func(c *Config) { c.BaseURL = "" }},
		{"bad base url", func(c *Config) { c.BaseURL = "::notaurl" }},
		{"missing api key", func(c *Config) { c.APIKey = "" }},
		{"retries too high", func(c *Config) { c.MaxRetries = 50 }},
		{"unknown backend", func(c *Config) { c.CacheBackend = "memcached" }},
		{"unknown log level", func(c *Config) { c.LogLevel = "trace" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mut(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
