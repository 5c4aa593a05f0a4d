package cacheinfra

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSturdycConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}

	tests := []struct {
		name  string
		mut   func(*Config)
		field string
	}{
		{"zero capacity", func(c *Config) { c.Capacity = 0 }, "Capacity"},
		{"zero shards", func(c *Config) { c.NumShards = 0 }, "NumShards"},
		{"zero ttl", func(c *Config) { c.TTL = 0 }, "TTL"},
		{"eviction too high", func(c *Config) { c.EvictionPercentage = 101 }, "EvictionPercentage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mut(&cfg)
			err := cfg.Validate()

			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got: %v", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, cfgErr.Field)
			}
		})
	}
}

func TestSturdycStore_RoundTrip(t *testing.T) {
	store, err := NewSturdycStore(DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	store.Set(ctx, "order:o_1", []byte(`{"id":"o_1"}`), time.Minute)

	v, ok := store.Get(ctx, "order:o_1")
	if !ok || string(v) != `{"id":"o_1"}` {
		t.Fatalf("expected stored value back, got %q ok=%v", v, ok)
	}

	store.Delete(ctx, "order:o_1")
	if _, ok := store.Get(ctx, "order:o_1"); ok {
		t.Error("expected key gone after delete")
	}
}

func TestSturdycStore_PerKeyTTL(t *testing.T) {
	store, err := NewSturdycStore(DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	store.Set(ctx, "order:o_1", []byte(`1`), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	if _, ok := store.Get(ctx, "order:o_1"); ok {
		t.Error("expected entry expired by its own TTL before the client-wide one")
	}
}

func TestSturdycStore_DeletePattern(t *testing.T) {
	store, err := NewSturdycStore(DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	store.Set(ctx, "order:list:page=1", []byte(`1`), time.Minute)
	store.Set(ctx, "order:list:page=2", []byte(`1`), time.Minute)
	store.Set(ctx, "order:o_1", []byte(`1`), time.Minute)

	store.DeletePattern(ctx, "order:list:*")

	if _, ok := store.Get(ctx, "order:list:page=1"); ok {
		t.Error("expected list entries cleared")
	}
	if _, ok := store.Get(ctx, "order:list:page=2"); ok {
		t.Error("expected list entries cleared")
	}
	if _, ok := store.Get(ctx, "order:o_1"); !ok {
		t.Error("expected entity key untouched")
	}
}
