package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type mapStore struct {
	mu      sync.Mutex
	entries map[string][]byte
	gets    int
	sets    int
}

func newMapStore() *mapStore {
	return &mapStore{entries: make(map[string][]byte)}
}

func (s *mapStore) Get(ctx context.Context, key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	v, ok := s.entries[key]
	return v, ok
}

func (s *mapStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets++
	s.entries[key] = value
}

func (s *mapStore) Delete(ctx context.Context, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

func (s *mapStore) DeletePattern(ctx context.Context, pattern string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.entries {
		if MatchPattern(pattern, key) {
			delete(s.entries, key)
		}
	}
}

type widget struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestGetOrFetch_MissThenHit(t *testing.T) {
	store := newMapStore()
	calls := 0
	fetch := func(ctx context.Context) (widget, error) {
		calls++
		return widget{ID: "w_1", Name: "gear"}, nil
	}

	ctx := context.Background()
	first, err := GetOrFetch(ctx, store, "widget:w_1", time.Minute, fetch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := GetOrFetch(ctx, store, "widget:w_1", time.Minute, fetch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls != 1 {
		t.Errorf("expected one fetch, got %d", calls)
	}
	if first != second {
		t.Errorf("expected cached value to round-trip, got %v and %v", first, second)
	}
}

func TestGetOrFetch_ErrorPropagatesUncached(t *testing.T) {
	store := newMapStore()
	boom := errors.New("boom")
	fetch := func(ctx context.Context) (widget, error) {
		return widget{}, boom
	}

	_, err := GetOrFetch(context.Background(), store, "widget:w_1", time.Minute, fetch)
	if !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got: %v", err)
	}
	if store.sets != 0 {
		t.Errorf("expected nothing cached on failure, got %d sets", store.sets)
	}
}

func TestGetOrFetch_CorruptEntryDropped(t *testing.T) {
	store := newMapStore()
	store.entries["widget:w_1"] = []byte(`{broken`)

	fetch := func(ctx context.Context) (widget, error) {
		return widget{ID: "w_1"}, nil
	}

	got, err := GetOrFetch(context.Background(), store, "widget:w_1", time.Minute, fetch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "w_1" {
		t.Errorf("expected fresh fetch after dropping corrupt entry, got %v", got)
	}
	if string(store.entries["widget:w_1"]) == `{broken` {
		t.Errorf("expected corrupt entry replaced")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}

	bad := cfg
	bad.Backend = "memcached"
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestNewStore_MemoryBackend(t *testing.T) {
	store, err := NewStore(DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	store.Set(ctx, "a:b", []byte(`1`), time.Minute)
	if v, ok := store.Get(ctx, "a:b"); !ok || string(v) != "1" {
		t.Errorf("expected stored value back, got %q ok=%v", v, ok)
	}
}
