package testsupport

import (
	"context"
	"sync"
	"time"

	"github.com/clubify/checkout-go/cache"
	"github.com/clubify/checkout-go/transport"
)

// FakeStore is an in-memory cache.Store with real TTL semantics for tests.
type FakeStore struct {
	mu      sync.Mutex
	entries map[string]fakeEntry

	Sets    []string
	TTLs    map[string]time.Duration
	Deletes []string
}

type fakeEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewFakeStore creates an empty store.
func NewFakeStore() *FakeStore {
	return &FakeStore{
		entries: make(map[string]fakeEntry),
		TTLs:    make(map[string]time.Duration),
	}
}

func (s *FakeStore) Get(ctx context.Context, key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		delete(s.entries, key)
		return nil, false
	}
	return e.value, true
}

func (s *FakeStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := fakeEntry{value: value}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	s.entries[key] = e
	s.Sets = append(s.Sets, key)
	s.TTLs[key] = ttl
}

func (s *FakeStore) Delete(ctx context.Context, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	s.Deletes = append(s.Deletes, key)
}

func (s *FakeStore) DeletePattern(ctx context.Context, pattern string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.entries {
		if cache.MatchPattern(pattern, key) {
			delete(s.entries, key)
		}
	}
	s.Deletes = append(s.Deletes, pattern)
}

// Has reports whether key is present and unexpired.
func (s *FakeStore) Has(key string) bool {
	_, ok := s.Get(context.Background(), key)
	return ok
}

// Keys returns the currently stored keys.
func (s *FakeStore) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	return keys
}

// FakeSink records emitted events for assertions.
type FakeSink struct {
	mu     sync.Mutex
	Events []EmittedEvent
}

// EmittedEvent is one recorded Emit call.
type EmittedEvent struct {
	Name    string
	Payload map[string]any
}

func (s *FakeSink) Emit(ctx context.Context, name string, payload map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Events = append(s.Events, EmittedEvent{Name: name, Payload: payload})
}

// Names returns the emitted event names in order.
func (s *FakeSink) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, len(s.Events))
	for i, e := range s.Events {
		names[i] = e.Name
	}
	return names
}

// FakeGateway replays scripted responses and records every request it sees.
type FakeGateway struct {
	mu        sync.Mutex
	responses []ScriptedResponse
	Requests  []RecordedRequest
}

// ScriptedResponse is one canned gateway result.
type ScriptedResponse struct {
	Status int
	Body   []byte
	Err    error
}

// RecordedRequest captures one Request call.
type RecordedRequest struct {
	Method string
	URI    string
	Opts   *transport.RequestOptions
}

// NewFakeGateway creates a gateway that replays the given responses in order,
// repeating the last one when the script runs out.
func NewFakeGateway(responses ...ScriptedResponse) *FakeGateway {
	return &FakeGateway{responses: responses}
}

func (g *FakeGateway) Request(ctx context.Context, method, uri string, opts *transport.RequestOptions) (*transport.Response, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.Requests = append(g.Requests, RecordedRequest{Method: method, URI: uri, Opts: opts})

	if len(g.responses) == 0 {
		return &transport.Response{StatusCode: 200, Body: []byte(`{}`)}, nil
	}

	next := g.responses[0]
	if len(g.responses) > 1 {
		g.responses = g.responses[1:]
	}
	if next.Err != nil {
		return nil, next.Err
	}
	return &transport.Response{StatusCode: next.Status, Body: next.Body}, nil
}

// CallCount returns how many requests the gateway has served.
func (g *FakeGateway) CallCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.Requests)
}
