package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNew_RejectsEmptyBaseURL(t *testing.T) {
	if _, err := New(Config{}, nil); err == nil {
		t.Error("expected error for empty base URL")
	}
}

func TestRequest_HeadersAndBody(t *testing.T) {
	var seen *http.Request
	var seenBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Clone(r.Context())
		json.NewDecoder(r.Body).Decode(&seenBody)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	gw, err := New(Config{
		BaseURL:   server.URL,
		APIKey:    "secret",
		TenantID:  "tenant_1",
		UserAgent: "clubify-go/1.0",
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := gw.Request(context.Background(), http.MethodPost, "/users", &RequestOptions{
		JSON:    map[string]any{"email": "a@b.io"},
		Headers: map[string]string{"X-Custom": "yes"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	if got := seen.Header.Get("Authorization"); got != "Bearer secret" {
		t.Errorf("expected bearer auth, got %q", got)
	}
	if got := seen.Header.Get("X-Tenant-Id"); got != "tenant_1" {
		t.Errorf("expected tenant header, got %q", got)
	}
	if got := seen.Header.Get("User-Agent"); got != "clubify-go/1.0" {
		t.Errorf("expected user agent, got %q", got)
	}
	if got := seen.Header.Get("X-Custom"); got != "yes" {
		t.Errorf("expected custom header, got %q", got)
	}
	if seen.Header.Get("X-Request-Id") == "" {
		t.Error("expected a request id header")
	}
	if seen.URL.Path != "/users" {
		t.Errorf("expected path /users, got %q", seen.URL.Path)
	}
	if seenBody["email"] != "a@b.io" {
		t.Errorf("expected JSON body forwarded, got %v", seenBody)
	}
}

func TestNew_DoesNotMutateInjectedClient(t *testing.T) {
	var ua string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := &http.Client{Timeout: 5 * time.Second}
	gw, err := New(Config{BaseURL: server.URL, UserAgent: "clubify-go/1.0"}, client)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.Transport != nil {
		t.Error("expected the caller's client to keep its own transport")
	}

	if _, err := gw.Request(context.Background(), http.MethodGet, "/ping", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ua != "clubify-go/1.0" {
		t.Errorf("expected the gateway's copy to carry the user agent, got %q", ua)
	}
}

func TestRequest_QueryParams(t *testing.T) {
	var query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	gw, err := New(Config{BaseURL: server.URL}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = gw.Request(context.Background(), http.MethodGet, "/users", &RequestOptions{
		Query: map[string]string{"page": "2", "status": "active"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if query != "page=2&status=active" {
		t.Errorf("expected encoded query, got %q", query)
	}
}

func TestRequest_RetriesServerErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	gw, err := New(Config{BaseURL: server.URL, MaxRetries: 3}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gw.(*httpGateway).sleep = func(time.Duration) {}

	resp, err := gw.Request(context.Background(), http.MethodGet, "/orders", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected eventual 200, got %d", resp.StatusCode)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestRequest_NoRetryOnClientErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	gw, err := New(Config{BaseURL: server.URL, MaxRetries: 3}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gw.(*httpGateway).sleep = func(time.Duration) {}

	resp, err := gw.Request(context.Background(), http.MethodGet, "/orders/o_1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 surfaced, got %d", resp.StatusCode)
	}
	if attempts != 1 {
		t.Errorf("expected a single attempt for 4xx, got %d", attempts)
	}
}

func TestRequest_ExhaustedRetriesReturnLastResponse(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	gw, err := New(Config{BaseURL: server.URL, MaxRetries: 2}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gw.(*httpGateway).sleep = func(time.Duration) {}

	resp, err := gw.Request(context.Background(), http.MethodGet, "/orders", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("expected final 502 returned, got %d", resp.StatusCode)
	}
	if attempts != 3 {
		t.Errorf("expected initial attempt plus 2 retries, got %d", attempts)
	}
}
