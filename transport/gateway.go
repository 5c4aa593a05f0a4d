package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// RequestOptions carries the optional parts of a request.
type RequestOptions struct {
	// JSON, when non-nil, is marshaled as the request body.
	JSON any
	// Query parameters appended to the URI.
	Query map[string]string
	// Headers set on the request, overriding defaults on conflict.
	Headers map[string]string
}

// Response is the raw transport result. Repositories never inspect anything
// beyond the status code and body.
type Response struct {
	StatusCode int
	Body       []byte
}

// Gateway executes a single HTTP exchange against the remote API. Retry and
// timeout policy live here, behind the interface, never in the repositories
// that consume it.
type Gateway interface {
	Request(ctx context.Context, method, uri string, opts *RequestOptions) (*Response, error)
}

// Config holds the settings for the default HTTP gateway.
type Config struct {
	BaseURL   string
	APIKey    string
	TenantID  string
	UserAgent string
	// MaxRetries bounds retry attempts on 5xx responses. Zero disables retries.
	MaxRetries int
}

// Exponential backoff bounds for 5xx retries.
const (
	baseDelay = 500 * time.Millisecond
	maxDelay  = 16 * time.Second
)

// userAgentRoundTripper adds a User-Agent header to every outgoing request.
type userAgentRoundTripper struct {
	wrapped   http.RoundTripper
	userAgent string
}

func (rt *userAgentRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone request to avoid mutating the original
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", rt.userAgent)
	return rt.wrapped.RoundTrip(clone)
}

// httpGateway wraps a standard *http.Client with auth headers, URL assembly,
// and bounded retries on server errors.
type httpGateway struct {
	cfg    Config
	client *http.Client
	sleep  func(d time.Duration)
}

// New creates a Gateway talking to cfg.BaseURL through the provided client.
// A nil client gets a default with a 10s timeout.
func New(cfg Config, client *http.Client) (Gateway, error) {
	if _, err := url.Parse(cfg.BaseURL); err != nil || cfg.BaseURL == "" {
		return nil, fmt.Errorf("transport: invalid base URL %q", cfg.BaseURL)
	}

	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if cfg.UserAgent != "" {
		base := client.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		// Copy the client so the caller's instance keeps its own transport.
		wrapped := *client
		wrapped.Transport = &userAgentRoundTripper{wrapped: base, userAgent: cfg.UserAgent}
		client = &wrapped
	}

	return &httpGateway{
		cfg:    cfg,
		client: client,
		sleep:  time.Sleep,
	}, nil
}

func (g *httpGateway) Request(ctx context.Context, method, uri string, opts *RequestOptions) (*Response, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}

	urlStr, err := g.buildURL(uri, opts.Query)
	if err != nil {
		return nil, err
	}

	var bodyBytes []byte
	if opts.JSON != nil {
		bodyBytes, err = json.Marshal(opts.JSON)
		if err != nil {
			return nil, fmt.Errorf("transport: failed to encode request body: %w", err)
		}
	}

	resp, err := g.execute(ctx, method, urlStr, bodyBytes, opts.Headers)
	if err != nil {
		return nil, err
	}

	// Retry server errors with exponential backoff and jitter. 4xx responses
	// are returned as-is for the caller to translate.
	delay := baseDelay
	for attempt := 0; attempt < g.cfg.MaxRetries && resp.StatusCode >= http.StatusInternalServerError; attempt++ {
		jitter := time.Duration(rand.Int63n(int64(delay)))
		g.sleep(delay + jitter)

		delay *= 2
		if delay > maxDelay {
			delay = maxDelay
		}

		resp, err = g.execute(ctx, method, urlStr, bodyBytes, opts.Headers)
		if err != nil {
			return nil, err
		}
	}

	return resp, nil
}

// execute performs the low-level HTTP exchange.
func (g *httpGateway) execute(ctx context.Context, method, urlStr string, body []byte, headers map[string]string) (*Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, urlStr, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if g.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)
	}
	if g.cfg.TenantID != "" {
		req.Header.Set("X-Tenant-Id", g.cfg.TenantID)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transport: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("transport: failed to read response body: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}

// buildURL merges the base URL, the uri path, and query parameters.
func (g *httpGateway) buildURL(uri string, query map[string]string) (string, error) {
	base, err := url.Parse(g.cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("transport: invalid base URL: %w", err)
	}
	path, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("transport: invalid uri %q: %w", uri, err)
	}

	full := base.ResolveReference(path)
	q := full.Query()
	for k, v := range query {
		q.Set(k, v)
	}
	full.RawQuery = q.Encode()
	return full.String(), nil
}
