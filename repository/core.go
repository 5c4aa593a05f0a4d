package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/clubify/checkout-go/apierror"
	"github.com/clubify/checkout-go/cache"
	"github.com/clubify/checkout-go/events"
	"github.com/clubify/checkout-go/metrics"
	"github.com/clubify/checkout-go/transport"
)

// Config assembles a Core. Endpoint and Resource are the only values that
// distinguish one domain repository from another; everything else is shared
// infrastructure.
type Config struct {
	// Endpoint is the URL path segment this repository targets, e.g. "/users".
	Endpoint string
	// Resource is the short domain noun used to namespace cache keys and
	// event names, e.g. "user".
	Resource string

	Gateway transport.Gateway
	Store   cache.Store
	Keys    cache.KeySerializer
	Events  events.Sink
	Logger  logrus.FieldLogger
	Metrics metrics.Recorder

	// UnwrapPriority is the ordered list of envelope keys tried when
	// extracting payloads; defaults to ["data", Resource].
	UnwrapPriority []string
	// CacheTTL is the default TTL for cached reads.
	CacheTTL time.Duration
}

// Core is the single choke point through which every domain repository
// performs remote reads and writes, so caching, metrics, events, and error
// shape are applied exactly once and consistently.
//
// A Core is synchronous per call: each method performs at most one network
// round trip and returns. Retry policy belongs to the Gateway; concurrency is
// the caller's responsibility. The shared Store and Sink are assumed safe for
// concurrent use by their own contract, so the Core holds no locks.
type Core struct {
	endpoint string
	resource string

	gw     transport.Gateway
	store  cache.Store
	keys   cache.KeySerializer
	sink   events.Sink
	log    logrus.FieldLogger
	rec    metrics.Recorder
	unwrap []string
	ttl    time.Duration
}

// New validates the configuration and builds a Core, filling in no-op
// collaborators where none are provided.
func New(cfg Config) (*Core, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("repository: endpoint is required")
	}
	if cfg.Resource == "" {
		return nil, fmt.Errorf("repository: resource name is required")
	}
	if cfg.Gateway == nil {
		return nil, fmt.Errorf("repository: gateway is required")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("repository: cache store is required")
	}

	if cfg.Keys == nil {
		cfg.Keys = cache.NewDefaultKeySerializer()
	}
	if cfg.Events == nil {
		cfg.Events = events.NopSink{}
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NopRecorder{}
	}
	if len(cfg.UnwrapPriority) == 0 {
		cfg.UnwrapPriority = []string{"data", cfg.Resource}
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}

	return &Core{
		endpoint: cfg.Endpoint,
		resource: cfg.Resource,
		gw:       cfg.Gateway,
		store:    cfg.Store,
		keys:     cfg.Keys,
		sink:     cfg.Events,
		log:      cfg.Logger.WithField("resource", cfg.Resource),
		rec:      cfg.Metrics,
		unwrap:   cfg.UnwrapPriority,
		ttl:      cfg.CacheTTL,
	}, nil
}

// Resource returns the domain noun this core is bound to.
func (c *Core) Resource() string { return c.resource }

// EntityKey derives the direct cache key for an entity id.
func (c *Core) EntityKey(id string) string {
	return c.keys.EntityKey(c.resource, id)
}

// QueryKey derives a deterministic cache key for a query operation.
func (c *Core) QueryKey(operation string, params map[string]any) string {
	return c.keys.QueryKey(c.resource, operation, params)
}

// DefaultTTL returns the core's default TTL for cached reads.
func (c *Core) DefaultTTL() time.Duration { return c.ttl }

// FindByID fetches one entity by id. A 404 returns (nil, nil): absence is an
// expected outcome, not a failure. Results are not cached unless the call is
// wrapped with CachedOrExecute.
func (c *Core) FindByID(ctx context.Context, id string) (Entity, error) {
	return ExecuteWithMetrics(ctx, c, "find_by_id", func(ctx context.Context) (Entity, error) {
		return c.GetPath(ctx, "find_by_id", "/"+id, nil)
	})
}

// List fetches entities matching the query parameters.
func (c *Core) List(ctx context.Context, query map[string]any) ([]Entity, error) {
	return ExecuteWithMetrics(ctx, c, "list", func(ctx context.Context) ([]Entity, error) {
		return c.ListPath(ctx, "list", "", query)
	})
}

// GetPath issues a GET against a sub-path of the endpoint and decodes a
// single entity, translating the not-found sentinel to (nil, nil). Domain
// finders build their cached lookups from it.
func (c *Core) GetPath(ctx context.Context, operation, path string, query map[string]any) (Entity, error) {
	entity, err := c.fetchEntity(ctx, operation, path, query)
	if errors.Is(err, apierror.ErrNotFound) {
		return nil, nil
	}
	return entity, err
}

// fetchEntity performs the GET, surfacing a missing entity as
// apierror.ErrNotFound.
func (c *Core) fetchEntity(ctx context.Context, operation, path string, query map[string]any) (Entity, error) {
	resp, err := c.gw.Request(ctx, http.MethodGet, c.endpoint+path, &transport.RequestOptions{Query: stringify(query)})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, apierror.ErrNotFound
	}
	if !transport.IsSuccessful(resp) {
		return nil, c.remoteError(operation, resp)
	}
	return c.decodeEntity(operation, resp)
}

// ListPath issues a GET against a sub-path of the endpoint and decodes an
// entity list.
func (c *Core) ListPath(ctx context.Context, operation, path string, query map[string]any) ([]Entity, error) {
	resp, err := c.gw.Request(ctx, http.MethodGet, c.endpoint+path, &transport.RequestOptions{Query: stringify(query)})
	if err != nil {
		return nil, err
	}
	if !transport.IsSuccessful(resp) {
		return nil, c.remoteError(operation, resp)
	}
	return c.decodeList(operation, resp)
}

// remoteError translates a non-2xx response into the taxonomy.
func (c *Core) remoteError(operation string, resp *transport.Response) error {
	return &apierror.RemoteError{
		StatusCode: resp.StatusCode,
		Resource:   c.resource,
		Operation:  operation,
		Message:    transport.ErrorMessage(resp),
	}
}

// decodeEntity extracts one entity from a successful response. A 2xx with an
// unparsable body surfaces as a DecodeError, never as an empty entity.
func (c *Core) decodeEntity(operation string, resp *transport.Response) (Entity, error) {
	payload, err := transport.Decode(resp)
	if err != nil {
		return nil, &apierror.DecodeError{Resource: c.resource, Operation: operation, Err: err}
	}
	if payload == nil {
		return nil, nil
	}
	return transport.UnwrapEntity(payload, c.unwrap...), nil
}

func (c *Core) decodeList(operation string, resp *transport.Response) ([]Entity, error) {
	payload, err := transport.Decode(resp)
	if err != nil {
		return nil, &apierror.DecodeError{Resource: c.resource, Operation: operation, Err: err}
	}
	if payload == nil {
		return nil, nil
	}
	list := transport.UnwrapList(payload, append([]string{"items"}, c.unwrap...)...)
	out := make([]Entity, len(list))
	for i, m := range list {
		out[i] = m
	}
	return out, nil
}

// emit notifies the sink of a committed state change. Events are success-only
// side effects; failed calls never reach this point.
func (c *Core) emit(ctx context.Context, action string, payload map[string]any) {
	c.sink.Emit(ctx, c.resource+"."+action, payload)
}

func stringify(params map[string]any) map[string]string {
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]string, len(params))
	for k, v := range params {
		out[k] = fmt.Sprintf("%v", v)
	}
	return out
}
