// Package di wires the SDK's shared collaborators (cache store, key
// serializer, gateway, event sink, metrics, logger) into repository cores and
// domain services. Each container owns its own instances; nothing here is a
// process-wide static.
package di

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/clubify/checkout-go/cache"
	"github.com/clubify/checkout-go/config"
	"github.com/clubify/checkout-go/events"
	"github.com/clubify/checkout-go/metrics"
	"github.com/clubify/checkout-go/repository"
	"github.com/clubify/checkout-go/transport"
)

// Container provides dependency injection for the SDK. It manages singleton
// instances of the shared collaborators and provides factory methods for
// repository cores and domain services.
type Container struct {
	cfg      config.Config
	store    cache.Store
	keys     cache.KeySerializer
	gateway  transport.Gateway
	sink     events.Sink
	recorder metrics.Recorder
	logger   logrus.FieldLogger

	services map[ServiceTag]any
}

// Option overrides one collaborator, mainly for tests and embedding hosts.
type Option func(*Container)

// WithStore replaces the cache store.
func WithStore(store cache.Store) Option {
	return func(c *Container) { c.store = store }
}

// WithGateway replaces the HTTP gateway.
func WithGateway(gw transport.Gateway) Option {
	return func(c *Container) { c.gateway = gw }
}

// WithSink replaces the event sink.
func WithSink(sink events.Sink) Option {
	return func(c *Container) { c.sink = sink }
}

// WithRecorder replaces the metrics recorder.
func WithRecorder(rec metrics.Recorder) Option {
	return func(c *Container) { c.recorder = rec }
}

// WithLogger replaces the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Container) { c.logger = log }
}

// New validates cfg, builds the shared collaborators, and verifies the
// service registry covers the closed set of tags.
func New(cfg config.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("di: invalid config: %w", err)
	}
	if err := validateRegistry(); err != nil {
		return nil, err
	}

	c := &Container{
		cfg:      cfg,
		services: make(map[ServiceTag]any),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		log := logrus.New()
		if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
			log.SetLevel(level)
		}
		c.logger = log
	}

	if c.store == nil {
		store, err := cache.NewStore(cache.Config{
			Backend:            cfg.CacheBackend,
			DefaultTTL:         cfg.CacheTTL,
			Capacity:           10000,
			NumShards:          256,
			EvictionPercentage: 10,
			RedisAddr:          cfg.RedisAddr,
			RedisDB:            cfg.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		c.store = store
	}

	if c.gateway == nil {
		gw, err := transport.New(transport.Config{
			BaseURL:    cfg.BaseURL,
			APIKey:     cfg.APIKey,
			TenantID:   cfg.TenantID,
			UserAgent:  cfg.UserAgent,
			MaxRetries: cfg.MaxRetries,
		}, &http.Client{Timeout: cfg.Timeout})
		if err != nil {
			return nil, err
		}
		c.gateway = gw
	}

	if c.sink == nil {
		if len(cfg.KafkaBrokers) > 0 {
			sink, err := events.NewKafkaSink(cfg.KafkaBrokers, cfg.EventTopic, c.logger)
			if err != nil {
				return nil, fmt.Errorf("di: kafka sink: %w", err)
			}
			c.sink = sink
		} else {
			c.sink = events.NewLoggerSink(c.logger)
		}
	}

	if c.recorder == nil {
		c.recorder = metrics.NewClientMetrics()
	}

	c.keys = cache.NewDefaultKeySerializer()

	return c, nil
}

// Store returns the singleton cache store instance.
func (c *Container) Store() cache.Store { return c.store }

// Gateway returns the singleton HTTP gateway instance.
func (c *Container) Gateway() transport.Gateway { return c.gateway }

// Sink returns the singleton event sink instance.
func (c *Container) Sink() events.Sink { return c.sink }

// Logger returns the container's logger.
func (c *Container) Logger() logrus.FieldLogger { return c.logger }

// Config returns a copy of the configuration used by this container.
func (c *Container) Config() config.Config { return c.cfg }

// Core builds a repository core bound to the given endpoint and resource,
// wired to the container's shared collaborators.
func (c *Container) Core(endpoint, resource string, unwrapPriority ...string) (*repository.Core, error) {
	return repository.New(repository.Config{
		Endpoint:       endpoint,
		Resource:       resource,
		Gateway:        c.gateway,
		Store:          c.store,
		Keys:           c.keys,
		Events:         c.sink,
		Logger:         c.logger,
		Metrics:        c.recorder,
		UnwrapPriority: unwrapPriority,
		CacheTTL:       c.cfg.CacheTTL,
	})
}
