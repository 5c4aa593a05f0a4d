package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder receives per-call observations from repositories. It is purely
// observational: implementations must never block or fail a repository call.
type Recorder interface {
	ObserveOperation(resource, operation string, d time.Duration, success bool)
	RecordCacheHit(resource string)
	RecordCacheMiss(resource string)
}

// NopRecorder discards all observations.
type NopRecorder struct{}

func (NopRecorder) ObserveOperation(resource, operation string, d time.Duration, success bool) {}
func (NopRecorder) RecordCacheHit(resource string)                                             {}
func (NopRecorder) RecordCacheMiss(resource string)                                            {}

// ClientMetrics exposes repository activity as Prometheus collectors.
type ClientMetrics struct {
	operations  *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec
}

// NewClientMetrics registers the SDK collectors with the default registerer.
func NewClientMetrics() *ClientMetrics {
	return NewClientMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewClientMetricsWithRegisterer registers the SDK collectors with the given
// registerer, reusing collectors that are already registered.
func NewClientMetricsWithRegisterer(registerer prometheus.Registerer) *ClientMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &ClientMetrics{
		operations: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "clubify_sdk_operations_total",
			Help: "Total number of repository operations by outcome",
		}, []string{"resource", "operation", "outcome"}),
		duration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "clubify_sdk_operation_duration_seconds",
			Help:    "Duration of repository operations in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"resource", "operation"}),
		cacheHits: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "clubify_sdk_cache_hits_total",
			Help: "Total number of cache hits on cached reads",
		}, []string{"resource"}),
		cacheMisses: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "clubify_sdk_cache_misses_total",
			Help: "Total number of cache misses on cached reads",
		}, []string{"resource"}),
	}
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

// ObserveOperation records one repository call.
func (m *ClientMetrics) ObserveOperation(resource, operation string, d time.Duration, success bool) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	m.operations.WithLabelValues(resource, operation, outcome).Inc()
	m.duration.WithLabelValues(resource, operation).Observe(d.Seconds())
}

// RecordCacheHit increments the hit counter for a resource.
func (m *ClientMetrics) RecordCacheHit(resource string) {
	m.cacheHits.WithLabelValues(resource).Inc()
}

// RecordCacheMiss increments the miss counter for a resource.
func (m *ClientMetrics) RecordCacheMiss(resource string) {
	m.cacheMisses.WithLabelValues(resource).Inc()
}
