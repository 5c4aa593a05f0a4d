package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveOperation(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewClientMetricsWithRegisterer(reg)

	m.ObserveOperation("user", "find_by_id", 12*time.Millisecond, true)
	m.ObserveOperation("user", "find_by_id", 8*time.Millisecond, true)
	m.ObserveOperation("user", "create", 50*time.Millisecond, false)

	success := testutil.ToFloat64(m.operations.WithLabelValues("user", "find_by_id", "success"))
	if success != 2 {
		t.Errorf("expected 2 successes, got %v", success)
	}
	failure := testutil.ToFloat64(m.operations.WithLabelValues("user", "create", "failure"))
	if failure != 1 {
		t.Errorf("expected 1 failure, got %v", failure)
	}
}

func TestCacheCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewClientMetricsWithRegisterer(reg)

	m.RecordCacheHit("tenant")
	m.RecordCacheHit("tenant")
	m.RecordCacheMiss("tenant")

	hits := testutil.ToFloat64(m.cacheHits.WithLabelValues("tenant"))
	if hits != 2 {
		t.Errorf("expected 2 hits, got %v", hits)
	}
	misses := testutil.ToFloat64(m.cacheMisses.WithLabelValues("tenant"))
	if misses != 1 {
		t.Errorf("expected 1 miss, got %v", misses)
	}
}

func TestReregistrationReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := NewClientMetricsWithRegisterer(reg)
	second := NewClientMetricsWithRegisterer(reg)

	first.RecordCacheHit("order")
	second.RecordCacheHit("order")

	hits := testutil.ToFloat64(second.cacheHits.WithLabelValues("order"))
	if hits != 2 {
		t.Errorf("expected shared collector counting both, got %v", hits)
	}
}
