package guesslang

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_RecordsDetections(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	d := NewDetector(WithMetrics(m), WithResultCache(newMemCache()))

	d.Detect("안녕하세요")
	d.Detect("안녕하세요")
	d.Detect("Hello, how are you today?")

	if got := testutil.ToFloat64(m.detectionsTotal.WithLabelValues("hangul", "ko")); got != 1 {
		t.Errorf("Expected 1 hangul detection, got %v", got)
	}
	if got := testutil.ToFloat64(m.detectionsTotal.WithLabelValues("basic_latin", "en")); got != 1 {
		t.Errorf("Expected 1 basic_latin detection, got %v", got)
	}
	if got := testutil.ToFloat64(m.resultCacheTotal.WithLabelValues("hit")); got != 1 {
		t.Errorf("Expected 1 cache hit, got %v", got)
	}
	if got := testutil.ToFloat64(m.resultCacheTotal.WithLabelValues("miss")); got != 2 {
		t.Errorf("Expected 2 cache misses, got %v", got)
	}
	if got := testutil.ToFloat64(m.modelLookupsTotal.WithLabelValues("load")); got == 0 {
		t.Error("Expected model loads for the Latin detection")
	}
	if n := testutil.CollectAndCount(m.detectionDuration); n != 2 {
		t.Errorf("Expected duration series for 2 kinds, got %d", n)
	}
}

func TestMetrics_Register(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)

	if _, err := reg.Gather(); err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("Registering twice should panic")
		}
	}()
	NewMetrics(reg)
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	m.observeDetection(Definite("ko"), "ko", 5, 0)
	m.modelLookup("hit")
	m.resultCache("miss")
}
