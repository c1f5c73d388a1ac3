package guesslang

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the detection collectors. A nil *Metrics records nothing.
type Metrics struct {
	detectionsTotal   *prometheus.CounterVec
	detectionDuration *prometheus.HistogramVec
	sampleLength      prometheus.Histogram
	modelLookupsTotal *prometheus.CounterVec
	resultCacheTotal  *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		detectionsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "guesslang_detections_total",
				Help: "Total number of detections",
			},
			[]string{"rule", "code"},
		),
		detectionDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "guesslang_detection_duration_seconds",
				Help:    "Detection duration in seconds",
				Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05, .1},
			},
			[]string{"kind"}, // kind: unknown, definite, score
		),
		sampleLength: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "guesslang_sample_length",
				Help:    "Characters considered per detection",
				Buckets: []float64{0, 10, 20, 50, 100, 500, 1000, 2000, 4096},
			},
		),
		modelLookupsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "guesslang_model_lookups_total",
				Help: "Total number of language model cache lookups",
			},
			[]string{"result"}, // result: hit, load, absent, invalid
		),
		resultCacheTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "guesslang_result_cache_total",
				Help: "Total number of result cache operations",
			},
			[]string{"result"}, // result: hit, miss, error
		),
	}
}

func (m *Metrics) observeDetection(d Decision, code string, length int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.detectionsTotal.WithLabelValues(d.Rule, code).Inc()
	m.detectionDuration.WithLabelValues(d.Kind.String()).Observe(elapsed.Seconds())
	m.sampleLength.Observe(float64(length))
}

func (m *Metrics) modelLookup(result string) {
	if m == nil {
		return
	}
	m.modelLookupsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) resultCache(result string) {
	if m == nil {
		return
	}
	m.resultCacheTotal.WithLabelValues(result).Inc()
}
