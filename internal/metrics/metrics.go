// Package metrics provides Prometheus metrics for metadata loading
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultHit     = "hit"
	ResultMiss    = "miss"
)

// Metrics holds the metadata loader metrics
type Metrics struct {
	LoadsTotal         *prometheus.CounterVec
	CacheRequestsTotal *prometheus.CounterVec
	BuildDuration      prometheus.Histogram
}

// New creates the metrics and registers them with reg. A nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		LoadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bcschema_loads_total",
				Help: "Total number of metadata loads",
			},
			[]string{"result"},
		),
		CacheRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bcschema_cache_requests_total",
				Help: "Total number of metadata snapshot cache lookups",
			},
			[]string{"result"},
		),
		BuildDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "bcschema_build_duration_seconds",
				Help:    "Duration of schema builds in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
		),
	}
}

// RecordLoad counts a finished load
func (m *Metrics) RecordLoad(err error) {
	if m == nil {
		return
	}
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	m.LoadsTotal.WithLabelValues(result).Inc()
}

// RecordCache counts a snapshot lookup as hit, miss or error
func (m *Metrics) RecordCache(result string) {
	if m == nil {
		return
	}
	m.CacheRequestsTotal.WithLabelValues(result).Inc()
}

// ObserveBuild records the duration of a schema build
func (m *Metrics) ObserveBuild(duration time.Duration) {
	if m == nil {
		return
	}
	m.BuildDuration.Observe(duration.Seconds())
}
