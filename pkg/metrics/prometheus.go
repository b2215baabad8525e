// Package metrics provides Prometheus metrics for the scorebook
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Engine metrics: every derived result is a recompute of the pure
	// engine over the current snapshot.
	recomputeTotal    *prometheus.CounterVec
	recomputeDuration *prometheus.HistogramVec
	memoHits          prometheus.Counter
	memoMisses        prometheus.Counter

	// Snapshot metrics.
	snapshotVersion prometheus.Gauge
	sessionCount    prometheus.Gauge
	playerCount     prometheus.Gauge
	storeErrors     prometheus.Counter

	// HTTP metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "scorebook",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.recomputeTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recompute_total",
		Help:      "Number of engine recomputations by component.",
	}, []string{"component"})

	m.recomputeDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recompute_duration_ms",
		Help:      "Engine recomputation latency in milliseconds.",
		Buckets:   m.histogramBuckets,
	}, []string{"component"})

	m.memoHits = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "memo_hits_total",
		Help:      "Derived results served from the memo cache.",
	})

	m.memoMisses = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "memo_misses_total",
		Help:      "Derived results recomputed after a memo miss.",
	})

	m.snapshotVersion = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_version",
		Help:      "Monotonic version of the stored snapshot.",
	})

	m.sessionCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "session_count",
		Help:      "Number of sessions in the stored snapshot.",
	})

	m.playerCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "player_count",
		Help:      "Number of players in the stored snapshot.",
	})

	m.storeErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_errors_total",
		Help:      "Snapshot store operation failures.",
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by endpoint, method and status code.",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
}

// Package-level helpers against the global manager.

// RecordRecompute records one engine recomputation with its latency.
func RecordRecompute(component string, latencyMs float64) {
	if globalManager == nil || !globalManager.enabled {
		return
	}
	globalManager.recomputeTotal.WithLabelValues(component).Inc()
	globalManager.recomputeDuration.WithLabelValues(component).Observe(latencyMs)
}

// RecordMemoHit records a derived result served from cache.
func RecordMemoHit() {
	if globalManager == nil || !globalManager.enabled {
		return
	}
	globalManager.memoHits.Inc()
}

// RecordMemoMiss records a derived result that had to be recomputed.
func RecordMemoMiss() {
	if globalManager == nil || !globalManager.enabled {
		return
	}
	globalManager.memoMisses.Inc()
}

// UpdateSnapshot publishes the current snapshot gauges.
func UpdateSnapshot(version uint64, sessions, players int) {
	if globalManager == nil || !globalManager.enabled {
		return
	}
	globalManager.snapshotVersion.Set(float64(version))
	globalManager.sessionCount.Set(float64(sessions))
	globalManager.playerCount.Set(float64(players))
}

// RecordStoreError records a snapshot store failure.
func RecordStoreError() {
	if globalManager == nil || !globalManager.enabled {
		return
	}
	globalManager.storeErrors.Inc()
}

// RecordHTTPRequest records one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if globalManager == nil || !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request latency.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	if globalManager == nil || !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// GetRegistry returns the custom Prometheus registry for serving
// /metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
