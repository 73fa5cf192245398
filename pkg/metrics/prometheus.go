// Package metrics provides Prometheus metrics for the tour standings service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Pipeline metrics
	eventLoads          *prometheus.CounterVec
	eventLoadLatency    prometheus.Histogram
	rowsSkipped         *prometheus.CounterVec
	aggregationRuns     prometheus.Counter
	aggregationLatency  prometheus.Histogram
	leaderboardPlayers  prometheus.Gauge
	eventsUnavailable   prometheus.Gauge
	registryLoadFailure prometheus.Counter

	// Source metrics
	sourceFetches      *prometheus.CounterVec
	sourceCacheHits    prometheus.Counter
	sourceCacheMisses  prometheus.Counter
	sourceThrottleWait prometheus.Histogram

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "tourboard",
		subsystem:        "standings",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.eventLoads = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "event_loads_total",
		Help:      "Event sheet loads by outcome (ok, unavailable)",
	}, []string{"outcome"})

	m.eventLoadLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "event_load_latency_milliseconds",
		Help:      "Latency of a single event sheet load in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.rowsSkipped = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_skipped_total",
		Help:      "Result rows dropped during normalization, by reason",
	}, []string{"reason"})

	m.aggregationRuns = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "aggregation_runs_total",
		Help:      "Completed standings computations",
	})

	m.aggregationLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "aggregation_latency_milliseconds",
		Help:      "End-to-end latency of a standings computation in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.leaderboardPlayers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "leaderboard_players",
		Help:      "Players on the most recently computed leaderboard",
	})

	m.eventsUnavailable = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_unavailable",
		Help:      "Events that failed to load in the most recent computation",
	})

	m.registryLoadFailure = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "entrants_load_failures_total",
		Help:      "Failed loads of the entrants listing",
	})

	m.sourceFetches = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "source",
		Name:      "fetches_total",
		Help:      "Table fetches against the tabular source by kind and result",
	}, []string{"kind", "result"})

	m.sourceCacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "source",
		Name:      "cache_hits_total",
		Help:      "Table reads served from the staleness cache",
	})

	m.sourceCacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "source",
		Name:      "cache_misses_total",
		Help:      "Table reads that went to the underlying source",
	})

	m.sourceThrottleWait = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "source",
		Name:      "throttle_wait_milliseconds",
		Help:      "Time spent waiting on the fetch rate limiter",
		Buckets:   m.histogramBuckets,
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_type_total",
			Help:      "Errors by type and severity",
		},
		[]string{"error_type", "severity"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_endpoint_total",
			Help:      "Errors by endpoint and method",
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})
}

// RecordEventLoad counts an event load with its outcome and latency.
func RecordEventLoad(outcome string, latencyMs float64) {
	globalManager.eventLoads.WithLabelValues(outcome).Inc()
	globalManager.eventLoadLatency.Observe(latencyMs)
}

// RecordRowSkipped counts a dropped result row.
func RecordRowSkipped(reason string) {
	globalManager.rowsSkipped.WithLabelValues(reason).Inc()
}

// RecordAggregation records a completed standings computation.
func RecordAggregation(latencyMs float64, players, unavailable int) {
	globalManager.aggregationRuns.Inc()
	globalManager.aggregationLatency.Observe(latencyMs)
	globalManager.leaderboardPlayers.Set(float64(players))
	globalManager.eventsUnavailable.Set(float64(unavailable))
}

// RecordEntrantsLoadFailure counts a failed entrants listing load.
func RecordEntrantsLoadFailure() {
	globalManager.registryLoadFailure.Inc()
}

// RecordSourceFetch counts a fetch against a tabular source.
func RecordSourceFetch(kind, result string) {
	globalManager.sourceFetches.WithLabelValues(kind, result).Inc()
}

// RecordCacheHit increments the staleness cache hit counter.
func RecordCacheHit() {
	globalManager.sourceCacheHits.Inc()
}

// RecordCacheMiss increments the staleness cache miss counter.
func RecordCacheMiss() {
	globalManager.sourceCacheMisses.Inc()
}

// RecordThrottleWait records time spent blocked on the rate limiter.
func RecordThrottleWait(waitMs float64) {
	globalManager.sourceThrottleWait.Observe(waitMs)
}

// RecordHTTPRequest increments the HTTP requests counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByType records errors by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records errors by endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage updates the memory gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount updates the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
