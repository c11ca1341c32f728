package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the back office.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration  *prometheus.HistogramVec
	externalErrors   *prometheus.CounterVec
	cacheHits        *prometheus.CounterVec
	cacheMisses      *prometheus.CounterVec
	auditDropped     prometheus.Counter
	distributionRuns prometheus.Counter
	backupsTotal     *prometheus.CounterVec
	requestsTotal    *prometheus.CounterVec
}

// OpsSnapshot is a flat summary of operational counters for the
// GET /v1/metrics/ops endpoint.
type OpsSnapshot struct {
	TotalRequests       int64   `json:"total_requests"`
	ErrorRate           float64 `json:"error_rate"`
	CacheHitRate        float64 `json:"cache_hit_rate"`
	AuditEntriesDropped int64   `json:"audit_entries_dropped"`
	DistributionRuns    int64   `json:"distribution_runs"`
	Period              string  `json:"period"`
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "backoffice_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		externalErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backoffice_external_errors_total",
				Help: "Total errors from the hosted store.",
			},
			[]string{"service"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backoffice_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backoffice_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		auditDropped: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "backoffice_audit_entries_dropped_total",
				Help: "Audit entries that failed to persist and were dropped.",
			},
		),
		distributionRuns: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "backoffice_profit_distribution_runs_total",
				Help: "Completed auto-distribute runs.",
			},
		),
		backupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backoffice_backups_total",
				Help: "Backup and restore operations by kind.",
			},
			[]string{"kind"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backoffice_requests_total",
				Help: "Total requests processed.",
			},
			[]string{"status"},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrExternalError increments the external error counter.
func (m *Metrics) IncrExternalError(service string) {
	m.externalErrors.WithLabelValues(service).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// IncrAuditDropped counts an audit entry that could not be persisted.
func (m *Metrics) IncrAuditDropped() {
	m.auditDropped.Inc()
}

// IncrDistributionRun counts a completed auto-distribute run.
func (m *Metrics) IncrDistributionRun() {
	m.distributionRuns.Inc()
}

// IncrBackup counts a backup or restore operation.
func (m *Metrics) IncrBackup(kind string) {
	m.backupsTotal.WithLabelValues(kind).Inc()
}

// IncrRequest increments the request counter with a status label.
func (m *Metrics) IncrRequest(status string) {
	m.requestsTotal.WithLabelValues(status).Inc()
}

// GetOpsSnapshot returns a summary of operational counters for the
// GET /v1/metrics/ops endpoint.
func (m *Metrics) GetOpsSnapshot() *OpsSnapshot {
	totalRequests := getCounterValue(m.requestsTotal, "success") +
		getCounterValue(m.requestsTotal, "error")
	errorCount := getCounterValue(m.requestsTotal, "error")
	cacheHits := getCounterValue(m.cacheHits, "settings")
	cacheMisses := getCounterValue(m.cacheMisses, "settings")

	errorRate := float64(0)
	cacheHitRate := float64(0)
	if totalRequests > 0 {
		errorRate = errorCount / totalRequests
	}
	if cacheHits+cacheMisses > 0 {
		cacheHitRate = cacheHits / (cacheHits + cacheMisses)
	}

	return &OpsSnapshot{
		TotalRequests:       int64(totalRequests),
		ErrorRate:           errorRate,
		CacheHitRate:        cacheHitRate,
		AuditEntriesDropped: int64(getPlainCounterValue(m.auditDropped)),
		DistributionRuns:    int64(getPlainCounterValue(m.distributionRuns)),
		Period:              "all_time",
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}

func getPlainCounterValue(c prometheus.Counter) float64 {
	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
