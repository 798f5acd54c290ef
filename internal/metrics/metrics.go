// Package metrics provides Prometheus metrics for the blob cache service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the blob cache service.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	CacheHitsTotal  prometheus.Counter
	CacheMissTotal  prometheus.Counter
	CacheEvictions  prometheus.Counter
	CacheItems      prometheus.Gauge
	ErrorsTotal     *prometheus.CounterVec

	registry *prometheus.Registry
}

// New creates and registers all metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blobcache_requests_total",
				Help: "Total number of blob cache HTTP requests by route and status.",
			},
			[]string{"route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "blobcache_request_duration_seconds",
				Help:    "Request processing duration by route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "blobcache_cache_hits_total",
				Help: "Total number of cache lookups that found an entry.",
			},
		),
		CacheMissTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "blobcache_cache_misses_total",
				Help: "Total number of cache lookups that found nothing.",
			},
		),
		CacheEvictions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "blobcache_cache_evictions_total",
				Help: "Total number of entries evicted to make room for a new upload.",
			},
		),
		CacheItems: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "blobcache_cache_items",
				Help: "Current number of blobs held in the cache.",
			},
		),
		ErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blobcache_errors_total",
				Help: "Total errors by route and type.",
			},
			[]string{"route", "type"},
		),
		registry: reg,
	}

	reg.MustRegister(m.RequestsTotal)
	reg.MustRegister(m.RequestDuration)
	reg.MustRegister(m.CacheHitsTotal)
	reg.MustRegister(m.CacheMissTotal)
	reg.MustRegister(m.CacheEvictions)
	reg.MustRegister(m.CacheItems)
	reg.MustRegister(m.ErrorsTotal)

	return m
}

// Handler returns an http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordRequest increments the request counter.
func (m *Metrics) RecordRequest(route, status string) {
	m.RequestsTotal.WithLabelValues(route, status).Inc()
}

// RecordError increments the error counter.
func (m *Metrics) RecordError(route, errType string) {
	m.ErrorsTotal.WithLabelValues(route, errType).Inc()
}

// ObserveDuration records request duration.
func (m *Metrics) ObserveDuration(route string, seconds float64) {
	m.RequestDuration.WithLabelValues(route).Observe(seconds)
}

// RecordHit increments the cache hit counter.
func (m *Metrics) RecordHit() { m.CacheHitsTotal.Inc() }

// RecordMiss increments the cache miss counter.
func (m *Metrics) RecordMiss() { m.CacheMissTotal.Inc() }

// RecordEviction increments the cache eviction counter.
func (m *Metrics) RecordEviction() { m.CacheEvictions.Inc() }

// SetItems sets the current item-count gauge.
func (m *Metrics) SetItems(n float64) { m.CacheItems.Set(n) }
