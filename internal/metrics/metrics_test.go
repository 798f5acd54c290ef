package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_New(t *testing.T) {
	m := New()
	assert.NotNil(t, m.RequestsTotal)
	assert.NotNil(t, m.RequestDuration)
	assert.NotNil(t, m.CacheHitsTotal)
	assert.NotNil(t, m.CacheMissTotal)
	assert.NotNil(t, m.CacheEvictions)
	assert.NotNil(t, m.CacheItems)
	assert.NotNil(t, m.ErrorsTotal)
}

func TestMetrics_RecordRequest(t *testing.T) {
	m := New()
	m.RecordRequest("upload", "200")
	m.RecordRequest("upload", "200")
	m.RecordRequest("download", "404")

	body := getMetricsBody(t, m)
	assert.Contains(t, body, `blobcache_requests_total{route="upload",status="200"} 2`)
	assert.Contains(t, body, `blobcache_requests_total{route="download",status="404"} 1`)
}

func TestMetrics_RecordError(t *testing.T) {
	m := New()
	m.RecordError("upload", "empty_payload")

	body := getMetricsBody(t, m)
	assert.Contains(t, body, `blobcache_errors_total{route="upload",type="empty_payload"} 1`)
}

func TestMetrics_RecordHitMissEviction(t *testing.T) {
	m := New()
	m.RecordHit()
	m.RecordHit()
	m.RecordMiss()
	m.RecordEviction()

	body := getMetricsBody(t, m)
	assert.Contains(t, body, "blobcache_cache_hits_total 2")
	assert.Contains(t, body, "blobcache_cache_misses_total 1")
	assert.Contains(t, body, "blobcache_cache_evictions_total 1")
}

func TestMetrics_ObserveDuration(t *testing.T) {
	m := New()
	m.ObserveDuration("upload", 0.05)

	body := getMetricsBody(t, m)
	assert.Contains(t, body, "blobcache_request_duration_seconds")
}

func TestMetrics_SetItems(t *testing.T) {
	m := New()
	m.SetItems(7)

	body := getMetricsBody(t, m)
	assert.Contains(t, body, "blobcache_cache_items 7")
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	handler := m.Handler()
	assert.NotNil(t, handler)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func getMetricsBody(t *testing.T, m *Metrics) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	body, _ := io.ReadAll(rr.Body)
	return strings.TrimSpace(string(body))
}
