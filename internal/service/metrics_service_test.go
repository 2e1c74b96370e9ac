package service

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrapeMetrics(t *testing.T, m *MetricsService) string {
	t.Helper()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMetricsServiceCacheCounters(t *testing.T) {
	m := NewMetricsService()

	m.RecordCacheLookup(true)
	m.RecordCacheLookup(true)
	m.RecordCacheLookup(false)

	body := scrapeMetrics(t, m)
	assert.Contains(t, body, "cache_hits_total 2")
	assert.Contains(t, body, "cache_misses_total 1")
}

func TestMetricsServiceHTTPCounters(t *testing.T) {
	m := NewMetricsService()

	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/news", http.StatusOK, 25*time.Millisecond)

	body := scrapeMetrics(t, m)
	assert.Contains(t, body, `http_requests_total{method="GET",path="/api/v1/news",status="200"} 1`)
}

func TestMetricsServiceNilReceiverIsSafe(t *testing.T) {
	var m *MetricsService

	m.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	m.ObserveUpstream("headlines", nil)
	m.RecordCacheLookup(true)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
