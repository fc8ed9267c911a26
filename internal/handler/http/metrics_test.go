package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"lingua-cms/internal/observability/metrics"
)

func TestMetricsMiddleware_NormalizesPaths(t *testing.T) {
	metrics.HTTPRequestsTotal.Reset()
	metrics.HTTPRequestDuration.Reset()

	h := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/missing") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))

	paths := []string{
		"/posts/6f1d1a9e-3c65-4a4e-9d8e-6a0d3c3f1c11",
		"/posts/0b7c2f4e-1111-4a4e-9d8e-6a0d3c3f1c11",
		"/posts/6f1d1a9e-3c65-4a4e-9d8e-6a0d3c3f1c11/content/0b7c2f4e-1111-4a4e-9d8e-6a0d3c3f1c11",
		"/health",
		"/links/missing",
	}
	for _, p := range paths {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	tests := []struct {
		path   string
		status string
		want   float64
	}{
		{"/posts/{id}", "200", 2},
		{"/posts/{id}/content/{languageId}", "200", 1},
		{"/health", "200", 1},
		{"/links/{id}", "404", 1},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, tt.path, tt.status))
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, 4, testutil.CollectAndCount(metrics.HTTPRequestsTotal))
}

func TestMetricsMiddleware_ActiveRequestsBalanced(t *testing.T) {
	before := testutil.ToFloat64(metrics.ActiveRequests)
	var during float64
	h := MetricsMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		during = testutil.ToFloat64(metrics.ActiveRequests)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.Equal(t, before+1, during)
	assert.Equal(t, before, testutil.ToFloat64(metrics.ActiveRequests))
}

func TestMetricsHandler_Exposes(t *testing.T) {
	metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/languages", "200").Inc()

	rec := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}
