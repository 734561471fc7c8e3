package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/tenants/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/tenants/abc", nil))

	out := scrape(t, m)
	assert.Contains(t, out, `rent360_http_requests_total{method="GET",route="/tenants/{id}",status="418"} 1`)
	assert.Contains(t, out, "rent360_http_request_duration_seconds")
}

func TestObserveList(t *testing.T) {
	m := New()
	m.ObserveList("tenants", 12, 3, true)

	out := scrape(t, m)
	assert.Contains(t, out, `rent360_listview_rows{entity="tenants",stage="loaded"} 12`)
	assert.Contains(t, out, `rent360_listview_rows{entity="tenants",stage="matched"} 3`)
	assert.Contains(t, out, `rent360_listview_runs_total{entity="tenants",filtered="true"} 1`)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveList("tenants", 1, 1, false)

	called := false
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	assert.True(t, called)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
