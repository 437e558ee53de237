package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, reg *prometheus.Registry) string {
	t.Helper()
	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestDashboardMetrics_ObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewDashboardMetrics(reg, nil)

	m.ObserveRequest(http.MethodGet, 200, 0.05)
	m.ObserveRequest(http.MethodGet, 200, 0.07)
	m.ObserveRequest(http.MethodPost, 0, 1.2)

	body := scrape(t, reg)
	assert.Contains(t, body, `clinic_dashboard_upstream_requests_total{method="GET",status="200"} 2`)
	assert.Contains(t, body, `clinic_dashboard_upstream_requests_total{method="POST",status="network_error"} 1`)
	assert.Contains(t, body, `clinic_dashboard_upstream_request_duration_seconds_count{method="GET"} 2`)
}

func TestDashboardMetrics_MiddlewareUsesRouteTemplate(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewDashboardMetrics(reg, func() int { return 3 })

	r := mux.NewRouter()
	r.Use(m.Middleware)
	r.HandleFunc("/screens/{kind}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/screens/products", nil))
	require.Equal(t, http.StatusConflict, rec.Code)

	body := scrape(t, reg)
	assert.Contains(t, body, `clinic_dashboard_http_requests_total{method="GET",route="/screens/{kind}",status="409"} 1`)
	assert.Contains(t, body, "clinic_dashboard_mounted_screens 3")
}

func TestDashboardMetrics_NilSafe(t *testing.T) {
	var m *DashboardMetrics
	m.ObserveRequest(http.MethodGet, 200, 0.1)

	called := false
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, called)
}
