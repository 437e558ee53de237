package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DashboardMetrics exposes counters/histograms for the dashboard API and its
// upstream clinic API calls.
type DashboardMetrics struct {
	upstreamTotal   *prometheus.CounterVec
	upstreamLatency *prometheus.HistogramVec
	httpTotal       *prometheus.CounterVec
	httpLatency     *prometheus.HistogramVec
	mountedScreens  prometheus.GaugeFunc
}

// NewDashboardMetrics registers the collectors on reg (the default registerer
// when nil). mounted, when set, reports the number of mounted screens.
func NewDashboardMetrics(reg prometheus.Registerer, mounted func() int) *DashboardMetrics {
	m := &DashboardMetrics{
		upstreamTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic_dashboard",
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Total requests sent to the clinic API",
		}, []string{"method", "status"}),
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "clinic_dashboard",
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Latency of clinic API requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		httpTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic_dashboard",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total dashboard API requests",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "clinic_dashboard",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of dashboard API requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.upstreamTotal, m.upstreamLatency, m.httpTotal, m.httpLatency)

	if mounted != nil {
		m.mountedScreens = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "clinic_dashboard",
			Name:      "mounted_screens",
			Help:      "Resource screens currently mounted across sessions",
		}, func() float64 { return float64(mounted()) })
		reg.MustRegister(m.mountedScreens)
	}
	return m
}

// ObserveRequest records one upstream round trip. Status 0 means no response
// was received.
func (m *DashboardMetrics) ObserveRequest(method string, status int, seconds float64) {
	if m == nil {
		return
	}
	label := "network_error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.upstreamTotal.WithLabelValues(method, label).Inc()
	m.upstreamLatency.WithLabelValues(method).Observe(seconds)
}

// Middleware counts dashboard requests by route template.
func (m *DashboardMetrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m == nil {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := "unmatched"
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		m.httpTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		m.httpLatency.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the registry in the Prometheus text format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	if gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
