// Package observability wires the Prometheus metrics surface.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so repeated construction (tests) never
// trips duplicate-collector panics.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincontrol_http_requests_total",
				Help: "HTTP requests by method and status code.",
			},
			[]string{"method", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fincontrol_http_request_duration_seconds",
				Help:    "HTTP request duration by method.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}
}

// Handler serves the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records count and duration for every request.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		m.requestsTotal.WithLabelValues(r.Method, strconv.Itoa(ww.Status())).Inc()
		m.requestDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	})
}
