// Package metrics collects Prometheus metrics for sign-ins, authorization
// decisions, catalog writes and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the narrow interface services depend on.
type Recorder interface {
	SignIn(provider, result string)
	GuardRejected(reason string)
	CatalogWrite(op, result string)
}

// Collector is the Prometheus-backed Recorder.
type Collector struct {
	signIns       *prometheus.CounterVec
	guardRejected *prometheus.CounterVec
	catalogWrites *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

// NewCollector creates the metrics and registers them on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		signIns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookshelf_sign_ins_total",
			Help: "Sign-in attempts by provider and result.",
		}, []string{"provider", "result"}),
		guardRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookshelf_guard_rejections_total",
			Help: "Requests rejected by an authorization guard.",
		}, []string{"reason"}),
		catalogWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookshelf_catalog_writes_total",
			Help: "Catalog write operations by kind and result.",
		}, []string{"op", "result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookshelf_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bookshelf_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		c.signIns,
		c.guardRejected,
		c.catalogWrites,
		c.httpRequests,
		c.httpDuration,
	)
	return c
}

func (c *Collector) SignIn(provider, result string) {
	c.signIns.WithLabelValues(provider, result).Inc()
}

func (c *Collector) GuardRejected(reason string) {
	c.guardRejected.WithLabelValues(reason).Inc()
}

func (c *Collector) CatalogWrite(op, result string) {
	c.catalogWrites.WithLabelValues(op, result).Inc()
}

// Middleware records request counts and latency. Routes are labelled with
// the chi route pattern to keep cardinality bounded.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		c.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(rw.status)).Inc()
		c.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// Handler exposes gatherer for scraping.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Noop discards every observation.
type Noop struct{}

func (Noop) SignIn(string, string)       {}
func (Noop) GuardRejected(string)        {}
func (Noop) CatalogWrite(string, string) {}
