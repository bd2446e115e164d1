package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/maskforge/maskforge/pkg/observability"
)

var (
	// apiRequests counts handled requests.
	// Labels: method, route, status
	apiRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "maskforge",
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "Total HTTP requests handled",
	}, []string{"method", "route", "status"})

	// apiDuration measures request latency per route pattern.
	// Labels: method, route
	apiDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "maskforge",
		Subsystem: "api",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "route"})

	// cellBuilds measures cell build durations, split by outcome.
	// Labels: factory, status (ok, error)
	cellBuilds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "maskforge",
		Subsystem: "build",
		Name:      "duration_seconds",
		Help:      "Cell build duration in seconds",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"factory", "status"})

	// cacheOps counts cache operations by key type.
	// Labels: type (cell, netlist, svg, dot, graph), op (hit, miss, set)
	cacheOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "maskforge",
		Subsystem: "cache",
		Name:      "ops_total",
		Help:      "Cache operations by key type",
	}, []string{"type", "op"})

	// outboundRequests counts outbound HTTP requests such as PDK fetches.
	// Labels: host, status
	outboundRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "maskforge",
		Subsystem: "http",
		Name:      "outbound_requests_total",
		Help:      "Outbound HTTP requests by host and status",
	}, []string{"host", "status"})
)

// trackMetrics records request counts and latency per chi route pattern.
func trackMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		apiRequests.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
		apiDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// promBuildHooks bridges cell build events into prometheus.
type promBuildHooks struct{ observability.NoopBuildHooks }

func (promBuildHooks) OnBuildComplete(_ context.Context, cellName string, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	cellBuilds.WithLabelValues(factoryOf(cellName), status).Observe(d.Seconds())
}

// factoryOf strips the digest suffix from a canonical cell name.
func factoryOf(cellName string) string {
	if i := strings.LastIndexByte(cellName, '_'); i > 0 {
		return cellName[:i]
	}
	return cellName
}

// promCacheHooks bridges cache events into prometheus.
type promCacheHooks struct{ observability.NoopCacheHooks }

func (promCacheHooks) OnCacheHit(_ context.Context, keyType string) {
	cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (promCacheHooks) OnCacheMiss(_ context.Context, keyType string) {
	cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (promCacheHooks) OnCacheSet(_ context.Context, keyType string, _ int) {
	cacheOps.WithLabelValues(keyType, "set").Inc()
}

// promHTTPHooks bridges outbound HTTP client events into prometheus.
type promHTTPHooks struct{ observability.NoopHTTPHooks }

func (promHTTPHooks) OnResponse(_ context.Context, _, host, _ string, status int, _ time.Duration) {
	outboundRequests.WithLabelValues(host, strconv.Itoa(status)).Inc()
}

func (promHTTPHooks) OnError(_ context.Context, _, host, _ string, _ error) {
	outboundRequests.WithLabelValues(host, "error").Inc()
}

// RegisterMetricsHooks routes observability events into the prometheus
// collectors. Safe to call more than once.
func RegisterMetricsHooks() {
	observability.SetBuildHooks(promBuildHooks{})
	observability.SetCacheHooks(promCacheHooks{})
	observability.SetHTTPHooks(promHTTPHooks{})
}
