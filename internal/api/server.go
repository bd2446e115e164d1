// Package api implements the Maskforge HTTP service: component listing,
// remote builds, the design library, and prometheus metrics.
//
// The server is a thin shell over [pipeline.Runner] and [library.Store];
// every build goes through the same staged pipeline the CLI uses, so the
// two entry points share caches and behavior.
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/maskforge/maskforge/pkg/library"
	"github.com/maskforge/maskforge/pkg/pipeline"
)

// Server serves the component registry, remote builds, and the design
// library over HTTP.
type Server struct {
	runner *pipeline.Runner
	store  library.Store
	logger *log.Logger
	router chi.Router
}

// NewServer wires routes and metrics hooks. A nil runner gets a default
// uncached runner. The store may be nil, in which case builds are not
// persisted and the design endpoints are not mounted.
func NewServer(runner *pipeline.Runner, store library.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	s := &Server{runner: runner, store: store, logger: logger}
	RegisterMetricsHooks()
	s.routes()
	return s
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(trackMetrics)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/components", s.handleComponents)
		r.Get("/components/{name}", s.handleComponent)
		r.Post("/builds", s.handleBuild)
		if s.store != nil {
			r.Get("/designs", s.handleDesigns)
			r.Get("/designs/{id}", s.handleDesign)
			r.Delete("/designs/{id}", s.handleDesignDelete)
			r.Get("/designs/{id}/svg", s.handleDesignSVG)
		}
	})

	s.router = r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// logRequests logs one line per request with status and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
