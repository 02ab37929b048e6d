// Package server exposes the layout pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz               liveness probe
//	GET  /version               build information
//	POST /v1/layout             data (+ layout options) to layout JSON
//	POST /v1/render/{format}    data (+ layout options) to svg, png, pdf or json
//
// Request bodies carry the tabular data and an optional partial layout
// configuration that is merged over the server's configured defaults:
//
//	{"data": {"categories": [...], "groups": [...]}, "config": {"chart": {"type": "clustered"}}}
//
// A request whose layout fails is answered with 422; for render requests
// the body is still the artifact, which shows the failure message.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/growthchart/pkg/config"
	"github.com/matzehuels/growthchart/pkg/httputil"
	"github.com/matzehuels/growthchart/pkg/observability"
	"github.com/matzehuels/growthchart/pkg/pipeline"
)

// Defaults applied when the server config leaves a field empty.
const (
	DefaultAddr         = ":8080"
	DefaultReadTimeout  = 15 * time.Second
	DefaultWriteTimeout = 60 * time.Second
	DefaultMaxBodyBytes = 10 << 20

	shutdownTimeout = 10 * time.Second
)

// Server serves layouts and rendered charts.
type Server struct {
	runner *pipeline.Runner
	cfg    config.File
	logger *log.Logger
	router chi.Router
}

// New creates a server around runner. cfg supplies the default layout
// options, the render style and the HTTP limits.
func New(runner *pipeline.Runner, cfg config.File, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{runner: runner, cfg: cfg, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/render/{format}", s.handleRender)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. An empty addr uses the configured or default address.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = s.cfg.Server.Addr
	}
	if addr == "" {
		addr = DefaultAddr
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  config.Duration(s.cfg.Server.ReadTimeout, DefaultReadTimeout),
		WriteTimeout: config.Duration(s.cfg.Server.WriteTimeout, DefaultWriteTimeout),
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) maxBodyBytes() int64 {
	if n := s.cfg.Server.MaxBodyBytes; n > 0 {
		return n
	}
	return DefaultMaxBodyBytes
}

// instrument attaches a request-scoped logger and reports the request to
// the observability hooks.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := r.Context()
		logger := s.logger.With("request_id", httputil.RequestIDFromContext(ctx))
		ctx = log.WithContext(ctx, logger)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		observability.HTTP().OnRequest(ctx, r.Method, r.URL.Path)
		next.ServeHTTP(ww, r.WithContext(ctx))

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		dur := time.Since(start)
		observability.HTTP().OnResponse(ctx, r.Method, route, status, dur)
		logger.Debug("request", "method", r.Method, "route", route, "status", status, "bytes", ww.BytesWritten(), "duration", dur)
	})
}

// fail writes err and reports it to the hooks.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	if httputil.StatusFor(err) >= http.StatusInternalServerError {
		log.FromContext(r.Context()).Error("request failed", "err", err)
	}
	httputil.WriteError(w, r, err)
}
