// Package api provides the HTTP transport for vexdb.
//
// It exposes the database operations over REST endpoints and translates the
// public error kinds to HTTP status codes.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/vexdb/vexdb"
)

// Options holds configuration for the HTTP server.
type Options struct {
	// Addr is the host:port bind address.
	Addr string
	// RequestTimeout bounds per-request handling time.
	RequestTimeout time.Duration
	// RateLimit is the sustained request rate per second; 0 disables limiting.
	RateLimit float64
	// RateBurst is the token-bucket burst size used with RateLimit.
	RateBurst int
	// DefaultListLimit is used when a list request omits the limit parameter.
	DefaultListLimit int
	// Logger receives request logs. Nil defaults to slog.Default().
	Logger *slog.Logger
}

// Server is the HTTP server for vexdb.
type Server struct {
	opts    Options
	db      *vexdb.DB
	router  *chi.Mux
	handler *Handler
	http    *http.Server
}

// NewServer creates a new HTTP server around db.
func NewServer(db *vexdb.DB, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}
	if opts.DefaultListLimit <= 0 {
		opts.DefaultListLimit = 50
	}

	s := &Server{
		opts:    opts,
		db:      db,
		router:  chi.NewRouter(),
		handler: NewHandler(db, opts.Logger, opts.DefaultListLimit),
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.http = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// setupMiddleware configures middleware for the router.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.opts.Logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(s.opts.RequestTimeout))

	if s.opts.RateLimit > 0 {
		burst := s.opts.RateBurst
		if burst <= 0 {
			burst = 1
		}
		s.router.Use(rateLimiter(rate.NewLimiter(rate.Limit(s.opts.RateLimit), burst)))
	}
}

// setupRoutes configures routes for the server.
func (s *Server) setupRoutes() {
	s.router.Route("/vectors", func(r chi.Router) {
		r.Post("/", s.handler.InsertVector)
		r.Get("/", s.handler.ListVectors)
		r.Get("/{id}", s.handler.GetVector)
		r.Delete("/{id}", s.handler.DeleteVector)
	})

	s.router.Post("/search", s.handler.SearchVectors)
	s.router.Get("/stats", s.handler.GetStats)
	s.router.Get("/config", s.handler.GetConfig)
	s.router.Get("/health", s.handler.Health)
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// ListenAndServe starts the HTTP server and blocks until it stops.
func (s *Server) ListenAndServe() error {
	s.opts.Logger.Info("starting vexdb server", "addr", s.opts.Addr)
	return s.http.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// requestLogger logs each request with method, path, status, and duration.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

// rateLimiter applies a global token-bucket limit across all requests.
func rateLimiter(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
