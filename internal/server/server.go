// Package server exposes practice sessions over a small JSON API so other
// front-ends can drive the same state machine as the terminal UI.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/abhisek/parley/internal/catalog"
	"github.com/abhisek/parley/internal/logger"
	"github.com/abhisek/parley/internal/session"
)

const (
	DefaultAddr        = ":8080"
	DefaultMaxInflight = 8
	DefaultSessionTTL  = 6 * time.Hour

	shutdownTimeout = 10 * time.Second
)

// Config holds listener, concurrency and session expiry settings.
type Config struct {
	Addr        string
	MaxInflight int

	// SessionTTL drops sessions idle for longer than this. Zero keeps
	// them until deleted.
	SessionTTL time.Duration
}

// ConfigFromEnv reads PARLEY_ADDR, PARLEY_MAX_INFLIGHT and
// PARLEY_SESSION_TTL ("0" disables expiry).
func ConfigFromEnv() Config {
	cfg := Config{Addr: DefaultAddr, MaxInflight: DefaultMaxInflight, SessionTTL: DefaultSessionTTL}
	if v := os.Getenv("PARLEY_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("PARLEY_MAX_INFLIGHT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxInflight = n
		}
	}
	if v := os.Getenv("PARLEY_SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			cfg.SessionTTL = d
		}
	}
	return cfg
}

// ServerConnectProps wires a Server.
type ServerConnectProps struct {
	Config   Config
	Catalog  *catalog.Catalog
	Sessions *session.Registry
	Logger   *logger.LogMiddleware
}

// Server is the HTTP front-end over a session registry.
type Server struct {
	cfg      Config
	catalog  *catalog.Catalog
	sessions *session.Registry
	logger   *logger.LogMiddleware
	inflight *semaphore.Weighted
	handler  http.Handler
}

// New builds the router and middleware chain.
func New(args ServerConnectProps) *Server {
	cfg := args.Config
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.MaxInflight <= 0 {
		cfg.MaxInflight = DefaultMaxInflight
	}
	log := args.Logger
	if log == nil {
		log = logger.Nop()
	}

	s := &Server{
		cfg:      cfg,
		catalog:  args.Catalog,
		sessions: args.Sessions,
		logger:   log,
		inflight: semaphore.NewWeighted(int64(cfg.MaxInflight)),
	}

	r := chi.NewRouter()
	r.Use(requestLoggerMiddleware(log))

	r.Get("/healthz", s.handleHealth)
	r.Get("/scenarios", s.handleListScenarios)
	r.Get("/scenarios/{id}", s.handleGetScenario)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Get("/{id}", s.handleGetSession)
		r.Delete("/{id}", s.handleDeleteSession)
		r.Post("/{id}/actions", s.handleAction)
	})

	s.handler = otelhttp.NewHandler(r, "parley")
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
// Idle sessions are expired in the background while it runs.
func (s *Server) ListenAndServe(ctx context.Context) error {
	expireCtx, stopExpire := context.WithCancel(ctx)
	defer stopExpire()
	go s.sessions.Expire(expireCtx, s.cfg.SessionTTL, s.logger)

	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Logger(ctx).Info("[Server] Listening", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		s.logger.Logger(ctx).Info("[Server] Shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func requestLoggerMiddleware(log *logger.LogMiddleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			start := time.Now()
			log.Logger(ctx).Info("Request Received", zap.String("url", r.URL.Path), zap.String("method", r.Method))
			next.ServeHTTP(w, r)
			log.Logger(ctx).Info("Request Completed",
				zap.String("path", r.URL.Path),
				zap.String("method", r.Method),
				zap.Duration("elapsed", time.Since(start)))
		})
	}
}
