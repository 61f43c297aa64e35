// Package api provides the HTTP REST API.
//
// Endpoints:
//
//	GET  /health                      liveness probe
//	GET  /ready                       readiness probe (pings the database)
//	POST /api/ask                     answer a question, optionally in a session
//	GET  /api/sessions                list sessions
//	POST /api/sessions                create a session
//	GET  /api/sessions/{id}           fetch one session
//	DELETE /api/sessions/{id}         delete a session
//	GET  /api/sessions/{id}/messages  fetch a session's messages
//	GET  /api/profile/me              fetch the authenticated user's profile
//	PUT  /api/profile/me              update the profile
//	DELETE /api/profile/me            delete the account
//	GET  /api/profile/stats           usage statistics
//	GET  /api/profile/settings        settings (defaults when unset)
//	PUT  /api/profile/settings        merge settings
//
// Session and ask endpoints accept an optional bearer credential and scope
// to that user; profile endpoints require one.
//
// File structure:
//   - server.go: HTTP server setup and lifecycle
//   - middleware.go: recovery, logging, and rate-limit middleware
//   - auth.go: bearer-credential resolution
//   - health.go: health check endpoints
//   - ask.go: the question endpoint
//   - session.go: session management endpoints
//   - profile.go: profile endpoints
//   - response.go: JSON response helpers
package api

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/minbarhq/minbar/internal/agent"
	"github.com/minbarhq/minbar/internal/config"
	"github.com/minbarhq/minbar/internal/log"
	"github.com/minbarhq/minbar/internal/session"
	"github.com/minbarhq/minbar/internal/user"
)

const (
	// DefaultAddr is the default address for the HTTP server.
	DefaultAddr = "127.0.0.1:8000"

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	ShutdownTimeout = 10 * time.Second

	// ReadHeaderTimeout is the timeout for reading request headers.
	ReadHeaderTimeout = 10 * time.Second

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout = 30 * time.Second

	// WriteTimeout is the maximum duration for writing the response. It
	// must cover a full generation call.
	WriteTimeout = 120 * time.Second

	// IdleTimeout is the maximum wait for the next keep-alive request.
	IdleTimeout = 120 * time.Second
)

// Server is the HTTP server for the REST API.
type Server struct {
	mux     *http.ServeMux
	logger  log.Logger
	limiter *rate.Limiter

	health  *HealthHandler
	ask     *AskHandler
	session *SessionHandler
	profile *ProfileHandler
}

// NewServer creates the HTTP server with all routes registered.
func NewServer(db *sql.DB, pipeline *agent.Pipeline, sessions *session.Store, users *user.Store, cfg *config.Config, logger log.Logger) *Server {
	if logger == nil {
		logger = log.NewNop()
	}

	mux := http.NewServeMux()
	auth := &authenticator{users: users, logger: logger}

	s := &Server{
		mux:     mux,
		logger:  logger,
		health:  NewHealthHandler(db, logger),
		ask:     NewAskHandler(pipeline, sessions, auth, cfg.HistoryLimit, logger),
		session: NewSessionHandler(sessions, auth, logger),
		profile: NewProfileHandler(users, auth, logger),
	}
	if cfg.RateLimit > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	}

	s.health.RegisterRoutes(mux)
	s.ask.RegisterRoutes(mux)
	s.session.RegisterRoutes(mux)
	s.profile.RegisterRoutes(mux)

	return s
}

// Handler returns the HTTP handler with middleware applied.
// Middleware order: recovery → logging → rate limit → handler.
func (s *Server) Handler() http.Handler {
	return chain(s.mux, s.recoveryMiddleware, s.loggingMiddleware, s.rateLimitMiddleware)
}

// Run starts the HTTP server and blocks until the context is cancelled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
