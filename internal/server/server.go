// Package server wires the HTTP surface of the regrets service: routes,
// middleware and the server lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/regretshq/regrets/internal/config"
	"github.com/regretshq/regrets/internal/server/handlers"
	"github.com/regretshq/regrets/internal/server/middleware"
	"github.com/regretshq/regrets/internal/server/password"
	"github.com/regretshq/regrets/internal/server/policy"
	"github.com/regretshq/regrets/internal/server/storage"
	"github.com/regretshq/regrets/internal/server/token"
)

// Server is the HTTP server for the regrets API
type Server struct {
	logger  *slog.Logger
	httpSrv *http.Server
}

// New builds a fully wired Server. Stores and configuration are injected;
// nothing here reaches for globals.
func New(cfg *config.Config, logger *slog.Logger, users storage.UserStore, regrets storage.RegretStore, version string) *Server {
	codec := token.NewCodec([]byte(cfg.TokenSecret))
	hasher := password.NewHasher(cfg.BcryptCost)
	engine := policy.NewEngine(users)

	authHandler := handlers.NewAuthHandler(logger, users, hasher, codec)
	regretHandler := handlers.NewRegretHandler(logger, regrets, engine)
	healthHandler := handlers.NewHealthHandler(logger, version)

	requireAuth := middleware.RequireAuth(logger, codec)
	optionalAuth := middleware.OptionalAuth(logger, codec)

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/v1/health", healthHandler.Health)

	mux.Handle("POST /api/v1/regrets", requireAuth(http.HandlerFunc(regretHandler.Create)))
	mux.HandleFunc("GET /api/v1/regrets", regretHandler.ListPublic)
	mux.Handle("GET /api/v1/regrets/mine", requireAuth(http.HandlerFunc(regretHandler.ListMine)))
	mux.Handle("GET /api/v1/regrets/{id}", optionalAuth(http.HandlerFunc(regretHandler.Get)))
	mux.Handle("PATCH /api/v1/regrets/{id}", requireAuth(http.HandlerFunc(regretHandler.Update)))
	mux.Handle("DELETE /api/v1/regrets/{id}", requireAuth(http.HandlerFunc(regretHandler.Delete)))

	var handler http.Handler = mux
	handler = middleware.LoggingWithSkip(logger, []string{"/api/v1/health"})(handler)
	handler = middleware.Recovery(logger)(handler)

	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Server{
		logger:  logger,
		httpSrv: httpSrv,
	}
}

// Run starts the HTTP server and blocks until ctx is canceled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP server listening", "addr", s.httpSrv.Addr)
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}

	return nil
}

// Handler returns the root handler for testing purposes
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}
