// Package server собирает HTTP маршруты postboard и запускает сервер
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/iudanet/postboard/internal/server/auth"
	"github.com/iudanet/postboard/internal/server/handlers"
	"github.com/iudanet/postboard/internal/server/middleware"
	"github.com/iudanet/postboard/internal/server/storage"
)

// Store is everything the HTTP layer needs from persistence
type Store interface {
	storage.UserStorage
	storage.PostStorage
	storage.Pinger
}

// Options настраивает HTTP слой
type Options struct {
	Addr            string
	Version         string
	ShutdownTimeout time.Duration
	SecureCookie    bool
}

// Server is the postboard HTTP server
type Server struct {
	logger          *slog.Logger
	handler         http.Handler
	addr            string
	shutdownTimeout time.Duration
}

// New создает сервер со всеми маршрутами
func New(logger *slog.Logger, authService *auth.Service, store Store, opts Options) *Server {
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}

	return &Server{
		logger:          logger,
		handler:         NewRouter(logger, authService, store, opts),
		addr:            opts.Addr,
		shutdownTimeout: opts.ShutdownTimeout,
	}
}

// NewRouter возвращает http.Handler со всеми маршрутами и middleware
func NewRouter(logger *slog.Logger, authService *auth.Service, store Store, opts Options) http.Handler {
	authHandler := handlers.NewAuthHandler(logger, authService, opts.SecureCookie)
	postHandler := handlers.NewPostHandler(logger, store)
	healthHandler := handlers.NewHealthHandler(logger, store, opts.Version)

	requireAuth := middleware.RequireAuth(logger, authService)
	optionalAuth := middleware.OptionalAuth(authService)

	mux := http.NewServeMux()

	// Публичные маршруты
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("POST /signup", authHandler.Signup)
	mux.HandleFunc("POST /login", authHandler.Login)
	mux.HandleFunc("POST /logout", authHandler.Logout)
	mux.Handle("GET /posts", optionalAuth(http.HandlerFunc(postHandler.List)))

	// Защищенные маршруты
	mux.Handle("GET /me", requireAuth(http.HandlerFunc(authHandler.Me)))
	mux.Handle("POST /post", requireAuth(http.HandlerFunc(postHandler.Create)))
	mux.Handle("POST /posts/{id}/like", requireAuth(http.HandlerFunc(postHandler.Like)))
	mux.Handle("DELETE /posts/{id}/like", requireAuth(http.HandlerFunc(postHandler.Unlike)))

	// request id -> logging -> recovery -> mux
	var handler http.Handler = mux
	handler = middleware.RecoveryMiddleware(logger)(handler)
	handler = middleware.LoggingWithSkip(logger, []string{"/health"})(handler)
	handler = middleware.RequestIDMiddleware(handler)

	return handler
}

// Handler возвращает корневой http.Handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run слушает адрес из Options и обслуживает запросы до отмены ctx
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve обслуживает запросы на ln до отмены ctx, затем плавно завершает работу.
// Возвращает nil после штатного завершения
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{
		Handler:           s.handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	serveErr := make(chan error, 1)
	go func() {
		defer close(serveErr)
		s.logger.Info("starting HTTP server", slog.String("addr", ln.Addr().String()))
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("initiating shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown http server: %w", err)
	}
	if err, ok := <-serveErr; ok {
		return fmt.Errorf("http server failed: %w", err)
	}

	s.logger.Info("shutdown completed")
	return nil
}
