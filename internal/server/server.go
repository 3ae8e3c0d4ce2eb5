// Package server собирает HTTP сервер удаленного хранилища документов.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/progresskeeper/internal/server/handlers"
	"github.com/iudanet/progresskeeper/internal/server/middleware"
	"github.com/iudanet/progresskeeper/internal/server/storage"
)

const healthPath = "/api/v1/health"

// Storage объединяет хранилища, необходимые серверу
type Storage interface {
	storage.UserStorage
	storage.DocumentStorage
}

// Options параметры сервера
type Options struct {
	Storage       Storage
	DB            handlers.Pinger // может быть nil
	Logger        *slog.Logger
	Limiter       *middleware.RateLimiter // nil отключает ограничение частоты
	Addr          string
	Version       string
	JWT           handlers.JWTConfig
	ShutdownGrace time.Duration
}

// Server HTTP сервер хранилища
type Server struct {
	httpServer    *http.Server
	logger        *slog.Logger
	shutdownGrace time.Duration
}

// New создает сервер со всеми маршрутами
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              opts.Addr,
			Handler:           NewRouter(opts),
			ReadHeaderTimeout: 10 * time.Second,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		},
		logger:        logger,
		shutdownGrace: opts.ShutdownGrace,
	}
}

// NewRouter регистрирует маршруты API и оборачивает их в middleware
func NewRouter(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	health := handlers.NewHealthHandler(logger, opts.DB, opts.Version)
	auth := handlers.NewAuthHandler(logger, opts.Storage, opts.JWT)
	docs := handlers.NewDocumentsHandler(logger, opts.Storage)
	requireAuth := middleware.AuthMiddleware(logger, opts.JWT)

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+healthPath, health.Health)
	mux.HandleFunc("POST /api/v1/auth/anonymous", auth.SignInAnonymous)
	mux.Handle("POST /api/v1/time", requireAuth(http.HandlerFunc(docs.ServerTime)))
	mux.Handle("GET /api/v1/collections/{collection}", requireAuth(http.HandlerFunc(docs.Collection)))
	mux.Handle("POST /api/v1/batch", requireAuth(http.HandlerFunc(docs.Batch)))

	chain := []func(http.Handler) http.Handler{
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger, healthPath),
	}
	if opts.Limiter != nil {
		chain = append(chain, middleware.RateLimitMiddleware(opts.Limiter, logger))
	}

	return middleware.Chain(mux, chain...)
}

// Run слушает адрес до отмены ctx, затем корректно останавливает сервер
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.httpServer.Addr, err)
	}

	return s.Serve(ctx, ln)
}

// Serve обслуживает запросы на ln до отмены ctx
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server listening", "addr", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		grace := s.shutdownGrace
		if grace <= 0 {
			grace = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), grace)
		defer cancel()

		s.logger.Info("shutting down server", "grace", grace)
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
