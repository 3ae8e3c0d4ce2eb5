package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/progresskeeper/internal/config"
	"github.com/iudanet/progresskeeper/internal/logger"
	"github.com/iudanet/progresskeeper/internal/server"
	"github.com/iudanet/progresskeeper/internal/server/handlers"
	"github.com/iudanet/progresskeeper/internal/server/middleware"
	"github.com/iudanet/progresskeeper/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Значения по умолчанию берутся из окружения, флаги их переопределяют
	cfg, err := config.LoadServer()
	if err != nil {
		return err
	}

	showVersion := flag.Bool("version", false, "Show version information")
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to SQLite database")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flag.DurationVar(&cfg.AccessTokenTTL, "token-ttl", cfg.AccessTokenTTL, "Access token lifetime")
	flag.IntVar(&cfg.RateLimit, "rate-limit", cfg.RateLimit, "Requests per rate window per client IP")
	flag.Parse()

	if *showVersion {
		printVersion()
		return nil
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("failed to close storage", "error", err)
		}
	}()

	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	defer limiter.Stop()

	srv := server.New(server.Options{
		Storage: store,
		DB:      store,
		Logger:  log,
		Limiter: limiter,
		Addr:    cfg.Addr,
		Version: Version,
		JWT: handlers.JWTConfig{
			Secret:         []byte(cfg.JWTSecret),
			AccessTokenTTL: cfg.AccessTokenTTL,
		},
		ShutdownGrace: cfg.ShutdownGrace,
	})

	log.Info("progresskeeper server starting", "version", Version, "db", cfg.DBPath)
	return srv.Run(ctx)
}

func printVersion() {
	fmt.Printf("ProgressKeeper Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
