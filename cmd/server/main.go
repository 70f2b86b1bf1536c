package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/postboard/internal/crypto"
	"github.com/iudanet/postboard/internal/server"
	"github.com/iudanet/postboard/internal/server/auth"
	"github.com/iudanet/postboard/internal/server/config"
	"github.com/iudanet/postboard/internal/server/jwt"
	"github.com/iudanet/postboard/internal/server/storage/postgres"
	"github.com/iudanet/postboard/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// store объединяет хранилище и его закрытие
type store interface {
	server.Store
	Close() error
}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(2)
	}

	// Show version and exit if requested
	if cfg.ShowVersion {
		printVersion()
		os.Exit(0)
	}

	logger := cfg.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("failed to close storage", slog.Any("error", err))
		}
	}()

	tokens := jwt.NewService([]byte(cfg.JWTSecret), cfg.TokenTTL)
	hasher := crypto.NewPasswordHasher(crypto.DefaultArgon2Params())
	authService := auth.NewService(logger, st, hasher, tokens)

	if !cfg.SecureCookie {
		logger.Warn("session cookie is sent without Secure, use only for local development")
	}

	srv := server.New(logger, authService, st, server.Options{
		Addr:            cfg.ListenAddr,
		Version:         Version,
		ShutdownTimeout: cfg.ShutdownTimeout,
		SecureCookie:    cfg.SecureCookie,
	})

	logger.Info("postboard server starting",
		slog.String("version", Version),
		slog.String("storage", cfg.StorageDriver),
		slog.Duration("token_ttl", cfg.TokenTTL))

	return srv.Run(ctx)
}

func openStore(ctx context.Context, cfg *config.Config) (store, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		st, err := postgres.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres storage: %w", err)
		}
		return st, nil
	default:
		st, err := sqlite.New(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite storage: %w", err)
		}
		return st, nil
	}
}

func printVersion() {
	fmt.Printf("Postboard Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
