package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/shivthakur007/expense/internal/auth"
	"github.com/shivthakur007/expense/internal/backend"
	"github.com/shivthakur007/expense/internal/config"
	apphttp "github.com/shivthakur007/expense/internal/http"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	// Local development convenience; missing .env is fine.
	if err := godotenv.Load(); err == nil {
		logger.Info("Loaded environment from .env file")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return err
	}
	result, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		return err
	}
	defer func() {
		if result.Cleanup != nil {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup error", "error", err)
			}
		}
	}()

	var (
		identity *auth.Service
		tokens   *auth.TokenManager
		flow     *auth.OAuthFlow
	)
	if cfg.AuthEnabled() {
		identity = auth.NewService(cfg.IdentityAPIKey, cfg.IdentityBaseURL)
		tokens = auth.NewTokenManager(cfg.SessionSecret, cfg.SessionTTL)
		if cfg.OAuthEnabled() {
			flow = auth.NewOAuthFlow(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, identity)
		}
	} else {
		logger.Info("Authentication disabled, running single-user mode")
	}

	srv := apphttp.NewServer(":"+cfg.Port, result.Store, identity, flow, tokens)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting expense server",
			"port", cfg.Port,
			"backend", cfg.DataBackend,
			"auth_enabled", cfg.AuthEnabled())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Server stopped gracefully")
	return nil
}
