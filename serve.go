// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielhkuo/click-experiment/cliparse"
	"github.com/danielhkuo/click-experiment/db"
	"github.com/danielhkuo/click-experiment/leaderboard"
	"github.com/danielhkuo/click-experiment/metrics"
	"github.com/danielhkuo/click-experiment/router"
)

const shutdownTimeout = 10 * time.Second

func runServe(ctx context.Context, cfg cliparse.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()
	slog.Info("Store ready", "type", cfg.DatabaseType, "url", cfg.DatabaseURL)

	m := metrics.New()
	svc := leaderboard.NewService(store, leaderboard.WithMetrics(m))
	svc.Load(ctx)

	// Create server
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.NewRouter(svc, m, cfg),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Listening", "addr", server.Addr, "profile", cfg.Profile)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("Server closed")
	return nil
}
