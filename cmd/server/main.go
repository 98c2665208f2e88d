package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"credo-consent/internal/platform/config"
	"credo-consent/internal/platform/httpserver"
	"credo-consent/internal/platform/logger"
)

const shutdownTimeout = 15 * time.Second

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg, err := config.FromEnv()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("consent service stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("consent service stopped")
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	if cfg.UsesDefaultSigningKey() {
		log.Warn("using the development session signing key; set SESSION_SIGNING_KEY in production")
	}

	app, err := build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.close()

	if cfg.SeedDemoClient {
		if err := app.seedDemo(ctx); err != nil {
			return fmt.Errorf("seed demo client: %w", err)
		}
	}

	srv := httpserver.New(cfg.Addr, app.router())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting consent service", "addr", cfg.Addr, "storage", app.storage)
		return httpserver.Run(gctx, srv, shutdownTimeout)
	})
	if app.relay != nil {
		g.Go(func() error {
			return app.relay.Run(gctx)
		})
	}
	return g.Wait()
}
