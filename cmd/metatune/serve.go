// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/metatune/metatune/internal/config"
	"github.com/metatune/metatune/internal/logging"
	"github.com/metatune/metatune/internal/observability"
	"github.com/metatune/metatune/internal/store"
)

// serveConfig holds configuration for the serve command.
type serveConfig struct {
	autoMigrate bool
}

// newServeCmd creates the serve subcommand.
func newServeCmd() *cobra.Command {
	cfg := &serveConfig{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MetaTune service",
		Long: `Start the MetaTune service: connect to PostgreSQL, apply schema
migrations, and serve observability endpoints. Catalog and account
operations run through the account, task, and review verbs.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServeWithDeps(cmd.Context(), cfg, cmd, nil)
		},
	}

	cmd.Flags().BoolVar(&cfg.autoMigrate, "auto-migrate", true, "apply pending schema migrations on startup")

	return cmd
}

// runServeWithDeps starts the service with injectable dependencies.
// If deps is nil, default implementations are used.
func runServeWithDeps(ctx context.Context, cfg *serveConfig, cmd *cobra.Command, deps *ServeDeps) error {
	if deps == nil {
		deps = &ServeDeps{}
	}
	if deps.ConfigLoader == nil {
		deps.ConfigLoader = config.Load
	}
	if deps.DatabaseOpener == nil {
		deps.DatabaseOpener = func(ctx context.Context, dsn string) (Database, error) {
			return store.Open(ctx, dsn)
		}
	}
	if deps.MigratorFactory == nil {
		deps.MigratorFactory = func(databaseURL string) (SchemaMigrator, error) {
			return store.NewMigrator(databaseURL)
		}
	}
	if deps.ObservabilityServerFactory == nil {
		deps.ObservabilityServerFactory = func(addr string, readinessChecker observability.ReadinessChecker) ObservabilityServer {
			return observability.NewServer(addr, readinessChecker)
		}
	}

	conf, err := deps.ConfigLoader(resolveConfigPath())
	if err != nil {
		return err
	}

	logger := logging.Setup("metatune", version, conf.LogFormat, nil)
	slog.SetDefault(logger)

	slog.Info("starting metatune", "log_format", conf.LogFormat)

	db, err := deps.DatabaseOpener(ctx, conf.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	slog.Info("connected to database")

	if cfg.autoMigrate {
		migrator, err := deps.MigratorFactory(conf.DatabaseURL)
		if err != nil {
			return err
		}
		if err := migrator.Up(); err != nil {
			_ = migrator.Close()
			return err
		}
		if err := migrator.Close(); err != nil {
			slog.Warn("error closing migrator", "error", err)
		}
		slog.Info("schema migrations applied")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var obsServer ObservabilityServer
	if conf.MetricsAddr != "" {
		obsServer = deps.ObservabilityServerFactory(conf.MetricsAddr, func() bool {
			pingCtx, pingCancel := context.WithTimeout(ctx, 2*time.Second)
			defer pingCancel()
			return db.Ping(pingCtx) == nil
		})
		obsErrChan, err := obsServer.Start()
		if err != nil {
			return err
		}
		go monitorServerErrors(ctx, cancel, obsErrChan, "observability")
		slog.Info("observability server started", "addr", obsServer.Addr())
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	cmd.Println("MetaTune service started")
	slog.Info("metatune ready")

	select {
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig)
	case <-ctx.Done():
		slog.Info("context cancelled, shutting down")
	}

	slog.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if obsServer != nil {
		if err := obsServer.Shutdown(shutdownCtx); err != nil {
			slog.Warn("error stopping observability server", "error", err)
		}
	}

	slog.Info("shutdown complete")
	return nil
}

// monitorServerErrors cancels the context when a server reports an error,
// triggering graceful shutdown of the whole process. It exits when an
// error is received, the channel is closed, or the context is cancelled.
func monitorServerErrors(ctx context.Context, cancel context.CancelFunc, errCh <-chan error, serverName string) {
	select {
	case err, ok := <-errCh:
		if !ok {
			return
		}
		if err != nil {
			slog.Error("server error, triggering shutdown",
				"server", serverName,
				"error", err,
			)
			cancel()
		}
	case <-ctx.Done():
	}
}
