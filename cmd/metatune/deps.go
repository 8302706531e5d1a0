// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

package main

import (
	"context"

	"github.com/metatune/metatune/internal/config"
	"github.com/metatune/metatune/internal/observability"
	"github.com/metatune/metatune/internal/store"
)

// ServeDeps contains injectable dependencies for the serve command.
// All fields with nil values will use their default implementations.
type ServeDeps struct {
	// ConfigLoader loads process configuration.
	// Default: config.Load
	ConfigLoader func(path string) (*config.Config, error)

	// DatabaseOpener connects to PostgreSQL.
	// Default: store.Open
	DatabaseOpener func(ctx context.Context, dsn string) (Database, error)

	// MigratorFactory creates a schema migrator.
	// Default: store.NewMigrator
	MigratorFactory func(databaseURL string) (SchemaMigrator, error)

	// ObservabilityServerFactory creates an observability server.
	// Default: observability.NewServer
	ObservabilityServerFactory func(addr string, readinessChecker observability.ReadinessChecker) ObservabilityServer
}

// Database wraps the pgxpool methods used by the serve command.
type Database interface {
	store.DB
	Ping(ctx context.Context) error
	Close()
}

// SchemaMigrator wraps the store.Migrator methods used by the serve command.
type SchemaMigrator interface {
	Up() error
	Close() error
}

// ObservabilityServer wraps the methods used from observability.Server.
type ObservabilityServer interface {
	Start() (<-chan error, error)
	Shutdown(ctx context.Context) error
	Addr() string
}
