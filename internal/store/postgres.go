// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

// Package store provides database bootstrap, schema migrations, and
// transaction plumbing shared by the repository packages.
package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
)

// Connection retry policy for startup. The database may still be coming up
// when the process starts, so the first connection is retried with backoff.
const (
	connectRetryBase = 500 * time.Millisecond
	connectRetryMax  = 6
)

// Open connects to PostgreSQL and verifies the connection with a ping.
// Transient connection failures during startup are retried with
// exponential backoff.
func Open(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, oops.Code("DB_CONFIG_INVALID").With("operation", "parse connection string").Wrap(err)
	}

	backoff := retry.WithMaxRetries(connectRetryMax, retry.NewExponential(connectRetryBase))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if pingErr := pool.Ping(ctx); pingErr != nil {
			return retry.RetryableError(pingErr)
		}
		return nil
	})
	if err != nil {
		pool.Close()
		return nil, oops.Code("DB_CONNECT_FAILED").With("operation", "ping database").Wrap(err)
	}

	return pool, nil
}

// Querier abstracts query execution over *pgxpool.Pool and pgx.Tx so that
// repository methods participate in an ambient transaction when one is
// present in the context.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
