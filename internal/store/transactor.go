// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"
)

type txKey struct{}

// DB is the connection handle repositories are built on: query execution
// plus the ability to begin transactions. *pgxpool.Pool satisfies it, as
// do the pgxmock pool mocks used in tests.
type DB interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Transactor runs functions inside a database transaction. The active
// pgx.Tx is stored in context so that repository methods called from fn
// participate in the same transaction via From.
type Transactor struct {
	db DB
}

// NewTransactor creates a Transactor backed by the given connection handle.
func NewTransactor(db DB) *Transactor {
	return &Transactor{db: db}
}

// InTransaction begins a transaction, stores it in context, and calls fn.
// If fn returns nil, the transaction is committed. Otherwise it is rolled
// back. When ctx already carries a transaction, fn joins it instead of
// opening a nested one.
func (t *Transactor) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return RunInTx(ctx, t.db, fn)
}

// RunInTx runs fn inside a transaction on db, reusing the ambient
// transaction from ctx when one is present. This lets repository methods
// be atomic on their own while still composing under a service-level
// transaction without nesting.
func RunInTx(ctx context.Context, db DB, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(Querier); ok {
		return fn(ctx)
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return oops.Code("TX_BEGIN_FAILED").Wrap(err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	txCtx := context.WithValue(ctx, txKey{}, tx)
	if err := fn(txCtx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return oops.Code("TX_COMMIT_FAILED").Wrap(err)
	}
	return nil
}

// From returns the transaction stored in ctx, or fallback when no
// transaction is active.
func From(ctx context.Context, fallback Querier) Querier {
	if tx, ok := ctx.Value(txKey{}).(Querier); ok {
		return tx
	}
	return fallback
}
