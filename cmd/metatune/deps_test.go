// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

package main

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// mockDatabase implements Database for testing. Query methods are never
// reached by the serve wiring tests; only Ping and Close matter.
type mockDatabase struct {
	pingFunc  func(ctx context.Context) error
	closeFunc func()
}

func (m *mockDatabase) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *mockDatabase) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *mockDatabase) QueryRow(context.Context, string, ...any) pgx.Row {
	return nil
}

func (m *mockDatabase) Begin(context.Context) (pgx.Tx, error) {
	return nil, nil
}

func (m *mockDatabase) Ping(ctx context.Context) error {
	if m.pingFunc != nil {
		return m.pingFunc(ctx)
	}
	return nil
}

func (m *mockDatabase) Close() {
	if m.closeFunc != nil {
		m.closeFunc()
	}
}

// mockSchemaMigrator implements SchemaMigrator for testing.
type mockSchemaMigrator struct {
	upFunc    func() error
	closeFunc func() error
}

func (m *mockSchemaMigrator) Up() error {
	if m.upFunc != nil {
		return m.upFunc()
	}
	return nil
}

func (m *mockSchemaMigrator) Close() error {
	if m.closeFunc != nil {
		return m.closeFunc()
	}
	return nil
}

// mockObservabilityServer implements ObservabilityServer for testing.
type mockObservabilityServer struct {
	startFunc    func() (<-chan error, error)
	shutdownFunc func(ctx context.Context) error
	addrFunc     func() string
}

func (m *mockObservabilityServer) Start() (<-chan error, error) {
	if m.startFunc != nil {
		return m.startFunc()
	}
	ch := make(chan error, 1)
	return ch, nil
}

func (m *mockObservabilityServer) Shutdown(ctx context.Context) error {
	if m.shutdownFunc != nil {
		return m.shutdownFunc(ctx)
	}
	return nil
}

func (m *mockObservabilityServer) Addr() string {
	if m.addrFunc != nil {
		return m.addrFunc()
	}
	return "127.0.0.1:0"
}

// mockMailer implements auth.Mailer for testing.
type mockMailer struct {
	sendFunc func(ctx context.Context, email, code string) error
}

func (m *mockMailer) SendVerification(ctx context.Context, email, code string) error {
	if m.sendFunc != nil {
		return m.sendFunc(ctx, email, code)
	}
	return nil
}
