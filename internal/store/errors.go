// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ConstraintKind classifies a PostgreSQL constraint violation.
type ConstraintKind string

// Constraint kinds.
const (
	ConstraintUnique     ConstraintKind = "unique"
	ConstraintForeignKey ConstraintKind = "foreign_key"
	ConstraintCheck      ConstraintKind = "check"
)

// Constraint inspects err for a PostgreSQL integrity constraint violation
// and returns its kind and the constraint name. ok is false for any other
// error, including nil.
func Constraint(err error) (kind ConstraintKind, name string, ok bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", "", false
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return ConstraintUnique, pgErr.ConstraintName, true
	case pgerrcode.ForeignKeyViolation:
		return ConstraintForeignKey, pgErr.ConstraintName, true
	case pgerrcode.CheckViolation:
		return ConstraintCheck, pgErr.ConstraintName, true
	}
	return "", "", false
}
