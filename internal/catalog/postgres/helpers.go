// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

// Package postgres implements the catalog repositories using PostgreSQL.
package postgres

import (
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// ulidPtrString converts an optional ULID to its optional string form for
// binding nullable columns.
func ulidPtrString(id *ulid.ULID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

// parseULIDPtr parses an optional ULID column value.
func parseULIDPtr(s *string) (*ulid.ULID, error) {
	if s == nil {
		return nil, nil
	}
	id, err := ulid.Parse(*s)
	if err != nil {
		return nil, oops.Code("CATALOG_INVALID_ID").With("id", *s).Wrap(err)
	}
	return &id, nil
}
