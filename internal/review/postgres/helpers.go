// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

// Package postgres implements the review repositories using PostgreSQL.
// Subjects are persisted as a nullable work_id/author_id column pair with
// a CHECK constraint guaranteeing exactly one is set.
package postgres

import (
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/metatune/metatune/internal/review"
)

// subjectColumns splits a subject into its nullable column string pair.
func subjectColumns(s review.Subject) (workID, authorID *string) {
	wid, aid := s.Columns()
	if wid != nil {
		v := wid.String()
		workID = &v
	}
	if aid != nil {
		v := aid.String()
		authorID = &v
	}
	return workID, authorID
}

// subjectFromStrings reconstructs a subject from scanned column values.
func subjectFromStrings(workIDStr, authorIDStr *string) (review.Subject, error) {
	var workID, authorID *ulid.ULID
	if workIDStr != nil {
		id, err := ulid.Parse(*workIDStr)
		if err != nil {
			return review.Subject{}, oops.Code("SUBJECT_INVALID_ID").With("work_id", *workIDStr).Wrap(err)
		}
		workID = &id
	}
	if authorIDStr != nil {
		id, err := ulid.Parse(*authorIDStr)
		if err != nil {
			return review.Subject{}, oops.Code("SUBJECT_INVALID_ID").With("author_id", *authorIDStr).Wrap(err)
		}
		authorID = &id
	}
	return review.SubjectFromColumns(workID, authorID)
}

// subjectFilter returns the WHERE fragment and argument for a subject,
// matching the column its kind maps to.
func subjectFilter(s review.Subject) (clause string, arg string) {
	if s.Kind() == review.SubjectAuthor {
		return "author_id = $1", s.ID().String()
	}
	return "work_id = $1", s.ID().String()
}
