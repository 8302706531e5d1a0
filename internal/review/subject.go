// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

// Package review contains ratings, reviews, and the editorial task
// workflow.
package review

import (
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// SubjectKind identifies what a rating, review, or task refers to.
type SubjectKind string

// Subject kinds.
const (
	SubjectWork   SubjectKind = "work"
	SubjectAuthor SubjectKind = "author"
)

// Subject is the rated, reviewed, or moderated entity: exactly one work
// or one author. The exclusivity is enforced by construction; storage
// persists it as two nullable columns of which exactly one is set.
type Subject struct {
	kind SubjectKind
	id   ulid.ULID
}

// WorkSubject creates a Subject referring to a work.
func WorkSubject(workID ulid.ULID) Subject {
	return Subject{kind: SubjectWork, id: workID}
}

// AuthorSubject creates a Subject referring to an author.
func AuthorSubject(authorID ulid.ULID) Subject {
	return Subject{kind: SubjectAuthor, id: authorID}
}

// SubjectFromColumns reconstructs a Subject from the nullable work/author
// column pair. Exactly one of the two must be non-nil.
func SubjectFromColumns(workID, authorID *ulid.ULID) (Subject, error) {
	switch {
	case workID != nil && authorID == nil:
		return WorkSubject(*workID), nil
	case workID == nil && authorID != nil:
		return AuthorSubject(*authorID), nil
	default:
		return Subject{}, oops.Code("SUBJECT_AMBIGUOUS").
			Errorf("exactly one of work id and author id must be set")
	}
}

// Kind returns the subject kind.
func (s Subject) Kind() SubjectKind {
	return s.kind
}

// ID returns the referenced entity's ID.
func (s Subject) ID() ulid.ULID {
	return s.id
}

// IsZero reports whether the subject is uninitialized.
func (s Subject) IsZero() bool {
	return s.kind == ""
}

// Columns splits the subject back into the nullable work/author column
// pair for persistence.
func (s Subject) Columns() (workID, authorID *ulid.ULID) {
	id := s.id
	switch s.kind {
	case SubjectWork:
		return &id, nil
	case SubjectAuthor:
		return nil, &id
	}
	return nil, nil
}
