// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/metatune/metatune/internal/catalog"
	"github.com/metatune/metatune/internal/store"
)

// AuthorRepository implements catalog.AuthorRepository using PostgreSQL.
type AuthorRepository struct {
	db store.DB
}

// NewAuthorRepository creates a new AuthorRepository.
func NewAuthorRepository(db store.DB) *AuthorRepository {
	return &AuthorRepository{db: db}
}

// Create stores a new author.
func (r *AuthorRepository) Create(ctx context.Context, author *catalog.Author) error {
	q := store.From(ctx, r.db)
	_, err := q.Exec(ctx, `
		INSERT INTO authors (id, name, biography, person_id)
		VALUES ($1, $2, $3, $4)
	`,
		author.ID.String(),
		author.Name,
		author.Biography,
		ulidPtrString(author.PersonID),
	)
	if err != nil {
		if kind, name, ok := store.Constraint(err); ok {
			return oops.Code("AUTHOR_CONSTRAINT_VIOLATION").
				With("constraint", name).
				With("kind", string(kind)).
				Wrap(err)
		}
		return oops.Code("AUTHOR_CREATE_FAILED").
			With("operation", "insert author").
			Wrap(err)
	}
	return nil
}

// GetByID retrieves an author by ID.
func (r *AuthorRepository) GetByID(ctx context.Context, id ulid.ULID) (*catalog.Author, error) {
	q := store.From(ctx, r.db)
	row := q.QueryRow(ctx, `
		SELECT id, name, biography, person_id
		FROM authors
		WHERE id = $1
	`, id.String())

	author, err := scanAuthor(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("AUTHOR_NOT_FOUND").
			With("id", id.String()).
			Wrap(catalog.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("AUTHOR_GET_FAILED").
			With("operation", "get author by id").
			With("id", id.String()).
			Wrap(err)
	}
	return author, nil
}

// List returns all authors ordered by ID.
func (r *AuthorRepository) List(ctx context.Context) ([]catalog.Author, error) {
	q := store.From(ctx, r.db)
	rows, err := q.Query(ctx, `
		SELECT id, name, biography, person_id
		FROM authors
		ORDER BY id
	`)
	if err != nil {
		return nil, oops.Code("AUTHOR_LIST_FAILED").
			With("operation", "query authors").
			Wrap(err)
	}
	defer rows.Close()

	var authors []catalog.Author
	for rows.Next() {
		author, scanErr := scanAuthor(rows)
		if scanErr != nil {
			return nil, oops.Code("AUTHOR_LIST_FAILED").
				With("operation", "scan author row").
				Wrap(scanErr)
		}
		authors = append(authors, *author)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("AUTHOR_LIST_FAILED").
			With("operation", "iterate authors").
			Wrap(err)
	}
	return authors, nil
}

// Update replaces the mutable fields of an existing author.
func (r *AuthorRepository) Update(ctx context.Context, author *catalog.Author) error {
	q := store.From(ctx, r.db)
	result, err := q.Exec(ctx, `
		UPDATE authors SET name = $2, biography = $3, person_id = $4
		WHERE id = $1
	`,
		author.ID.String(),
		author.Name,
		author.Biography,
		ulidPtrString(author.PersonID),
	)
	if err != nil {
		return oops.Code("AUTHOR_UPDATE_FAILED").
			With("operation", "update author").
			With("id", author.ID.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("AUTHOR_NOT_FOUND").
			With("id", author.ID.String()).
			Wrap(catalog.ErrNotFound)
	}
	return nil
}

// Delete removes an author. Performing credits and memberships cascade.
func (r *AuthorRepository) Delete(ctx context.Context, id ulid.ULID) error {
	q := store.From(ctx, r.db)
	result, err := q.Exec(ctx, `
		DELETE FROM authors WHERE id = $1
	`, id.String())
	if err != nil {
		return oops.Code("AUTHOR_DELETE_FAILED").
			With("operation", "delete author").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("AUTHOR_NOT_FOUND").
			With("id", id.String()).
			Wrap(catalog.ErrNotFound)
	}
	return nil
}

func scanAuthor(row pgx.Row) (*catalog.Author, error) {
	var (
		idStr       string
		name        *string
		biography   *string
		personIDStr *string
	)
	if err := row.Scan(&idStr, &name, &biography, &personIDStr); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("AUTHOR_SCAN_FAILED").Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("AUTHOR_INVALID_ID").With("id", idStr).Wrap(err)
	}
	personID, err := parseULIDPtr(personIDStr)
	if err != nil {
		return nil, err
	}
	return &catalog.Author{ID: id, Name: name, Biography: biography, PersonID: personID}, nil
}

// Compile-time interface check.
var _ catalog.AuthorRepository = (*AuthorRepository)(nil)
