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

// GenreRepository implements catalog.GenreRepository using PostgreSQL.
type GenreRepository struct {
	db store.DB
}

// NewGenreRepository creates a new GenreRepository.
func NewGenreRepository(db store.DB) *GenreRepository {
	return &GenreRepository{db: db}
}

// Create stores a new genre. Genre names are unique case-insensitively;
// a duplicate surfaces as a constraint violation.
func (r *GenreRepository) Create(ctx context.Context, genre *catalog.Genre) error {
	q := store.From(ctx, r.db)
	_, err := q.Exec(ctx, `
		INSERT INTO genres (id, name, description, parent_id)
		VALUES ($1, $2, $3, $4)
	`,
		genre.ID.String(),
		genre.Name,
		genre.Description,
		ulidPtrString(genre.ParentID),
	)
	if err != nil {
		if kind, name, ok := store.Constraint(err); ok {
			return oops.Code("GENRE_CONSTRAINT_VIOLATION").
				With("constraint", name).
				With("kind", string(kind)).
				Wrap(err)
		}
		return oops.Code("GENRE_CREATE_FAILED").
			With("operation", "insert genre").
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a genre by ID.
func (r *GenreRepository) GetByID(ctx context.Context, id ulid.ULID) (*catalog.Genre, error) {
	q := store.From(ctx, r.db)
	row := q.QueryRow(ctx, `
		SELECT id, name, description, parent_id
		FROM genres
		WHERE id = $1
	`, id.String())

	genre, err := scanGenre(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("GENRE_NOT_FOUND").
			With("id", id.String()).
			Wrap(catalog.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("GENRE_GET_FAILED").
			With("operation", "get genre by id").
			With("id", id.String()).
			Wrap(err)
	}
	return genre, nil
}

// List returns all genres ordered by name.
func (r *GenreRepository) List(ctx context.Context) ([]catalog.Genre, error) {
	q := store.From(ctx, r.db)
	rows, err := q.Query(ctx, `
		SELECT id, name, description, parent_id
		FROM genres
		ORDER BY name
	`)
	if err != nil {
		return nil, oops.Code("GENRE_LIST_FAILED").
			With("operation", "query genres").
			Wrap(err)
	}
	defer rows.Close()

	var genres []catalog.Genre
	for rows.Next() {
		genre, scanErr := scanGenre(rows)
		if scanErr != nil {
			return nil, oops.Code("GENRE_LIST_FAILED").
				With("operation", "scan genre row").
				Wrap(scanErr)
		}
		genres = append(genres, *genre)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("GENRE_LIST_FAILED").
			With("operation", "iterate genres").
			Wrap(err)
	}
	return genres, nil
}

// Update replaces the mutable fields of an existing genre.
func (r *GenreRepository) Update(ctx context.Context, genre *catalog.Genre) error {
	q := store.From(ctx, r.db)
	result, err := q.Exec(ctx, `
		UPDATE genres SET name = $2, description = $3, parent_id = $4
		WHERE id = $1
	`,
		genre.ID.String(),
		genre.Name,
		genre.Description,
		ulidPtrString(genre.ParentID),
	)
	if err != nil {
		return oops.Code("GENRE_UPDATE_FAILED").
			With("operation", "update genre").
			With("id", genre.ID.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("GENRE_NOT_FOUND").
			With("id", genre.ID.String()).
			Wrap(catalog.ErrNotFound)
	}
	return nil
}

// Delete removes a genre. Works still referencing it block the delete
// with a foreign key violation.
func (r *GenreRepository) Delete(ctx context.Context, id ulid.ULID) error {
	q := store.From(ctx, r.db)
	result, err := q.Exec(ctx, `
		DELETE FROM genres WHERE id = $1
	`, id.String())
	if err != nil {
		if kind, name, ok := store.Constraint(err); ok {
			return oops.Code("GENRE_CONSTRAINT_VIOLATION").
				With("constraint", name).
				With("kind", string(kind)).
				Wrap(err)
		}
		return oops.Code("GENRE_DELETE_FAILED").
			With("operation", "delete genre").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("GENRE_NOT_FOUND").
			With("id", id.String()).
			Wrap(catalog.ErrNotFound)
	}
	return nil
}

func scanGenre(row pgx.Row) (*catalog.Genre, error) {
	var (
		idStr       string
		name        string
		description string
		parentIDStr *string
	)
	if err := row.Scan(&idStr, &name, &description, &parentIDStr); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("GENRE_SCAN_FAILED").Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("GENRE_INVALID_ID").With("id", idStr).Wrap(err)
	}
	parentID, err := parseULIDPtr(parentIDStr)
	if err != nil {
		return nil, err
	}
	return &catalog.Genre{ID: id, Name: name, Description: description, ParentID: parentID}, nil
}

// Compile-time interface check.
var _ catalog.GenreRepository = (*GenreRepository)(nil)
