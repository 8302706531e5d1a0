// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/metatune/metatune/internal/catalog"
	"github.com/metatune/metatune/internal/store"
)

// WorkRepository implements catalog.WorkRepository using PostgreSQL.
// Performing credits live in the performs table; Create and Update keep
// the works row and the credit set consistent inside one transaction.
type WorkRepository struct {
	db store.DB
}

// NewWorkRepository creates a new WorkRepository.
func NewWorkRepository(db store.DB) *WorkRepository {
	return &WorkRepository{db: db}
}

// Create stores a new work and its performing credits.
func (r *WorkRepository) Create(ctx context.Context, work *catalog.Work) error {
	return store.RunInTx(ctx, r.db, func(ctx context.Context) error {
		q := store.From(ctx, r.db)
		_, err := q.Exec(ctx, `
			INSERT INTO works (id, name, publish_date, kind, description, source_text, album_id, genre_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`,
			work.ID.String(),
			work.Name,
			work.PublishDate,
			work.Kind.String(),
			work.Description,
			work.SourceText,
			ulidPtrString(work.AlbumID),
			work.GenreID.String(),
		)
		if err != nil {
			if kind, name, ok := store.Constraint(err); ok {
				return oops.Code("WORK_CONSTRAINT_VIOLATION").
					With("constraint", name).
					With("kind", string(kind)).
					Wrap(err)
			}
			return oops.Code("WORK_CREATE_FAILED").
				With("operation", "insert work").
				Wrap(err)
		}
		return insertPerforms(ctx, q, work.ID, work.Authors)
	})
}

// GetByID retrieves a work with its ordered authors.
func (r *WorkRepository) GetByID(ctx context.Context, id ulid.ULID) (*catalog.Work, error) {
	q := store.From(ctx, r.db)
	row := q.QueryRow(ctx, `
		SELECT id, name, publish_date, kind, description, source_text, album_id, genre_id
		FROM works
		WHERE id = $1
	`, id.String())

	work, err := scanWork(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("WORK_NOT_FOUND").
			With("id", id.String()).
			Wrap(catalog.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("WORK_GET_FAILED").
			With("operation", "get work by id").
			With("id", id.String()).
			Wrap(err)
	}

	authors, err := r.authorsOf(ctx, q, id)
	if err != nil {
		return nil, err
	}
	work.Authors = authors
	return work, nil
}

// List returns all works ordered by name. Authors are not loaded.
func (r *WorkRepository) List(ctx context.Context) ([]catalog.Work, error) {
	return r.list(ctx, `
		SELECT id, name, publish_date, kind, description, source_text, album_id, genre_id
		FROM works
		ORDER BY name
	`)
}

// ListByAlbum returns the songs referencing the given album.
func (r *WorkRepository) ListByAlbum(ctx context.Context, albumID ulid.ULID) ([]catalog.Work, error) {
	return r.list(ctx, `
		SELECT id, name, publish_date, kind, description, source_text, album_id, genre_id
		FROM works
		WHERE album_id = $1
		ORDER BY name
	`, albumID.String())
}

// ListByGenre returns the works owned by the given genre.
func (r *WorkRepository) ListByGenre(ctx context.Context, genreID ulid.ULID) ([]catalog.Work, error) {
	return r.list(ctx, `
		SELECT id, name, publish_date, kind, description, source_text, album_id, genre_id
		FROM works
		WHERE genre_id = $1
		ORDER BY name
	`, genreID.String())
}

// Update replaces all mutable fields and the performing credit set.
func (r *WorkRepository) Update(ctx context.Context, work *catalog.Work) error {
	return store.RunInTx(ctx, r.db, func(ctx context.Context) error {
		q := store.From(ctx, r.db)
		result, err := q.Exec(ctx, `
			UPDATE works SET
				name = $2,
				publish_date = $3,
				kind = $4,
				description = $5,
				source_text = $6,
				album_id = $7,
				genre_id = $8
			WHERE id = $1
		`,
			work.ID.String(),
			work.Name,
			work.PublishDate,
			work.Kind.String(),
			work.Description,
			work.SourceText,
			ulidPtrString(work.AlbumID),
			work.GenreID.String(),
		)
		if err != nil {
			return oops.Code("WORK_UPDATE_FAILED").
				With("operation", "update work").
				With("id", work.ID.String()).
				Wrap(err)
		}
		if result.RowsAffected() == 0 {
			return oops.Code("WORK_NOT_FOUND").
				With("id", work.ID.String()).
				Wrap(catalog.ErrNotFound)
		}

		if _, err := q.Exec(ctx, `
			DELETE FROM performs WHERE work_id = $1
		`, work.ID.String()); err != nil {
			return oops.Code("WORK_UPDATE_FAILED").
				With("operation", "delete performs").
				With("id", work.ID.String()).
				Wrap(err)
		}
		return insertPerforms(ctx, q, work.ID, work.Authors)
	})
}

// Delete removes a work. Performing credits cascade at the schema level.
func (r *WorkRepository) Delete(ctx context.Context, id ulid.ULID) error {
	q := store.From(ctx, r.db)
	result, err := q.Exec(ctx, `
		DELETE FROM works WHERE id = $1
	`, id.String())
	if err != nil {
		if kind, name, ok := store.Constraint(err); ok {
			return oops.Code("WORK_CONSTRAINT_VIOLATION").
				With("constraint", name).
				With("kind", string(kind)).
				Wrap(err)
		}
		return oops.Code("WORK_DELETE_FAILED").
			With("operation", "delete work").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("WORK_NOT_FOUND").
			With("id", id.String()).
			Wrap(catalog.ErrNotFound)
	}
	return nil
}

func (r *WorkRepository) list(ctx context.Context, sql string, args ...any) ([]catalog.Work, error) {
	q := store.From(ctx, r.db)
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, oops.Code("WORK_LIST_FAILED").
			With("operation", "query works").
			Wrap(err)
	}
	defer rows.Close()

	var works []catalog.Work
	for rows.Next() {
		work, scanErr := scanWork(rows)
		if scanErr != nil {
			return nil, oops.Code("WORK_LIST_FAILED").
				With("operation", "scan work row").
				Wrap(scanErr)
		}
		works = append(works, *work)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("WORK_LIST_FAILED").
			With("operation", "iterate works").
			Wrap(err)
	}
	return works, nil
}

func (r *WorkRepository) authorsOf(ctx context.Context, q store.Querier, workID ulid.ULID) ([]catalog.Author, error) {
	rows, err := q.Query(ctx, `
		SELECT a.id, a.name, a.biography, a.person_id
		FROM authors a
		JOIN performs p ON p.author_id = a.id
		WHERE p.work_id = $1
		ORDER BY p.position
	`, workID.String())
	if err != nil {
		return nil, oops.Code("WORK_GET_FAILED").
			With("operation", "query work authors").
			With("id", workID.String()).
			Wrap(err)
	}
	defer rows.Close()

	var authors []catalog.Author
	for rows.Next() {
		author, scanErr := scanAuthor(rows)
		if scanErr != nil {
			return nil, oops.Code("WORK_GET_FAILED").
				With("operation", "scan work author").
				Wrap(scanErr)
		}
		authors = append(authors, *author)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("WORK_GET_FAILED").
			With("operation", "iterate work authors").
			Wrap(err)
	}
	return authors, nil
}

func insertPerforms(ctx context.Context, q store.Querier, workID ulid.ULID, authors []catalog.Author) error {
	for i, author := range authors {
		if _, err := q.Exec(ctx, `
			INSERT INTO performs (work_id, author_id, position) VALUES ($1, $2, $3)
		`, workID.String(), author.ID.String(), i); err != nil {
			return oops.Code("WORK_PERFORMS_FAILED").
				With("operation", "insert performing credit").
				With("work_id", workID.String()).
				With("author_id", author.ID.String()).
				Wrap(err)
		}
	}
	return nil
}

func scanWork(row pgx.Row) (*catalog.Work, error) {
	var (
		idStr       string
		name        string
		publishDate time.Time
		kind        string
		description *string
		sourceText  *string
		albumIDStr  *string
		genreIDStr  string
	)
	err := row.Scan(&idStr, &name, &publishDate, &kind, &description, &sourceText, &albumIDStr, &genreIDStr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("WORK_SCAN_FAILED").Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("WORK_INVALID_ID").With("id", idStr).Wrap(err)
	}
	genreID, err := ulid.Parse(genreIDStr)
	if err != nil {
		return nil, oops.Code("WORK_INVALID_GENRE_ID").With("genre_id", genreIDStr).Wrap(err)
	}
	albumID, err := parseULIDPtr(albumIDStr)
	if err != nil {
		return nil, err
	}

	return &catalog.Work{
		ID:          id,
		Name:        name,
		PublishDate: publishDate,
		Kind:        catalog.WorkKind(kind),
		Description: description,
		SourceText:  sourceText,
		AlbumID:     albumID,
		GenreID:     genreID,
	}, nil
}

// Compile-time interface check.
var _ catalog.WorkRepository = (*WorkRepository)(nil)
