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

	"github.com/metatune/metatune/internal/review"
	"github.com/metatune/metatune/internal/store"
)

// RatingRepository implements review.RatingRepository using PostgreSQL.
type RatingRepository struct {
	db store.DB
}

// NewRatingRepository creates a new RatingRepository.
func NewRatingRepository(db store.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Create stores a new rating.
func (r *RatingRepository) Create(ctx context.Context, rating *review.Rating) error {
	workID, authorID := subjectColumns(rating.Subject)
	q := store.From(ctx, r.db)
	_, err := q.Exec(ctx, `
		INSERT INTO ratings (id, value, created_at, user_id, work_id, author_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		rating.ID.String(),
		rating.Value,
		rating.CreatedAt,
		rating.UserID.String(),
		workID,
		authorID,
	)
	if err != nil {
		if kind, name, ok := store.Constraint(err); ok {
			return oops.Code("RATING_CONSTRAINT_VIOLATION").
				With("constraint", name).
				With("kind", string(kind)).
				Wrap(err)
		}
		return oops.Code("RATING_CREATE_FAILED").
			With("operation", "insert rating").
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a rating by ID.
func (r *RatingRepository) GetByID(ctx context.Context, id ulid.ULID) (*review.Rating, error) {
	q := store.From(ctx, r.db)
	row := q.QueryRow(ctx, `
		SELECT id, value, created_at, user_id, work_id, author_id
		FROM ratings
		WHERE id = $1
	`, id.String())

	rating, err := scanRating(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("RATING_NOT_FOUND").
			With("id", id.String()).
			Wrap(review.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("RATING_GET_FAILED").
			With("operation", "get rating by id").
			With("id", id.String()).
			Wrap(err)
	}
	return rating, nil
}

// ListByUser returns all ratings by a user, newest first.
func (r *RatingRepository) ListByUser(ctx context.Context, userID ulid.ULID) ([]review.Rating, error) {
	return r.list(ctx, `
		SELECT id, value, created_at, user_id, work_id, author_id
		FROM ratings
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID.String())
}

// ListBySubject returns all ratings of a work or author, newest first.
func (r *RatingRepository) ListBySubject(ctx context.Context, subject review.Subject) ([]review.Rating, error) {
	clause, arg := subjectFilter(subject)
	return r.list(ctx, `
		SELECT id, value, created_at, user_id, work_id, author_id
		FROM ratings
		WHERE `+clause+`
		ORDER BY created_at DESC
	`, arg)
}

// Update replaces the value of an existing rating.
func (r *RatingRepository) Update(ctx context.Context, rating *review.Rating) error {
	q := store.From(ctx, r.db)
	result, err := q.Exec(ctx, `
		UPDATE ratings SET value = $2 WHERE id = $1
	`, rating.ID.String(), rating.Value)
	if err != nil {
		return oops.Code("RATING_UPDATE_FAILED").
			With("operation", "update rating").
			With("id", rating.ID.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("RATING_NOT_FOUND").
			With("id", rating.ID.String()).
			Wrap(review.ErrNotFound)
	}
	return nil
}

// Delete removes a rating.
func (r *RatingRepository) Delete(ctx context.Context, id ulid.ULID) error {
	q := store.From(ctx, r.db)
	result, err := q.Exec(ctx, `
		DELETE FROM ratings WHERE id = $1
	`, id.String())
	if err != nil {
		return oops.Code("RATING_DELETE_FAILED").
			With("operation", "delete rating").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("RATING_NOT_FOUND").
			With("id", id.String()).
			Wrap(review.ErrNotFound)
	}
	return nil
}

func (r *RatingRepository) list(ctx context.Context, sql string, args ...any) ([]review.Rating, error) {
	q := store.From(ctx, r.db)
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, oops.Code("RATING_LIST_FAILED").
			With("operation", "query ratings").
			Wrap(err)
	}
	defer rows.Close()

	var ratings []review.Rating
	for rows.Next() {
		rating, scanErr := scanRating(rows)
		if scanErr != nil {
			return nil, oops.Code("RATING_LIST_FAILED").
				With("operation", "scan rating row").
				Wrap(scanErr)
		}
		ratings = append(ratings, *rating)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("RATING_LIST_FAILED").
			With("operation", "iterate ratings").
			Wrap(err)
	}
	return ratings, nil
}

func scanRating(row pgx.Row) (*review.Rating, error) {
	var (
		idStr       string
		value       float64
		createdAt   time.Time
		userIDStr   string
		workIDStr   *string
		authorIDStr *string
	)
	err := row.Scan(&idStr, &value, &createdAt, &userIDStr, &workIDStr, &authorIDStr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("RATING_SCAN_FAILED").Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("RATING_INVALID_ID").With("id", idStr).Wrap(err)
	}
	userID, err := ulid.Parse(userIDStr)
	if err != nil {
		return nil, oops.Code("RATING_INVALID_USER_ID").With("user_id", userIDStr).Wrap(err)
	}
	subject, err := subjectFromStrings(workIDStr, authorIDStr)
	if err != nil {
		return nil, err
	}

	return &review.Rating{
		ID:        id,
		Value:     value,
		CreatedAt: createdAt,
		UserID:    userID,
		Subject:   subject,
	}, nil
}

// Compile-time interface check.
var _ review.RatingRepository = (*RatingRepository)(nil)
