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

// ReviewRepository implements review.ReviewRepository using PostgreSQL.
type ReviewRepository struct {
	db store.DB
}

// NewReviewRepository creates a new ReviewRepository.
func NewReviewRepository(db store.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create stores a new review.
func (r *ReviewRepository) Create(ctx context.Context, rev *review.Review) error {
	workID, authorID := subjectColumns(rev.Subject)
	var editorID *string
	if rev.EditorID != nil {
		v := rev.EditorID.String()
		editorID = &v
	}

	q := store.From(ctx, r.db)
	_, err := q.Exec(ctx, `
		INSERT INTO reviews (id, content, created_at, editable, editor_id, user_id, work_id, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		rev.ID.String(),
		rev.Content,
		rev.CreatedAt,
		rev.Editable,
		editorID,
		rev.UserID.String(),
		workID,
		authorID,
	)
	if err != nil {
		if kind, name, ok := store.Constraint(err); ok {
			return oops.Code("REVIEW_CONSTRAINT_VIOLATION").
				With("constraint", name).
				With("kind", string(kind)).
				Wrap(err)
		}
		return oops.Code("REVIEW_CREATE_FAILED").
			With("operation", "insert review").
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a review by ID.
func (r *ReviewRepository) GetByID(ctx context.Context, id ulid.ULID) (*review.Review, error) {
	q := store.From(ctx, r.db)
	row := q.QueryRow(ctx, `
		SELECT id, content, created_at, editable, editor_id, user_id, work_id, author_id
		FROM reviews
		WHERE id = $1
	`, id.String())

	rev, err := scanReview(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("REVIEW_NOT_FOUND").
			With("id", id.String()).
			Wrap(review.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("REVIEW_GET_FAILED").
			With("operation", "get review by id").
			With("id", id.String()).
			Wrap(err)
	}
	return rev, nil
}

// ListByUser returns all reviews by a user, newest first.
func (r *ReviewRepository) ListByUser(ctx context.Context, userID ulid.ULID) ([]review.Review, error) {
	return r.list(ctx, `
		SELECT id, content, created_at, editable, editor_id, user_id, work_id, author_id
		FROM reviews
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID.String())
}

// ListBySubject returns all reviews of a work or author, newest first.
func (r *ReviewRepository) ListBySubject(ctx context.Context, subject review.Subject) ([]review.Review, error) {
	clause, arg := subjectFilter(subject)
	return r.list(ctx, `
		SELECT id, content, created_at, editable, editor_id, user_id, work_id, author_id
		FROM reviews
		WHERE `+clause+`
		ORDER BY created_at DESC
	`, arg)
}

// Update replaces the mutable fields of an existing review.
func (r *ReviewRepository) Update(ctx context.Context, rev *review.Review) error {
	var editorID *string
	if rev.EditorID != nil {
		v := rev.EditorID.String()
		editorID = &v
	}

	q := store.From(ctx, r.db)
	result, err := q.Exec(ctx, `
		UPDATE reviews SET content = $2, editable = $3, editor_id = $4
		WHERE id = $1
	`,
		rev.ID.String(),
		rev.Content,
		rev.Editable,
		editorID,
	)
	if err != nil {
		return oops.Code("REVIEW_UPDATE_FAILED").
			With("operation", "update review").
			With("id", rev.ID.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("REVIEW_NOT_FOUND").
			With("id", rev.ID.String()).
			Wrap(review.ErrNotFound)
	}
	return nil
}

// Delete removes a review.
func (r *ReviewRepository) Delete(ctx context.Context, id ulid.ULID) error {
	q := store.From(ctx, r.db)
	result, err := q.Exec(ctx, `
		DELETE FROM reviews WHERE id = $1
	`, id.String())
	if err != nil {
		return oops.Code("REVIEW_DELETE_FAILED").
			With("operation", "delete review").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("REVIEW_NOT_FOUND").
			With("id", id.String()).
			Wrap(review.ErrNotFound)
	}
	return nil
}

func (r *ReviewRepository) list(ctx context.Context, sql string, args ...any) ([]review.Review, error) {
	q := store.From(ctx, r.db)
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, oops.Code("REVIEW_LIST_FAILED").
			With("operation", "query reviews").
			Wrap(err)
	}
	defer rows.Close()

	var reviews []review.Review
	for rows.Next() {
		rev, scanErr := scanReview(rows)
		if scanErr != nil {
			return nil, oops.Code("REVIEW_LIST_FAILED").
				With("operation", "scan review row").
				Wrap(scanErr)
		}
		reviews = append(reviews, *rev)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("REVIEW_LIST_FAILED").
			With("operation", "iterate reviews").
			Wrap(err)
	}
	return reviews, nil
}

func scanReview(row pgx.Row) (*review.Review, error) {
	var (
		idStr       string
		content     string
		createdAt   time.Time
		editable    bool
		editorIDStr *string
		userIDStr   string
		workIDStr   *string
		authorIDStr *string
	)
	err := row.Scan(&idStr, &content, &createdAt, &editable, &editorIDStr, &userIDStr, &workIDStr, &authorIDStr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("REVIEW_SCAN_FAILED").Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("REVIEW_INVALID_ID").With("id", idStr).Wrap(err)
	}
	userID, err := ulid.Parse(userIDStr)
	if err != nil {
		return nil, oops.Code("REVIEW_INVALID_USER_ID").With("user_id", userIDStr).Wrap(err)
	}
	var editorID *ulid.ULID
	if editorIDStr != nil {
		parsed, err := ulid.Parse(*editorIDStr)
		if err != nil {
			return nil, oops.Code("REVIEW_INVALID_EDITOR_ID").With("editor_id", *editorIDStr).Wrap(err)
		}
		editorID = &parsed
	}
	subject, err := subjectFromStrings(workIDStr, authorIDStr)
	if err != nil {
		return nil, err
	}

	return &review.Review{
		ID:        id,
		Content:   content,
		CreatedAt: createdAt,
		Editable:  editable,
		EditorID:  editorID,
		UserID:    userID,
		Subject:   subject,
	}, nil
}

// Compile-time interface check.
var _ review.ReviewRepository = (*ReviewRepository)(nil)
