// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

package review

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Rating value bounds.
const (
	MinRatingValue = 1.0
	MaxRatingValue = 10.0
)

// Rating is a numeric score a user gives to a work or author.
type Rating struct {
	ID        ulid.ULID
	Value     float64
	CreatedAt time.Time
	UserID    ulid.ULID
	Subject   Subject
}

// NewRating creates a validated Rating.
func NewRating(id ulid.ULID, value float64, userID ulid.ULID, subject Subject) (*Rating, error) {
	if value < MinRatingValue || value > MaxRatingValue {
		return nil, oops.Code("RATING_INVALID_VALUE").
			With("value", value).
			Errorf("rating must be between %.0f and %.0f", MinRatingValue, MaxRatingValue)
	}
	if subject.IsZero() {
		return nil, oops.Code("RATING_INVALID_SUBJECT").Errorf("subject is required")
	}
	return &Rating{
		ID:        id,
		Value:     value,
		CreatedAt: time.Now(),
		UserID:    userID,
		Subject:   subject,
	}, nil
}

// RatingRepository manages rating persistence.
type RatingRepository interface {
	Create(ctx context.Context, rating *Rating) error
	GetByID(ctx context.Context, id ulid.ULID) (*Rating, error)
	ListByUser(ctx context.Context, userID ulid.ULID) ([]Rating, error)
	ListBySubject(ctx context.Context, subject Subject) ([]Rating, error)
	Update(ctx context.Context, rating *Rating) error
	Delete(ctx context.Context, id ulid.ULID) error
}
