// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

package review

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/metatune/metatune/internal/validate"
)

// Review is a text review a user writes about a work or author. A non-nil
// EditorID marks the review as editor-approved; approval also freezes the
// text by clearing Editable.
type Review struct {
	ID        ulid.ULID
	Content   string
	CreatedAt time.Time
	Editable  bool
	EditorID  *ulid.ULID
	UserID    ulid.ULID
	Subject   Subject
}

// NewReview creates a validated Review, editable and unapproved.
func NewReview(id ulid.ULID, content string, userID ulid.ULID, subject Subject) (*Review, error) {
	if !validate.NonBlank(content) {
		return nil, oops.Code("REVIEW_INVALID_CONTENT").Errorf("content cannot be blank")
	}
	if subject.IsZero() {
		return nil, oops.Code("REVIEW_INVALID_SUBJECT").Errorf("subject is required")
	}
	return &Review{
		ID:        id,
		Content:   content,
		CreatedAt: time.Now(),
		Editable:  true,
		UserID:    userID,
		Subject:   subject,
	}, nil
}

// IsApproved reports whether an editor has approved the review.
func (r *Review) IsApproved() bool {
	return r.EditorID != nil
}

// SetContent updates the review text. Approved reviews are frozen.
func (r *Review) SetContent(content string) error {
	if !r.Editable {
		return oops.Code("REVIEW_NOT_EDITABLE").Errorf("review is no longer editable")
	}
	if !validate.NonBlank(content) {
		return oops.Code("REVIEW_INVALID_CONTENT").Errorf("content cannot be blank")
	}
	r.Content = content
	return nil
}

// Approve stamps the approving editor and freezes the review.
// Approving twice errors.
func (r *Review) Approve(editorID ulid.ULID) error {
	if r.EditorID != nil {
		return oops.Code("REVIEW_ALREADY_APPROVED").
			With("editor_id", r.EditorID.String()).
			Errorf("review is already approved")
	}
	r.EditorID = &editorID
	r.Editable = false
	return nil
}

// ReviewRepository manages review persistence.
type ReviewRepository interface {
	Create(ctx context.Context, review *Review) error
	GetByID(ctx context.Context, id ulid.ULID) (*Review, error)
	ListByUser(ctx context.Context, userID ulid.ULID) ([]Review, error)
	ListBySubject(ctx context.Context, subject Subject) ([]Review, error)
	Update(ctx context.Context, review *Review) error
	Delete(ctx context.Context, id ulid.ULID) error
}
