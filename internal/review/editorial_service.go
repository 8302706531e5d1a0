// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

package review

import (
	"context"
	"errors"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/metatune/metatune/internal/account"
	"github.com/metatune/metatune/internal/catalog"
	"github.com/metatune/metatune/internal/observability"
	"github.com/metatune/metatune/internal/store"
)

// EditorialService coordinates the editor workflow: task assignment,
// completion, and review approval.
type EditorialService struct {
	users   account.UserRepository
	works   catalog.WorkRepository
	tasks   TaskRepository
	reviews ReviewRepository
}

// NewEditorialService creates an EditorialService.
func NewEditorialService(
	users account.UserRepository,
	works catalog.WorkRepository,
	tasks TaskRepository,
	reviews ReviewRepository,
) (*EditorialService, error) {
	if users == nil {
		return nil, oops.Errorf("users repository is required")
	}
	if works == nil {
		return nil, oops.Errorf("works repository is required")
	}
	if tasks == nil {
		return nil, oops.Errorf("tasks repository is required")
	}
	if reviews == nil {
		return nil, oops.Errorf("reviews repository is required")
	}
	return &EditorialService{users: users, works: works, tasks: tasks, reviews: reviews}, nil
}

// AssignTask assigns a moderation task to an editor. The assignee must
// hold the editor role, and for work subjects must be qualified for the
// work's genre. Author subjects are not genre-owned and skip the
// qualification check.
func (s *EditorialService) AssignTask(ctx context.Context, editorID ulid.ULID, subject Subject) (*Task, error) {
	editor, err := s.users.GetByID(ctx, editorID)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return nil, oops.Code("EDITOR_NOT_FOUND").
				With("editor_id", editorID.String()).
				Wrap(err)
		}
		return nil, oops.Code("TASK_ASSIGN_FAILED").
			With("operation", "get editor").
			Wrap(err)
	}
	if !editor.IsEditor() {
		return nil, oops.Code("NOT_AN_EDITOR").
			With("role", editor.Role.String()).
			Errorf("tasks can only be assigned to editors")
	}

	if subject.Kind() == SubjectWork {
		if err := s.checkQualification(ctx, editorID, subject.ID()); err != nil {
			return nil, err
		}
	}

	task, err := NewTask(store.NewULID(), editorID, subject)
	if err != nil {
		return nil, err
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, oops.Code("TASK_ASSIGN_FAILED").
			With("operation", "persist task").
			Wrap(err)
	}
	observability.RecordEditorialAction("assign_task")
	return task, nil
}

// CompleteTask marks a task done.
func (s *EditorialService) CompleteTask(ctx context.Context, taskID ulid.ULID) error {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return oops.Code("TASK_NOT_FOUND").
				With("task_id", taskID.String()).
				Wrap(err)
		}
		return oops.Code("TASK_COMPLETE_FAILED").
			With("operation", "get task").
			Wrap(err)
	}
	if err := task.Complete(); err != nil {
		return err
	}
	if err := s.tasks.Update(ctx, task); err != nil {
		return oops.Code("TASK_COMPLETE_FAILED").
			With("operation", "persist task").
			Wrap(err)
	}
	observability.RecordEditorialAction("complete_task")
	return nil
}

// ApproveReview stamps a review with the approving editor and freezes it.
// The approver must hold the editor role.
func (s *EditorialService) ApproveReview(ctx context.Context, reviewID, editorID ulid.ULID) error {
	editor, err := s.users.GetByID(ctx, editorID)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return oops.Code("EDITOR_NOT_FOUND").
				With("editor_id", editorID.String()).
				Wrap(err)
		}
		return oops.Code("REVIEW_APPROVE_FAILED").
			With("operation", "get editor").
			Wrap(err)
	}
	if !editor.IsEditor() {
		return oops.Code("NOT_AN_EDITOR").
			With("role", editor.Role.String()).
			Errorf("reviews can only be approved by editors")
	}

	rev, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return oops.Code("REVIEW_NOT_FOUND").
				With("review_id", reviewID.String()).
				Wrap(err)
		}
		return oops.Code("REVIEW_APPROVE_FAILED").
			With("operation", "get review").
			Wrap(err)
	}
	if err := rev.Approve(editorID); err != nil {
		return err
	}
	if err := s.reviews.Update(ctx, rev); err != nil {
		return oops.Code("REVIEW_APPROVE_FAILED").
			With("operation", "persist review").
			Wrap(err)
	}
	observability.RecordEditorialAction("approve_review")
	return nil
}

// checkQualification verifies the editor is qualified for the work's genre.
func (s *EditorialService) checkQualification(ctx context.Context, editorID, workID ulid.ULID) error {
	work, err := s.works.GetByID(ctx, workID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return oops.Code("WORK_NOT_FOUND").
				With("work_id", workID.String()).
				Wrap(err)
		}
		return oops.Code("TASK_ASSIGN_FAILED").
			With("operation", "get work").
			Wrap(err)
	}

	genres, err := s.users.QualifiedGenres(ctx, editorID)
	if err != nil {
		return oops.Code("TASK_ASSIGN_FAILED").
			With("operation", "get qualifications").
			Wrap(err)
	}
	for _, g := range genres {
		if g.ID == work.GenreID {
			return nil
		}
	}
	return oops.Code("EDITOR_NOT_QUALIFIED").
		With("editor_id", editorID.String()).
		With("genre_id", work.GenreID.String()).
		Errorf("editor is not qualified for the work's genre")
}
