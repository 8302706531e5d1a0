// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

package review

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Task is a unit of editorial attention assigned to an editor: a work or
// author that needs moderation.
type Task struct {
	ID         ulid.ULID
	AssignedAt time.Time
	Done       bool
	EditorID   ulid.ULID
	Subject    Subject
}

// NewTask creates a validated, open Task.
func NewTask(id, editorID ulid.ULID, subject Subject) (*Task, error) {
	if subject.IsZero() {
		return nil, oops.Code("TASK_INVALID_SUBJECT").Errorf("subject is required")
	}
	return &Task{
		ID:         id,
		AssignedAt: time.Now(),
		EditorID:   editorID,
		Subject:    subject,
	}, nil
}

// Complete marks the task done. Completing a done task errors.
func (t *Task) Complete() error {
	if t.Done {
		return oops.Code("TASK_ALREADY_DONE").
			With("task_id", t.ID.String()).
			Errorf("task is already done")
	}
	t.Done = true
	return nil
}

// TaskRepository manages task persistence.
type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	GetByID(ctx context.Context, id ulid.ULID) (*Task, error)
	ListByEditor(ctx context.Context, editorID ulid.ULID, includeDone bool) ([]Task, error)
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id ulid.ULID) error
}
