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

// TaskRepository implements review.TaskRepository using PostgreSQL.
type TaskRepository struct {
	db store.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db store.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create stores a new task.
func (r *TaskRepository) Create(ctx context.Context, task *review.Task) error {
	workID, authorID := subjectColumns(task.Subject)
	q := store.From(ctx, r.db)
	_, err := q.Exec(ctx, `
		INSERT INTO tasks (id, assigned_at, done, editor_id, work_id, author_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		task.ID.String(),
		task.AssignedAt,
		task.Done,
		task.EditorID.String(),
		workID,
		authorID,
	)
	if err != nil {
		if kind, name, ok := store.Constraint(err); ok {
			return oops.Code("TASK_CONSTRAINT_VIOLATION").
				With("constraint", name).
				With("kind", string(kind)).
				Wrap(err)
		}
		return oops.Code("TASK_CREATE_FAILED").
			With("operation", "insert task").
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a task by ID.
func (r *TaskRepository) GetByID(ctx context.Context, id ulid.ULID) (*review.Task, error) {
	q := store.From(ctx, r.db)
	row := q.QueryRow(ctx, `
		SELECT id, assigned_at, done, editor_id, work_id, author_id
		FROM tasks
		WHERE id = $1
	`, id.String())

	task, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("TASK_NOT_FOUND").
			With("id", id.String()).
			Wrap(review.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("TASK_GET_FAILED").
			With("operation", "get task by id").
			With("id", id.String()).
			Wrap(err)
	}
	return task, nil
}

// ListByEditor returns an editor's tasks, oldest assignment first. Done
// tasks are excluded unless includeDone is set.
func (r *TaskRepository) ListByEditor(ctx context.Context, editorID ulid.ULID, includeDone bool) ([]review.Task, error) {
	sql := `
		SELECT id, assigned_at, done, editor_id, work_id, author_id
		FROM tasks
		WHERE editor_id = $1
	`
	if !includeDone {
		sql += ` AND NOT done`
	}
	sql += ` ORDER BY assigned_at`

	q := store.From(ctx, r.db)
	rows, err := q.Query(ctx, sql, editorID.String())
	if err != nil {
		return nil, oops.Code("TASK_LIST_FAILED").
			With("operation", "query tasks").
			With("editor_id", editorID.String()).
			Wrap(err)
	}
	defer rows.Close()

	var tasks []review.Task
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, oops.Code("TASK_LIST_FAILED").
				With("operation", "scan task row").
				Wrap(scanErr)
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("TASK_LIST_FAILED").
			With("operation", "iterate tasks").
			Wrap(err)
	}
	return tasks, nil
}

// Update replaces the done flag of an existing task.
func (r *TaskRepository) Update(ctx context.Context, task *review.Task) error {
	q := store.From(ctx, r.db)
	result, err := q.Exec(ctx, `
		UPDATE tasks SET done = $2 WHERE id = $1
	`, task.ID.String(), task.Done)
	if err != nil {
		return oops.Code("TASK_UPDATE_FAILED").
			With("operation", "update task").
			With("id", task.ID.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("TASK_NOT_FOUND").
			With("id", task.ID.String()).
			Wrap(review.ErrNotFound)
	}
	return nil
}

// Delete removes a task.
func (r *TaskRepository) Delete(ctx context.Context, id ulid.ULID) error {
	q := store.From(ctx, r.db)
	result, err := q.Exec(ctx, `
		DELETE FROM tasks WHERE id = $1
	`, id.String())
	if err != nil {
		return oops.Code("TASK_DELETE_FAILED").
			With("operation", "delete task").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("TASK_NOT_FOUND").
			With("id", id.String()).
			Wrap(review.ErrNotFound)
	}
	return nil
}

func scanTask(row pgx.Row) (*review.Task, error) {
	var (
		idStr       string
		assignedAt  time.Time
		done        bool
		editorIDStr string
		workIDStr   *string
		authorIDStr *string
	)
	err := row.Scan(&idStr, &assignedAt, &done, &editorIDStr, &workIDStr, &authorIDStr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("TASK_SCAN_FAILED").Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("TASK_INVALID_ID").With("id", idStr).Wrap(err)
	}
	editorID, err := ulid.Parse(editorIDStr)
	if err != nil {
		return nil, oops.Code("TASK_INVALID_EDITOR_ID").With("editor_id", editorIDStr).Wrap(err)
	}
	subject, err := subjectFromStrings(workIDStr, authorIDStr)
	if err != nil {
		return nil, err
	}

	return &review.Task{
		ID:         id,
		AssignedAt: assignedAt,
		Done:       done,
		EditorID:   editorID,
		Subject:    subject,
	}, nil
}

// Compile-time interface check.
var _ review.TaskRepository = (*TaskRepository)(nil)
