// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

package review_test

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/metatune/metatune/internal/account"
	accountmocks "github.com/metatune/metatune/internal/account/mocks"
	"github.com/metatune/metatune/internal/catalog"
	catalogmocks "github.com/metatune/metatune/internal/catalog/mocks"
	"github.com/metatune/metatune/internal/observability"
	"github.com/metatune/metatune/internal/review"
	"github.com/metatune/metatune/internal/review/mocks"
	"github.com/metatune/metatune/pkg/errutil"
)

type editorialMocks struct {
	users   *accountmocks.MockUserRepository
	works   *catalogmocks.MockWorkRepository
	tasks   *mocks.MockTaskRepository
	reviews *mocks.MockReviewRepository
}

func newEditorialService(t *testing.T) (*review.EditorialService, editorialMocks) {
	t.Helper()
	m := editorialMocks{
		users:   accountmocks.NewMockUserRepository(t),
		works:   catalogmocks.NewMockWorkRepository(t),
		tasks:   mocks.NewMockTaskRepository(t),
		reviews: mocks.NewMockReviewRepository(t),
	}
	svc, err := review.NewEditorialService(m.users, m.works, m.tasks, m.reviews)
	require.NoError(t, err)
	return svc, m
}

func editor() *account.User {
	return &account.User{
		ID:     ulid.Make(),
		Role:   account.RoleEditor,
		Status: account.StatusActive,
	}
}

func TestNewEditorialService_NilDependencies(t *testing.T) {
	users := accountmocks.NewMockUserRepository(t)
	works := catalogmocks.NewMockWorkRepository(t)
	tasks := mocks.NewMockTaskRepository(t)
	reviews := mocks.NewMockReviewRepository(t)

	tests := []struct {
		name        string
		users       account.UserRepository
		works       catalog.WorkRepository
		tasks       review.TaskRepository
		reviews     review.ReviewRepository
		expectError string
	}{
		{"nil users", nil, works, tasks, reviews, "users repository is required"},
		{"nil works", users, nil, tasks, reviews, "works repository is required"},
		{"nil tasks", users, works, nil, reviews, "tasks repository is required"},
		{"nil reviews", users, works, tasks, nil, "reviews repository is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := review.NewEditorialService(tt.users, tt.works, tt.tasks, tt.reviews)
			require.Error(t, err)
			assert.Nil(t, svc)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestEditorialService_AssignTask(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns work task to qualified editor", func(t *testing.T) {
		svc, m := newEditorialService(t)
		ed := editor()
		genreID := ulid.Make()
		work := &catalog.Work{ID: ulid.Make(), Name: "So What", GenreID: genreID}

		m.users.On("GetByID", ctx, ed.ID).Return(ed, nil)
		m.works.On("GetByID", ctx, work.ID).Return(work, nil)
		m.users.On("QualifiedGenres", ctx, ed.ID).Return([]catalog.Genre{{ID: genreID, Name: "Jazz"}}, nil)
		m.tasks.On("Create", ctx, mock.AnythingOfType("*review.Task")).Return(nil)

		task, err := svc.AssignTask(ctx, ed.ID, review.WorkSubject(work.ID))
		require.NoError(t, err)
		assert.Equal(t, ed.ID, task.EditorID)
		assert.False(t, task.Done)
	})

	t.Run("author subjects skip the qualification check", func(t *testing.T) {
		svc, m := newEditorialService(t)
		ed := editor()

		m.users.On("GetByID", ctx, ed.ID).Return(ed, nil)
		m.tasks.On("Create", ctx, mock.AnythingOfType("*review.Task")).Return(nil)

		task, err := svc.AssignTask(ctx, ed.ID, review.AuthorSubject(ulid.Make()))
		require.NoError(t, err)
		assert.Equal(t, review.SubjectAuthor, task.Subject.Kind())
	})

	t.Run("rejects non-editor assignee", func(t *testing.T) {
		svc, m := newEditorialService(t)
		basic := &account.User{ID: ulid.Make(), Role: account.RoleBasic}

		m.users.On("GetByID", ctx, basic.ID).Return(basic, nil)

		task, err := svc.AssignTask(ctx, basic.ID, review.AuthorSubject(ulid.Make()))
		require.Error(t, err)
		assert.Nil(t, task)
		errutil.AssertErrorCode(t, err, "NOT_AN_EDITOR")
	})

	t.Run("rejects unqualified editor for work's genre", func(t *testing.T) {
		svc, m := newEditorialService(t)
		ed := editor()
		work := &catalog.Work{ID: ulid.Make(), Name: "So What", GenreID: ulid.Make()}

		m.users.On("GetByID", ctx, ed.ID).Return(ed, nil)
		m.works.On("GetByID", ctx, work.ID).Return(work, nil)
		m.users.On("QualifiedGenres", ctx, ed.ID).Return([]catalog.Genre{{ID: ulid.Make(), Name: "Polka"}}, nil)

		task, err := svc.AssignTask(ctx, ed.ID, review.WorkSubject(work.ID))
		require.Error(t, err)
		assert.Nil(t, task)
		errutil.AssertErrorCode(t, err, "EDITOR_NOT_QUALIFIED")
	})

	t.Run("unknown editor", func(t *testing.T) {
		svc, m := newEditorialService(t)
		editorID := ulid.Make()

		m.users.On("GetByID", ctx, editorID).Return(nil, account.ErrNotFound)

		task, err := svc.AssignTask(ctx, editorID, review.AuthorSubject(ulid.Make()))
		require.Error(t, err)
		assert.Nil(t, task)
		errutil.AssertErrorCode(t, err, "EDITOR_NOT_FOUND")
	})

	t.Run("unknown work", func(t *testing.T) {
		svc, m := newEditorialService(t)
		ed := editor()
		workID := ulid.Make()

		m.users.On("GetByID", ctx, ed.ID).Return(ed, nil)
		m.works.On("GetByID", ctx, workID).Return(nil, catalog.ErrNotFound)

		task, err := svc.AssignTask(ctx, ed.ID, review.WorkSubject(workID))
		require.Error(t, err)
		assert.Nil(t, task)
		errutil.AssertErrorCode(t, err, "WORK_NOT_FOUND")
	})
}

func TestEditorialService_CompleteTask(t *testing.T) {
	ctx := context.Background()

	t.Run("marks task done", func(t *testing.T) {
		svc, m := newEditorialService(t)
		task, err := review.NewTask(ulid.Make(), ulid.Make(), review.WorkSubject(ulid.Make()))
		require.NoError(t, err)

		m.tasks.On("GetByID", ctx, task.ID).Return(task, nil)
		m.tasks.On("Update", ctx, mock.MatchedBy(func(tk *review.Task) bool {
			return tk.Done
		})).Return(nil)

		require.NoError(t, svc.CompleteTask(ctx, task.ID))
	})

	t.Run("done task cannot complete again", func(t *testing.T) {
		svc, m := newEditorialService(t)
		task, err := review.NewTask(ulid.Make(), ulid.Make(), review.WorkSubject(ulid.Make()))
		require.NoError(t, err)
		task.Done = true

		m.tasks.On("GetByID", ctx, task.ID).Return(task, nil)

		err = svc.CompleteTask(ctx, task.ID)
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "TASK_ALREADY_DONE")
	})

	t.Run("unknown task", func(t *testing.T) {
		svc, m := newEditorialService(t)
		taskID := ulid.Make()

		m.tasks.On("GetByID", ctx, taskID).Return(nil, review.ErrNotFound)

		err := svc.CompleteTask(ctx, taskID)
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "TASK_NOT_FOUND")
	})
}

func TestEditorialService_RecordsActionMetrics(t *testing.T) {
	ctx := context.Background()

	srv := observability.NewServer("127.0.0.1:0", nil)
	_, err := srv.Start()
	require.NoError(t, err)
	t.Cleanup(func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	})

	svc, m := newEditorialService(t)
	ed := editor()
	m.users.On("GetByID", ctx, ed.ID).Return(ed, nil)
	m.tasks.On("Create", ctx, mock.AnythingOfType("*review.Task")).Return(nil)

	task, err := svc.AssignTask(ctx, ed.ID, review.AuthorSubject(ulid.Make()))
	require.NoError(t, err)

	m.tasks.On("GetByID", ctx, task.ID).Return(task, nil)
	m.tasks.On("Update", ctx, mock.AnythingOfType("*review.Task")).Return(nil)
	require.NoError(t, svc.CompleteTask(ctx, task.ID))

	rev, err := review.NewReview(ulid.Make(), "A landmark recording.", ulid.Make(), review.AuthorSubject(ulid.Make()))
	require.NoError(t, err)
	m.reviews.On("GetByID", ctx, rev.ID).Return(rev, nil)
	m.reviews.On("Update", ctx, mock.AnythingOfType("*review.Review")).Return(nil)
	require.NoError(t, svc.ApproveReview(ctx, rev.ID, ed.ID))

	resp, err := http.Get("http://" + srv.Addr() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	// The labeled series exist only once the service records the actions.
	for _, series := range []string{
		`metatune_editorial_actions_total{action="assign_task"}`,
		`metatune_editorial_actions_total{action="complete_task"}`,
		`metatune_editorial_actions_total{action="approve_review"}`,
	} {
		assert.Contains(t, string(body), series)
	}
}

func TestEditorialService_ApproveReview(t *testing.T) {
	ctx := context.Background()

	t.Run("stamps editor and freezes review", func(t *testing.T) {
		svc, m := newEditorialService(t)
		ed := editor()
		rev, err := review.NewReview(ulid.Make(), "A landmark recording.", ulid.Make(), review.WorkSubject(ulid.Make()))
		require.NoError(t, err)

		m.users.On("GetByID", ctx, ed.ID).Return(ed, nil)
		m.reviews.On("GetByID", ctx, rev.ID).Return(rev, nil)
		m.reviews.On("Update", ctx, mock.MatchedBy(func(r *review.Review) bool {
			return r.IsApproved() && !r.Editable
		})).Return(nil)

		require.NoError(t, svc.ApproveReview(ctx, rev.ID, ed.ID))
	})

	t.Run("rejects non-editor approver", func(t *testing.T) {
		svc, m := newEditorialService(t)
		basic := &account.User{ID: ulid.Make(), Role: account.RoleBasic}

		m.users.On("GetByID", ctx, basic.ID).Return(basic, nil)

		err := svc.ApproveReview(ctx, ulid.Make(), basic.ID)
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "NOT_AN_EDITOR")
	})

	t.Run("approved review cannot be approved again", func(t *testing.T) {
		svc, m := newEditorialService(t)
		ed := editor()
		rev, err := review.NewReview(ulid.Make(), "A landmark recording.", ulid.Make(), review.WorkSubject(ulid.Make()))
		require.NoError(t, err)
		require.NoError(t, rev.Approve(ulid.Make()))

		m.users.On("GetByID", ctx, ed.ID).Return(ed, nil)
		m.reviews.On("GetByID", ctx, rev.ID).Return(rev, nil)

		err = svc.ApproveReview(ctx, rev.ID, ed.ID)
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "REVIEW_ALREADY_APPROVED")
	})

	t.Run("unknown review", func(t *testing.T) {
		svc, m := newEditorialService(t)
		ed := editor()
		reviewID := ulid.Make()

		m.users.On("GetByID", ctx, ed.ID).Return(ed, nil)
		m.reviews.On("GetByID", ctx, reviewID).Return(nil, review.ErrNotFound)

		err := svc.ApproveReview(ctx, reviewID, ed.ID)
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "REVIEW_NOT_FOUND")
	})
}
