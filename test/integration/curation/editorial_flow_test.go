// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

//go:build integration

package curation_test

import (
	"errors"

	"github.com/oklog/ulid/v2"
	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/metatune/metatune/internal/account"
	"github.com/metatune/metatune/internal/review"
	"github.com/metatune/metatune/internal/store"
)

var _ = Describe("Editorial workflow", func() {
	Describe("Task assignment", func() {
		It("refuses an unknown editor", func() {
			genre := createTestGenre("assign_unknown")
			work := createTestWork("Orphan Track", genre)

			_, err := env.Editorial.AssignTask(env.ctx, store.NewULID(), review.WorkSubject(work.ID))
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, account.ErrNotFound)).To(BeTrue())
			Expect(errCode(err)).To(Equal("EDITOR_NOT_FOUND"))
		})

		It("refuses a non-editor assignee", func() {
			user := registerActiveUser(account.RoleBasic)
			genre := createTestGenre("assign_basic")
			work := createTestWork("Untouchable Track", genre)

			_, err := env.Editorial.AssignTask(env.ctx, user.ID, review.WorkSubject(work.ID))
			Expect(err).To(HaveOccurred())
			Expect(errCode(err)).To(Equal("NOT_AN_EDITOR"))
		})

		It("requires genre qualification for work subjects", func() {
			editor := registerActiveUser(account.RoleEditor)
			genre := createTestGenre("assign_unqualified")
			work := createTestWork("Out Of Reach", genre)

			_, err := env.Editorial.AssignTask(env.ctx, editor.ID, review.WorkSubject(work.ID))
			Expect(err).To(HaveOccurred())
			Expect(errCode(err)).To(Equal("EDITOR_NOT_QUALIFIED"))
		})

		It("assigns a work task to a qualified editor", func() {
			editor := registerActiveUser(account.RoleEditor)
			genre := createTestGenre("assign_qualified")
			work := createTestWork("In Reach", genre)
			Expect(env.Users.ReplaceQualifications(env.ctx, editor.ID, []ulid.ULID{genre.ID})).To(Succeed())

			task, err := env.Editorial.AssignTask(env.ctx, editor.ID, review.WorkSubject(work.ID))
			Expect(err).NotTo(HaveOccurred())
			Expect(task.Done).To(BeFalse())
			Expect(task.EditorID).To(Equal(editor.ID))

			stored, err := env.Tasks.GetByID(env.ctx, task.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Subject.Kind()).To(Equal(review.SubjectWork))
			Expect(stored.Subject.ID()).To(Equal(work.ID))
		})

		It("assigns author tasks without a qualification check", func() {
			editor := registerActiveUser(account.RoleEditor)
			author := createTestAuthor("Unowned Performer")

			task, err := env.Editorial.AssignTask(env.ctx, editor.ID, review.AuthorSubject(author.ID))
			Expect(err).NotTo(HaveOccurred())
			Expect(task.Subject.Kind()).To(Equal(review.SubjectAuthor))
		})

		It("reports a vanished work", func() {
			editor := registerActiveUser(account.RoleEditor)

			_, err := env.Editorial.AssignTask(env.ctx, editor.ID, review.WorkSubject(store.NewULID()))
			Expect(err).To(HaveOccurred())
			Expect(errCode(err)).To(Equal("WORK_NOT_FOUND"))
		})
	})

	Describe("Task completion", func() {
		It("marks an assigned task done", func() {
			editor := registerActiveUser(account.RoleEditor)
			author := createTestAuthor("Finished Performer")
			task, err := env.Editorial.AssignTask(env.ctx, editor.ID, review.AuthorSubject(author.ID))
			Expect(err).NotTo(HaveOccurred())

			Expect(env.Editorial.CompleteTask(env.ctx, task.ID)).To(Succeed())

			stored, err := env.Tasks.GetByID(env.ctx, task.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Done).To(BeTrue())
		})

		It("reports an unknown task", func() {
			err := env.Editorial.CompleteTask(env.ctx, store.NewULID())
			Expect(err).To(HaveOccurred())
			Expect(errCode(err)).To(Equal("TASK_NOT_FOUND"))
		})
	})

	Describe("Review approval", func() {
		It("stamps and freezes the review", func() {
			writer := registerActiveUser(account.RoleBasic)
			editor := registerActiveUser(account.RoleEditor)
			genre := createTestGenre("approve")
			work := createTestWork("Reviewed Track", genre)

			rev, err := review.NewReview(store.NewULID(), "A sprawling late-period statement.",
				writer.ID, review.WorkSubject(work.ID))
			Expect(err).NotTo(HaveOccurred())
			Expect(env.Reviews.Create(env.ctx, rev)).To(Succeed())

			Expect(env.Editorial.ApproveReview(env.ctx, rev.ID, editor.ID)).To(Succeed())

			stored, err := env.Reviews.GetByID(env.ctx, rev.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Editable).To(BeFalse())
			Expect(stored.EditorID).NotTo(BeNil())
			Expect(*stored.EditorID).To(Equal(editor.ID))

			// Approval is final.
			err = env.Editorial.ApproveReview(env.ctx, rev.ID, editor.ID)
			Expect(err).To(HaveOccurred())
		})

		It("refuses a non-editor approver", func() {
			writer := registerActiveUser(account.RoleBasic)
			author := createTestAuthor("Critiqued Performer")

			rev, err := review.NewReview(store.NewULID(), "Underrated body of work.",
				writer.ID, review.AuthorSubject(author.ID))
			Expect(err).NotTo(HaveOccurred())
			Expect(env.Reviews.Create(env.ctx, rev)).To(Succeed())

			err = env.Editorial.ApproveReview(env.ctx, rev.ID, writer.ID)
			Expect(err).To(HaveOccurred())
			Expect(errCode(err)).To(Equal("NOT_AN_EDITOR"))
		})

		It("reports an unknown review", func() {
			editor := registerActiveUser(account.RoleEditor)

			err := env.Editorial.ApproveReview(env.ctx, store.NewULID(), editor.ID)
			Expect(err).To(HaveOccurred())
			Expect(errCode(err)).To(Equal("REVIEW_NOT_FOUND"))
		})
	})
})
