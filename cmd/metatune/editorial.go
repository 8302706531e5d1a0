// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

package main

import (
	"context"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/metatune/metatune/internal/review"
)

// assignConfig holds flags for the task assign verb.
type assignConfig struct {
	editor string
	work   string
	author string
}

// newTaskCmd creates the task subcommand and its verbs.
func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage editorial tasks",
		Long:  `Assign moderation tasks to editors and mark them done.`,
	}

	cmd.AddCommand(newTaskAssignCmd())
	cmd.AddCommand(newTaskCompleteCmd())

	return cmd
}

func newTaskAssignCmd() *cobra.Command {
	cfg := &assignConfig{}

	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Assign a moderation task to an editor",
		RunE: func(cmd *cobra.Command, _ []string) error {
			editorID, err := parseULID(cfg.editor, "editor")
			if err != nil {
				return err
			}
			subject, err := resolveSubject(cfg.work, cfg.author)
			if err != nil {
				return err
			}

			return withApplication(cmd, func(ctx context.Context, app *application) error {
				task, err := app.Editorial.AssignTask(ctx, editorID, subject)
				if err != nil {
					return err
				}
				cmd.Printf("Task %s assigned to editor %s\n", task.ID, task.EditorID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&cfg.editor, "editor", "", "editor user id")
	cmd.Flags().StringVar(&cfg.work, "work", "", "work id to moderate")
	cmd.Flags().StringVar(&cfg.author, "author", "", "author id to moderate")

	return cmd
}

func newTaskCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <task-id>",
		Short: "Mark a task done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseULID(args[0], "task")
			if err != nil {
				return err
			}

			return withApplication(cmd, func(ctx context.Context, app *application) error {
				if err := app.Editorial.CompleteTask(ctx, taskID); err != nil {
					return err
				}
				cmd.Printf("Task %s completed\n", taskID)
				return nil
			})
		},
	}
}

// newReviewCmd creates the review subcommand and its verbs.
func newReviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Moderate user reviews",
	}

	cmd.AddCommand(newReviewApproveCmd())

	return cmd
}

func newReviewApproveCmd() *cobra.Command {
	var editor string

	cmd := &cobra.Command{
		Use:   "approve <review-id>",
		Short: "Approve a review, stamping the editor and freezing the text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reviewID, err := parseULID(args[0], "review")
			if err != nil {
				return err
			}
			editorID, err := parseULID(editor, "editor")
			if err != nil {
				return err
			}

			return withApplication(cmd, func(ctx context.Context, app *application) error {
				if err := app.Editorial.ApproveReview(ctx, reviewID, editorID); err != nil {
					return err
				}
				cmd.Printf("Review %s approved\n", reviewID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&editor, "editor", "", "approving editor user id")

	return cmd
}

// resolveSubject builds the task subject from the mutually exclusive
// --work and --author flags.
func resolveSubject(work, author string) (review.Subject, error) {
	if (work == "") == (author == "") {
		return review.Subject{}, oops.Code("INVALID_ARGUMENT").
			Errorf("exactly one of --work or --author is required")
	}
	if work != "" {
		workID, err := parseULID(work, "work")
		if err != nil {
			return review.Subject{}, err
		}
		return review.WorkSubject(workID), nil
	}
	authorID, err := parseULID(author, "author")
	if err != nil {
		return review.Subject{}, err
	}
	return review.AuthorSubject(authorID), nil
}
