// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

package main

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	accountpg "github.com/metatune/metatune/internal/account/postgres"
	"github.com/metatune/metatune/internal/auth"
	catalogpg "github.com/metatune/metatune/internal/catalog/postgres"
	"github.com/metatune/metatune/internal/config"
	"github.com/metatune/metatune/internal/mail"
	"github.com/metatune/metatune/internal/review"
	reviewpg "github.com/metatune/metatune/internal/review/postgres"
	"github.com/metatune/metatune/internal/store"
)

// application is the composed object graph the CLI verbs operate through:
// every repository over the shared pool, plus the services built on them.
type application struct {
	Users        *accountpg.UserRepository
	People       *accountpg.PersonRepository
	Genres       *catalogpg.GenreRepository
	Authors      *catalogpg.AuthorRepository
	Works        *catalogpg.WorkRepository
	Members      *catalogpg.MemberRepository
	Contributors *catalogpg.ContributorRepository
	Ratings      *reviewpg.RatingRepository
	Reviews      *reviewpg.ReviewRepository
	Tasks        *reviewpg.TaskRepository

	Auth      *auth.Service
	Editorial *review.EditorialService
}

// newApplication wires all repositories and services over an open
// database handle. The transactor gives the auth service cross-repository
// atomicity on registration.
func newApplication(db store.DB, mailer auth.Mailer) (*application, error) {
	app := &application{
		Users:        accountpg.NewUserRepository(db),
		People:       accountpg.NewPersonRepository(db),
		Genres:       catalogpg.NewGenreRepository(db),
		Authors:      catalogpg.NewAuthorRepository(db),
		Works:        catalogpg.NewWorkRepository(db),
		Members:      catalogpg.NewMemberRepository(db),
		Contributors: catalogpg.NewContributorRepository(db),
		Ratings:      reviewpg.NewRatingRepository(db),
		Reviews:      reviewpg.NewReviewRepository(db),
		Tasks:        reviewpg.NewTaskRepository(db),
	}

	var err error
	app.Auth, err = auth.NewService(app.Users, app.People, auth.NewPBKDF2Hasher(), mailer, store.NewTransactor(db))
	if err != nil {
		return nil, err
	}
	app.Editorial, err = review.NewEditorialService(app.Users, app.Works, app.Tasks, app.Reviews)
	if err != nil {
		return nil, err
	}
	return app, nil
}

// withApplication loads configuration, opens the database, and runs fn
// with a fully wired application. Used by the account, task, and review
// verbs.
func withApplication(cmd *cobra.Command, fn func(ctx context.Context, app *application) error) error {
	conf, err := config.Load(resolveConfigPath())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	db, err := store.Open(ctx, conf.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	mailer, err := mail.NewSMTPMailer(conf.SMTP)
	if err != nil {
		return err
	}

	app, err := newApplication(db, mailer)
	if err != nil {
		return err
	}
	return fn(ctx, app)
}

// parseULID parses a command-line id argument.
func parseULID(arg, what string) (ulid.ULID, error) {
	id, err := ulid.Parse(arg)
	if err != nil {
		return ulid.ULID{}, oops.Code("INVALID_ARGUMENT").
			With("value", arg).
			Errorf("invalid %s id %q", what, arg)
	}
	return id, nil
}
