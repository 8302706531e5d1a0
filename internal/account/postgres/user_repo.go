// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

// Package postgres implements the account repositories using PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/metatune/metatune/internal/account"
	"github.com/metatune/metatune/internal/catalog"
	"github.com/metatune/metatune/internal/store"
)

// UserRepository implements account.UserRepository using PostgreSQL.
type UserRepository struct {
	db store.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db store.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, person_id, name, surname, email, password_hash, role, status,
	       show_email, show_reviews, verification_code, failed_attempts, locked_until,
	       created_at, updated_at`

// Create stores a new user. A colliding id or email surfaces the
// database's uniqueness error; it never upserts.
func (r *UserRepository) Create(ctx context.Context, user *account.User) error {
	q := store.From(ctx, r.db)
	_, err := q.Exec(ctx, `
		INSERT INTO users (
			id, person_id, name, surname, email, password_hash, role, status,
			show_email, show_reviews, verification_code, failed_attempts, locked_until,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`,
		user.ID.String(),
		user.PersonID.String(),
		user.Name,
		user.Surname,
		user.Email,
		user.PasswordHash,
		user.Role.String(),
		user.Status.String(),
		user.ShowEmail,
		user.ShowReviews,
		user.VerificationCode,
		user.FailedAttempts,
		user.LockedUntil,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if kind, name, ok := store.Constraint(err); ok {
			return oops.Code("USER_CONSTRAINT_VIOLATION").
				With("constraint", name).
				With("kind", string(kind)).
				Wrap(err)
		}
		return oops.Code("USER_CREATE_FAILED").
			With("operation", "insert user").
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id ulid.ULID) (*account.User, error) {
	q := store.From(ctx, r.db)
	row := q.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id.String())

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").
			With("id", id.String()).
			Wrap(account.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_GET_BY_ID_FAILED").
			With("operation", "get user by id").
			With("id", id.String()).
			Wrap(err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email (case-insensitive).
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*account.User, error) {
	q := store.From(ctx, r.db)
	row := q.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`, email)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").Wrap(account.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_GET_BY_EMAIL_FAILED").
			With("operation", "get user by email").
			Wrap(err)
	}
	return user, nil
}

// List returns all users, optionally filtered by role.
func (r *UserRepository) List(ctx context.Context, role *account.Role) ([]*account.User, error) {
	q := store.From(ctx, r.db)

	var rows pgx.Rows
	var err error
	if role != nil {
		rows, err = q.Query(ctx, `
			SELECT `+userColumns+`
			FROM users WHERE role = $1 ORDER BY id
		`, role.String())
	} else {
		rows, err = q.Query(ctx, `
			SELECT `+userColumns+`
			FROM users ORDER BY id
		`)
	}
	if err != nil {
		return nil, oops.Code("USER_LIST_FAILED").
			With("operation", "query users").
			Wrap(err)
	}
	defer rows.Close()

	var users []*account.User
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			return nil, oops.Code("USER_LIST_FAILED").
				With("operation", "scan user row").
				Wrap(scanErr)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("USER_LIST_FAILED").
			With("operation", "iterate users").
			Wrap(err)
	}
	return users, nil
}

// Update replaces all mutable fields of an existing user.
func (r *UserRepository) Update(ctx context.Context, user *account.User) error {
	q := store.From(ctx, r.db)
	result, err := q.Exec(ctx, `
		UPDATE users SET
			name = $2,
			surname = $3,
			email = $4,
			password_hash = $5,
			role = $6,
			status = $7,
			show_email = $8,
			show_reviews = $9,
			verification_code = $10,
			failed_attempts = $11,
			locked_until = $12,
			updated_at = $13
		WHERE id = $1
	`,
		user.ID.String(),
		user.Name,
		user.Surname,
		user.Email,
		user.PasswordHash,
		user.Role.String(),
		user.Status.String(),
		user.ShowEmail,
		user.ShowReviews,
		user.VerificationCode,
		user.FailedAttempts,
		user.LockedUntil,
		user.UpdatedAt,
	)
	if err != nil {
		return oops.Code("USER_UPDATE_FAILED").
			With("operation", "update user").
			With("id", user.ID.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("USER_NOT_FOUND").
			With("id", user.ID.String()).
			Wrap(account.ErrNotFound)
	}
	return nil
}

// ReplaceQualifications replaces an editor's qualified genre set: all
// prior qualification rows are deleted and the new set inserted inside
// one transaction.
func (r *UserRepository) ReplaceQualifications(ctx context.Context, userID ulid.ULID, genreIDs []ulid.ULID) error {
	return store.RunInTx(ctx, r.db, func(ctx context.Context) error {
		q := store.From(ctx, r.db)
		if _, err := q.Exec(ctx, `
			DELETE FROM qualifications WHERE user_id = $1
		`, userID.String()); err != nil {
			return oops.Code("QUALIFICATIONS_REPLACE_FAILED").
				With("operation", "delete qualifications").
				With("user_id", userID.String()).
				Wrap(err)
		}
		for _, genreID := range genreIDs {
			if _, err := q.Exec(ctx, `
				INSERT INTO qualifications (user_id, genre_id) VALUES ($1, $2)
			`, userID.String(), genreID.String()); err != nil {
				return oops.Code("QUALIFICATIONS_REPLACE_FAILED").
					With("operation", "insert qualification").
					With("user_id", userID.String()).
					With("genre_id", genreID.String()).
					Wrap(err)
			}
		}
		return nil
	})
}

// QualifiedGenres returns the genres an editor may moderate.
func (r *UserRepository) QualifiedGenres(ctx context.Context, userID ulid.ULID) ([]catalog.Genre, error) {
	q := store.From(ctx, r.db)
	rows, err := q.Query(ctx, `
		SELECT g.id, g.name, g.description, g.parent_id
		FROM genres g
		JOIN qualifications q ON q.genre_id = g.id
		WHERE q.user_id = $1
		ORDER BY g.name
	`, userID.String())
	if err != nil {
		return nil, oops.Code("QUALIFICATIONS_GET_FAILED").
			With("operation", "query qualified genres").
			With("user_id", userID.String()).
			Wrap(err)
	}
	defer rows.Close()

	var genres []catalog.Genre
	for rows.Next() {
		var (
			idStr       string
			name        string
			description string
			parentIDStr *string
		)
		if err := rows.Scan(&idStr, &name, &description, &parentIDStr); err != nil {
			return nil, oops.Code("QUALIFICATIONS_GET_FAILED").
				With("operation", "scan genre row").
				Wrap(err)
		}
		id, err := ulid.Parse(idStr)
		if err != nil {
			return nil, oops.Code("QUALIFICATIONS_GET_FAILED").
				With("operation", "parse genre id").
				With("id", idStr).
				Wrap(err)
		}
		var parentID *ulid.ULID
		if parentIDStr != nil {
			parsed, err := ulid.Parse(*parentIDStr)
			if err != nil {
				return nil, oops.Code("QUALIFICATIONS_GET_FAILED").
					With("operation", "parse parent genre id").
					With("parent_id", *parentIDStr).
					Wrap(err)
			}
			parentID = &parsed
		}
		genres = append(genres, catalog.Genre{ID: id, Name: name, Description: description, ParentID: parentID})
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("QUALIFICATIONS_GET_FAILED").
			With("operation", "iterate genres").
			Wrap(err)
	}
	return genres, nil
}

// Delete removes a user and the linked person record in one transaction.
// Qualification rows cascade at the schema level.
func (r *UserRepository) Delete(ctx context.Context, id ulid.ULID) error {
	return store.RunInTx(ctx, r.db, func(ctx context.Context) error {
		q := store.From(ctx, r.db)

		var personIDStr string
		err := q.QueryRow(ctx, `
			SELECT person_id FROM users WHERE id = $1
		`, id.String()).Scan(&personIDStr)
		if errors.Is(err, pgx.ErrNoRows) {
			return oops.Code("USER_NOT_FOUND").
				With("id", id.String()).
				Wrap(account.ErrNotFound)
		}
		if err != nil {
			return oops.Code("USER_DELETE_FAILED").
				With("operation", "get person id").
				With("id", id.String()).
				Wrap(err)
		}

		if _, err := q.Exec(ctx, `
			DELETE FROM users WHERE id = $1
		`, id.String()); err != nil {
			return oops.Code("USER_DELETE_FAILED").
				With("operation", "delete user").
				With("id", id.String()).
				Wrap(err)
		}
		if _, err := q.Exec(ctx, `
			DELETE FROM people WHERE id = $1
		`, personIDStr); err != nil {
			return oops.Code("USER_DELETE_FAILED").
				With("operation", "delete linked person").
				With("person_id", personIDStr).
				Wrap(err)
		}
		return nil
	})
}

// scanUser scans a single row into a User.
// Callers are responsible for handling pgx.ErrNoRows.
func scanUser(row pgx.Row) (*account.User, error) {
	var (
		idStr            string
		personIDStr      string
		name             string
		surname          string
		email            string
		passwordHash     string
		role             string
		status           string
		showEmail        bool
		showReviews      bool
		verificationCode *string
		failedAttempts   int
		lockedUntil      *time.Time
		createdAt        time.Time
		updatedAt        time.Time
	)

	err := row.Scan(
		&idStr,
		&personIDStr,
		&name,
		&surname,
		&email,
		&passwordHash,
		&role,
		&status,
		&showEmail,
		&showReviews,
		&verificationCode,
		&failedAttempts,
		&lockedUntil,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		// Propagate pgx.ErrNoRows unchanged for callers to handle with context.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("USER_SCAN_FAILED").
			With("operation", "scan user").
			Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("USER_INVALID_ID").
			With("operation", "parse user id").
			With("id", idStr).
			Wrap(err)
	}
	personID, err := ulid.Parse(personIDStr)
	if err != nil {
		return nil, oops.Code("USER_INVALID_PERSON_ID").
			With("operation", "parse person id").
			With("person_id", personIDStr).
			Wrap(err)
	}

	return &account.User{
		ID:               id,
		PersonID:         personID,
		Name:             name,
		Surname:          surname,
		Email:            email,
		PasswordHash:     passwordHash,
		Role:             account.Role(role),
		Status:           account.Status(status),
		ShowEmail:        showEmail,
		ShowReviews:      showReviews,
		VerificationCode: verificationCode,
		FailedAttempts:   failedAttempts,
		LockedUntil:      lockedUntil,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}, nil
}

// Compile-time interface check.
var _ account.UserRepository = (*UserRepository)(nil)
