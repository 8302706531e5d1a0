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

	"github.com/metatune/metatune/internal/account"
	"github.com/metatune/metatune/internal/store"
)

// PersonRepository implements account.PersonRepository using PostgreSQL.
type PersonRepository struct {
	db store.DB
}

// NewPersonRepository creates a new PersonRepository.
func NewPersonRepository(db store.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

// Create stores a new person.
func (r *PersonRepository) Create(ctx context.Context, person *account.Person) error {
	q := store.From(ctx, r.db)
	_, err := q.Exec(ctx, `
		INSERT INTO people (id, name, surname, birth_date, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		person.ID.String(),
		person.Name,
		person.Surname,
		person.BirthDate,
		person.Phone,
		person.CreatedAt,
	)
	if err != nil {
		if kind, name, ok := store.Constraint(err); ok {
			return oops.Code("PERSON_CONSTRAINT_VIOLATION").
				With("constraint", name).
				With("kind", string(kind)).
				Wrap(err)
		}
		return oops.Code("PERSON_CREATE_FAILED").
			With("operation", "insert person").
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a person by ID.
func (r *PersonRepository) GetByID(ctx context.Context, id ulid.ULID) (*account.Person, error) {
	q := store.From(ctx, r.db)
	row := q.QueryRow(ctx, `
		SELECT id, name, surname, birth_date, phone, created_at
		FROM people
		WHERE id = $1
	`, id.String())

	var (
		idStr     string
		name      string
		surname   string
		birthDate *time.Time
		phone     *string
		createdAt time.Time
	)
	err := row.Scan(&idStr, &name, &surname, &birthDate, &phone, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("PERSON_NOT_FOUND").
			With("id", id.String()).
			Wrap(account.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("PERSON_GET_FAILED").
			With("operation", "get person by id").
			With("id", id.String()).
			Wrap(err)
	}

	parsed, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("PERSON_INVALID_ID").
			With("id", idStr).
			Wrap(err)
	}
	return &account.Person{
		ID:        parsed,
		Name:      name,
		Surname:   surname,
		BirthDate: birthDate,
		Phone:     phone,
		CreatedAt: createdAt,
	}, nil
}

// Update replaces the mutable fields of an existing person.
func (r *PersonRepository) Update(ctx context.Context, person *account.Person) error {
	q := store.From(ctx, r.db)
	result, err := q.Exec(ctx, `
		UPDATE people SET name = $2, surname = $3, birth_date = $4, phone = $5
		WHERE id = $1
	`,
		person.ID.String(),
		person.Name,
		person.Surname,
		person.BirthDate,
		person.Phone,
	)
	if err != nil {
		return oops.Code("PERSON_UPDATE_FAILED").
			With("operation", "update person").
			With("id", person.ID.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("PERSON_NOT_FOUND").
			With("id", person.ID.String()).
			Wrap(account.ErrNotFound)
	}
	return nil
}

// Delete removes a person.
func (r *PersonRepository) Delete(ctx context.Context, id ulid.ULID) error {
	q := store.From(ctx, r.db)
	result, err := q.Exec(ctx, `
		DELETE FROM people WHERE id = $1
	`, id.String())
	if err != nil {
		return oops.Code("PERSON_DELETE_FAILED").
			With("operation", "delete person").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("PERSON_NOT_FOUND").
			With("id", id.String()).
			Wrap(account.ErrNotFound)
	}
	return nil
}

// Compile-time interface check.
var _ account.PersonRepository = (*PersonRepository)(nil)
