// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

package account

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/metatune/metatune/internal/validate"
)

// Person is a real individual's name record, distinct from their role as
// an author or user.
type Person struct {
	ID        ulid.ULID
	Name      string
	Surname   string
	BirthDate *time.Time
	Phone     *string
	CreatedAt time.Time
}

// NewPerson creates a validated Person.
func NewPerson(id ulid.ULID, name, surname string) (*Person, error) {
	if !validate.NonBlank(name) {
		return nil, oops.Code("PERSON_INVALID_NAME").Errorf("name cannot be blank")
	}
	if !validate.NonBlank(surname) {
		return nil, oops.Code("PERSON_INVALID_SURNAME").Errorf("surname cannot be blank")
	}
	return &Person{
		ID:        id,
		Name:      name,
		Surname:   surname,
		CreatedAt: time.Now(),
	}, nil
}

// SetBirthDate updates the birth date, which must lie in the past.
func (p *Person) SetBirthDate(d time.Time) error {
	if !validate.Past(d) {
		return oops.Code("PERSON_INVALID_BIRTH_DATE").Errorf("birth date must be in the past")
	}
	p.BirthDate = &d
	return nil
}

// SetPhone updates the phone number.
func (p *Person) SetPhone(phone string) error {
	if !validate.PhoneNumber(phone) {
		return oops.Code("PERSON_INVALID_PHONE").Errorf("invalid phone number")
	}
	p.Phone = &phone
	return nil
}

// PersonRepository manages person persistence.
type PersonRepository interface {
	Create(ctx context.Context, person *Person) error
	GetByID(ctx context.Context, id ulid.ULID) (*Person, error)
	Update(ctx context.Context, person *Person) error
	Delete(ctx context.Context, id ulid.ULID) error
}
