// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

// Package account contains the user and person domain types.
package account

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/metatune/metatune/internal/catalog"
	"github.com/metatune/metatune/internal/validate"
)

// Role identifies a user's authorization level.
type Role string

// User roles.
const (
	RoleBasic  Role = "basic"
	RoleEditor Role = "editor"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleBasic, RoleEditor, RoleAdmin:
		return true
	}
	return false
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// Status identifies a user account's lifecycle state.
type Status string

// User statuses.
const (
	StatusActive              Status = "active"
	StatusDeactivated         Status = "deactivated"
	StatusBanned              Status = "banned"
	StatusWaitingVerification Status = "waiting_verification"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusDeactivated, StatusBanned, StatusWaitingVerification:
		return true
	}
	return false
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// User represents a registered account.
type User struct {
	ID           ulid.ULID
	PersonID     ulid.ULID
	Name         string
	Surname      string
	Email        string
	PasswordHash string
	Role         Role
	Status       Status
	ShowEmail    bool
	ShowReviews  bool

	// VerificationCode is present only while Status is
	// StatusWaitingVerification.
	VerificationCode *string

	// Genres holds an editor's qualified genres. Populated by the login
	// hydration step for editors; empty for every other role.
	Genres []catalog.Genre

	FailedAttempts int
	LockedUntil    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewUser creates a validated User in waiting-verification state.
// The password hash must already be derived; this constructor never sees
// plaintext passwords.
func NewUser(id, personID ulid.ULID, name, surname, email, passwordHash string, role Role) (*User, error) {
	u := &User{
		ID:          id,
		PersonID:    personID,
		Role:        role,
		Status:      StatusWaitingVerification,
		ShowReviews: true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if !role.Valid() {
		return nil, oops.Code("USER_INVALID_ROLE").With("role", string(role)).Errorf("unknown role %q", role)
	}
	if passwordHash == "" {
		return nil, oops.Code("USER_INVALID_PASSWORD_HASH").Errorf("password hash cannot be empty")
	}
	u.PasswordHash = passwordHash
	if err := u.SetName(name); err != nil {
		return nil, err
	}
	if err := u.SetSurname(surname); err != nil {
		return nil, err
	}
	if err := u.SetEmail(email); err != nil {
		return nil, err
	}
	return u, nil
}

// SetName updates the name, rejecting blank values.
func (u *User) SetName(name string) error {
	if !validate.NonBlank(name) {
		return oops.Code("USER_INVALID_NAME").Errorf("name cannot be blank")
	}
	u.Name = name
	u.UpdatedAt = time.Now()
	return nil
}

// SetSurname updates the surname, rejecting blank values.
func (u *User) SetSurname(surname string) error {
	if !validate.NonBlank(surname) {
		return oops.Code("USER_INVALID_SURNAME").Errorf("surname cannot be blank")
	}
	u.Surname = surname
	u.UpdatedAt = time.Now()
	return nil
}

// SetEmail updates the email, rejecting syntactically invalid addresses.
func (u *User) SetEmail(email string) error {
	if !validate.Email(email) {
		return oops.Code("USER_INVALID_EMAIL").Errorf("invalid email address")
	}
	u.Email = email
	u.UpdatedAt = time.Now()
	return nil
}

// IsEditor reports whether the user has the editor role.
func (u *User) IsEditor() bool {
	return u.Role == RoleEditor
}

// IsLocked reports whether the account is currently locked out.
func (u *User) IsLocked() bool {
	return u.LockedUntil != nil && u.LockedUntil.After(time.Now())
}

// Activate transitions the account out of waiting-verification and clears
// the verification code. Activating an account in any other state errors.
func (u *User) Activate() error {
	if u.Status != StatusWaitingVerification {
		return oops.Code("USER_NOT_PENDING").
			With("status", u.Status.String()).
			Errorf("account is not awaiting verification")
	}
	u.Status = StatusActive
	u.VerificationCode = nil
	u.UpdatedAt = time.Now()
	return nil
}

// UserRepository manages user persistence.
//
// Create and Update are atomic across the users and qualifications tables:
// updating an editor's qualifications deletes all prior rows and inserts
// the new set in one transaction. Delete cascades to the linked person row.
type UserRepository interface {
	// Create stores a new user. A colliding id or email fails with a
	// storage error; it never upserts.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id ulid.ULID) (*User, error)

	// GetByEmail retrieves a user by email (case-insensitive).
	// Returns ErrNotFound if no user has the given email.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// List returns all users, optionally filtered by role.
	List(ctx context.Context, role *Role) ([]*User, error)

	// Update replaces all mutable fields of an existing user.
	Update(ctx context.Context, user *User) error

	// ReplaceQualifications replaces an editor's qualified genre set.
	ReplaceQualifications(ctx context.Context, userID ulid.ULID, genreIDs []ulid.ULID) error

	// QualifiedGenres returns the genres an editor may moderate.
	QualifiedGenres(ctx context.Context, userID ulid.ULID) ([]catalog.Genre, error)

	// Delete removes a user and the linked person record.
	Delete(ctx context.Context, id ulid.ULID) error
}
