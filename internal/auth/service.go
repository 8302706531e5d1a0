// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

package auth

import (
	"context"
	"errors"

	"github.com/samber/oops"

	"github.com/metatune/metatune/internal/account"
	"github.com/metatune/metatune/internal/observability"
	"github.com/metatune/metatune/internal/store"
	"github.com/metatune/metatune/internal/validate"
)

// Mailer sends account-lifecycle mail.
type Mailer interface {
	// SendVerification delivers the verification code to the address.
	SendVerification(ctx context.Context, email, code string) error
}

// Transactor runs a function inside a database transaction.
type Transactor interface {
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides login, registration, and account verification.
type Service struct {
	users  account.UserRepository
	people account.PersonRepository
	hasher PasswordHasher
	mailer Mailer
	tx     Transactor
}

// NewService creates a Service.
func NewService(
	users account.UserRepository,
	people account.PersonRepository,
	hasher PasswordHasher,
	mailer Mailer,
	tx Transactor,
) (*Service, error) {
	if users == nil {
		return nil, oops.Errorf("users repository is required")
	}
	if people == nil {
		return nil, oops.Errorf("people repository is required")
	}
	if hasher == nil {
		return nil, oops.Errorf("password hasher is required")
	}
	if mailer == nil {
		return nil, oops.Errorf("mailer is required")
	}
	if tx == nil {
		return nil, oops.Errorf("transactor is required")
	}
	return &Service{users: users, people: people, hasher: hasher, mailer: mailer, tx: tx}, nil
}

// dummyPasswordHash is used when a user doesn't exist to prevent timing
// attacks: password verification still runs so response time stays
// consistent. This is NOT a real credential and never matches any password.
//
//nolint:gosec // G101: intentionally fake hash for timing attack prevention, not a credential.
const dummyPasswordHash = "AAAAAAAAAAAAAAAAAAAAAA==:AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA="

// Login authenticates a user by email and password.
//
// Unknown email and wrong password surface as distinct conditions
// (USER_NOT_FOUND wrapping account.ErrNotFound vs AUTH_INVALID_CREDENTIALS),
// but neither message echoes the submitted email. For editors the
// qualified genre set is fetched and attached to the returned user; this
// hydration never writes anything.
func (s *Service) Login(ctx context.Context, email, password string) (*account.User, error) {
	user, lookupErr := s.users.GetByEmail(ctx, email)

	// Determine which hash to verify against (real or dummy for timing
	// attack prevention).
	targetHash := dummyPasswordHash
	userExists := false

	if lookupErr != nil {
		if !errors.Is(lookupErr, account.ErrNotFound) {
			return nil, oops.Code("AUTH_LOGIN_FAILED").
				With("operation", "get user by email").
				Wrap(lookupErr)
		}
	} else {
		targetHash = user.PasswordHash
		userExists = true
	}

	// Always verify, even against the dummy hash.
	valid := s.hasher.Verify(password, targetHash)

	if !userExists {
		observability.RecordLoginAttempt("not_found")
		return nil, oops.Code("USER_NOT_FOUND").Wrap(account.ErrNotFound)
	}

	if !valid {
		user.FailedAttempts++
		user.LockedUntil = ComputeLockoutTime(user.FailedAttempts)
		_ = s.users.Update(ctx, user) //nolint:errcheck // Best effort failure bookkeeping
		observability.RecordLoginAttempt("invalid_credentials")
		return nil, oops.Code("AUTH_INVALID_CREDENTIALS").Errorf("invalid credentials")
	}

	// Check lockout after password verification to keep timing uniform.
	if user.IsLocked() {
		observability.RecordLoginAttempt("locked")
		return nil, oops.Code("AUTH_ACCOUNT_LOCKED").
			With("locked_until", user.LockedUntil).
			Errorf("account is temporarily locked")
	}

	if user.FailedAttempts > 0 {
		user.FailedAttempts = 0
		user.LockedUntil = nil
		_ = s.users.Update(ctx, user) //nolint:errcheck // Best effort, login succeeds regardless
	}

	// Hydrate editor qualifications. In-memory only.
	if user.IsEditor() {
		genres, err := s.users.QualifiedGenres(ctx, user.ID)
		if err != nil {
			return nil, oops.Code("AUTH_LOGIN_FAILED").
				With("operation", "get qualified genres").
				Wrap(err)
		}
		user.Genres = genres
	}

	observability.RecordLoginAttempt("success")
	return user, nil
}

// RegisterParams holds the input for Register.
type RegisterParams struct {
	Name     string
	Surname  string
	Email    string
	Password string
	Role     account.Role
}

// Register creates a person and user atomically, in waiting-verification
// state, and sends the verification code by mail. A mail transport
// failure is reported to the caller, but the created account remains:
// verification can be retried.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*account.User, error) {
	if !validate.Password(params.Password) {
		return nil, oops.Code("AUTH_WEAK_PASSWORD").
			Errorf("password must be at least %d characters with upper, lower, digit, and symbol", validate.MinPasswordLength)
	}

	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "hash password").
			Wrap(err)
	}

	person, err := account.NewPerson(store.NewULID(), params.Name, params.Surname)
	if err != nil {
		return nil, err
	}
	user, err := account.NewUser(store.NewULID(), person.ID, params.Name, params.Surname, params.Email, hash, params.Role)
	if err != nil {
		return nil, err
	}

	code, err := GenerateVerificationCode()
	if err != nil {
		return nil, err
	}
	user.VerificationCode = &code

	err = s.tx.InTransaction(ctx, func(ctx context.Context) error {
		if err := s.people.Create(ctx, person); err != nil {
			return err
		}
		return s.users.Create(ctx, user)
	})
	if err != nil {
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "persist account").
			Wrap(err)
	}

	if err := s.mailer.SendVerification(ctx, user.Email, code); err != nil {
		return nil, oops.Code("MAIL_SEND_FAILED").
			With("operation", "send verification mail").
			Wrap(err)
	}

	return user, nil
}

// VerifyAccount activates a waiting-verification account when the
// submitted code matches.
func (s *Service) VerifyAccount(ctx context.Context, email, code string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return oops.Code("USER_NOT_FOUND").Wrap(err)
		}
		return oops.Code("AUTH_VERIFY_FAILED").
			With("operation", "get user by email").
			Wrap(err)
	}

	stored := ""
	if user.VerificationCode != nil {
		stored = *user.VerificationCode
	}
	if !VerificationCodeMatches(code, stored) {
		return oops.Code("AUTH_INVALID_CODE").Errorf("verification code mismatch")
	}

	if err := user.Activate(); err != nil {
		return err
	}
	if err := s.users.Update(ctx, user); err != nil {
		return oops.Code("AUTH_VERIFY_FAILED").
			With("operation", "persist user").
			Wrap(err)
	}
	return nil
}
