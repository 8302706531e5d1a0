// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/metatune/metatune/internal/account"
	accountmocks "github.com/metatune/metatune/internal/account/mocks"
	"github.com/metatune/metatune/internal/auth"
	"github.com/metatune/metatune/internal/auth/mocks"
	"github.com/metatune/metatune/internal/catalog"
	"github.com/metatune/metatune/pkg/errutil"
)

func TestNewService_NilDependencies(t *testing.T) {
	tests := []struct {
		name        string
		users       account.UserRepository
		people      account.PersonRepository
		hasher      auth.PasswordHasher
		mailer      auth.Mailer
		tx          auth.Transactor
		expectError string
	}{
		{
			name:        "nil users repository",
			people:      accountmocks.NewMockPersonRepository(t),
			hasher:      mocks.NewMockPasswordHasher(t),
			mailer:      mocks.NewMockMailer(t),
			tx:          mocks.NewMockTransactor(t),
			expectError: "users repository is required",
		},
		{
			name:        "nil people repository",
			users:       accountmocks.NewMockUserRepository(t),
			hasher:      mocks.NewMockPasswordHasher(t),
			mailer:      mocks.NewMockMailer(t),
			tx:          mocks.NewMockTransactor(t),
			expectError: "people repository is required",
		},
		{
			name:        "nil password hasher",
			users:       accountmocks.NewMockUserRepository(t),
			people:      accountmocks.NewMockPersonRepository(t),
			mailer:      mocks.NewMockMailer(t),
			tx:          mocks.NewMockTransactor(t),
			expectError: "password hasher is required",
		},
		{
			name:        "nil mailer",
			users:       accountmocks.NewMockUserRepository(t),
			people:      accountmocks.NewMockPersonRepository(t),
			hasher:      mocks.NewMockPasswordHasher(t),
			tx:          mocks.NewMockTransactor(t),
			expectError: "mailer is required",
		},
		{
			name:        "nil transactor",
			users:       accountmocks.NewMockUserRepository(t),
			people:      accountmocks.NewMockPersonRepository(t),
			hasher:      mocks.NewMockPasswordHasher(t),
			mailer:      mocks.NewMockMailer(t),
			expectError: "transactor is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := auth.NewService(tt.users, tt.people, tt.hasher, tt.mailer, tt.tx)
			require.Error(t, err)
			assert.Nil(t, svc)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

type serviceMocks struct {
	users  *accountmocks.MockUserRepository
	people *accountmocks.MockPersonRepository
	hasher *mocks.MockPasswordHasher
	mailer *mocks.MockMailer
	tx     *mocks.MockTransactor
}

func newService(t *testing.T) (*auth.Service, serviceMocks) {
	t.Helper()
	m := serviceMocks{
		users:  accountmocks.NewMockUserRepository(t),
		people: accountmocks.NewMockPersonRepository(t),
		hasher: mocks.NewMockPasswordHasher(t),
		mailer: mocks.NewMockMailer(t),
		tx:     mocks.NewMockTransactor(t),
	}
	svc, err := auth.NewService(m.users, m.people, m.hasher, m.mailer, m.tx)
	require.NoError(t, err)
	return svc, m
}

func activeUser(role account.Role) *account.User {
	return &account.User{
		ID:           ulid.Make(),
		PersonID:     ulid.Make(),
		Name:         "Nina",
		Surname:      "Simone",
		Email:        "nina@example.com",
		PasswordHash: "c2FsdHNhbHRzYWx0c2E=:a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2U=",
		Role:         role,
		Status:       account.StatusActive,
	}
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("basic user logs in without genre hydration", func(t *testing.T) {
		svc, m := newService(t)
		user := activeUser(account.RoleBasic)

		m.users.On("GetByEmail", ctx, user.Email).Return(user, nil)
		m.hasher.On("Verify", "Str0ng!Pass", user.PasswordHash).Return(true)

		got, err := svc.Login(ctx, user.Email, "Str0ng!Pass")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.Empty(t, got.Genres)
	})

	t.Run("editor login hydrates qualified genres", func(t *testing.T) {
		svc, m := newService(t)
		user := activeUser(account.RoleEditor)
		genres := []catalog.Genre{
			{ID: ulid.Make(), Name: "Jazz"},
			{ID: ulid.Make(), Name: "Blues"},
		}

		m.users.On("GetByEmail", ctx, user.Email).Return(user, nil)
		m.hasher.On("Verify", "Str0ng!Pass", user.PasswordHash).Return(true)
		m.users.On("QualifiedGenres", ctx, user.ID).Return(genres, nil)

		got, err := svc.Login(ctx, user.Email, "Str0ng!Pass")
		require.NoError(t, err)
		assert.Len(t, got.Genres, 2)
		assert.Equal(t, "Jazz", got.Genres[0].Name)
	})

	t.Run("unknown email still verifies against dummy hash", func(t *testing.T) {
		svc, m := newService(t)

		m.users.On("GetByEmail", ctx, "ghost@example.com").
			Return(nil, account.ErrNotFound)
		// Verify runs against the dummy hash to keep timing uniform.
		m.hasher.On("Verify", "Str0ng!Pass", mock.AnythingOfType("string")).Return(false)

		got, err := svc.Login(ctx, "ghost@example.com", "Str0ng!Pass")
		require.Error(t, err)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, account.ErrNotFound)
		errutil.AssertErrorCode(t, err, "USER_NOT_FOUND")
	})

	t.Run("wrong password increments failure count", func(t *testing.T) {
		svc, m := newService(t)
		user := activeUser(account.RoleBasic)
		user.FailedAttempts = 2

		m.users.On("GetByEmail", ctx, user.Email).Return(user, nil)
		m.hasher.On("Verify", "Wrong!Pass1", user.PasswordHash).Return(false)
		m.users.On("Update", ctx, mock.MatchedBy(func(u *account.User) bool {
			return u.FailedAttempts == 3
		})).Return(nil)

		got, err := svc.Login(ctx, user.Email, "Wrong!Pass1")
		require.Error(t, err)
		assert.Nil(t, got)
		errutil.AssertErrorCode(t, err, "AUTH_INVALID_CREDENTIALS")
	})

	t.Run("lockout is checked after password verification", func(t *testing.T) {
		svc, m := newService(t)
		user := activeUser(account.RoleBasic)
		lockedUntil := time.Now().Add(10 * time.Minute)
		user.FailedAttempts = auth.LockoutThreshold
		user.LockedUntil = &lockedUntil

		m.users.On("GetByEmail", ctx, user.Email).Return(user, nil)
		m.hasher.On("Verify", "Str0ng!Pass", user.PasswordHash).Return(true)

		got, err := svc.Login(ctx, user.Email, "Str0ng!Pass")
		require.Error(t, err)
		assert.Nil(t, got)
		errutil.AssertErrorCode(t, err, "AUTH_ACCOUNT_LOCKED")
	})

	t.Run("successful login resets failure bookkeeping", func(t *testing.T) {
		svc, m := newService(t)
		user := activeUser(account.RoleBasic)
		user.FailedAttempts = 4

		m.users.On("GetByEmail", ctx, user.Email).Return(user, nil)
		m.hasher.On("Verify", "Str0ng!Pass", user.PasswordHash).Return(true)
		m.users.On("Update", ctx, mock.MatchedBy(func(u *account.User) bool {
			return u.FailedAttempts == 0 && u.LockedUntil == nil
		})).Return(nil)

		got, err := svc.Login(ctx, user.Email, "Str0ng!Pass")
		require.NoError(t, err)
		assert.Equal(t, 0, got.FailedAttempts)
	})

	t.Run("repository failure surfaces as login failure", func(t *testing.T) {
		svc, m := newService(t)

		m.users.On("GetByEmail", ctx, "nina@example.com").
			Return(nil, errors.New("connection refused"))

		got, err := svc.Login(ctx, "nina@example.com", "Str0ng!Pass")
		require.Error(t, err)
		assert.Nil(t, got)
		errutil.AssertErrorCode(t, err, "AUTH_LOGIN_FAILED")
	})
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	params := auth.RegisterParams{
		Name:     "Nina",
		Surname:  "Simone",
		Email:    "nina@example.com",
		Password: "Str0ng!Pass",
		Role:     account.RoleBasic,
	}

	t.Run("creates person and user atomically", func(t *testing.T) {
		svc, m := newService(t)

		m.hasher.On("Hash", params.Password).Return("salt:key", nil)
		m.tx.On("InTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).
			Return(func(ctx context.Context, fn func(context.Context) error) error {
				return fn(ctx)
			})
		m.people.On("Create", ctx, mock.AnythingOfType("*account.Person")).Return(nil)
		m.users.On("Create", ctx, mock.MatchedBy(func(u *account.User) bool {
			return u.Status == account.StatusWaitingVerification && u.VerificationCode != nil
		})).Return(nil)
		m.mailer.On("SendVerification", ctx, params.Email, mock.AnythingOfType("string")).Return(nil)

		user, err := svc.Register(ctx, params)
		require.NoError(t, err)
		assert.Equal(t, account.StatusWaitingVerification, user.Status)
		require.NotNil(t, user.VerificationCode)
		assert.Len(t, *user.VerificationCode, auth.VerificationCodeBytes*2)
	})

	t.Run("rejects weak password before touching storage", func(t *testing.T) {
		svc, _ := newService(t)

		weak := params
		weak.Password = "short"
		user, err := svc.Register(ctx, weak)
		require.Error(t, err)
		assert.Nil(t, user)
		errutil.AssertErrorCode(t, err, "AUTH_WEAK_PASSWORD")
	})

	t.Run("mail failure reports but account persists", func(t *testing.T) {
		svc, m := newService(t)

		m.hasher.On("Hash", params.Password).Return("salt:key", nil)
		m.tx.On("InTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).
			Return(func(ctx context.Context, fn func(context.Context) error) error {
				return fn(ctx)
			})
		m.people.On("Create", ctx, mock.AnythingOfType("*account.Person")).Return(nil)
		m.users.On("Create", ctx, mock.AnythingOfType("*account.User")).Return(nil)
		m.mailer.On("SendVerification", ctx, params.Email, mock.AnythingOfType("string")).
			Return(errors.New("smtp unreachable"))

		user, err := svc.Register(ctx, params)
		require.Error(t, err)
		assert.Nil(t, user)
		errutil.AssertErrorCode(t, err, "MAIL_SEND_FAILED")
	})

	t.Run("transaction failure aborts registration", func(t *testing.T) {
		svc, m := newService(t)

		m.hasher.On("Hash", params.Password).Return("salt:key", nil)
		m.tx.On("InTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).
			Return(errors.New("deadlock"))

		user, err := svc.Register(ctx, params)
		require.Error(t, err)
		assert.Nil(t, user)
		errutil.AssertErrorCode(t, err, "AUTH_REGISTER_FAILED")
	})
}

func TestService_VerifyAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("matching code activates the account", func(t *testing.T) {
		svc, m := newService(t)
		user := activeUser(account.RoleBasic)
		user.Status = account.StatusWaitingVerification
		code := "deadbeefdeadbeefdeadbeefdeadbeef"
		user.VerificationCode = &code

		m.users.On("GetByEmail", ctx, user.Email).Return(user, nil)
		m.users.On("Update", ctx, mock.MatchedBy(func(u *account.User) bool {
			return u.Status == account.StatusActive && u.VerificationCode == nil
		})).Return(nil)

		err := svc.VerifyAccount(ctx, user.Email, code)
		require.NoError(t, err)
	})

	t.Run("mismatched code is rejected", func(t *testing.T) {
		svc, m := newService(t)
		user := activeUser(account.RoleBasic)
		user.Status = account.StatusWaitingVerification
		code := "deadbeefdeadbeefdeadbeefdeadbeef"
		user.VerificationCode = &code

		m.users.On("GetByEmail", ctx, user.Email).Return(user, nil)

		err := svc.VerifyAccount(ctx, user.Email, "wrongcode")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "AUTH_INVALID_CODE")
	})

	t.Run("active account cannot be verified again", func(t *testing.T) {
		svc, m := newService(t)
		user := activeUser(account.RoleBasic)
		code := "deadbeefdeadbeefdeadbeefdeadbeef"
		user.VerificationCode = &code

		m.users.On("GetByEmail", ctx, user.Email).Return(user, nil)

		err := svc.VerifyAccount(ctx, user.Email, code)
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "USER_NOT_PENDING")
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, m := newService(t)

		m.users.On("GetByEmail", ctx, "ghost@example.com").
			Return(nil, account.ErrNotFound)

		err := svc.VerifyAccount(ctx, "ghost@example.com", "anycode")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "USER_NOT_FOUND")
	})
}
