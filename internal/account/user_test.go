// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

package account_test

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metatune/metatune/internal/account"
	"github.com/metatune/metatune/pkg/errutil"
)

const testHash = "c2FsdA==:a2V5"

func TestNewUser(t *testing.T) {
	id := ulid.Make()
	personID := ulid.Make()

	t.Run("defaults to waiting verification", func(t *testing.T) {
		user, err := account.NewUser(id, personID, "Nina", "Simone", "nina@example.com", testHash, account.RoleBasic)
		require.NoError(t, err)
		assert.Equal(t, account.StatusWaitingVerification, user.Status)
		assert.True(t, user.ShowReviews)
		assert.False(t, user.ShowEmail)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		user, err := account.NewUser(id, personID, "Nina", "Simone", "nina@example.com", testHash, account.Role("superuser"))
		require.Error(t, err)
		assert.Nil(t, user)
		errutil.AssertErrorCode(t, err, "USER_INVALID_ROLE")
	})

	t.Run("rejects empty password hash", func(t *testing.T) {
		user, err := account.NewUser(id, personID, "Nina", "Simone", "nina@example.com", "", account.RoleBasic)
		require.Error(t, err)
		assert.Nil(t, user)
		errutil.AssertErrorCode(t, err, "USER_INVALID_PASSWORD_HASH")
	})

	t.Run("rejects blank name", func(t *testing.T) {
		user, err := account.NewUser(id, personID, "   ", "Simone", "nina@example.com", testHash, account.RoleBasic)
		require.Error(t, err)
		assert.Nil(t, user)
		errutil.AssertErrorCode(t, err, "USER_INVALID_NAME")
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		user, err := account.NewUser(id, personID, "Nina", "Simone", "not-an-email", testHash, account.RoleBasic)
		require.Error(t, err)
		assert.Nil(t, user)
		errutil.AssertErrorCode(t, err, "USER_INVALID_EMAIL")
	})
}

func TestUser_SetEmail(t *testing.T) {
	user, err := account.NewUser(ulid.Make(), ulid.Make(), "Nina", "Simone", "nina@example.com", testHash, account.RoleBasic)
	require.NoError(t, err)

	require.NoError(t, user.SetEmail("nina.simone@example.com"))
	assert.Equal(t, "nina.simone@example.com", user.Email)

	err = user.SetEmail("Nina Simone <nina@example.com>")
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "USER_INVALID_EMAIL")
}

func TestUser_IsEditor(t *testing.T) {
	editor, err := account.NewUser(ulid.Make(), ulid.Make(), "Ed", "Itor", "ed@example.com", testHash, account.RoleEditor)
	require.NoError(t, err)
	assert.True(t, editor.IsEditor())

	admin, err := account.NewUser(ulid.Make(), ulid.Make(), "Ad", "Min", "ad@example.com", testHash, account.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, admin.IsEditor())
}

func TestUser_IsLocked(t *testing.T) {
	user, err := account.NewUser(ulid.Make(), ulid.Make(), "Nina", "Simone", "nina@example.com", testHash, account.RoleBasic)
	require.NoError(t, err)

	assert.False(t, user.IsLocked())

	past := time.Now().Add(-time.Minute)
	user.LockedUntil = &past
	assert.False(t, user.IsLocked())

	future := time.Now().Add(time.Minute)
	user.LockedUntil = &future
	assert.True(t, user.IsLocked())
}

func TestUser_Activate(t *testing.T) {
	t.Run("clears verification code", func(t *testing.T) {
		user, err := account.NewUser(ulid.Make(), ulid.Make(), "Nina", "Simone", "nina@example.com", testHash, account.RoleBasic)
		require.NoError(t, err)
		code := "deadbeef"
		user.VerificationCode = &code

		require.NoError(t, user.Activate())
		assert.Equal(t, account.StatusActive, user.Status)
		assert.Nil(t, user.VerificationCode)
	})

	t.Run("rejects non-pending states", func(t *testing.T) {
		for _, status := range []account.Status{
			account.StatusActive,
			account.StatusDeactivated,
			account.StatusBanned,
		} {
			user, err := account.NewUser(ulid.Make(), ulid.Make(), "Nina", "Simone", "nina@example.com", testHash, account.RoleBasic)
			require.NoError(t, err)
			user.Status = status

			err = user.Activate()
			require.Error(t, err, "status=%s", status)
			errutil.AssertErrorCode(t, err, "USER_NOT_PENDING")
		}
	})
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, account.RoleBasic.Valid())
	assert.True(t, account.RoleEditor.Valid())
	assert.True(t, account.RoleAdmin.Valid())
	assert.False(t, account.Role("root").Valid())
	assert.False(t, account.Role("").Valid())
}

func TestStatus_Valid(t *testing.T) {
	assert.True(t, account.StatusActive.Valid())
	assert.True(t, account.StatusWaitingVerification.Valid())
	assert.False(t, account.Status("frozen").Valid())
}
