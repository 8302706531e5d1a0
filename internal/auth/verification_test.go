// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

package auth_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metatune/metatune/internal/auth"
)

func TestGenerateVerificationCode(t *testing.T) {
	code, err := auth.GenerateVerificationCode()
	require.NoError(t, err)
	assert.Len(t, code, auth.VerificationCodeBytes*2)

	_, err = hex.DecodeString(code)
	assert.NoError(t, err)

	other, err := auth.GenerateVerificationCode()
	require.NoError(t, err)
	assert.NotEqual(t, code, other)
}

func TestVerificationCodeMatches(t *testing.T) {
	assert.True(t, auth.VerificationCodeMatches("abc123", "abc123"))
	assert.False(t, auth.VerificationCodeMatches("abc123", "abc124"))
	assert.False(t, auth.VerificationCodeMatches("", "abc123"))
	assert.False(t, auth.VerificationCodeMatches("abc123", ""))
	assert.False(t, auth.VerificationCodeMatches("", ""))
}
