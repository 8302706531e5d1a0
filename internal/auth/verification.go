// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"

	"github.com/samber/oops"
)

// VerificationCodeBytes is the entropy of an account verification code.
// 16 bytes = 32 hex characters.
const VerificationCodeBytes = 16

// GenerateVerificationCode creates a random account verification code.
func GenerateVerificationCode() (string, error) {
	buf := make([]byte, VerificationCodeBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", oops.Code("AUTH_CODE_GENERATE_FAILED").
			With("operation", "crypto/rand.Read").
			Wrap(err)
	}
	return hex.EncodeToString(buf), nil
}

// VerificationCodeMatches compares a submitted code with the stored one
// in constant time.
func VerificationCodeMatches(submitted, stored string) bool {
	if submitted == "" || stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(submitted), []byte(stored)) == 1
}
