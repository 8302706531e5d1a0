// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

// Package auth provides credential handling, login, registration, and
// account verification for MetaTune.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"github.com/samber/oops"
	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2 parameters. Iteration count follows the current OWASP
// recommendation for PBKDF2-SHA256.
const (
	pbkdf2Iterations = 210_000
	pbkdf2SaltLen    = 16 // salt length in bytes
	pbkdf2KeyLen     = 32 // derived key length in bytes
)

// ErrEmptyPassword is returned when attempting to hash an empty password.
var ErrEmptyPassword = oops.Code("AUTH_EMPTY_PASSWORD").Errorf("password cannot be empty")

// PasswordHasher provides password hashing and verification.
type PasswordHasher interface {
	// Hash produces a salted PBKDF2 hash of the password.
	Hash(password string) (string, error)

	// Verify checks if the password matches the stored hash. It fails
	// closed: malformed stored values yield false, never an error.
	Verify(password, stored string) bool
}

// PBKDF2Hasher implements PasswordHasher using PBKDF2-SHA256. The stored
// format is base64(salt):base64(key), both standard encoding.
type PBKDF2Hasher struct{}

// NewPBKDF2Hasher creates a new PBKDF2Hasher.
func NewPBKDF2Hasher() *PBKDF2Hasher {
	return &PBKDF2Hasher{}
}

// Hash produces a salted PBKDF2 hash of the password.
func (h *PBKDF2Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	salt := make([]byte, pbkdf2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", oops.Code("AUTH_SALT_FAILED").Wrap(err)
	}

	key := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, pbkdf2KeyLen, sha256.New)

	return base64.StdEncoding.EncodeToString(salt) + ":" + base64.StdEncoding.EncodeToString(key), nil
}

// Verify checks if the password matches the stored hash.
//
// Returns false for empty inputs, for stored values without exactly one
// colon, and for segments that are not valid base64. On well-formed input
// the key is re-derived with the stored salt and compared in constant time.
func (h *PBKDF2Hasher) Verify(password, stored string) bool {
	if password == "" || stored == "" {
		return false
	}

	parts := strings.Split(stored, ":")
	if len(parts) != 2 {
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}
	expected, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}

	// Always derive the full key length; a stored segment of any other
	// length can never match.
	computed := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, pbkdf2KeyLen, sha256.New)
	return subtle.ConstantTimeCompare(computed, expected) == 1
}
