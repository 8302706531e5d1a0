// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

// Package auth provides credential handling for MetaTune.
//
// # Credentials
//
// PBKDF2Hasher derives salted PBKDF2-SHA256 hashes in the stored format
// base64(salt):base64(key). Verify fails closed: any malformed stored
// value yields false rather than an error.
//
// # Services
//
// Service coordinates the account lifecycle:
//   - Login - email/password authentication with editor genre hydration
//   - Register - atomic person+user creation plus verification mail
//   - VerifyAccount - activates a waiting-verification account
//
// Repositories, the mailer, and the transactor are constructor-injected
// interfaces; NewService validates all dependencies.
package auth
