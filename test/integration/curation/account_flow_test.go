// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

//go:build integration

package curation_test

import (
	"errors"

	"github.com/oklog/ulid/v2"
	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/metatune/metatune/internal/account"
	"github.com/metatune/metatune/internal/auth"
)

var _ = Describe("Account lifecycle", func() {
	Describe("Registration", func() {
		It("rejects weak passwords", func() {
			_, err := env.Auth.Register(env.ctx, auth.RegisterParams{
				Name:     "Weak",
				Surname:  "Password",
				Email:    uniqueEmail("weak"),
				Password: "short",
				Role:     account.RoleBasic,
			})
			Expect(err).To(HaveOccurred())
			Expect(errCode(err)).To(Equal("AUTH_WEAK_PASSWORD"))
		})

		It("creates a waiting-verification account and mails a code", func() {
			email := uniqueEmail("register")
			user, err := env.Auth.Register(env.ctx, auth.RegisterParams{
				Name:     "New",
				Surname:  "Listener",
				Email:    email,
				Password: strongPassword,
				Role:     account.RoleBasic,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(user.Status).To(Equal(account.StatusWaitingVerification))
			Expect(env.mailer.Code(email)).NotTo(BeEmpty())

			// Person and user rows were written in the same transaction.
			person, err := env.People.GetByID(env.ctx, user.PersonID)
			Expect(err).NotTo(HaveOccurred())
			Expect(person.Name).To(Equal("New"))
		})

		It("rejects a duplicate email", func() {
			email := uniqueEmail("duplicate")
			params := auth.RegisterParams{
				Name:     "First",
				Surname:  "Claim",
				Email:    email,
				Password: strongPassword,
				Role:     account.RoleBasic,
			}
			_, err := env.Auth.Register(env.ctx, params)
			Expect(err).NotTo(HaveOccurred())

			params.Name = "Second"
			_, err = env.Auth.Register(env.ctx, params)
			Expect(err).To(HaveOccurred())
			Expect(errCode(err)).To(Equal("AUTH_REGISTER_FAILED"))
		})
	})

	Describe("Verification", func() {
		It("rejects a mismatched code", func() {
			email := uniqueEmail("badcode")
			_, err := env.Auth.Register(env.ctx, auth.RegisterParams{
				Name:     "Bad",
				Surname:  "Code",
				Email:    email,
				Password: strongPassword,
				Role:     account.RoleBasic,
			})
			Expect(err).NotTo(HaveOccurred())

			err = env.Auth.VerifyAccount(env.ctx, email, "000000")
			Expect(err).To(HaveOccurred())
			Expect(errCode(err)).To(Equal("AUTH_INVALID_CODE"))
		})

		It("activates the account with the mailed code", func() {
			email := uniqueEmail("activate")
			user, err := env.Auth.Register(env.ctx, auth.RegisterParams{
				Name:     "Almost",
				Surname:  "Active",
				Email:    email,
				Password: strongPassword,
				Role:     account.RoleBasic,
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(env.Auth.VerifyAccount(env.ctx, email, env.mailer.Code(email))).To(Succeed())

			user, err = env.Users.GetByID(env.ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(user.Status).To(Equal(account.StatusActive))

			// A second verification has nothing left to activate.
			err = env.Auth.VerifyAccount(env.ctx, email, env.mailer.Code(email))
			Expect(err).To(HaveOccurred())
		})

		It("reports an unknown email", func() {
			err := env.Auth.VerifyAccount(env.ctx, uniqueEmail("ghost"), "000000")
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, account.ErrNotFound)).To(BeTrue())
			Expect(errCode(err)).To(Equal("USER_NOT_FOUND"))
		})
	})

	Describe("Login", func() {
		It("reports an unknown email", func() {
			_, err := env.Auth.Login(env.ctx, uniqueEmail("nobody"), strongPassword)
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, account.ErrNotFound)).To(BeTrue())
			Expect(errCode(err)).To(Equal("USER_NOT_FOUND"))
		})

		It("rejects a wrong password and records the failure", func() {
			user := registerActiveUser(account.RoleBasic)

			_, err := env.Auth.Login(env.ctx, user.Email, "Wr0ng$ecret")
			Expect(err).To(HaveOccurred())
			Expect(errCode(err)).To(Equal("AUTH_INVALID_CREDENTIALS"))

			user, err = env.Users.GetByID(env.ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(user.FailedAttempts).To(Equal(1))
		})

		It("locks the account after repeated failures", func() {
			user := registerActiveUser(account.RoleBasic)

			for range auth.LockoutThreshold {
				_, err := env.Auth.Login(env.ctx, user.Email, "Wr0ng$ecret")
				Expect(errCode(err)).To(Equal("AUTH_INVALID_CREDENTIALS"))
			}

			// Even the correct password is refused while locked.
			_, err := env.Auth.Login(env.ctx, user.Email, strongPassword)
			Expect(err).To(HaveOccurred())
			Expect(errCode(err)).To(Equal("AUTH_ACCOUNT_LOCKED"))
		})

		It("resets failure bookkeeping on success", func() {
			user := registerActiveUser(account.RoleBasic)

			_, err := env.Auth.Login(env.ctx, user.Email, "Wr0ng$ecret")
			Expect(errCode(err)).To(Equal("AUTH_INVALID_CREDENTIALS"))

			loggedIn, err := env.Auth.Login(env.ctx, user.Email, strongPassword)
			Expect(err).NotTo(HaveOccurred())
			Expect(loggedIn.ID).To(Equal(user.ID))

			user, err = env.Users.GetByID(env.ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(user.FailedAttempts).To(BeZero())
			Expect(user.LockedUntil).To(BeNil())
		})

		It("hydrates an editor's qualified genres", func() {
			editor := registerActiveUser(account.RoleEditor)
			jazz := createTestGenre("jazz")
			blues := createTestGenre("blues")
			Expect(env.Users.ReplaceQualifications(env.ctx, editor.ID,
				[]ulid.ULID{jazz.ID, blues.ID})).To(Succeed())

			loggedIn, err := env.Auth.Login(env.ctx, editor.Email, strongPassword)
			Expect(err).NotTo(HaveOccurred())

			names := make([]string, 0, len(loggedIn.Genres))
			for _, g := range loggedIn.Genres {
				names = append(names, g.Name)
			}
			Expect(names).To(ConsistOf(jazz.Name, blues.Name))
		})

		It("does not hydrate genres for basic users", func() {
			user := registerActiveUser(account.RoleBasic)

			loggedIn, err := env.Auth.Login(env.ctx, user.Email, strongPassword)
			Expect(err).NotTo(HaveOccurred())
			Expect(loggedIn.Genres).To(BeEmpty())
		})
	})
})
