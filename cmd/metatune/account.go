// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

package main

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/metatune/metatune/internal/account"
	"github.com/metatune/metatune/internal/auth"
)

// registerConfig holds flags for the account register verb.
type registerConfig struct {
	name    string
	surname string
	email   string
	role    string
}

// newAccountCmd creates the account subcommand and its verbs.
func newAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage user accounts",
		Long:  `Register, verify, and authenticate MetaTune accounts.`,
	}

	cmd.AddCommand(newRegisterCmd())
	cmd.AddCommand(newVerifyCmd())
	cmd.AddCommand(newLoginCmd())

	return cmd
}

func newRegisterCmd() *cobra.Command {
	cfg := &registerConfig{}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		Long: `Register a new account in waiting-verification state and send the
verification code by mail. The password is taken from the
METATUNE_PASSWORD environment variable, or read from stdin.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			role := account.Role(cfg.role)
			if !role.Valid() {
				return oops.Code("INVALID_ARGUMENT").
					With("role", cfg.role).
					Errorf("unknown role %q", cfg.role)
			}
			password, err := readPassword(cmd)
			if err != nil {
				return err
			}

			return withApplication(cmd, func(ctx context.Context, app *application) error {
				user, err := app.Auth.Register(ctx, auth.RegisterParams{
					Name:     cfg.name,
					Surname:  cfg.surname,
					Email:    cfg.email,
					Password: password,
					Role:     role,
				})
				if err != nil {
					return err
				}
				cmd.Printf("Account %s registered, verification code sent to %s\n", user.ID, user.Email)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&cfg.name, "name", "", "given name")
	cmd.Flags().StringVar(&cfg.surname, "surname", "", "family name")
	cmd.Flags().StringVar(&cfg.email, "email", "", "email address")
	cmd.Flags().StringVar(&cfg.role, "role", account.RoleBasic.String(), "account role (basic, editor, admin)")

	return cmd
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <email> <code>",
		Short: "Verify a registered account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd, func(ctx context.Context, app *application) error {
				if err := app.Auth.VerifyAccount(ctx, args[0], args[1]); err != nil {
					return err
				}
				cmd.Printf("Account %s verified\n", args[0])
				return nil
			})
		},
	}
}

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <email>",
		Short: "Authenticate an account",
		Long: `Authenticate against the stored credentials and print the account's
role. For editors the qualified genres are listed as well. The password
is taken from the METATUNE_PASSWORD environment variable, or read from
stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd)
			if err != nil {
				return err
			}

			return withApplication(cmd, func(ctx context.Context, app *application) error {
				user, err := app.Auth.Login(ctx, args[0], password)
				if err != nil {
					return err
				}
				cmd.Printf("Authenticated as %s (%s)\n", user.Email, user.Role)
				for _, genre := range user.Genres {
					cmd.Printf("  qualified: %s\n", genre.Name)
				}
				return nil
			})
		},
	}
}

// readPassword takes the password from METATUNE_PASSWORD, falling back to
// the first line on stdin so the secret stays out of argv.
func readPassword(cmd *cobra.Command) (string, error) {
	if password := os.Getenv("METATUNE_PASSWORD"); password != "" {
		return password, nil
	}
	cmd.Print("Password: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		if err != nil {
			return "", oops.Code("INVALID_ARGUMENT").Wrap(err)
		}
		return "", oops.Code("INVALID_ARGUMENT").Errorf("password is required")
	}
	return line, nil
}
