// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

package mail_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/metatune/metatune/internal/mail"
	"github.com/metatune/metatune/pkg/errutil"
)

func validConfig() mail.Config {
	return mail.Config{
		Host: "smtp.example.com",
		Port: 587,
		From: "noreply@example.com",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*mail.Config)
	}{
		{name: "missing host", mutate: func(c *mail.Config) { c.Host = "" }},
		{name: "zero port", mutate: func(c *mail.Config) { c.Port = 0 }},
		{name: "port out of range", mutate: func(c *mail.Config) { c.Port = 70000 }},
		{name: "missing from", mutate: func(c *mail.Config) { c.From = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			errutil.AssertErrorCode(t, err, "MAIL_CONFIG_INVALID")
		})
	}

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, validConfig().Validate())
	})
}

func TestNewSMTPMailer(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		mailer, err := mail.NewSMTPMailer(validConfig())
		require.NoError(t, err)
		require.NotNil(t, mailer)
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := validConfig()
		cfg.Host = ""

		_, err := mail.NewSMTPMailer(cfg)
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "MAIL_CONFIG_INVALID")
	})

	t.Run("auth options accepted", func(t *testing.T) {
		cfg := validConfig()
		cfg.Username = "mailer"
		cfg.Password = "secret"

		mailer, err := mail.NewSMTPMailer(cfg)
		require.NoError(t, err)
		require.NotNil(t, mailer)
	})
}
