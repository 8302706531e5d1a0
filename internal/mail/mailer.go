// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

// Package mail sends account-lifecycle mail over SMTP.
package mail

import (
	"context"
	"fmt"

	"github.com/samber/oops"
	gomail "github.com/wneessen/go-mail"
)

// Config holds SMTP transport settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Validate checks that the configuration is complete.
func (c Config) Validate() error {
	if c.Host == "" {
		return oops.Code("MAIL_CONFIG_INVALID").Errorf("smtp host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return oops.Code("MAIL_CONFIG_INVALID").Errorf("smtp port %d out of range", c.Port)
	}
	if c.From == "" {
		return oops.Code("MAIL_CONFIG_INVALID").Errorf("from address is required")
	}
	return nil
}

// SMTPMailer sends mail through an SMTP server. Sends are synchronous;
// transport failures surface to the caller.
type SMTPMailer struct {
	client *gomail.Client
	from   string
}

// NewSMTPMailer creates an SMTPMailer from the given configuration.
func NewSMTPMailer(cfg Config) (*SMTPMailer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, oops.Code("MAIL_CLIENT_FAILED").With("host", cfg.Host).Wrap(err)
	}

	return &SMTPMailer{client: client, from: cfg.From}, nil
}

// SendVerification delivers an account verification code.
func (m *SMTPMailer) SendVerification(ctx context.Context, email, code string) error {
	subject := "Verify your MetaTune account"
	body := fmt.Sprintf(
		"Welcome to MetaTune!\n\nYour verification code is:\n\n    %s\n\nIf you did not create this account, ignore this message.\n",
		code,
	)
	return m.send(ctx, email, subject, body)
}

// send builds and delivers a plain-text message.
func (m *SMTPMailer) send(ctx context.Context, to, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return oops.Code("MAIL_SEND_FAILED").With("operation", "set from").Wrap(err)
	}
	if err := msg.To(to); err != nil {
		return oops.Code("MAIL_SEND_FAILED").With("operation", "set recipient").Wrap(err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return oops.Code("MAIL_SEND_FAILED").
			With("operation", "dial and send").
			With("host", m.client.ServerAddr()).
			Wrap(err)
	}
	return nil
}
