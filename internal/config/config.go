// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

// Package config loads process configuration from an optional YAML file
// and METATUNE_-prefixed environment variables. Environment values
// override file values. Required settings are validated at load time so
// the process fails fast on incomplete configuration.
package config

import (
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"

	"github.com/metatune/metatune/internal/mail"
)

// envPrefix namespaces MetaTune environment variables.
// METATUNE_DATABASE_URL maps to key "database.url", and so on.
const envPrefix = "METATUNE_"

// Defaults.
const (
	DefaultLogFormat   = "json"
	DefaultMetricsAddr = "127.0.0.1:9100"
)

// Config holds all process configuration.
type Config struct {
	// DatabaseURL is the PostgreSQL connection string.
	DatabaseURL string

	// LogFormat is "json" or "text".
	LogFormat string

	// MetricsAddr is the observability HTTP listen address
	// (empty disables the server).
	MetricsAddr string

	// SMTP configures the verification mail transport.
	SMTP mail.Config
}

// Load reads configuration from the optional YAML file at path and from
// the environment, then validates it.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_FILE_FAILED").With("path", path).Wrap(err)
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, oops.Code("CONFIG_ENV_FAILED").Wrap(err)
	}

	cfg := &Config{
		DatabaseURL: k.String("database.url"),
		LogFormat:   k.String("log.format"),
		MetricsAddr: k.String("metrics.addr"),
		SMTP: mail.Config{
			Host:     k.String("smtp.host"),
			Port:     k.Int("smtp.port"),
			Username: k.String("smtp.username"),
			Password: k.String("smtp.password"),
			From:     k.String("smtp.from"),
		},
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = DefaultLogFormat
	}
	if cfg.MetricsAddr == "" {
		cfg.MetricsAddr = DefaultMetricsAddr
	}
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = 587
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required settings are present.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("database.url is required (METATUNE_DATABASE_URL)")
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return oops.Code("CONFIG_INVALID").Errorf("log.format must be 'json' or 'text', got %q", c.LogFormat)
	}
	if err := c.SMTP.Validate(); err != nil {
		return err
	}
	return nil
}
