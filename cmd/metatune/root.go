// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/metatune/metatune/internal/xdg"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the MetaTune CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metatune",
		Short: "MetaTune - a music catalog curation service",
		Long: `MetaTune manages a curated music catalog: genres, works, authors,
user accounts, ratings, reviews, and the editorial moderation workflow.`,
	}

	// Global flag for config file path
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (default: $XDG_CONFIG_HOME/metatune/config.yaml)")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newAccountCmd())
	cmd.AddCommand(newTaskCmd())
	cmd.AddCommand(newReviewCmd())

	return cmd
}

// resolveConfigPath returns the explicit --config value, or the default
// XDG config file if one exists. An empty result means environment-only
// configuration.
func resolveConfigPath() string {
	if configFile != "" {
		return configFile
	}
	candidate := filepath.Join(xdg.ConfigDir(), "config.yaml")
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return ""
}
