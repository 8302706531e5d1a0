// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/metatune/metatune/internal/store"
)

// DatabaseStatus holds the health information reported by status.
type DatabaseStatus struct {
	Reachable        bool   `json:"reachable"`
	MigrationVersion uint   `json:"migration_version,omitempty"`
	Dirty            bool   `json:"dirty,omitempty"`
	Error            string `json:"error,omitempty"`
}

// statusConfig holds configuration for the status command.
type statusConfig struct {
	jsonOutput bool
}

// newStatusCmd creates the status subcommand with all flags configured.
func newStatusCmd() *cobra.Command {
	cfg := &statusConfig{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show database health and migration state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, cfg)
		},
	}

	cmd.Flags().BoolVar(&cfg.jsonOutput, "json", false, "output status as JSON")

	return cmd
}

func runStatus(cmd *cobra.Command, cfg *statusConfig) error {
	status := queryDatabaseStatus(cmd.Context())

	var output string
	var err error
	if cfg.jsonOutput {
		output, err = formatStatusJSON(status)
		if err != nil {
			return err
		}
	} else {
		output = formatStatusTable(status)
	}

	cmd.Println(output)
	return nil
}

// queryDatabaseStatus pings the database and reads the migration version.
func queryDatabaseStatus(ctx context.Context) DatabaseStatus {
	var status DatabaseStatus

	databaseURL, err := resolveDatabaseURL()
	if err != nil {
		status.Error = err.Error()
		return status
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := store.Open(ctx, databaseURL)
	if err != nil {
		status.Error = err.Error()
		return status
	}
	defer pool.Close()
	status.Reachable = true

	migrator, err := store.NewMigrator(databaseURL)
	if err != nil {
		status.Error = err.Error()
		return status
	}
	defer migrator.Close() //nolint:errcheck // status is read-only

	version, dirty, err := migrator.Version()
	if err != nil {
		status.Error = err.Error()
		return status
	}
	status.MigrationVersion = version
	status.Dirty = dirty
	return status
}

func formatStatusJSON(status DatabaseStatus) (string, error) {
	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to format JSON: %w", err)
	}
	return string(data), nil
}

func formatStatusTable(status DatabaseStatus) string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)

	fmt.Fprintf(w, "DATABASE\tVERSION\tDIRTY\tERROR\n")
	reachable := "unreachable"
	if status.Reachable {
		reachable = "ok"
	}
	errText := "-"
	if status.Error != "" {
		errText = status.Error
	}
	fmt.Fprintf(w, "%s\t%d\t%t\t%s\n", reachable, status.MigrationVersion, status.Dirty, errText)

	_ = w.Flush() //nolint:errcheck // writes to in-memory buffer
	return buf.String()
}
