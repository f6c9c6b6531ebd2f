// Package commands implements the tablesmith subcommands.
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tablesmith/internal/config"
	"github.com/leapstack-labs/tablesmith/internal/state"
	"github.com/leapstack-labs/tablesmith/pkg/core"
)

type configKey struct{}

// WithConfig stores the loaded configuration in the context.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// getConfig retrieves the configuration from the command context.
func getConfig(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	cfg, err := config.Load("", nil)
	if err != nil {
		cfg = &config.Config{Workspace: ".tablesmith", Schema: "default"}
	}
	return cfg
}

// openStore opens the workspace database, creating the workspace directory
// if needed.
func openStore(cfg *config.Config) (*state.SQLiteStore, error) {
	if err := os.MkdirAll(cfg.Workspace, 0750); err != nil {
		return nil, fmt.Errorf("failed to create workspace directory: %w", err)
	}
	return state.Open(cfg.DatabasePath())
}

// loadOrEmpty loads the named schema, falling back to an empty one when it
// has not been saved yet.
func loadOrEmpty(store *state.SQLiteStore, name string) *core.Schema {
	if saved, err := store.LoadSchema(name); err == nil {
		return saved.Schema
	}
	s := core.NewSchema()
	s.Name = name
	return s
}
