package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tablesmith/internal/state"
	"github.com/leapstack-labs/tablesmith/pkg/chat"
	"github.com/leapstack-labs/tablesmith/pkg/core"
)

// NewExecCommand creates the one-shot exec command.
func NewExecCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "exec <command...>",
		Short: "Run a single command against the active schema",
		Example: `  tablesmith exec "create tables users, products, orders"
  tablesmith exec add email column to users`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(cmd, strings.Join(args, " "))
		},
	}
}

func runExec(cmd *cobra.Command, text string) error {
	cfg := getConfig(cmd)

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	schema := loadOrEmpty(store, cfg.Schema)
	sess := core.NewSession()

	schema, resp := chat.New().Execute(schema, text, sess)
	if err := store.SaveSchema(cfg.Schema, schema); err != nil {
		return fmt.Errorf("failed to save schema: %w", err)
	}
	_ = store.AppendMessage(cfg.Schema, state.RoleUser, text)
	_ = store.AppendMessage(cfg.Schema, state.RoleAssistant, resp)

	fmt.Fprintln(cmd.OutOrStdout(), resp)
	return nil
}
