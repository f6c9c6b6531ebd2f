package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tablesmith/pkg/core"
	"github.com/leapstack-labs/tablesmith/pkg/ddl"
	"github.com/leapstack-labs/tablesmith/pkg/export"
)

// NewImportCommand creates the DDL import command.
func NewImportCommand() *cobra.Command {
	var merge bool
	cmd := &cobra.Command{
		Use:   "import <file.sql>",
		Short: "Import CREATE TABLE statements into the active schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], merge)
		},
	}
	cmd.Flags().BoolVar(&merge, "merge", false, "merge into the existing schema instead of replacing it")
	return cmd
}

func runImport(cmd *cobra.Command, path string, merge bool) error {
	cfg := getConfig(cmd)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	tables := ddl.Parse(string(data))
	if len(tables) == 0 {
		return fmt.Errorf("no CREATE TABLE statements found in %s", path)
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	schema := core.NewSchema()
	schema.Name = cfg.Schema
	if merge {
		schema = loadOrEmpty(store, cfg.Schema)
	}

	added, replaced := 0, 0
	for _, t := range tables {
		if schema.HasTable(t.Name) {
			schema.RemoveTable(t.Name)
			replaced++
		} else {
			added++
		}
		schema.AddTable(t)
	}

	if err := store.SaveSchema(cfg.Schema, schema); err != nil {
		return fmt.Errorf("failed to save schema: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Imported %d tables into schema %q", added, cfg.Schema)
	if replaced > 0 {
		fmt.Fprintf(out, " (%d replaced)", replaced)
	}
	fmt.Fprintln(out)
	return nil
}

// NewExportCommand creates the SQL export command.
func NewExportCommand() *cobra.Command {
	var outFile string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the active schema as SQL DDL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, outFile)
		},
	}
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "write to a file instead of stdout")
	return cmd
}

func runExport(cmd *cobra.Command, outFile string) error {
	cfg := getConfig(cmd)

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	saved, err := store.LoadSchema(cfg.Schema)
	if err != nil {
		return err
	}

	sql := export.SQL(saved.Schema)
	if outFile != "" {
		if err := os.WriteFile(outFile, []byte(sql), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outFile, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d tables to %s\n", len(saved.Schema.Tables), outFile)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), sql)
	return nil
}
