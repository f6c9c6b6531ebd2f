package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tablesmith/pkg/categorize"
	"github.com/leapstack-labs/tablesmith/pkg/core"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tables in the active schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if all {
				return runListSchemas(cmd)
			}
			return runListTables(cmd)
		},
	}
	cmd.Flags().BoolVar(&all, "schemas", false, "list saved schemas instead of tables")
	return cmd
}

func runListTables(cmd *cobra.Command) error {
	cfg := getConfig(cmd)

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	schema := loadOrEmpty(store, cfg.Schema)
	if len(schema.Tables) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Schema %q is empty.\n", cfg.Schema)
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Table", "Columns", "Foreign Keys", "Category"})

	for _, tbl := range schema.Tables {
		fks := 0
		for _, c := range tbl.Columns {
			if c.ForeignKey != nil {
				fks++
			}
		}
		catName := ""
		if cat, ok := schema.Category(tbl.Category); ok {
			catName = cat.Name
		}
		t.AppendRow(table.Row{tbl.Name, len(tbl.Columns), fks, catName})
	}
	t.Render()
	return nil
}

func runListSchemas(cmd *cobra.Command) error {
	cfg := getConfig(cmd)

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	schemas, err := store.ListSchemas()
	if err != nil {
		return err
	}
	if len(schemas) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No saved schemas.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Schema", "Updated"})
	for _, s := range schemas {
		t.AppendRow(table.Row{s.Name, s.UpdatedAt.Format("2006-01-02 15:04")})
	}
	t.Render()
	return nil
}

// NewDescribeCommand creates the describe command.
func NewDescribeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <table>",
		Short: "Show the columns of one table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDescribe(cmd, args[0])
		},
	}
}

func runDescribe(cmd *cobra.Command, name string) error {
	cfg := getConfig(cmd)

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	schema := loadOrEmpty(store, cfg.Schema)
	tbl, ok := schema.Table(name)
	if !ok {
		return fmt.Errorf("table %q not found in schema %q", name, cfg.Schema)
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Column", "Type", "Nullable", "Constraints"})

	for _, c := range tbl.Columns {
		nullable := "YES"
		if !c.Nullable {
			nullable = "NO"
		}
		t.AppendRow(table.Row{c.Name, c.Type, nullable, describeConstraints(c)})
	}
	t.Render()
	return nil
}

func describeConstraints(c *core.Column) string {
	out := ""
	if c.PrimaryKey {
		out += "PRIMARY KEY "
	}
	if c.Unique {
		out += "UNIQUE "
	}
	if c.Default != "" {
		out += "DEFAULT " + c.Default + " "
	}
	if c.ForeignKey != nil {
		out += fmt.Sprintf("-> %s.%s", c.ForeignKey.Table, c.ForeignKey.Column)
	}
	return out
}

// NewCategorizeCommand creates the auto-categorize command.
func NewCategorizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categorize",
		Short: "Organize the active schema's tables into categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCategorize(cmd)
		},
	}
}

func runCategorize(cmd *cobra.Command) error {
	cfg := getConfig(cmd)

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	schema := loadOrEmpty(store, cfg.Schema)
	res := categorize.Run(schema)
	if !res.Changed() {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to categorize.")
		return nil
	}
	if err := store.SaveSchema(cfg.Schema, schema); err != nil {
		return fmt.Errorf("failed to save schema: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Categorized %d tables", len(res.Assigned))
	if len(res.Created) > 0 {
		fmt.Fprintf(out, ", created %d categories", len(res.Created))
	}
	fmt.Fprintln(out, ".")
	return nil
}
