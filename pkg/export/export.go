// Package export renders a schema as SQL DDL. The emitted statements stay
// inside the grammar the ddl package accepts, so export followed by parse
// preserves tables, columns, types and key structure.
package export

import (
	"strings"

	"github.com/leapstack-labs/tablesmith/pkg/core"
)

// SQL renders CREATE TABLE statements for every table in schema order.
func SQL(s *core.Schema) string {
	var b strings.Builder
	for i, t := range s.Tables {
		if i > 0 {
			b.WriteString("\n")
		}
		writeTable(&b, t)
	}
	return b.String()
}

// TableSQL renders a single table's CREATE TABLE statement.
func TableSQL(t *core.Table) string {
	var b strings.Builder
	writeTable(&b, t)
	return b.String()
}

func writeTable(b *strings.Builder, t *core.Table) {
	b.WriteString("CREATE TABLE ")
	b.WriteString(t.Name)
	b.WriteString(" (\n")

	lines := make([]string, 0, len(t.Columns)+1)
	var fkLines []string
	for _, c := range t.Columns {
		lines = append(lines, "  "+columnDef(c))
		if c.ForeignKey != nil {
			fkLines = append(fkLines,
				"  FOREIGN KEY ("+c.Name+") REFERENCES "+
					c.ForeignKey.Table+"("+c.ForeignKey.Column+")")
		}
	}
	lines = append(lines, fkLines...)

	b.WriteString(strings.Join(lines, ",\n"))
	b.WriteString("\n);\n")
}

func columnDef(c *core.Column) string {
	parts := []string{c.Name, c.Type}
	if c.PrimaryKey {
		parts = append(parts, "PRIMARY KEY")
	}
	if c.Unique {
		parts = append(parts, "UNIQUE")
	}
	if !c.Nullable && !c.PrimaryKey {
		parts = append(parts, "NOT NULL")
	}
	if c.Default != "" {
		parts = append(parts, "DEFAULT "+c.Default)
	}
	return strings.Join(parts, " ")
}
