package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/tablesmith/pkg/core"
	"github.com/leapstack-labs/tablesmith/pkg/ddl"
	"github.com/leapstack-labs/tablesmith/pkg/templates"
)

func TestSQLRendersConstraints(t *testing.T) {
	s := &core.Schema{Tables: []*core.Table{
		{
			Name: "orders",
			Columns: []*core.Column{
				{Name: "id", Type: "INT", PrimaryKey: true},
				{Name: "order_number", Type: "VARCHAR(50)", Unique: true, Nullable: true},
				{Name: "total", Type: "DECIMAL(10,2)", Nullable: false},
				{Name: "status", Type: "VARCHAR(50)", Nullable: true, Default: "'pending'"},
				{Name: "user_id", Type: "INT", Nullable: true,
					ForeignKey: &core.ForeignKey{Table: "users", Column: "id"}},
			},
		},
	}}

	sql := SQL(s)
	assert.Contains(t, sql, "CREATE TABLE orders (")
	assert.Contains(t, sql, "id INT PRIMARY KEY")
	assert.Contains(t, sql, "order_number VARCHAR(50) UNIQUE")
	assert.Contains(t, sql, "total DECIMAL(10,2) NOT NULL")
	assert.Contains(t, sql, "status VARCHAR(50) DEFAULT 'pending'")
	assert.Contains(t, sql, "FOREIGN KEY (user_id) REFERENCES users(id)")
	assert.Equal(t, 1, strings.Count(sql, "CREATE TABLE"))
}

// Round-trip: a schema built purely from template defaults survives
// export-then-parse with names, types and key structure intact.
func TestRoundTripThroughParser(t *testing.T) {
	s := core.NewSchema()
	for _, name := range []string{"users", "products", "orders", "order_items", "settings"} {
		s.AddTable(&core.Table{Name: name, Columns: templates.Default().Columns(name)})
	}

	parsed := ddl.Parse(SQL(s))
	require.Len(t, parsed, len(s.Tables))

	for i, want := range s.Tables {
		got := parsed[i]
		assert.Equal(t, want.Name, got.Name)
		require.Len(t, got.Columns, len(want.Columns), "table %s", want.Name)

		for j, wc := range want.Columns {
			gc := got.Columns[j]
			assert.Equal(t, wc.Name, gc.Name, "%s.%s", want.Name, wc.Name)
			assert.Equal(t, wc.Type, gc.Type, "%s.%s", want.Name, wc.Name)
			assert.Equal(t, wc.PrimaryKey, gc.PrimaryKey, "%s.%s pk", want.Name, wc.Name)
			if wc.ForeignKey == nil {
				assert.Nil(t, gc.ForeignKey, "%s.%s fk", want.Name, wc.Name)
			} else {
				require.NotNil(t, gc.ForeignKey, "%s.%s fk", want.Name, wc.Name)
				assert.Equal(t, wc.ForeignKey.Table, gc.ForeignKey.Table)
				assert.Equal(t, wc.ForeignKey.Column, gc.ForeignKey.Column)
			}
		}
	}
}
