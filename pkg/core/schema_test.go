package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() *Schema {
	return &Schema{
		Tables: []*Table{
			{
				Name: "users",
				Columns: []*Column{
					{Name: "id", Type: "INT", PrimaryKey: true},
					{Name: "email", Type: "VARCHAR(255)", Unique: true, Nullable: true},
				},
			},
			{
				Name: "orders",
				Columns: []*Column{
					{Name: "id", Type: "INT", PrimaryKey: true},
					{Name: "user_id", Type: "INT", Nullable: true,
						ForeignKey: &ForeignKey{Table: "users", Column: "id"}},
				},
			},
		},
	}
}

func TestSchemaCloneIsDeep(t *testing.T) {
	s := testSchema()
	cp := s.Clone()

	cp.Tables[0].Name = "accounts"
	cp.Tables[1].Columns[1].ForeignKey.Table = "accounts"

	assert.Equal(t, "users", s.Tables[0].Name)
	assert.Equal(t, "users", s.Tables[1].Columns[1].ForeignKey.Table)
}

func TestRemoveTableStripsForeignKeys(t *testing.T) {
	s := testSchema()
	require.True(t, s.RemoveTable("users"))

	require.Len(t, s.Tables, 1)
	for _, tbl := range s.Tables {
		for _, col := range tbl.Columns {
			if col.ForeignKey != nil {
				assert.NotEqual(t, "users", col.ForeignKey.Table)
			}
		}
	}
}

func TestRenameTableRewritesReferences(t *testing.T) {
	s := testSchema()
	require.True(t, s.RenameTable("users", "accounts"))

	col, ok := s.Tables[1].Column("user_id")
	require.True(t, ok)
	require.NotNil(t, col.ForeignKey)
	assert.Equal(t, "accounts", col.ForeignKey.Table)
}

func TestTableLookupFallbacks(t *testing.T) {
	s := testSchema()

	tests := []struct {
		query string
		want  string
	}{
		{"users", "users"},
		{"USERS", "users"},
		{"user", "users"},   // plural-insensitive
		{"order", "orders"}, // plural-insensitive
		{"use", "users"},    // substring
	}
	for _, tt := range tests {
		tbl, ok := s.Table(tt.query)
		require.True(t, ok, "lookup %q", tt.query)
		assert.Equal(t, tt.want, tbl.Name, "lookup %q", tt.query)
	}

	_, ok := s.Table("payments")
	assert.False(t, ok)
}

func TestRemoveCategoryClearsMembers(t *testing.T) {
	s := testSchema()
	cat := NewCategory("Commerce", "#f59e0b")
	s.Categories = append(s.Categories, cat)
	s.Tables[1].Category = cat.ID

	require.True(t, s.RemoveCategory(cat.ID))
	assert.Empty(t, s.Categories)
	assert.Empty(t, s.Tables[1].Category)
	assert.Len(t, s.Tables, 2, "tables must survive category deletion")
}

func TestColumnNullableDefaultsOnLoad(t *testing.T) {
	doc := `{"tables":[{"name":"t","columns":[
		{"name":"id","type":"INT","primaryKey":true},
		{"name":"note","type":"TEXT"},
		{"name":"code","type":"INT","nullable":false}
	]}]}`

	var s Schema
	require.NoError(t, json.Unmarshal([]byte(doc), &s))

	cols := s.Tables[0].Columns
	assert.False(t, cols[0].Nullable, "pk defaults to not nullable")
	assert.True(t, cols[1].Nullable, "plain column defaults to nullable")
	assert.False(t, cols[2].Nullable, "explicit nullable=false preserved")
}

func TestSessionTouchDedupAndCap(t *testing.T) {
	sess := NewSession()
	sess.Touch("users")
	sess.Touch("orders", "products")
	sess.Touch("users")

	require.Equal(t, []string{"users", "orders", "products"}, sess.Recent)

	for i := 0; i < 15; i++ {
		sess.Touch(string(rune('a'+i)) + "x")
	}
	assert.Len(t, sess.Recent, MaxRecentTables)
}

func TestSingularizePluralize(t *testing.T) {
	tests := []struct{ plural, singular string }{
		{"users", "user"},
		{"categories", "category"},
		{"boxes", "box"},
		{"addresses", "address"},
		{"order_items", "order_item"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.singular, Singularize(tt.plural))
		assert.Equal(t, tt.plural, Pluralize(tt.singular))
	}
}
