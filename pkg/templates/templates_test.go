package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/tablesmith/pkg/core"
)

func TestColumnsExactMatch(t *testing.T) {
	cols := Default().Columns("user")

	require.NotEmpty(t, cols)
	assert.Equal(t, "id", cols[0].Name)
	assert.True(t, cols[0].PrimaryKey)
	assert.False(t, cols[0].Nullable)

	names := columnNames(cols)
	assert.Contains(t, names, "email")
	assert.Contains(t, names, "created_at")
}

func TestColumnsPluralVariant(t *testing.T) {
	users := Default().Columns("users")
	user := Default().Columns("user")
	assert.Equal(t, columnNames(user), columnNames(users))

	categories := Default().Columns("categories")
	assert.Contains(t, columnNames(categories), "name")
}

func TestColumnsSubstringMatch(t *testing.T) {
	// "admin_user" has no archetype but contains "user".
	cols := Default().Columns("admin_user")
	assert.Contains(t, columnNames(cols), "email")
}

func TestColumnsFallbackNeverEmpty(t *testing.T) {
	cols := Default().Columns("zzz_definitely_unknown")

	require.Len(t, cols, 4)
	assert.Equal(t, []string{"id", "name", "created_at", "updated_at"}, columnNames(cols))
	assert.True(t, cols[0].PrimaryKey)
}

func TestColumnsAreDeepCopies(t *testing.T) {
	first := Default().Columns("order")
	for _, c := range first {
		c.PrimaryKey = true
		if c.ForeignKey != nil {
			c.ForeignKey.Table = "mutated"
		}
	}

	second := Default().Columns("order")
	pks := 0
	for _, c := range second {
		if c.PrimaryKey {
			pks++
		}
		if c.ForeignKey != nil {
			assert.NotEqual(t, "mutated", c.ForeignKey.Table)
		}
	}
	assert.Equal(t, 1, pks, "mutating a returned set must not leak into the library")
}

func TestForeignKeysInArchetypes(t *testing.T) {
	cols := Default().Columns("order_item")

	var fkTables []string
	for _, c := range cols {
		if c.ForeignKey != nil {
			fkTables = append(fkTables, c.ForeignKey.Table)
		}
	}
	assert.ElementsMatch(t, []string{"orders", "products"}, fkTables)
}

func TestLoadRejectsEmptyArchetype(t *testing.T) {
	_, err := Load([]byte("templates:\n  ghost: []\n"))
	assert.Error(t, err)
}

func columnNames(cols []*core.Column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}
