package categorize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/tablesmith/pkg/core"
)

func table(name string, cols ...*core.Column) *core.Table {
	return &core.Table{Name: name, Columns: cols}
}

func col(name string) *core.Column {
	return &core.Column{Name: name, Type: "VARCHAR(255)", Nullable: true}
}

func fkCol(name, refTable string) *core.Column {
	return &core.Column{Name: name, Type: "INT", Nullable: true,
		ForeignKey: &core.ForeignKey{Table: refTable, Column: "id"}}
}

func TestSemanticScoring(t *testing.T) {
	s := &core.Schema{Tables: []*core.Table{
		table("users", col("email"), col("password_hash")),
		table("sessions", fkCol("user_id", "users"), col("token")),
		table("products", col("price"), col("stock")),
	}}

	res := Run(s)
	require.True(t, res.Changed())

	users, _ := s.Table("users")
	sessions, _ := s.Table("sessions")
	products, _ := s.Table("products")

	authCat, ok := s.CategoryByName("Users & Auth")
	require.True(t, ok)
	assert.Equal(t, authCat.ID, users.Category)
	assert.Equal(t, authCat.ID, sessions.Category)

	catalogCat, ok := s.CategoryByName("Products & Catalog")
	require.True(t, ok)
	assert.Equal(t, catalogCat.ID, products.Category)

	assert.NotEmpty(t, authCat.Color)
	assert.NotEmpty(t, authCat.Icon)
}

func TestGraphFallbackGroupsConnectedTables(t *testing.T) {
	// Names chosen so no semantic group clears the threshold.
	s := &core.Schema{Tables: []*core.Table{
		table("alpha", col("x")),
		table("beta", fkCol("alpha_id", "alpha")),
		table("gamma", fkCol("beta_id", "beta")),
		table("lonely", col("y")),
	}}

	res := Run(s)
	require.True(t, res.Changed())

	alpha, _ := s.Table("alpha")
	beta, _ := s.Table("beta")
	gamma, _ := s.Table("gamma")
	lonely, _ := s.Table("lonely")

	require.NotEmpty(t, alpha.Category)
	assert.Equal(t, alpha.Category, beta.Category)
	assert.Equal(t, alpha.Category, gamma.Category)
	assert.Empty(t, lonely.Category, "isolated singleton stays uncategorized")
}

func TestUncategorizedTableInheritsNeighborCategory(t *testing.T) {
	s := &core.Schema{Tables: []*core.Table{
		table("zones", col("x")),
		table("zone_entries", fkCol("zone_id", "zones")),
	}}
	cat := core.NewCategory("Manual", "#444444")
	s.Categories = append(s.Categories, cat)
	s.Tables[0].Category = cat.ID

	res := Run(s)
	require.True(t, res.Changed())

	entries, _ := s.Table("zone_entries")
	assert.Equal(t, cat.ID, entries.Category, "edge to categorized table inherits, no new group")
	assert.Empty(t, res.Created)
}

func TestRunIsIdempotent(t *testing.T) {
	s := &core.Schema{Tables: []*core.Table{
		table("users", col("email"), col("password_hash")),
		table("alpha", col("x")),
		table("beta", fkCol("alpha_id", "alpha")),
		table("lonely", col("y")),
	}}

	first := Run(s)
	require.True(t, first.Changed())
	categoriesAfterFirst := len(s.Categories)

	second := Run(s)
	assert.False(t, second.Changed(), "second run must report no change")
	assert.Empty(t, second.Created)
	assert.Len(t, s.Categories, categoriesAfterFirst)
}

func TestScoreWeights(t *testing.T) {
	groups := Groups()
	require.NotEmpty(t, groups)

	var auth Group
	for _, g := range groups {
		if g.Key == "auth" {
			auth = g
		}
	}
	require.NotEmpty(t, auth.Name)

	named := table("users", col("email"))
	unnamed := table("widgets", col("email"))

	assert.Greater(t, Score(named, auth), scoreThreshold)
	assert.Less(t, Score(unnamed, auth), scoreThreshold,
		"column hints alone must not clear the threshold")
}
