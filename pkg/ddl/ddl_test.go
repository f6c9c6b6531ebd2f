package ddl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTableLevelPrimaryKey(t *testing.T) {
	tables := Parse(`CREATE TABLE t (a INT, b DECIMAL(10,2), PRIMARY KEY(a))`)

	require.Len(t, tables, 1)
	tbl := tables[0]
	assert.Equal(t, "t", tbl.Name)
	require.Len(t, tbl.Columns, 2)

	a := tbl.Columns[0]
	assert.True(t, a.PrimaryKey)
	assert.False(t, a.Nullable)

	b := tbl.Columns[1]
	assert.Equal(t, "DECIMAL(10,2)", b.Type, "precision comma must not split the clause")
	assert.False(t, b.PrimaryKey)
}

func TestParseInlineModifiers(t *testing.T) {
	tables := Parse(`CREATE TABLE users (
		id INT PRIMARY KEY AUTO_INCREMENT,
		email VARCHAR(255) NOT NULL UNIQUE,
		bio TEXT,
		status VARCHAR(50) DEFAULT 'active',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)

	require.Len(t, tables, 1)
	cols := tables[0].Columns
	require.Len(t, cols, 5)

	assert.True(t, cols[0].PrimaryKey)
	assert.False(t, cols[0].Nullable)

	assert.True(t, cols[1].Unique)
	assert.False(t, cols[1].Nullable)

	assert.True(t, cols[2].Nullable)
	assert.Equal(t, "'active'", cols[3].Default)
	assert.Equal(t, "CURRENT_TIMESTAMP", cols[4].Default)
}

func TestParseForeignKeys(t *testing.T) {
	tables := Parse(`
		CREATE TABLE orders (
			id INT PRIMARY KEY,
			user_id INT REFERENCES users(id),
			product_id INT,
			FOREIGN KEY (product_id) REFERENCES products (id)
		);`)

	require.Len(t, tables, 1)
	tbl := tables[0]

	userID, ok := tbl.Column("user_id")
	require.True(t, ok)
	require.NotNil(t, userID.ForeignKey)
	assert.Equal(t, "users", userID.ForeignKey.Table)
	assert.Equal(t, "id", userID.ForeignKey.Column)

	productID, ok := tbl.Column("product_id")
	require.True(t, ok)
	require.NotNil(t, productID.ForeignKey)
	assert.Equal(t, "products", productID.ForeignKey.Table)
}

func TestParseTableLevelWinsOverInline(t *testing.T) {
	tables := Parse(`CREATE TABLE t (
		a INT,
		b INT REFERENCES old_ref(id),
		FOREIGN KEY (b) REFERENCES new_ref(id),
		PRIMARY KEY (a, b)
	)`)

	require.Len(t, tables, 1)
	tbl := tables[0]

	b, _ := tbl.Column("b")
	assert.Equal(t, "new_ref", b.ForeignKey.Table, "table-level FK overrides inline")

	// Composite PKs imported from DDL legitimately mark several columns.
	a, _ := tbl.Column("a")
	assert.True(t, a.PrimaryKey)
	assert.True(t, b.PrimaryKey)
}

func TestParseTypeAliases(t *testing.T) {
	tables := Parse(`CREATE TABLE t (
		a INT4,
		b INT8,
		c FLOAT8,
		d FLOAT4,
		e BOOL,
		f CHARACTER VARYING(80),
		g SERIAL
	)`)

	require.Len(t, tables, 1)
	types := map[string]string{}
	for _, c := range tables[0].Columns {
		types[c.Name] = c.Type
	}
	assert.Equal(t, "INT", types["a"])
	assert.Equal(t, "BIGINT", types["b"])
	assert.Equal(t, "DOUBLE", types["c"])
	assert.Equal(t, "FLOAT", types["d"])
	assert.Equal(t, "BOOLEAN", types["e"])
	assert.Equal(t, "VARCHAR(80)", types["f"])
	assert.Equal(t, "INT", types["g"])

	g, _ := tables[0].Column("g")
	assert.True(t, g.PrimaryKey, "SERIAL implies primary key")
}

func TestParseCommentsAndQuoting(t *testing.T) {
	tables := Parse(`
		-- users of the system
		CREATE TABLE IF NOT EXISTS "public"."users" (
			/* surrogate
			   key */
			"id" INT PRIMARY KEY,
			` + "`name`" + ` VARCHAR(100) -- display name
		);`)

	require.Len(t, tables, 1)
	assert.Equal(t, "users", tables[0].Name, "schema qualifier and quotes stripped")
	require.Len(t, tables[0].Columns, 2)
	assert.Equal(t, "name", tables[0].Columns[1].Name)
}

func TestParseMultipleStatements(t *testing.T) {
	tables := Parse(`
		CREATE TABLE a (x INT);
		INSERT INTO a VALUES (1);
		CREATE TABLE b (y INT);
	`)

	require.Len(t, tables, 2)
	assert.Equal(t, "a", tables[0].Name)
	assert.Equal(t, "b", tables[1].Name)
}

func TestParseSkipsIndexClausesButKeepsKeyColumn(t *testing.T) {
	tables := Parse(`CREATE TABLE settings (
		id INT PRIMARY KEY,
		key VARCHAR(100),
		value TEXT,
		KEY idx_key (key),
		INDEX (value),
		CHECK (id > 0)
	)`)

	require.Len(t, tables, 1)
	names := []string{}
	for _, c := range tables[0].Columns {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"id", "key", "value"}, names)
}

func TestParseNothing(t *testing.T) {
	assert.Empty(t, Parse("SELECT * FROM users"))
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("CREATE TABLE empty ()"), "zero-column table is dropped")
}
