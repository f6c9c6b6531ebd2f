package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/tablesmith/pkg/core"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleSchema() *core.Schema {
	s := core.NewSchema()
	s.AddTable(&core.Table{
		Name: "users",
		Columns: []*core.Column{
			{Name: "id", Type: "INT", PrimaryKey: true},
			{Name: "email", Type: "VARCHAR(255)", Unique: true, Nullable: true},
		},
	})
	return s
}

func TestSaveAndLoadSchema(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.SaveSchema("shop", sampleSchema()))

	saved, err := store.LoadSchema("shop")
	require.NoError(t, err)
	assert.Equal(t, "shop", saved.Name)
	require.Len(t, saved.Schema.Tables, 1)

	users, ok := saved.Schema.Table("users")
	require.True(t, ok)
	email, ok := users.Column("email")
	require.True(t, ok)
	assert.True(t, email.Unique)
	assert.True(t, email.Nullable)
}

func TestSaveSchemaUpserts(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.SaveSchema("shop", sampleSchema()))

	updated := sampleSchema()
	updated.AddTable(&core.Table{Name: "orders", Columns: []*core.Column{
		{Name: "id", Type: "INT", PrimaryKey: true},
	}})
	require.NoError(t, store.SaveSchema("shop", updated))

	saved, err := store.LoadSchema("shop")
	require.NoError(t, err)
	assert.Len(t, saved.Schema.Tables, 2)

	all, err := store.ListSchemas()
	require.NoError(t, err)
	assert.Len(t, all, 1, "upsert must not duplicate the row")
}

func TestLoadMissingSchema(t *testing.T) {
	store := openTestStore(t)
	_, err := store.LoadSchema("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDeleteSchemaRemovesTranscript(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.SaveSchema("shop", sampleSchema()))
	require.NoError(t, store.AppendMessage("shop", RoleUser, "create a users table"))
	require.NoError(t, store.AppendMessage("shop", RoleAssistant, "Created the users table."))

	require.NoError(t, store.DeleteSchema("shop"))

	_, err := store.LoadSchema("shop")
	require.Error(t, err)

	msgs, err := store.Messages("shop", 0)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestMessagesChronological(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.AppendMessage("shop", RoleUser, "first"))
	require.NoError(t, store.AppendMessage("shop", RoleAssistant, "second"))
	require.NoError(t, store.AppendMessage("shop", RoleUser, "third"))

	msgs, err := store.Messages("shop", 0)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "first", msgs[0].Content)
	assert.Equal(t, "third", msgs[2].Content)

	limited, err := store.Messages("shop", 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "second", limited[0].Content)
}
