// Package state persists named schemas and chat transcripts in a SQLite
// workspace database.
package state

import (
	"time"

	"github.com/leapstack-labs/tablesmith/pkg/core"
)

// SavedSchema is one named schema document in the workspace.
type SavedSchema struct {
	ID        string
	Name      string
	Schema    *core.Schema
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Message is one transcript entry: what the user said and what the engine
// answered, tied to the schema that was active at the time.
type Message struct {
	ID         string
	SchemaName string
	Role       string
	Content    string
	CreatedAt  time.Time
}

// Transcript roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Store is the persistence contract the CLI and the server program against.
type Store interface {
	SaveSchema(name string, s *core.Schema) error
	LoadSchema(name string) (*SavedSchema, error)
	ListSchemas() ([]*SavedSchema, error)
	DeleteSchema(name string) error

	AppendMessage(schemaName, role, content string) error
	Messages(schemaName string, limit int) ([]*Message, error)

	Close() error
}
