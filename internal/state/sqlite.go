package state

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/leapstack-labs/tablesmith/pkg/core"
)

// SQLiteStore implements Store on a SQLite database file.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the workspace database and runs pending
// migrations. Use ":memory:" for tests.
func Open(path string) (*SQLiteStore, error) {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open workspace database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping workspace database: %w", err)
	}

	s := &SQLiteStore{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSchema upserts a schema document under its name.
func (s *SQLiteStore) SaveSchema(name string, schema *core.Schema) error {
	if name == "" {
		return fmt.Errorf("schema name is required")
	}
	doc, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("failed to encode schema: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.db.Exec(
		`INSERT INTO schemas (id, name, document, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`,
		uuid.New().String(), name, string(doc), now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to save schema %q: %w", name, err)
	}
	return nil
}

// LoadSchema retrieves a schema document by name.
func (s *SQLiteStore) LoadSchema(name string) (*SavedSchema, error) {
	row := s.db.QueryRow(
		`SELECT id, name, document, created_at, updated_at FROM schemas WHERE name = ?`, name,
	)

	var saved SavedSchema
	var doc string
	if err := row.Scan(&saved.ID, &saved.Name, &doc, &saved.CreatedAt, &saved.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("schema %q not found", name)
		}
		return nil, fmt.Errorf("failed to load schema %q: %w", name, err)
	}

	saved.Schema = core.NewSchema()
	if err := json.Unmarshal([]byte(doc), saved.Schema); err != nil {
		return nil, fmt.Errorf("failed to decode schema %q: %w", name, err)
	}
	return &saved, nil
}

// ListSchemas returns all saved schemas, most recently updated first. The
// documents themselves are not decoded.
func (s *SQLiteStore) ListSchemas() ([]*SavedSchema, error) {
	rows, err := s.db.Query(
		`SELECT id, name, created_at, updated_at FROM schemas ORDER BY updated_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list schemas: %w", err)
	}
	defer rows.Close()

	var out []*SavedSchema
	for rows.Next() {
		var saved SavedSchema
		if err := rows.Scan(&saved.ID, &saved.Name, &saved.CreatedAt, &saved.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan schema row: %w", err)
		}
		out = append(out, &saved)
	}
	return out, rows.Err()
}

// DeleteSchema removes a schema and its transcript.
func (s *SQLiteStore) DeleteSchema(name string) error {
	res, err := s.db.Exec(`DELETE FROM schemas WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete schema %q: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("schema %q not found", name)
	}
	_, err = s.db.Exec(`DELETE FROM messages WHERE schema_name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete transcript for %q: %w", name, err)
	}
	return nil
}

// AppendMessage records one transcript entry.
func (s *SQLiteStore) AppendMessage(schemaName, role, content string) error {
	_, err := s.db.Exec(
		`INSERT INTO messages (id, schema_name, role, content, created_at) VALUES (?, ?, ?, ?, ?)`,
		uuid.New().String(), schemaName, role, content, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	return nil
}

// Messages returns the most recent transcript entries in chronological
// order. A non-positive limit means everything.
func (s *SQLiteStore) Messages(schemaName string, limit int) ([]*Message, error) {
	query := `SELECT id, schema_name, role, content, created_at FROM messages
	          WHERE schema_name = ? ORDER BY created_at DESC`
	args := []any{schemaName}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load transcript: %w", err)
	}
	defer rows.Close()

	var out []*Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SchemaName, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// reverse into chronological order
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
