package core

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ForeignKey references a column in another table.
type ForeignKey struct {
	Table  string `json:"table"`
	Column string `json:"column"`
}

// Column is a single column of a table.
// Nullable defaults to true unless the column is a primary key; the custom
// unmarshaller preserves that default for partial documents.
type Column struct {
	Name       string      `json:"name"`
	Type       string      `json:"type"`
	PrimaryKey bool        `json:"primaryKey,omitempty"`
	Unique     bool        `json:"unique,omitempty"`
	Nullable   bool        `json:"nullable"`
	Default    string      `json:"default,omitempty"`
	ForeignKey *ForeignKey `json:"foreignKey,omitempty"`
}

// UnmarshalJSON defaults Nullable to !PrimaryKey when the field is absent,
// so persisted documents written before the field existed load correctly.
func (c *Column) UnmarshalJSON(data []byte) error {
	type alias Column
	aux := struct {
		Nullable *bool `json:"nullable"`
		*alias
	}{alias: (*alias)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Nullable != nil {
		c.Nullable = *aux.Nullable
	} else {
		c.Nullable = !c.PrimaryKey
	}
	return nil
}

// Clone returns a deep copy of the column.
func (c *Column) Clone() *Column {
	cp := *c
	if c.ForeignKey != nil {
		fk := *c.ForeignKey
		cp.ForeignKey = &fk
	}
	return &cp
}

// Table is a named, ordered collection of columns. Column order is cosmetic.
// Color, X and Y are display attributes owned by the rendering layer; the
// core persists them untouched.
type Table struct {
	Name     string    `json:"name"`
	Columns  []*Column `json:"columns"`
	Category string    `json:"category,omitempty"`
	Color    string    `json:"color,omitempty"`
	X        float64   `json:"x,omitempty"`
	Y        float64   `json:"y,omitempty"`
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	cp := *t
	cp.Columns = make([]*Column, len(t.Columns))
	for i, c := range t.Columns {
		cp.Columns[i] = c.Clone()
	}
	return &cp
}

// PrimaryKeys returns the table's primary key columns in declaration order.
func (t *Table) PrimaryKeys() []*Column {
	var pks []*Column
	for _, c := range t.Columns {
		if c.PrimaryKey {
			pks = append(pks, c)
		}
	}
	return pks
}

// Category is a named grouping of tables. The ID is opaque to callers.
// Color and Icon are display attributes persisted untouched.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description,omitempty"`
}

// NewCategory creates a category with an opaque ID. The ID is a name-based
// UUID so identical commands produce identical schemas.
func NewCategory(name, color string) *Category {
	id := uuid.NewSHA1(uuid.NameSpaceOID, []byte("tablesmith.category:"+Normalize(name)))
	return &Category{ID: id.String(), Name: name, Color: color}
}

// Schema is the full relational model: ordered tables plus categories.
type Schema struct {
	Name       string      `json:"name,omitempty"`
	Tables     []*Table    `json:"tables"`
	Categories []*Category `json:"categories,omitempty"`
	CreatedAt  time.Time   `json:"createdAt,omitempty"`
	UpdatedAt  time.Time   `json:"updatedAt,omitempty"`
}

// NewSchema returns an empty schema.
func NewSchema() *Schema {
	return &Schema{}
}

// Clone returns a deep copy of the schema.
func (s *Schema) Clone() *Schema {
	cp := *s
	cp.Tables = make([]*Table, len(s.Tables))
	for i, t := range s.Tables {
		cp.Tables[i] = t.Clone()
	}
	cp.Categories = make([]*Category, len(s.Categories))
	for i, c := range s.Categories {
		cc := *c
		cp.Categories[i] = &cc
	}
	return &cp
}

// AddTable appends a table to the schema.
func (s *Schema) AddTable(t *Table) {
	s.Tables = append(s.Tables, t)
}

// RemoveTable deletes a table by exact name and strips every foreign key
// that referenced it, keeping the schema structurally consistent.
// Returns false if no such table exists.
func (s *Schema) RemoveTable(name string) bool {
	idx := -1
	for i, t := range s.Tables {
		if t.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	s.Tables = append(s.Tables[:idx], s.Tables[idx+1:]...)
	for _, t := range s.Tables {
		for _, c := range t.Columns {
			if c.ForeignKey != nil && c.ForeignKey.Table == name {
				c.ForeignKey = nil
			}
		}
	}
	return true
}

// RenameTable renames a table and rewrites every foreign key reference to it.
// Returns false if no such table exists.
func (s *Schema) RenameTable(oldName, newName string) bool {
	var target *Table
	for _, t := range s.Tables {
		if t.Name == oldName {
			target = t
			break
		}
	}
	if target == nil {
		return false
	}
	target.Name = newName
	for _, t := range s.Tables {
		for _, c := range t.Columns {
			if c.ForeignKey != nil && c.ForeignKey.Table == oldName {
				c.ForeignKey.Table = newName
			}
		}
	}
	return true
}

// Category returns the category with the given ID.
func (s *Schema) Category(id string) (*Category, bool) {
	for _, c := range s.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// CategoryByName returns the category whose name matches case-insensitively.
func (s *Schema) CategoryByName(name string) (*Category, bool) {
	for _, c := range s.Categories {
		if EqualFold(c.Name, name) {
			return c, true
		}
	}
	return nil, false
}

// RemoveCategory deletes a category and clears member tables' category
// reference. Tables themselves are untouched. Returns false if unknown.
func (s *Schema) RemoveCategory(id string) bool {
	idx := -1
	for i, c := range s.Categories {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	s.Categories = append(s.Categories[:idx], s.Categories[idx+1:]...)
	for _, t := range s.Tables {
		if t.Category == id {
			t.Category = ""
		}
	}
	return true
}

// TableNames returns the table names in schema order.
func (s *Schema) TableNames() []string {
	names := make([]string, len(s.Tables))
	for i, t := range s.Tables {
		names[i] = t.Name
	}
	return names
}

// ColumnCount returns the total number of columns across all tables.
func (s *Schema) ColumnCount() int {
	n := 0
	for _, t := range s.Tables {
		n += len(t.Columns)
	}
	return n
}

// ForeignKeyCount returns the number of columns carrying a foreign key.
func (s *Schema) ForeignKeyCount() int {
	n := 0
	for _, t := range s.Tables {
		for _, c := range t.Columns {
			if c.ForeignKey != nil {
				n++
			}
		}
	}
	return n
}
