package core

import "strings"

// Table resolves a table by name. Matching is case-insensitive and falls
// back in order: exact name, singular/plural-insensitive name, bidirectional
// substring. First match wins.
func (s *Schema) Table(name string) (*Table, bool) {
	want := Normalize(name)
	if want == "" {
		return nil, false
	}
	for _, t := range s.Tables {
		if Normalize(t.Name) == want {
			return t, true
		}
	}
	for _, t := range s.Tables {
		if Singularize(Normalize(t.Name)) == Singularize(want) {
			return t, true
		}
	}
	for _, t := range s.Tables {
		have := Normalize(t.Name)
		if strings.Contains(have, want) || strings.Contains(want, have) {
			return t, true
		}
	}
	return nil, false
}

// Column resolves a column within the table using the same fallback order
// as Schema.Table.
func (t *Table) Column(name string) (*Column, bool) {
	want := Normalize(name)
	if want == "" {
		return nil, false
	}
	for _, c := range t.Columns {
		if Normalize(c.Name) == want {
			return c, true
		}
	}
	for _, c := range t.Columns {
		if Singularize(Normalize(c.Name)) == Singularize(want) {
			return c, true
		}
	}
	for _, c := range t.Columns {
		have := Normalize(c.Name)
		if strings.Contains(have, want) || strings.Contains(want, have) {
			return c, true
		}
	}
	return nil, false
}

// HasColumn reports whether the table has a column with exactly this
// normalized name. Used for conflict checks, where the fuzzy fallbacks of
// Column would be too eager.
func (t *Table) HasColumn(name string) bool {
	want := Normalize(name)
	for _, c := range t.Columns {
		if Normalize(c.Name) == want {
			return true
		}
	}
	return false
}

// HasTable reports whether the schema has a table with exactly this
// normalized name.
func (s *Schema) HasTable(name string) bool {
	want := Normalize(name)
	for _, t := range s.Tables {
		if Normalize(t.Name) == want {
			return true
		}
	}
	return false
}
