package chat

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/tablesmith/pkg/core"
	"github.com/leapstack-labs/tablesmith/pkg/infer"
	"github.com/leapstack-labs/tablesmith/pkg/intent"
)

func (e *Executor) addColumn(s *core.Schema, text string, sess *core.Session) string {
	var colName, tableName string
	if m := addColumnRe.FindStringSubmatch(text); m != nil {
		colName, tableName = m[1], m[2]
	} else if m := addBareRe.FindStringSubmatch(text); m != nil {
		colName, tableName = m[1], m[2]
	} else {
		ids := intent.Identifiers(text)
		if len(ids) > 0 {
			colName = ids[0]
		}
	}
	if colName == "" {
		return "Which column should I add, and to which table?"
	}

	t, ok := resolveTable(s, sess, tableName)
	if !ok {
		if tableName == "" || isAnaphor(tableName) {
			return "Which table should get the column? " + tableList(s)
		}
		return fmt.Sprintf("I can't find a table like %q. %s", tableName, tableList(s))
	}
	sess.Touch(t.Name)

	colName = core.Normalize(colName)
	if t.HasColumn(colName) {
		return fmt.Sprintf("%s already has a %s column.", t.Name, colName)
	}
	c := &core.Column{Name: colName, Type: infer.Type(colName), Nullable: true}
	t.Columns = append(t.Columns, c)
	return fmt.Sprintf("Added %s %s to %s.", c.Name, c.Type, t.Name)
}

func (e *Executor) addColumns(s *core.Schema, text string, sess *core.Session) string {
	var colText, tableName string
	if m := addColumnsRe.FindStringSubmatch(text); m != nil {
		colText, tableName = m[1], m[2]
	}

	var targets []*core.Table
	if tableName != "" && !isAnaphor(tableName) {
		t, ok := s.Table(tableName)
		if !ok {
			return fmt.Sprintf("I can't find a table like %q. %s", tableName, tableList(s))
		}
		targets = []*core.Table{t}
	} else {
		// anaphoric or bare: spread over the recently touched tables
		targets = contextTables(s, sess)
	}
	if len(targets) == 0 {
		return "Which table should get the columns? " + tableList(s)
	}

	names := splitList(colText)
	// "add timestamps" expands to the conventional audit pair
	if strings.Contains(strings.ToLower(text), "timestamp") && len(names) <= 1 {
		names = []string{"created_at", "updated_at"}
	}
	if len(names) == 0 {
		names = intent.Identifiers(text)
	}
	if len(names) == 0 {
		return "Which columns? e.g. \"add sku, price, stock to products\"."
	}

	added := map[string]struct{}{}
	for _, t := range targets {
		sess.Touch(t.Name)
		for _, raw := range names {
			name := core.Normalize(raw)
			if name == "" || t.HasColumn(name) {
				continue
			}
			c := &core.Column{Name: name, Type: infer.Type(name), Nullable: true}
			if name == "created_at" || name == "updated_at" {
				c.Default = "CURRENT_TIMESTAMP"
			}
			t.Columns = append(t.Columns, c)
			added[name] = struct{}{}
		}
	}
	if len(added) == 0 {
		return "Those columns are already there."
	}
	tables := make([]string, len(targets))
	for i, t := range targets {
		tables[i] = t.Name
	}
	return fmt.Sprintf("Added %s to %s.", strings.Join(sortedNames(added), ", "), strings.Join(tables, ", "))
}

func (e *Executor) removeColumn(s *core.Schema, text string, sess *core.Session) string {
	var colName, tableName string
	if m := removeColumnRe.FindStringSubmatch(text); m != nil {
		colName, tableName = m[1], m[2]
	} else {
		return "Which column, from which table? e.g. \"remove the fax column from customers\"."
	}

	t, ok := resolveTable(s, sess, tableName)
	if !ok {
		return fmt.Sprintf("I can't find a table like %q. %s", tableName, tableList(s))
	}
	sess.Touch(t.Name)

	idx := -1
	for i, c := range t.Columns {
		if core.EqualFold(c.Name, colName) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Sprintf("%s has no %s column.", t.Name, colName)
	}
	removed := t.Columns[idx].Name
	t.Columns = append(t.Columns[:idx], t.Columns[idx+1:]...)
	dropDanglingFKs(s, t.Name, removed)
	return fmt.Sprintf("Removed %s from %s.", removed, t.Name)
}

func (e *Executor) renameColumn(s *core.Schema, text string, sess *core.Session) string {
	m := renameRe.FindStringSubmatch(text)
	if m == nil {
		return "Say it like \"rename email to email_address in users\"."
	}
	oldName, newName := m[1], m[2]

	tableName := firstSubmatch(inTableRe, text)
	t, ok := resolveTable(s, sess, tableName)
	if !ok {
		// no table named: find the unique table holding the column
		var holders []*core.Table
		for _, cand := range s.Tables {
			if cand.HasColumn(oldName) {
				holders = append(holders, cand)
			}
		}
		if len(holders) != 1 {
			return fmt.Sprintf("Which table holds %s? e.g. \"rename %s to %s in users\".", oldName, oldName, newName)
		}
		t = holders[0]
	}
	sess.Touch(t.Name)

	c, ok := t.Column(oldName)
	if !ok {
		return fmt.Sprintf("%s has no %s column.", t.Name, oldName)
	}
	newName = core.Normalize(newName)
	if t.HasColumn(newName) {
		return fmt.Sprintf("%s already has a %s column.", t.Name, newName)
	}
	c.Name = newName
	// keep referencing foreign keys pointed at the new name
	for _, other := range s.Tables {
		for _, oc := range other.Columns {
			if oc.ForeignKey != nil && core.EqualFold(oc.ForeignKey.Table, t.Name) &&
				core.EqualFold(oc.ForeignKey.Column, oldName) {
				oc.ForeignKey.Column = newName
			}
		}
	}
	return fmt.Sprintf("Renamed %s to %s in %s.", oldName, newName, t.Name)
}

func (e *Executor) changeType(s *core.Schema, text string, sess *core.Session) string {
	m := changeTypeRe.FindStringSubmatch(text)
	if m == nil {
		return "Say it like \"change email in users to TEXT\"."
	}
	colName, tableName, newType := m[1], m[2], strings.TrimSpace(m[3])

	t, ok := resolveTable(s, sess, tableName)
	if !ok {
		var holders []*core.Table
		for _, cand := range s.Tables {
			if cand.HasColumn(colName) {
				holders = append(holders, cand)
			}
		}
		if len(holders) != 1 {
			return fmt.Sprintf("Which table holds %s?", colName)
		}
		t = holders[0]
	}
	sess.Touch(t.Name)

	c, ok := t.Column(colName)
	if !ok {
		return fmt.Sprintf("%s has no %s column.", t.Name, colName)
	}
	c.Type = canonicalType(newType)
	return fmt.Sprintf("Changed %s.%s to %s.", t.Name, c.Name, c.Type)
}

// canonicalType maps spoken type names onto SQL types; anything already
// SQL-shaped passes through uppercased.
func canonicalType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "string", "text field", "free text":
		return "VARCHAR(255)"
	case "number", "integer", "int":
		return "INT"
	case "big number", "bigint":
		return "BIGINT"
	case "decimal", "money", "currency", "price":
		return "DECIMAL(10,2)"
	case "float", "double", "real":
		return "FLOAT"
	case "bool", "boolean", "flag", "yes/no":
		return "BOOLEAN"
	case "date":
		return "DATE"
	case "timestamp", "datetime", "time":
		return "TIMESTAMP"
	case "json":
		return "JSON"
	case "uuid", "guid":
		return "UUID"
	case "text", "long text", "longtext":
		return "TEXT"
	}
	return strings.ToUpper(strings.TrimSpace(raw))
}

// dropDanglingFKs clears foreign keys that pointed at a removed column.
func dropDanglingFKs(s *core.Schema, table, column string) {
	for _, t := range s.Tables {
		for _, c := range t.Columns {
			if c.ForeignKey != nil && core.EqualFold(c.ForeignKey.Table, table) &&
				core.EqualFold(c.ForeignKey.Column, column) {
				c.ForeignKey = nil
			}
		}
	}
}
