package chat

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/tablesmith/pkg/categorize"
	"github.com/leapstack-labs/tablesmith/pkg/core"
	"github.com/leapstack-labs/tablesmith/pkg/infer"
	"github.com/leapstack-labs/tablesmith/pkg/intent"
)

func (e *Executor) createTable(s *core.Schema, text string, sess *core.Session) string {
	head, tail := stripWithTail(text)
	name := firstSubmatch(createTableRe, head)
	if name == "" {
		ids := intent.Identifiers(head)
		if len(ids) == 0 {
			return "What should the table be called? e.g. \"create a users table\"."
		}
		name = ids[0]
	}
	name = core.Normalize(name)
	if s.HasTable(name) {
		sess.Touch(name)
		return fmt.Sprintf("A %s table already exists. Say \"add ... to %s\" to extend it.", name, name)
	}

	var t *core.Table
	if tail != "" && !vagueColumnTail(tail) {
		t = e.buildExplicit(name, splitList(tail))
	} else {
		t = &core.Table{Name: name, Columns: e.lib.Columns(name)}
	}
	s.AddTable(t)
	sess.Touch(t.Name)
	assigned := e.autoAssign(s, t)

	resp := fmt.Sprintf("Created the %s table with %d columns (%s).", t.Name, len(t.Columns), columnNames(t))
	if assigned != "" {
		resp += fmt.Sprintf(" Filed it under %s.", assigned)
	}
	return resp
}

func (e *Executor) createTables(s *core.Schema, text string, sess *core.Session) string {
	head, _ := stripWithTail(text)
	listText := firstSubmatch(createListRe, head)
	if listText == "" {
		listText = head
	}
	names := splitList(listText)

	var created, skipped []string
	for _, raw := range names {
		name := core.Normalize(raw)
		if name == "" || name == "tables" || name == "table" {
			continue
		}
		if s.HasTable(name) {
			skipped = append(skipped, name)
			continue
		}
		t := &core.Table{Name: name, Columns: e.lib.Columns(name)}
		s.AddTable(t)
		sess.Touch(t.Name)
		e.autoAssign(s, t)
		created = append(created, t.Name)
	}

	switch {
	case len(created) == 0 && len(skipped) > 0:
		return fmt.Sprintf("Those tables already exist: %s.", strings.Join(skipped, ", "))
	case len(created) == 0:
		return "Which tables? e.g. \"create tables users, products, orders\"."
	}
	resp := fmt.Sprintf("Created %d tables: %s.", len(created), strings.Join(created, ", "))
	if len(skipped) > 0 {
		resp += fmt.Sprintf(" Skipped existing: %s.", strings.Join(skipped, ", "))
	}
	return resp
}

func (e *Executor) createTableInCategory(s *core.Schema, text string, sess *core.Session) string {
	catName := firstSubmatch(inCategoryRe, text)
	if catName == "" {
		return e.createTable(s, text, sess)
	}
	head := inCategoryRe.ReplaceAllString(text, "")
	name := core.Normalize(firstSubmatch(createTableRe, head))
	if name == "" {
		return "What should the table be called?"
	}
	if s.HasTable(name) {
		sess.Touch(name)
		return fmt.Sprintf("A %s table already exists.", name)
	}

	cat, ok := s.CategoryByName(catName)
	if !ok {
		cat = core.NewCategory(strings.TrimSpace(catName), nextPaletteColor(s))
		s.Categories = append(s.Categories, cat)
	}
	t := &core.Table{Name: name, Columns: e.lib.Columns(name), Category: cat.ID, Color: cat.Color}
	s.AddTable(t)
	sess.Touch(t.Name)
	return fmt.Sprintf("Created the %s table in the %s category.", t.Name, cat.Name)
}

// buildExplicit assembles a table from a user-named column list, prepending
// an id primary key and appending created_at when the user did not name them.
func (e *Executor) buildExplicit(table string, colNames []string) *core.Table {
	t := &core.Table{Name: table}

	hasID, hasCreated := false, false
	for _, raw := range colNames {
		name := core.Normalize(raw)
		if name == "" || t.HasColumn(name) {
			continue
		}
		c := &core.Column{Name: name, Type: infer.Type(name), Nullable: true}
		if name == "id" {
			c.PrimaryKey = true
			c.Nullable = false
			hasID = true
		}
		if name == "created_at" {
			hasCreated = true
			c.Default = "CURRENT_TIMESTAMP"
		}
		t.Columns = append(t.Columns, c)
	}
	if !hasID {
		id := &core.Column{Name: "id", Type: "INT", PrimaryKey: true, Nullable: false}
		t.Columns = append([]*core.Column{id}, t.Columns...)
	}
	if !hasCreated {
		t.Columns = append(t.Columns, &core.Column{
			Name: "created_at", Type: "TIMESTAMP", Nullable: true, Default: "CURRENT_TIMESTAMP",
		})
	}
	return t
}

// autoAssign files a new table into an existing category when a semantic
// group clears the confidence bar and its category is already materialized.
// It returns the category name, or "" when nothing matched.
func (e *Executor) autoAssign(s *core.Schema, t *core.Table) string {
	if len(s.Categories) == 0 {
		return ""
	}
	g, ok := categorize.BestGroup(t)
	if !ok {
		return ""
	}
	cat, ok := s.CategoryByName(g.Name)
	if !ok {
		return ""
	}
	t.Category = cat.ID
	if t.Color == "" {
		t.Color = cat.Color
	}
	return cat.Name
}

func columnNames(t *core.Table) string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}
