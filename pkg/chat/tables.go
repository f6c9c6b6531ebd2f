package chat

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/tablesmith/pkg/core"
)

// namedColors maps spoken colors to the hex values the canvas renders.
var namedColors = map[string]string{
	"red":    "#EF4444",
	"orange": "#F97316",
	"yellow": "#EAB308",
	"green":  "#10B981",
	"teal":   "#14B8A6",
	"blue":   "#3B82F6",
	"indigo": "#6366F1",
	"purple": "#8B5CF6",
	"pink":   "#EC4899",
	"gray":   "#6B7280",
	"grey":   "#6B7280",
}

var palette = []string{
	"#6366F1", "#10B981", "#F59E0B", "#EF4444",
	"#8B5CF6", "#14B8A6", "#F97316", "#06B6D4",
}

// nextPaletteColor cycles the palette by how many categories exist already.
func nextPaletteColor(s *core.Schema) string {
	return palette[len(s.Categories)%len(palette)]
}

func (e *Executor) removeTable(s *core.Schema, text string, sess *core.Session) string {
	name := firstSubmatch(removeTableRe, text)
	if name == "" {
		return "Which table should I remove?"
	}
	t, ok := resolveTable(s, sess, name)
	if !ok {
		return fmt.Sprintf("There is no table like %q. %s", name, tableList(s))
	}
	removed := t.Name
	s.RemoveTable(removed)
	sess.Forget(removed)
	return fmt.Sprintf("Removed the %s table and any foreign keys that pointed at it.", removed)
}

func (e *Executor) renameTable(s *core.Schema, text string, sess *core.Session) string {
	m := renameRe.FindStringSubmatch(text)
	if m == nil {
		return "Say it like \"rename users to accounts\"."
	}
	oldName, newName := m[1], core.Normalize(m[2])

	t, ok := s.Table(oldName)
	if !ok {
		// "rename id to user_uuid in users" arrives here when the old name
		// is a column rather than a table
		for _, cand := range s.Tables {
			if cand.HasColumn(oldName) {
				return e.renameColumn(s, text, sess)
			}
		}
		return fmt.Sprintf("There is no table like %q. %s", oldName, tableList(s))
	}
	if s.HasTable(newName) {
		return fmt.Sprintf("A %s table already exists.", newName)
	}
	prev := t.Name
	s.RenameTable(prev, newName)
	sess.Rename(prev, newName)
	sess.Touch(newName)
	return fmt.Sprintf("Renamed %s to %s and updated the references.", prev, newName)
}

func (e *Executor) setColor(s *core.Schema, text string) string {
	m := colorRe.FindStringSubmatch(text)
	if m == nil {
		return "Say it like \"make the orders table green\"."
	}
	t, ok := s.Table(m[1])
	if !ok {
		return fmt.Sprintf("There is no table like %q. %s", m[1], tableList(s))
	}
	color := namedColors[strings.ToLower(m[2])]
	t.Color = color
	return fmt.Sprintf("Painted %s %s.", t.Name, strings.ToLower(m[2]))
}

// optimize reviews the schema and reports advice without changing anything.
func (e *Executor) optimize(s *core.Schema) string {
	if len(s.Tables) == 0 {
		return "Nothing to review yet."
	}
	var advice []string
	for _, t := range s.Tables {
		if len(t.PrimaryKeys()) == 0 {
			advice = append(advice, fmt.Sprintf("%s has no primary key; add one (usually id).", t.Name))
		}
		if !t.HasColumn("created_at") {
			advice = append(advice, fmt.Sprintf("%s has no created_at; audit timestamps are cheap to add now.", t.Name))
		}
		for _, c := range t.Columns {
			if c.ForeignKey != nil {
				if _, ok := s.Table(c.ForeignKey.Table); !ok {
					advice = append(advice, fmt.Sprintf("%s.%s references missing table %s.", t.Name, c.Name, c.ForeignKey.Table))
				}
			}
			if strings.HasSuffix(c.Name, "_id") && c.ForeignKey == nil {
				advice = append(advice, fmt.Sprintf("%s.%s looks like a reference but has no foreign key; say \"add relationships\".", t.Name, c.Name))
			}
		}
	}
	if len(advice) == 0 {
		return "The schema looks tidy: every table has a primary key and the references line up."
	}
	return "A few things worth fixing:\n  - " + strings.Join(advice, "\n  - ")
}

// suggest proposes tables that commonly accompany the ones already present.
func (e *Executor) suggest(s *core.Schema) string {
	companions := map[string][]string{
		"users":     {"sessions", "roles", "permissions"},
		"products":  {"categories", "inventory", "reviews"},
		"orders":    {"order_items", "payments", "shipments"},
		"posts":     {"comments", "tags", "likes"},
		"customers": {"addresses", "invoices"},
		"invoices":  {"payments", "invoice_items"},
		"courses":   {"lessons", "enrollments"},
	}
	seen := map[string]struct{}{}
	for _, t := range s.Tables {
		for _, sug := range companions[core.Normalize(t.Name)] {
			if !s.HasTable(sug) {
				seen[sug] = struct{}{}
			}
		}
	}
	if len(seen) == 0 {
		if len(s.Tables) == 0 {
			return "Start with your domain's core entities, e.g. \"create tables users, products, orders\"."
		}
		return "No obvious companions to suggest; the usual suspects are already here."
	}
	return "Tables that usually go with what you have: " + strings.Join(sortedNames(seen), ", ") + "."
}
