// Package chat executes free-form schema commands. Execute never mutates its
// inputs and never fails: missing or ambiguous operands come back as a
// clarification response with the schema unchanged.
package chat

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/tablesmith/pkg/core"
	"github.com/leapstack-labs/tablesmith/pkg/intent"
	"github.com/leapstack-labs/tablesmith/pkg/templates"
)

// Executor interprets chat commands against a schema.
type Executor struct {
	lib *templates.Library
}

// New creates an executor backed by the default template library.
func New() *Executor {
	return &Executor{lib: templates.Default()}
}

// Execute classifies text, applies the command to a deep copy of the schema
// and returns the copy plus a plain-text response. The session records which
// tables the conversation touched; the caller owns it and keys it per
// session.
func (e *Executor) Execute(schema *core.Schema, text string, sess *core.Session) (*core.Schema, string) {
	if schema == nil {
		schema = core.NewSchema()
	}
	if sess == nil {
		sess = core.NewSession()
	}
	s := schema.Clone()

	in := intent.Classify(text)
	var resp string
	switch in {
	case intent.Greeting:
		resp = "Hi! Tell me what to build, e.g. \"create tables users, products, orders\"."
	case intent.Thanks:
		resp = "You're welcome. Anything else for the schema?"
	case intent.Bye:
		resp = "Bye! Your schema is saved in the workspace."
	case intent.Help:
		resp = helpText
	case intent.Stats:
		resp = e.stats(s)
	case intent.Clear:
		s, resp = e.clear(s, text, sess)
	case intent.Describe:
		resp = e.describe(s, text, sess)

	case intent.CreateTable:
		resp = e.createTable(s, text, sess)
	case intent.CreateTables:
		resp = e.createTables(s, text, sess)
	case intent.CreateTableInCategory:
		resp = e.createTableInCategory(s, text, sess)

	case intent.AddColumn:
		resp = e.addColumn(s, text, sess)
	case intent.AddColumns:
		resp = e.addColumns(s, text, sess)
	case intent.RemoveColumn:
		resp = e.removeColumn(s, text, sess)
	case intent.RenameColumn:
		resp = e.renameColumn(s, text, sess)
	case intent.ChangeType:
		resp = e.changeType(s, text, sess)

	case intent.RemoveTable:
		resp = e.removeTable(s, text, sess)
	case intent.RenameTable:
		resp = e.renameTable(s, text, sess)
	case intent.Color:
		resp = e.setColor(s, text)

	case intent.SetPK:
		resp = e.setPrimaryKey(s, text, sess)
	case intent.SetUnique:
		resp = e.setUnique(s, text, sess)
	case intent.SetRequired:
		resp = e.setNullability(s, text, sess, false)
	case intent.SetNullable:
		resp = e.setNullability(s, text, sess, true)

	case intent.AddFK:
		resp = e.addForeignKey(s, text, sess)
	case intent.AddFKsAuto:
		resp = e.autoWire(s, sess)
	case intent.RemoveFK:
		resp = e.removeForeignKey(s, text, sess)

	case intent.CreateCategory:
		resp = e.createCategory(s, text)
	case intent.AssignCategory:
		resp = e.assignCategory(s, text, sess)
	case intent.AutoCategorize:
		resp = e.autoCategorize(s)

	case intent.Optimize:
		resp = e.optimize(s)
	case intent.Suggest:
		resp = e.suggest(s)

	default:
		resp = "I didn't catch that. Try \"create a users table\", \"add email column to users\" or \"help\"."
	}

	sess.LastAction = string(in)
	return s, resp
}

const helpText = `I edit a relational schema from plain text. Examples:
  create tables users, products, orders
  create orders table with order_number, total, status
  add email column to customers
  rename users to accounts
  link orders to users
  add relationships between the tables
  set id as the primary key in users
  categorize the tables
  describe users / stats / clear`

// tableList names the current tables for "not found" responses.
func tableList(s *core.Schema) string {
	if len(s.Tables) == 0 {
		return "The schema is empty so far."
	}
	return "Current tables: " + strings.Join(s.TableNames(), ", ") + "."
}

// resolveTable resolves an operand to a table, falling back to the session's
// most recent table when the operand is empty or anaphoric.
func resolveTable(s *core.Schema, sess *core.Session, name string) (*core.Table, bool) {
	if name != "" && !isAnaphor(name) {
		return s.Table(name)
	}
	for _, recent := range sess.Recent {
		if t, ok := s.Table(recent); ok {
			return t, true
		}
	}
	return nil, false
}

// contextTables resolves anaphora like "them" to every recently touched
// table still present in the schema.
func contextTables(s *core.Schema, sess *core.Session) []*core.Table {
	var out []*core.Table
	for _, recent := range sess.Recent {
		if t, ok := s.Table(recent); ok {
			out = append(out, t)
		}
	}
	return out
}

func isAnaphor(tok string) bool {
	switch strings.ToLower(tok) {
	case "it", "them", "those", "these", "that", "this":
		return true
	}
	return false
}

func (e *Executor) stats(s *core.Schema) string {
	if len(s.Tables) == 0 {
		return "The schema is empty. Start with something like \"create a users table\"."
	}
	categorized := 0
	for _, t := range s.Tables {
		if t.Category != "" {
			categorized++
		}
	}
	return fmt.Sprintf("%d tables, %d columns, %d foreign keys, %d categories (%d tables categorized).",
		len(s.Tables), s.ColumnCount(), s.ForeignKeyCount(), len(s.Categories), categorized)
}

func (e *Executor) describe(s *core.Schema, text string, sess *core.Session) string {
	name := firstSubmatch(describeRe, text)
	switch strings.ToLower(name) {
	case "", "schema", "tables", "all", "everything", "database":
		if len(s.Tables) == 0 {
			return "The schema is empty so far."
		}
		var b strings.Builder
		b.WriteString("Schema overview:\n")
		for _, t := range s.Tables {
			fmt.Fprintf(&b, "  %s (%d columns", t.Name, len(t.Columns))
			if cat, ok := s.Category(t.Category); ok {
				fmt.Fprintf(&b, ", category %s", cat.Name)
			}
			b.WriteString(")\n")
		}
		return strings.TrimRight(b.String(), "\n")
	}

	t, ok := resolveTable(s, sess, name)
	if !ok {
		return fmt.Sprintf("I can't find a table like %q. %s", name, tableList(s))
	}
	sess.Touch(t.Name)
	var b strings.Builder
	fmt.Fprintf(&b, "Table %s:\n", t.Name)
	for _, c := range t.Columns {
		fmt.Fprintf(&b, "  %s %s%s\n", c.Name, c.Type, columnFlags(c))
	}
	return strings.TrimRight(b.String(), "\n")
}

func columnFlags(c *core.Column) string {
	var flags []string
	if c.PrimaryKey {
		flags = append(flags, "pk")
	}
	if c.Unique {
		flags = append(flags, "unique")
	}
	if !c.Nullable && !c.PrimaryKey {
		flags = append(flags, "not null")
	}
	if c.ForeignKey != nil {
		flags = append(flags, "-> "+c.ForeignKey.Table+"."+c.ForeignKey.Column)
	}
	if len(flags) == 0 {
		return ""
	}
	return " (" + strings.Join(flags, ", ") + ")"
}

func (e *Executor) clear(s *core.Schema, text string, sess *core.Session) (*core.Schema, string) {
	sess.Reset()
	lower := strings.ToLower(text)
	if strings.Contains(lower, "schema") || strings.Contains(lower, "everything") ||
		strings.Contains(lower, "start over") || strings.Contains(lower, "all tables") ||
		strings.Contains(lower, "wipe") {
		return core.NewSchema(), "Cleared the schema and the conversation context."
	}
	return s, "Conversation context cleared. The schema itself is untouched; say \"clear the schema\" to wipe it."
}

// sortedNames returns map keys in stable order for response text.
func sortedNames(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
