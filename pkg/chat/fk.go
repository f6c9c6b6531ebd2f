package chat

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/tablesmith/pkg/core"
	"github.com/leapstack-labs/tablesmith/pkg/infer"
)

func (e *Executor) addForeignKey(s *core.Schema, text string, sess *core.Session) string {
	// dotted form names the local column explicitly
	if m := referenceRe.FindStringSubmatch(text); m != nil {
		from, ok := s.Table(m[1])
		if !ok {
			return fmt.Sprintf("There is no table like %q. %s", m[1], tableList(s))
		}
		to, ok := s.Table(m[3])
		if !ok {
			return fmt.Sprintf("There is no table like %q. %s", m[3], tableList(s))
		}
		return e.wirePair(s, sess, from, to, m[2])
	}

	m := linkRe.FindStringSubmatch(text)
	var from, to *core.Table
	if m != nil {
		var ok bool
		from, ok = s.Table(m[1])
		if !ok {
			return fmt.Sprintf("There is no table like %q. %s", m[1], tableList(s))
		}
		to, ok = s.Table(m[2])
		if !ok {
			return fmt.Sprintf("There is no table like %q. %s", m[2], tableList(s))
		}
	} else {
		// "link them together": the two most recently touched tables
		ctx := contextTables(s, sess)
		if len(ctx) < 2 {
			return "Which tables should I link? e.g. \"link orders to users\"."
		}
		// most recent is the child, the one mentioned before it the parent
		from, to = ctx[0], ctx[1]
		if childOf(to, from) {
			from, to = to, from
		}
	}
	return e.wirePair(s, sess, from, to, "")
}

// childOf reports whether a already carries a reference column for b.
func childOf(a, b *core.Table) bool {
	want := core.Singularize(core.Normalize(b.Name)) + "_id"
	return a.HasColumn(want)
}

// wirePair adds a foreign key from one table to another, creating the local
// reference column when it is missing. An empty localCol means the
// conventional <singular>_id name.
func (e *Executor) wirePair(s *core.Schema, sess *core.Session, from, to *core.Table, localCol string) string {
	pk := "id"
	if pks := to.PrimaryKeys(); len(pks) > 0 {
		pk = pks[0].Name
	}
	if localCol == "" {
		localCol = core.Singularize(core.Normalize(to.Name)) + "_id"
	}
	c, ok := from.Column(localCol)
	if !ok {
		c = &core.Column{Name: core.Normalize(localCol), Type: infer.Type(localCol), Nullable: true}
		from.Columns = append(from.Columns, c)
	}
	if c.ForeignKey != nil && core.EqualFold(c.ForeignKey.Table, to.Name) {
		sess.Touch(from.Name, to.Name)
		return fmt.Sprintf("%s.%s already references %s.", from.Name, c.Name, to.Name)
	}
	c.ForeignKey = &core.ForeignKey{Table: to.Name, Column: pk}
	sess.Touch(from.Name, to.Name)
	return fmt.Sprintf("Linked %s to %s via %s.%s -> %s.%s.", from.Name, to.Name, from.Name, c.Name, to.Name, pk)
}

func (e *Executor) removeForeignKey(s *core.Schema, text string, sess *core.Session) string {
	m := unlinkRe.FindStringSubmatch(text)
	if m == nil {
		return "Say it like \"unlink orders from users\"."
	}
	from, ok := s.Table(m[1])
	if !ok {
		return fmt.Sprintf("There is no table like %q. %s", m[1], tableList(s))
	}
	to, ok := s.Table(m[2])
	if !ok {
		return fmt.Sprintf("There is no table like %q. %s", m[2], tableList(s))
	}
	sess.Touch(from.Name, to.Name)

	removed := 0
	for _, c := range from.Columns {
		if c.ForeignKey != nil && core.EqualFold(c.ForeignKey.Table, to.Name) {
			c.ForeignKey = nil
			removed++
		}
	}
	if removed == 0 {
		return fmt.Sprintf("%s has no foreign key to %s.", from.Name, to.Name)
	}
	return fmt.Sprintf("Removed the link from %s to %s; the column itself stays.", from.Name, to.Name)
}

func (e *Executor) autoWire(s *core.Schema, sess *core.Session) string {
	wired := wireRelationships(s)
	if len(wired) == 0 {
		if s.ForeignKeyCount() > 0 {
			return "Every reference column is already wired up."
		}
		return "I found no *_id columns to wire. Add reference columns like user_id first, or say \"link orders to users\"."
	}
	for _, w := range wired {
		if i := strings.IndexByte(w, '.'); i > 0 {
			sess.Touch(w[:i])
		}
	}
	return fmt.Sprintf("Wired %d relationships:\n  %s", len(wired), strings.Join(wired, "\n  "))
}
