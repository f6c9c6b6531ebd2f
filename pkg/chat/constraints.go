package chat

import (
	"fmt"

	"github.com/leapstack-labs/tablesmith/pkg/core"
)

// resolveConstraintTarget finds the column a constraint command refers to,
// using the named table, the session, or a unique holder of the column.
func resolveConstraintTarget(s *core.Schema, sess *core.Session, colName, tableName string) (*core.Table, *core.Column, string) {
	t, ok := resolveTable(s, sess, tableName)
	if !ok {
		var holders []*core.Table
		for _, cand := range s.Tables {
			if cand.HasColumn(colName) {
				holders = append(holders, cand)
			}
		}
		if len(holders) != 1 {
			return nil, nil, fmt.Sprintf("Which table holds %s? %s", colName, tableList(s))
		}
		t = holders[0]
	}
	c, ok := t.Column(colName)
	if !ok {
		return nil, nil, fmt.Sprintf("%s has no %s column.", t.Name, colName)
	}
	return t, c, ""
}

// setPrimaryKey marks a column as the sole primary key: any previous primary
// key on the table is demoted, and the new key becomes non-nullable.
func (e *Executor) setPrimaryKey(s *core.Schema, text string, sess *core.Session) string {
	m := constraintRe.FindStringSubmatch(text)
	if m == nil {
		return "Say it like \"set id as the primary key in users\"."
	}
	t, c, errResp := resolveConstraintTarget(s, sess, m[1], m[2])
	if errResp != "" {
		return errResp
	}
	sess.Touch(t.Name)
	for _, other := range t.Columns {
		other.PrimaryKey = false
	}
	c.PrimaryKey = true
	c.Nullable = false
	return fmt.Sprintf("%s is now the primary key of %s.", c.Name, t.Name)
}

func (e *Executor) setUnique(s *core.Schema, text string, sess *core.Session) string {
	m := constraintRe.FindStringSubmatch(text)
	if m == nil {
		return "Say it like \"make email unique in customers\"."
	}
	t, c, errResp := resolveConstraintTarget(s, sess, m[1], m[2])
	if errResp != "" {
		return errResp
	}
	sess.Touch(t.Name)
	c.Unique = true
	return fmt.Sprintf("%s.%s is now unique.", t.Name, c.Name)
}

func (e *Executor) setNullability(s *core.Schema, text string, sess *core.Session, nullable bool) string {
	m := constraintRe.FindStringSubmatch(text)
	if m == nil {
		return "Say it like \"make email required in customers\"."
	}
	t, c, errResp := resolveConstraintTarget(s, sess, m[1], m[2])
	if errResp != "" {
		return errResp
	}
	sess.Touch(t.Name)
	if c.PrimaryKey && nullable {
		return fmt.Sprintf("%s.%s is the primary key; it stays non-nullable.", t.Name, c.Name)
	}
	c.Nullable = nullable
	if nullable {
		return fmt.Sprintf("%s.%s is now optional.", t.Name, c.Name)
	}
	return fmt.Sprintf("%s.%s is now required.", t.Name, c.Name)
}
