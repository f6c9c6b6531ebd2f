// Package ddl reconstructs schema tables from raw SQL CREATE TABLE text.
// It is a best-effort, dialect-tolerant parser: comments are stripped, type
// aliases normalized, and table-level constraints applied onto columns after
// the body is split on top-level commas.
package ddl

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/tablesmith/pkg/core"
)

// typeAliases maps dialect-specific type spellings to a canonical form.
var typeAliases = map[string]string{
	"CHARACTER VARYING": "VARCHAR",
	"INT4":              "INT",
	"INTEGER":           "INT",
	"INT8":              "BIGINT",
	"FLOAT8":            "DOUBLE",
	"FLOAT4":            "FLOAT",
	"BOOL":              "BOOLEAN",
	"SERIAL":            "INT",
	"BIGSERIAL":         "BIGINT",
}

var (
	lineCommentRe  = regexp.MustCompile(`--[^\n]*`)
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	createTableRe  = regexp.MustCompile(`(?i)CREATE\s+TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?([\w".\x60\[\]]+)\s*\(`)

	foreignKeyRe = regexp.MustCompile(`(?i)^FOREIGN\s+KEY\s*\(([^)]+)\)\s*REFERENCES\s+([\w".\x60\[\]]+)\s*(?:\(([^)]+)\))?`)
	primaryKeyRe = regexp.MustCompile(`(?i)^PRIMARY\s+KEY\s*\(([^)]+)\)`)
	uniqueRe     = regexp.MustCompile(`(?i)^UNIQUE(?:\s+(?:KEY|INDEX)\s*\w*)?\s*\(([^)]+)\)`)
	constraintRe = regexp.MustCompile(`(?i)^CONSTRAINT\s+[\w"\x60\[\]]+\s+`)
	skipClauseRe = regexp.MustCompile(`(?i)^(?:CHECK|FULLTEXT|SPATIAL|EXCLUDE)\b`)
	keyIndexRe   = regexp.MustCompile(`(?i)^(?:KEY|INDEX)\b`)

	columnDefRe  = regexp.MustCompile(`(?i)^([\w"\x60\[\]]+)\s+(\w+(?:\s+VARYING)?(?:\s*\(\s*\d+(?:\s*,\s*\d+)?\s*\))?)(.*)$`)
	defaultRe    = regexp.MustCompile(`(?i)\bDEFAULT\s+('[^']*'|"[^"]*"|\w+(?:\s*\([^)]*\))?)`)
	referencesRe = regexp.MustCompile(`(?i)\bREFERENCES\s+([\w".\x60\[\]]+)\s*(?:\(([^)]+)\))?`)
	notNullRe    = regexp.MustCompile(`(?i)\bNOT\s+NULL\b`)
	inlinePKRe   = regexp.MustCompile(`(?i)\bPRIMARY\s+KEY\b`)
	autoIncRe    = regexp.MustCompile(`(?i)\b(?:AUTO_INCREMENT|AUTOINCREMENT|IDENTITY)\b`)
	uniqueModRe  = regexp.MustCompile(`(?i)\bUNIQUE\b`)
)

// Parse extracts every CREATE TABLE statement from raw SQL text and returns
// the resulting tables in source order. Tables whose body yields no columns
// are dropped. Text with no CREATE TABLE yields an empty slice, never an
// error.
func Parse(sql string) []*core.Table {
	text := stripComments(sql)

	var tables []*core.Table
	for {
		loc := createTableRe.FindStringSubmatchIndex(text)
		if loc == nil {
			break
		}
		name := cleanIdent(text[loc[2]:loc[3]])
		body, rest := captureBody(text[loc[1]:])
		if t := parseBody(name, body); t != nil {
			tables = append(tables, t)
		}
		text = rest
	}
	return tables
}

// stripComments removes line and block comments and normalizes whitespace.
func stripComments(sql string) string {
	sql = blockCommentRe.ReplaceAllString(sql, " ")
	sql = lineCommentRe.ReplaceAllString(sql, " ")
	return sql
}

// captureBody returns the parenthesized body starting at the text head (the
// opening paren is already consumed) and the remainder after the close.
func captureBody(text string) (body, rest string) {
	depth := 1
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return text[:i], text[i+1:]
			}
		}
	}
	return text, ""
}

// splitTopLevel splits a statement body on commas at parenthesis depth zero,
// so DECIMAL(10,2) and multi-column constraint lists survive intact.
func splitTopLevel(body string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, body[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, body[start:])
	return parts
}

func parseBody(name, body string) *core.Table {
	t := &core.Table{Name: name}

	// Deferred table-level constraints, applied after all columns parse.
	var pkCols, uniqueCols []string
	type fkSpec struct {
		column, table, refColumn string
	}
	var fks []fkSpec

	for _, raw := range splitTopLevel(body) {
		clause := strings.TrimSpace(normalizeSpace(raw))
		if clause == "" {
			continue
		}
		clause = constraintRe.ReplaceAllString(clause, "")

		if m := foreignKeyRe.FindStringSubmatch(clause); m != nil {
			refCol := "id"
			if m[3] != "" {
				refCol = cleanIdent(firstIdent(m[3]))
			}
			for _, col := range splitIdentList(m[1]) {
				fks = append(fks, fkSpec{column: col, table: cleanIdent(m[2]), refColumn: refCol})
			}
			continue
		}
		if m := primaryKeyRe.FindStringSubmatch(clause); m != nil {
			pkCols = append(pkCols, splitIdentList(m[1])...)
			continue
		}
		if m := uniqueRe.FindStringSubmatch(clause); m != nil {
			uniqueCols = append(uniqueCols, splitIdentList(m[1])...)
			continue
		}
		if skipClauseRe.MatchString(clause) {
			continue
		}
		col := parseColumn(clause)
		if col == nil {
			continue
		}
		// "KEY idx_users (email)" is an index clause, but "key VARCHAR(100)"
		// is a column that happens to be named key. Disambiguate on whether
		// the second token is a type keyword.
		if keyIndexRe.MatchString(clause) && !isKnownType(col.Type) {
			continue
		}
		t.Columns = append(t.Columns, col)
	}

	// Table-level constraints win over inline modifiers.
	for _, pk := range pkCols {
		if col, ok := findColumn(t, pk); ok {
			col.PrimaryKey = true
			col.Nullable = false
		}
	}
	for _, u := range uniqueCols {
		if col, ok := findColumn(t, u); ok {
			col.Unique = true
		}
	}
	for _, fk := range fks {
		if col, ok := findColumn(t, fk.column); ok {
			col.ForeignKey = &core.ForeignKey{Table: fk.table, Column: fk.refColumn}
		}
	}

	if len(t.Columns) == 0 {
		// Best effort: a body that parsed to nothing is not a table.
		return nil
	}
	return t
}

func parseColumn(clause string) *core.Column {
	m := columnDefRe.FindStringSubmatch(clause)
	if m == nil {
		return nil
	}
	name := cleanIdent(m[1])
	rawType := normalizeSpace(m[2])
	modifiers := m[3]

	// A bare keyword in column position is a constraint we failed to
	// classify, not a column.
	switch strings.ToUpper(name) {
	case "PRIMARY", "FOREIGN", "UNIQUE", "CONSTRAINT", "CHECK":
		return nil
	}

	col := &core.Column{
		Name:     name,
		Type:     normalizeType(rawType),
		Nullable: true,
	}
	if inlinePKRe.MatchString(modifiers) || autoIncRe.MatchString(modifiers) || isSerial(rawType) {
		col.PrimaryKey = true
		col.Nullable = false
	}
	if uniqueModRe.MatchString(stripPK(modifiers)) {
		col.Unique = true
	}
	if notNullRe.MatchString(modifiers) {
		col.Nullable = false
	}
	if m := defaultRe.FindStringSubmatch(modifiers); m != nil {
		col.Default = strings.TrimSpace(m[1])
	}
	if m := referencesRe.FindStringSubmatch(modifiers); m != nil {
		refCol := "id"
		if m[2] != "" {
			refCol = cleanIdent(firstIdent(m[2]))
		}
		col.ForeignKey = &core.ForeignKey{Table: cleanIdent(m[1]), Column: refCol}
	}
	return col
}

// stripPK removes PRIMARY KEY from a modifier string so its KEY token is not
// mistaken for UNIQUE KEY and similar.
func stripPK(modifiers string) string {
	return inlinePKRe.ReplaceAllString(modifiers, "")
}

// knownTypes are base type keywords recognized when disambiguating KEY/INDEX
// clauses from columns. Normalized (post-alias) spellings only.
var knownTypes = map[string]struct{}{
	"INT": {}, "BIGINT": {}, "SMALLINT": {}, "TINYINT": {}, "VARCHAR": {},
	"CHAR": {}, "TEXT": {}, "DECIMAL": {}, "NUMERIC": {}, "FLOAT": {},
	"DOUBLE": {}, "REAL": {}, "BOOLEAN": {}, "TIMESTAMP": {}, "DATETIME": {},
	"DATE": {}, "TIME": {}, "JSON": {}, "JSONB": {}, "UUID": {}, "BLOB": {},
}

func isKnownType(normalized string) bool {
	base := normalized
	if i := strings.Index(base, "("); i >= 0 {
		base = base[:i]
	}
	_, ok := knownTypes[base]
	return ok
}

func isSerial(rawType string) bool {
	up := strings.ToUpper(rawType)
	return up == "SERIAL" || up == "BIGSERIAL"
}

// normalizeType canonicalizes dialect type aliases, preserving any length or
// precision arguments.
func normalizeType(rawType string) string {
	up := strings.ToUpper(normalizeSpace(rawType))
	base := up
	args := ""
	if i := strings.Index(up, "("); i >= 0 {
		base = strings.TrimSpace(up[:i])
		args = strings.ReplaceAll(up[i:], " ", "")
	}
	if canon, ok := typeAliases[base]; ok {
		base = canon
	}
	return base + args
}

// findColumn matches a column case-insensitively by name.
func findColumn(t *core.Table, name string) (*core.Column, bool) {
	want := strings.ToLower(cleanIdent(name))
	for _, c := range t.Columns {
		if strings.ToLower(c.Name) == want {
			return c, true
		}
	}
	return nil, false
}

// cleanIdent strips quoting and a leading schema qualifier from an
// identifier.
func cleanIdent(ident string) string {
	ident = strings.Trim(strings.TrimSpace(ident), "`\"[]")
	if i := strings.LastIndex(ident, "."); i >= 0 {
		ident = ident[i+1:]
	}
	return strings.Trim(ident, "`\"[]")
}

func splitIdentList(list string) []string {
	var out []string
	for _, part := range strings.Split(list, ",") {
		if ident := cleanIdent(part); ident != "" {
			out = append(out, ident)
		}
	}
	return out
}

func firstIdent(list string) string {
	parts := splitIdentList(list)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
