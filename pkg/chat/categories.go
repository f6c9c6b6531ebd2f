package chat

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/tablesmith/pkg/categorize"
	"github.com/leapstack-labs/tablesmith/pkg/core"
)

func (e *Executor) createCategory(s *core.Schema, text string) string {
	name := firstSubmatch(createCategoryRe, text)
	if name == "" {
		name = firstSubmatch(categoryFirstRe, text)
	}
	if name == "" {
		return "What should the category be called? e.g. \"create a Finance category\"."
	}
	name = strings.TrimSpace(name)
	if cat, ok := s.CategoryByName(name); ok {
		return fmt.Sprintf("The %s category already exists.", cat.Name)
	}
	cat := core.NewCategory(name, nextPaletteColor(s))
	s.Categories = append(s.Categories, cat)
	return fmt.Sprintf("Created the %s category. Say \"put <table> in %s\" to file tables into it.", cat.Name, cat.Name)
}

func (e *Executor) assignCategory(s *core.Schema, text string, sess *core.Session) string {
	m := assignCategoryRe.FindStringSubmatch(text)
	if m == nil {
		return "Say it like \"put users in the Core category\"."
	}
	t, ok := resolveTable(s, sess, m[1])
	if !ok {
		return fmt.Sprintf("There is no table like %q. %s", m[1], tableList(s))
	}
	catName := strings.TrimSpace(m[2])
	cat, ok := s.CategoryByName(catName)
	if !ok {
		cat = core.NewCategory(catName, nextPaletteColor(s))
		s.Categories = append(s.Categories, cat)
	}
	t.Category = cat.ID
	if t.Color == "" {
		t.Color = cat.Color
	}
	sess.Touch(t.Name)
	return fmt.Sprintf("Filed %s under %s.", t.Name, cat.Name)
}

func (e *Executor) autoCategorize(s *core.Schema) string {
	if len(s.Tables) == 0 {
		return "There are no tables to categorize yet."
	}
	res := categorize.Run(s)
	if !res.Changed() {
		if len(s.Categories) > 0 {
			return "Everything that can be categorized already is."
		}
		return "I couldn't find enough signal to group these tables. Link them or add more tables first."
	}

	byCategory := map[string][]string{}
	for table, cat := range res.Assigned {
		byCategory[cat] = append(byCategory[cat], table)
	}
	var lines []string
	for _, cat := range sortedNames(toSet(byCategory)) {
		tables := byCategory[cat]
		sort.Strings(tables)
		lines = append(lines, fmt.Sprintf("%s: %s", cat, strings.Join(tables, ", ")))
	}
	return fmt.Sprintf("Organized %d tables into %d categories:\n  %s",
		len(res.Assigned), len(byCategory), strings.Join(lines, "\n  "))
}

func toSet[V any](m map[string]V) map[string]struct{} {
	out := make(map[string]struct{}, len(m))
	for k := range m {
		out[k] = struct{}{}
	}
	return out
}
