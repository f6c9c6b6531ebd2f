// Package categorize partitions uncategorized tables into semantic groups.
// Phase one scores table and column names against pattern groups loaded from
// an embedded YAML document; phase two falls back to foreign-key connectivity
// over a disjoint-set. Running it on a fully categorized schema is a no-op.
package categorize

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/tablesmith/internal/graph"
	"github.com/leapstack-labs/tablesmith/pkg/core"
)

//go:embed categories.yaml
var categoriesYAML []byte

// Scoring weights and the confidence a group must clear to claim a table.
const (
	nameWeight     = 10.0
	columnWeight   = 2.0
	genericWeight  = 1.0
	scoreThreshold = 8.0
)

// componentPalette colors connectivity-derived categories.
var componentPalette = []string{
	"#6366F1", "#10B981", "#F59E0B", "#EF4444",
	"#8B5CF6", "#14B8A6", "#F97316", "#06B6D4",
}

// Group is one semantic pattern group.
type Group struct {
	Key      string   `yaml:"key"`
	Name     string   `yaml:"name"`
	Color    string   `yaml:"color"`
	Icon     string   `yaml:"icon"`
	Priority int      `yaml:"priority"`
	Tables   []string `yaml:"tables"`
	Columns  []string `yaml:"columns"`
	Generics []string `yaml:"generics"`
}

type document struct {
	Groups []Group `yaml:"groups"`
}

var (
	groupsOnce sync.Once
	groupsList []Group
)

// Groups returns the embedded pattern groups in definition order.
func Groups() []Group {
	groupsOnce.Do(func() {
		var doc document
		if err := yaml.Unmarshal(categoriesYAML, &doc); err != nil {
			panic(fmt.Sprintf("categorize: embedded groups: %v", err))
		}
		groupsList = doc.Groups
	})
	return groupsList
}

// Score rates how well a table fits a group.
func Score(t *core.Table, g Group) float64 {
	name := core.Normalize(t.Name)
	singular := core.Singularize(name)

	score := 0.0
	for _, pat := range g.Tables {
		if strings.Contains(name, pat) || strings.Contains(singular, pat) {
			score += nameWeight
			break
		}
	}
	for _, hint := range g.Columns {
		if hasColumnLike(t, hint) {
			score += columnWeight
		}
	}
	for _, pat := range g.Generics {
		if hasColumnLike(t, pat) {
			score += genericWeight
		}
	}
	if score > 0 {
		score += float64(g.Priority) / 100
	}
	return score
}

func hasColumnLike(t *core.Table, pattern string) bool {
	for _, c := range t.Columns {
		if strings.Contains(core.Normalize(c.Name), pattern) {
			return true
		}
	}
	return false
}

// BestGroup returns the highest-scoring group clearing the confidence
// threshold, in group definition order on ties.
func BestGroup(t *core.Table) (Group, bool) {
	var best Group
	bestScore := 0.0
	found := false
	for _, g := range Groups() {
		if s := Score(t, g); s >= scoreThreshold && s > bestScore {
			best, bestScore, found = g, s, true
		}
	}
	return best, found
}

// Result reports what a categorization run changed.
type Result struct {
	// Created lists categories materialized by this run.
	Created []*core.Category
	// Assigned maps table name to the name of the category it was put in.
	Assigned map[string]string
}

// Changed reports whether the run modified the schema.
func (r Result) Changed() bool {
	return len(r.Assigned) > 0
}

// Run partitions the schema's currently uncategorized tables into categories,
// mutating the schema in place. Semantic scoring is computed against the
// state at entry; connectivity fallback then covers the rest. Isolated
// singletons stay uncategorized, which makes a second run a no-op.
func Run(s *core.Schema) Result {
	res := Result{Assigned: make(map[string]string)}

	var uncategorized []*core.Table
	for _, t := range s.Tables {
		if t.Category == "" {
			uncategorized = append(uncategorized, t)
		}
	}
	if len(uncategorized) == 0 {
		return res
	}

	// Phase 1: semantic scoring. All tables are scored against the entry
	// snapshot; categories materialize only after the group sweep.
	assignments := make(map[string]Group, len(uncategorized))
	for _, t := range uncategorized {
		if g, ok := BestGroup(t); ok {
			assignments[t.Name] = g
		}
	}
	for _, g := range Groups() {
		var members []*core.Table
		for _, t := range uncategorized {
			if got, ok := assignments[t.Name]; ok && got.Key == g.Key {
				members = append(members, t)
			}
		}
		if len(members) == 0 {
			continue
		}
		cat := ensureCategory(s, g.Name, g.Color, g.Icon, &res)
		for _, t := range members {
			t.Category = cat.ID
			res.Assigned[t.Name] = cat.Name
		}
	}

	// Phase 2: foreign-key connectivity over what is still uncategorized.
	var remaining []*core.Table
	for _, t := range uncategorized {
		if t.Category == "" {
			remaining = append(remaining, t)
		}
	}
	if len(remaining) == 0 {
		return res
	}

	// A table referencing (or referenced by) an already categorized table
	// inherits that category directly. Repeat until stable so chains
	// propagate within one run.
	for changed := true; changed; {
		changed = false
		for _, t := range remaining {
			if t.Category != "" {
				continue
			}
			if id := categorizedNeighbor(s, t); id != "" {
				t.Category = id
				if cat, ok := s.Category(id); ok {
					res.Assigned[t.Name] = cat.Name
				}
				changed = true
			}
		}
	}

	// Connected components over the rest; one category per component of
	// size > 1.
	g := graph.New()
	still := make(map[string]*core.Table)
	for _, t := range remaining {
		if t.Category == "" {
			g.AddNode(t.Name)
			still[t.Name] = t
		}
	}
	for _, t := range remaining {
		if t.Category != "" {
			continue
		}
		for _, c := range t.Columns {
			if c.ForeignKey != nil {
				g.AddEdge(t.Name, c.ForeignKey.Table)
			}
		}
	}
	palette := len(res.Created)
	for _, component := range g.Components() {
		if len(component) < 2 {
			continue
		}
		hub := hubOf(component, still)
		name := humanize(hub) + " group"
		color := componentPalette[palette%len(componentPalette)]
		palette++
		cat := ensureCategory(s, name, color, "", &res)
		for _, member := range component {
			still[member].Category = cat.ID
			res.Assigned[member] = cat.Name
		}
	}
	return res
}

// ensureCategory reuses an existing category by name or materializes a new
// one, recording creation in the result.
func ensureCategory(s *core.Schema, name, color, icon string, res *Result) *core.Category {
	if cat, ok := s.CategoryByName(name); ok {
		return cat
	}
	cat := core.NewCategory(name, color)
	cat.Icon = icon
	s.Categories = append(s.Categories, cat)
	res.Created = append(res.Created, cat)
	return cat
}

// categorizedNeighbor returns the category ID of the first categorized table
// connected to t by a foreign key in either direction, in schema order.
func categorizedNeighbor(s *core.Schema, t *core.Table) string {
	for _, c := range t.Columns {
		if c.ForeignKey == nil {
			continue
		}
		if ref, ok := s.Table(c.ForeignKey.Table); ok && ref.Category != "" {
			return ref.Category
		}
	}
	for _, other := range s.Tables {
		if other.Category == "" {
			continue
		}
		for _, c := range other.Columns {
			if c.ForeignKey != nil && core.EqualFold(c.ForeignKey.Table, t.Name) {
				return other.Category
			}
		}
	}
	return ""
}

// hubOf picks the most connected member of a component, alphabetical on ties.
func hubOf(component []string, tables map[string]*core.Table) string {
	hub := component[0]
	bestDegree := -1
	for _, name := range component {
		degree := 0
		t := tables[name]
		for _, c := range t.Columns {
			if c.ForeignKey != nil {
				degree++
			}
		}
		for _, other := range component {
			if other == name {
				continue
			}
			for _, c := range tables[other].Columns {
				if c.ForeignKey != nil && core.EqualFold(c.ForeignKey.Table, name) {
					degree++
				}
			}
		}
		if degree > bestDegree {
			hub, bestDegree = name, degree
		}
	}
	return hub
}

func humanize(name string) string {
	name = strings.ReplaceAll(core.Normalize(name), "_", " ")
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
