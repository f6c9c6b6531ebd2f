package chat

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/tablesmith/pkg/core"
)

//go:embed fkpairs.yaml
var fkpairsYAML []byte

type semanticPair struct {
	Column string `yaml:"column"`
	Table  string `yaml:"table"`
}

type pairsDoc struct {
	Pairs []semanticPair `yaml:"pairs"`
}

var (
	pairsOnce sync.Once
	pairsList []semanticPair
)

func semanticPairs() []semanticPair {
	pairsOnce.Do(func() {
		var doc pairsDoc
		if err := yaml.Unmarshal(fkpairsYAML, &doc); err != nil {
			panic(fmt.Sprintf("chat: embedded fk pairs: %v", err))
		}
		pairsList = doc.Pairs
	})
	return pairsList
}

// wireRelationships scans every *_id column and wires foreign keys in two
// passes: literal name resolution first, then the semantic pair list. It
// returns the wired references as "table.column -> target" strings, in
// schema order.
func wireRelationships(s *core.Schema) []string {
	var wired []string
	for _, t := range s.Tables {
		for _, c := range t.Columns {
			if c.ForeignKey != nil || c.PrimaryKey {
				continue
			}
			name := core.Normalize(c.Name)
			if name == "id" || !strings.HasSuffix(name, "_id") {
				continue
			}
			base := strings.TrimSuffix(name, "_id")

			target := resolveTarget(s, t, base)
			if target == "" {
				target = resolveSemantic(s, t, base)
			}
			if target == "" || core.EqualFold(target, t.Name) && base != "parent" {
				continue
			}
			c.ForeignKey = &core.ForeignKey{Table: target, Column: "id"}
			wired = append(wired, fmt.Sprintf("%s.%s -> %s", t.Name, c.Name, target))
		}
	}
	return wired
}

// resolveTarget matches a stripped *_id base against table names directly:
// exact, then plural, then singular.
func resolveTarget(s *core.Schema, from *core.Table, base string) string {
	for _, cand := range []string{base, core.Pluralize(base), core.Singularize(base)} {
		if t, ok := s.Table(cand); ok && !core.EqualFold(t.Name, from.Name) {
			return t.Name
		}
	}
	return ""
}

// resolveSemantic matches the base against the embedded pair list. An empty
// pair table means self-reference.
func resolveSemantic(s *core.Schema, from *core.Table, base string) string {
	for _, p := range semanticPairs() {
		if base != p.Column {
			continue
		}
		if p.Table == "" {
			return from.Name
		}
		for _, cand := range []string{p.Table, core.Singularize(p.Table)} {
			if t, ok := s.Table(cand); ok {
				return t.Name
			}
		}
	}
	return ""
}
