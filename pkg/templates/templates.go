// Package templates maps table names to default column sets. The archetypes
// live in an embedded YAML document so they can be extended without touching
// code. Lookup never returns an empty column list.
package templates

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/tablesmith/pkg/core"
)

//go:embed templates.yaml
var templatesYAML []byte

type columnSpec struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	PrimaryKey bool   `yaml:"primaryKey"`
	Unique     bool   `yaml:"unique"`
	Nullable   *bool  `yaml:"nullable"`
	Default    string `yaml:"default"`
	References *struct {
		Table  string `yaml:"table"`
		Column string `yaml:"column"`
	} `yaml:"references"`
}

type document struct {
	Templates map[string][]columnSpec `yaml:"templates"`
}

// Library resolves table names to template column sets.
type Library struct {
	templates map[string][]*core.Column
	// order holds the archetype names sorted, so substring fallback scans
	// are deterministic.
	order []string
}

var (
	defaultOnce sync.Once
	defaultLib  *Library
)

// Default returns the library built from the embedded archetypes.
func Default() *Library {
	defaultOnce.Do(func() {
		lib, err := Load(templatesYAML)
		if err != nil {
			// The embedded document is part of the build; a parse failure
			// is a programming error.
			panic(fmt.Sprintf("templates: embedded archetypes: %v", err))
		}
		defaultLib = lib
	})
	return defaultLib
}

// Load parses a YAML archetype document into a library.
func Load(data []byte) (*Library, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	lib := &Library{templates: make(map[string][]*core.Column, len(doc.Templates))}
	for name, specs := range doc.Templates {
		cols := make([]*core.Column, 0, len(specs))
		for _, spec := range specs {
			col := &core.Column{
				Name:       spec.Name,
				Type:       spec.Type,
				PrimaryKey: spec.PrimaryKey,
				Unique:     spec.Unique,
				Nullable:   !spec.PrimaryKey,
				Default:    spec.Default,
			}
			if spec.Nullable != nil {
				col.Nullable = *spec.Nullable && !spec.PrimaryKey
			}
			if spec.References != nil {
				col.ForeignKey = &core.ForeignKey{
					Table:  spec.References.Table,
					Column: spec.References.Column,
				}
			}
			cols = append(cols, col)
		}
		if len(cols) == 0 {
			return nil, fmt.Errorf("parse templates: archetype %q has no columns", name)
		}
		lib.templates[core.Normalize(name)] = cols
	}
	lib.order = make([]string, 0, len(lib.templates))
	for name := range lib.templates {
		lib.order = append(lib.order, name)
	}
	sort.Strings(lib.order)
	return lib, nil
}

// baseline is the column set used when no archetype matches.
func baseline() []*core.Column {
	return []*core.Column{
		{Name: "id", Type: "INT", PrimaryKey: true},
		{Name: "name", Type: "VARCHAR(100)", Nullable: true},
		{Name: "created_at", Type: "TIMESTAMP", Nullable: true, Default: "CURRENT_TIMESTAMP"},
		{Name: "updated_at", Type: "TIMESTAMP", Nullable: true},
	}
}

// Columns returns the default columns for a table name. Lookup order: exact
// normalized match, singular/plural variants, bidirectional substring match,
// then the 4-column baseline. The result is always non-empty and deep-copied,
// so callers may mutate PK/FK flags in place.
func (l *Library) Columns(table string) []*core.Column {
	name := core.Normalize(table)

	if cols, ok := l.templates[name]; ok {
		return cloneColumns(cols)
	}
	for _, variant := range []string{core.Singularize(name), core.Pluralize(name)} {
		if cols, ok := l.templates[variant]; ok {
			return cloneColumns(cols)
		}
	}
	for _, key := range l.order {
		if strings.Contains(name, key) || strings.Contains(key, name) {
			return cloneColumns(l.templates[key])
		}
	}
	return baseline()
}

// Has reports whether an archetype exists for the name, using the same
// lookup order as Columns minus the baseline.
func (l *Library) Has(table string) bool {
	name := core.Normalize(table)
	if _, ok := l.templates[name]; ok {
		return true
	}
	for _, variant := range []string{core.Singularize(name), core.Pluralize(name)} {
		if _, ok := l.templates[variant]; ok {
			return true
		}
	}
	for _, key := range l.order {
		if strings.Contains(name, key) || strings.Contains(key, name) {
			return true
		}
	}
	return false
}

// Names returns the archetype names in sorted order.
func (l *Library) Names() []string {
	return l.order
}

func cloneColumns(cols []*core.Column) []*core.Column {
	out := make([]*core.Column, len(cols))
	for i, c := range cols {
		out[i] = c.Clone()
	}
	return out
}
