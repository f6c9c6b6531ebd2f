// Package infer guesses a SQL column type from a column name. The heuristics
// are an ordered first-match-wins chain, most specific first; the order is
// load-bearing, so it is exposed for tests as data.
package infer

import (
	"strings"

	"github.com/leapstack-labs/tablesmith/pkg/rules"
)

// DefaultType is returned when no heuristic matches.
const DefaultType = "VARCHAR(255)"

func contains(substrings ...string) func(string) bool {
	return func(name string) bool {
		for _, sub := range substrings {
			if strings.Contains(name, sub) {
				return true
			}
		}
		return false
	}
}

func hasPrefix(prefixes ...string) func(string) bool {
	return func(name string) bool {
		for _, p := range prefixes {
			if strings.HasPrefix(name, p) {
				return true
			}
		}
		return false
	}
}

// chain holds the type heuristics in priority order. Specific checks must
// precede generic fallbacks: "user_id" hits the id rule before anything else,
// "created_at" hits the timestamp rule before the generic varchar fallback.
var chain = rules.NewChain(DefaultType,
	rules.Rule[string, string]{
		Name: "id",
		When: func(name string) bool { return name == "id" || strings.HasSuffix(name, "_id") },
		Then: "INT",
	},
	rules.Rule[string, string]{Name: "email", When: contains("email"), Then: "VARCHAR(255)"},
	rules.Rule[string, string]{Name: "password", When: contains("password", "hash"), Then: "VARCHAR(255)"},
	rules.Rule[string, string]{
		Name: "money",
		When: contains("price", "cost", "amount", "total", "salary"),
		Then: "DECIMAL(10,2)",
	},
	rules.Rule[string, string]{
		Name: "integer",
		When: contains("count", "quantity", "stock", "age", "number"),
		Then: "INT",
	},
	rules.Rule[string, string]{
		Name: "timestamp",
		When: func(name string) bool {
			return strings.HasSuffix(name, "_at") ||
				contains("date", "time", "created", "updated", "deleted")(name)
		},
		Then: "TIMESTAMP",
	},
	rules.Rule[string, string]{
		Name: "boolean",
		When: func(name string) bool {
			return hasPrefix("is_", "has_", "can_")(name) ||
				contains("active", "enabled", "verified", "approved")(name)
		},
		Then: "BOOLEAN",
	},
	rules.Rule[string, string]{
		Name: "text",
		When: contains("description", "content", "body", "text", "bio", "notes", "address"),
		Then: "TEXT",
	},
	rules.Rule[string, string]{
		Name: "url",
		When: contains("url", "link", "image", "avatar", "photo"),
		Then: "VARCHAR(500)",
	},
	rules.Rule[string, string]{
		Name: "json",
		When: contains("json", "data", "meta", "config", "settings"),
		Then: "JSON",
	},
	rules.Rule[string, string]{Name: "uuid", When: contains("uuid", "guid"), Then: "UUID"},
	rules.Rule[string, string]{
		Name: "enum",
		When: contains("status", "type", "role", "category"),
		Then: "VARCHAR(50)",
	},
	rules.Rule[string, string]{
		Name: "label",
		When: contains("name", "title", "label"),
		Then: "VARCHAR(100)",
	},
)

// Type infers a SQL type from a column name. It is pure and total: every
// name yields a type, falling back to DefaultType.
func Type(column string) string {
	return chain.Eval(strings.ToLower(strings.TrimSpace(column)))
}

// Heuristics exposes the ordered rule chain for priority-order tests.
func Heuristics() *rules.Chain[string, string] {
	return chain
}
