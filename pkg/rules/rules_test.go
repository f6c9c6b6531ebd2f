package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChainFirstMatchWins(t *testing.T) {
	c := NewChain("fallback",
		Rule[string, string]{
			Name: "specific",
			When: func(s string) bool { return strings.Contains(s, "user_id") },
			Then: "specific",
		},
		Rule[string, string]{
			Name: "generic",
			When: func(s string) bool { return strings.Contains(s, "id") },
			Then: "generic",
		},
	)

	assert.Equal(t, "specific", c.Eval("user_id"))
	assert.Equal(t, "generic", c.Eval("uid"))
	assert.Equal(t, "fallback", c.Eval("name"))
}

func TestChainMatchReportsRuleName(t *testing.T) {
	c := NewChain(0,
		Rule[string, int]{Name: "short", When: func(s string) bool { return len(s) < 3 }, Then: 1},
	)

	name, got := c.Match("ab")
	assert.Equal(t, "short", name)
	assert.Equal(t, 1, got)

	name, got = c.Match("abcd")
	assert.Empty(t, name)
	assert.Equal(t, 0, got)
}

func TestChainOrderIsData(t *testing.T) {
	c := NewChain("",
		Rule[string, string]{Name: "a", When: func(string) bool { return true }, Then: "a"},
		Rule[string, string]{Name: "b", When: func(string) bool { return true }, Then: "b"},
	)

	names := make([]string, 0, len(c.Rules()))
	for _, r := range c.Rules() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"a", "b"}, names)
}
