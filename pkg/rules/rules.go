// Package rules provides a first-match-wins rule chain: an ordered list of
// (predicate, result) pairs evaluated in declaration order. Classifiers build
// on it so their priority order is plain data, testable apart from dispatch.
package rules

// Rule pairs a predicate with the result produced when it matches.
type Rule[T, R any] struct {
	// Name identifies the rule in tests and diagnostics.
	Name string
	// When reports whether the rule matches the input.
	When func(T) bool
	// Then is the result when the rule matches.
	Then R
}

// Chain is an ordered rule list with a fallback result.
type Chain[T, R any] struct {
	rules    []Rule[T, R]
	fallback R
}

// NewChain builds a chain from rules in priority order.
func NewChain[T, R any](fallback R, rules ...Rule[T, R]) *Chain[T, R] {
	return &Chain[T, R]{rules: rules, fallback: fallback}
}

// Eval returns the result of the first matching rule, or the fallback.
func (c *Chain[T, R]) Eval(v T) R {
	for _, r := range c.rules {
		if r.When(v) {
			return r.Then
		}
	}
	return c.fallback
}

// Match returns the name of the first matching rule alongside its result.
// An empty name means the fallback applied.
func (c *Chain[T, R]) Match(v T) (string, R) {
	for _, r := range c.rules {
		if r.When(v) {
			return r.Name, r.Then
		}
	}
	return "", c.fallback
}

// Rules exposes the chain's rules in evaluation order.
func (c *Chain[T, R]) Rules() []Rule[T, R] {
	return c.rules
}

// Fallback returns the chain's fallback result.
func (c *Chain[T, R]) Fallback() R {
	return c.fallback
}
