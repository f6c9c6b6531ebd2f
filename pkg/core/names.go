package core

import "strings"

// Normalize lowercases a name and converts separators to underscores, so
// "Order Items", "order-items" and "order_items" all compare equal.
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")
	return name
}

// EqualFold reports whether two names are equal after normalization.
func EqualFold(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// Singularize strips a plural suffix from a name. It covers the regular
// English forms that show up in table naming; irregular plurals are left
// alone.
func Singularize(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, "ies") && len(lower) > 3:
		return name[:len(name)-3] + "y"
	case strings.HasSuffix(lower, "ses") || strings.HasSuffix(lower, "xes") ||
		strings.HasSuffix(lower, "zes") || strings.HasSuffix(lower, "ches") ||
		strings.HasSuffix(lower, "shes"):
		return name[:len(name)-2]
	case strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ss") && len(lower) > 1:
		return name[:len(name)-1]
	}
	return name
}

// Pluralize appends a plural suffix to a name.
func Pluralize(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, "y") && len(lower) > 1 && !isVowel(lower[len(lower)-2]):
		return name[:len(name)-1] + "ies"
	case strings.HasSuffix(lower, "s") || strings.HasSuffix(lower, "x") ||
		strings.HasSuffix(lower, "z") || strings.HasSuffix(lower, "ch") ||
		strings.HasSuffix(lower, "sh"):
		return name + "es"
	}
	return name + "s"
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// NameMatches reports whether candidate matches wanted, tolerating case and
// plural differences.
func NameMatches(candidate, wanted string) bool {
	c, w := Normalize(candidate), Normalize(wanted)
	if c == w {
		return true
	}
	return Singularize(c) == Singularize(w)
}
