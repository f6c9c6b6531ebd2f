package intent

import (
	"regexp"
	"strings"
)

// stopWords are tokens that can never be operands: articles, prepositions,
// command verbs, structural nouns and politeness fillers.
var stopWords = map[string]struct{}{
	// articles, pronouns, conjunctions
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "it": {}, "its": {},
	"them": {}, "those": {}, "these": {}, "this": {}, "that": {}, "me": {},
	"my": {}, "our": {}, "all": {}, "some": {}, "each": {}, "you": {},
	// prepositions
	"to": {}, "from": {}, "in": {}, "on": {}, "of": {}, "for": {}, "with": {},
	"into": {}, "under": {}, "at": {}, "by": {}, "as": {}, "between": {},
	// command verbs
	"create": {}, "add": {}, "remove": {}, "delete": {}, "drop": {},
	"make": {}, "build": {}, "generate": {}, "rename": {}, "change": {},
	"set": {}, "link": {}, "connect": {}, "assign": {}, "move": {},
	"put": {}, "show": {}, "describe": {}, "list": {}, "give": {},
	"insert": {}, "want": {}, "need": {}, "like": {}, "called": {},
	"named": {}, "using": {},
	// structural nouns
	"table": {}, "tables": {}, "column": {}, "columns": {}, "field": {},
	"fields": {}, "schema": {}, "database": {}, "category": {},
	"categories": {}, "key": {}, "keys": {}, "foreign": {}, "primary": {},
	"relationship": {}, "relationships": {}, "type": {}, "types": {},
	// fillers
	"please": {}, "thanks": {}, "thank": {}, "can": {}, "could": {},
	"would": {}, "should": {}, "is": {}, "are": {}, "be": {}, "will": {},
	"new": {}, "also": {}, "too": {}, "now": {}, "then": {},
	"appropriate": {}, "necessary": {}, "needed": {}, "together": {},
	"their": {}, "there": {}, "here": {}, "up": {}, "out": {},
}

var tokenRe = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

// Identifiers extracts candidate operand tokens from a command: word-boundary
// tokens longer than one character, minus stop words, order and duplicates
// preserved. Mutation branches fall back to it when their targeted patterns
// fail to capture an operand.
func Identifiers(text string) []string {
	var out []string
	for _, tok := range tokenRe.FindAllString(text, -1) {
		lower := strings.ToLower(tok)
		if len(lower) <= 1 {
			continue
		}
		if _, stop := stopWords[lower]; stop {
			continue
		}
		out = append(out, lower)
	}
	return out
}

var anaphoraRe = regexp.MustCompile(`\b(them|those|these|it)\b|\balso\b|\btoo\b|\bas well\b|\bthe new tables?\b|\bnow\b`)

// Anaphoric reports whether the text refers back to recently touched tables
// instead of naming them.
func Anaphoric(text string) bool {
	return anaphoraRe.MatchString(strings.ToLower(text))
}
