package chat

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/tablesmith/pkg/intent"
)

// Operand extraction. Each regex pulls the words that matter out of one
// phrasing family; handlers fall back to intent.Identifiers when a targeted
// pattern misses.
var (
	describeRe = regexp.MustCompile(`(?i)\b(?:describe|show(?:\s+me)?|what(?:'s|\s+is)\s+in|tell\s+me\s+about)\s+(?:the\s+)?([a-z0-9_ ]+?)(?:\s+tables?)?\s*[?.!]?$`)

	// create a users table / create table users / make an orders table
	createTableRe = regexp.MustCompile(`(?i)\b(?:create|make|add|build|new)\s+(?:a\s+|an\s+|the\s+)?(?:new\s+)?(?:table\s+(?:called\s+|named\s+)?)?([a-z][a-z0-9_]*)(?:\s+table)?`)

	// ... with order_number, total and status (columns)
	withTailRe = regexp.MustCompile(`(?i)\s+(?:with|having|containing|that\s+has)\s+(.+)$`)

	// create tables users, products, orders
	createListRe = regexp.MustCompile(`(?i)\b(?:create|make|add|build|set\s+up)\s+(?:the\s+)?(?:new\s+)?tables?\s+(?:called\s+|named\s+|for\s+)?(.+)$`)

	// create a payments table in the Finance category
	inCategoryRe = regexp.MustCompile(`(?i)\s+(?:in|under|to)\s+(?:the\s+)?([a-z0-9_ ]+?)\s+(?:category|group)\s*[?.!]?$`)

	// add (an) email column to customers / add email to customers
	addColumnRe = regexp.MustCompile(`(?i)\b(?:add|insert|give|put)\s+(?:a\s+|an\s+|the\s+)?([a-z][a-z0-9_]*)\s+(?:column|field)\s+(?:to|in|into|on)\s+(?:the\s+)?([a-z0-9_ ]+?)(?:\s+table)?\s*[?.!]?$`)
	addBareRe   = regexp.MustCompile(`(?i)\b(?:add|insert|give|put)\s+(?:a\s+|an\s+|the\s+)?([a-z][a-z0-9_]*)\s+(?:to|in|into|on)\s+(?:the\s+)?([a-z0-9_ ]+?)(?:\s+table)?\s*[?.!]?$`)

	// add columns a, b, c to orders / add a, b and c columns to orders
	addColumnsRe = regexp.MustCompile(`(?i)\b(?:add|insert|give|put)\s+(?:the\s+)?(?:columns?\s+|fields?\s+)?(.+?)(?:\s+(?:columns?|fields?))?\s+(?:to|in|into|on)\s+(?:the\s+)?([a-z0-9_ ]+?)(?:\s+table)?\s*[?.!]?$`)

	// remove/drop the email column from users
	removeColumnRe = regexp.MustCompile(`(?i)\b(?:remove|drop|delete)\s+(?:the\s+)?([a-z][a-z0-9_]*)\s+(?:column|field)\s+(?:from|in|of|on)\s+(?:the\s+)?([a-z0-9_ ]+?)(?:\s+table)?\s*[?.!]?$`)

	// rename X to Y [in T]
	renameRe = regexp.MustCompile(`(?i)\brename\s+(?:the\s+)?(?:column\s+|field\s+|table\s+)?([a-z][a-z0-9_]*)\s+(?:column\s+|field\s+)?(?:to|as)\s+([a-z][a-z0-9_]*)`)
	inTableRe = regexp.MustCompile(`(?i)\s+(?:in|on|of)\s+(?:the\s+)?([a-z0-9_ ]+?)(?:\s+table)?\s*[?.!]?$`)

	// change email to TEXT / change the type of email in users to TEXT
	changeTypeRe = regexp.MustCompile(`(?i)\b(?:change|set|make|alter)\s+(?:the\s+)?(?:type\s+of\s+)?(?:the\s+)?([a-z][a-z0-9_]*)(?:\s+column|\s+field)?(?:\s+(?:in|on|of)\s+(?:the\s+)?([a-z][a-z0-9_]*)(?:\s+table)?)?\s+to\s+(?:a\s+|an\s+)?([a-z][a-z0-9_() ,]*?)(?:\s+type)?\s*[?.!]?$`)

	// remove/drop the users table
	removeTableRe = regexp.MustCompile(`(?i)\b(?:remove|drop|delete|destroy)\s+(?:the\s+)?(?:table\s+)?([a-z][a-z0-9_]*)(?:\s+table)?\s*[?.!]?$`)

	// make users blue / color the orders table green
	colorRe = regexp.MustCompile(`(?i)\b(?:color|colour|paint|make)\s+(?:the\s+)?([a-z][a-z0-9_]*)(?:\s+table)?\s+(red|orange|yellow|green|teal|blue|indigo|purple|pink|gray|grey)\b`)

	// set id as the primary key in users / make email unique in customers
	constraintRe = regexp.MustCompile(`(?i)\b(?:set|make|mark)\s+(?:the\s+)?([a-z][a-z0-9_]*)(?:\s+column|\s+field)?\s+(?:as\s+)?(?:the\s+)?(?:a\s+)?(?:primary\s+key|unique|required|not\s+null|optional|nullable|mandatory)(?:\s+(?:in|on|of|for)\s+(?:the\s+)?([a-z0-9_ ]+?)(?:\s+table)?)?\s*[?.!]?$`)

	// link orders to users / connect posts and users
	linkRe = regexp.MustCompile(`(?i)\b(?:link|connect|relate|join|associate)\s+(?:the\s+)?([a-z][a-z0-9_]*)(?:\s+table)?\s+(?:to|with|and)\s+(?:the\s+)?([a-z][a-z0-9_]*)`)

	// make orders.user_id reference users / orders reference users via user_id
	referenceRe = regexp.MustCompile(`(?i)\b(?:make\s+)?([a-z][a-z0-9_]*)\.([a-z][a-z0-9_]*)\s+(?:reference|references|point\s+to|refer\s+to)\s+(?:the\s+)?([a-z][a-z0-9_]*)`)

	// remove the fk from orders to users / unlink orders from users
	unlinkRe = regexp.MustCompile(`(?i)\b(?:unlink|disconnect|remove|drop|delete)\b.*?\b([a-z][a-z0-9_]*)\s+(?:from|to|and)\s+(?:the\s+)?([a-z][a-z0-9_]*)`)

	// create a Finance category / add a category called Billing
	createCategoryRe = regexp.MustCompile(`(?i)\b(?:create|make|add|new)\s+(?:a\s+|an\s+|the\s+)?(?:category|group)\s+(?:called\s+|named\s+|for\s+)?([a-z0-9_ ]+?)\s*[?.!]?$`)
	categoryFirstRe  = regexp.MustCompile(`(?i)\b(?:create|make|add|new)\s+(?:a\s+|an\s+|the\s+)?([a-z0-9_ ]+?)\s+(?:category|group)\s*[?.!]?$`)

	// put users in the Core category / move orders to Commerce
	assignCategoryRe = regexp.MustCompile(`(?i)\b(?:put|move|assign|place|add)\s+(?:the\s+)?([a-z][a-z0-9_]*)(?:\s+table)?\s+(?:in|into|to|under)\s+(?:the\s+)?([a-z0-9_ ]+?)(?:\s+(?:category|group))?\s*[?.!]?$`)

	listSplitRe = regexp.MustCompile(`\s*(?:,|\band\b|\bplus\b|&)\s*`)
)

// firstSubmatch returns the first capture group, trimmed, or "".
func firstSubmatch(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// splitList breaks "a, b and c" into its items, dropping filler.
func splitList(text string) []string {
	var out []string
	for _, part := range listSplitRe.Split(text, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		// keep only the leading identifier of each item, dropping
		// trailing prose like "price column"
		ids := intent.Identifiers(part)
		if len(ids) > 0 {
			out = append(out, ids[0])
		}
	}
	return out
}

// stripWithTail removes a trailing "with appropriate columns" style clause
// and returns the clause body, if any.
func stripWithTail(text string) (head, tail string) {
	loc := withTailRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return text, ""
	}
	return text[:loc[0]], strings.TrimSpace(text[loc[2]:loc[3]])
}

// vagueColumnTail reports whether a "with ..." clause describes columns only
// vaguely, like "with appropriate columns", rather than naming them.
func vagueColumnTail(tail string) bool {
	lower := strings.ToLower(tail)
	for _, marker := range []string{"appropriate", "relevant", "suitable", "sensible", "standard", "typical", "necessary", "some ", "usual", "common", "basic", "default"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return lower == "columns" || lower == "fields"
}
