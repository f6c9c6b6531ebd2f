package intent

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/tablesmith/pkg/rules"
)

func match(pattern string) func(string) bool {
	re := regexp.MustCompile(pattern)
	return re.MatchString
}

// chain is the ordered intent cascade. First match wins, and the order is
// the correctness property: relationship phrasing is checked before generic
// add/create so "add relationships" is not misread as add_column, category
// phrasing before table creation so "create X table in Y category" does not
// resolve to create_table, and the plural-cue create rules are interleaved
// with the add-column rules so "add email and phone to customers" is not
// misread as table creation.
var chain = rules.NewChain(Unknown,
	// Short conversational intents.
	rules.Rule[string, Intent]{
		Name: "greeting",
		When: match(`^(hi|hello|hey|yo|howdy|good (morning|afternoon|evening))\b`),
		Then: Greeting,
	},
	rules.Rule[string, Intent]{
		Name: "thanks",
		When: match(`\b(thanks|thank you|thx|appreciated)\b`),
		Then: Thanks,
	},
	rules.Rule[string, Intent]{
		Name: "bye",
		When: match(`\b(bye|goodbye|see you|cya)\b`),
		Then: Bye,
	},
	rules.Rule[string, Intent]{
		Name: "help",
		When: match(`\bhelp\b|what can you do|how do i\b`),
		Then: Help,
	},
	rules.Rule[string, Intent]{
		Name: "clear",
		When: match(`\b(clear|reset|start over|wipe)\b`),
		Then: Clear,
	},
	rules.Rule[string, Intent]{
		Name: "stats",
		When: match(`\b(stats|statistics|summary|overview|how many)\b`),
		Then: Stats,
	},

	// Relationship phrasing, before generic add/create.
	rules.Rule[string, Intent]{
		Name: "remove_fk",
		When: match(`\b(remove|delete|drop|unlink)\b.*\b(foreign key|relationship|relation|link)`),
		Then: RemoveFK,
	},
	rules.Rule[string, Intent]{
		Name: "add_fks_auto",
		When: match(`\b(add|create|make|generate|set up|setup)\b.*\b(relationships?|relations|foreign keys)\b` +
			`|\b(link|connect)\s+(them|those|these|everything|all|the tables)\b` +
			`|\bauto[- ]?(wire|link|connect)\b`),
		Then: AddFKsAuto,
	},
	rules.Rule[string, Intent]{
		Name: "add_fk",
		When: match(`\b(link|connect)\b|\bforeign key\b|\breferences?\b|\brelate\b.*\bto\b`),
		Then: AddFK,
	},

	// Category phrasing, before table creation.
	rules.Rule[string, Intent]{
		Name: "auto_categorize",
		When: match(`\bauto[- ]?categori[sz]e\b` +
			`|\b(categori[sz]e|organi[sz]e|group)\b.*\b(tables|schema|everything|them)\b` +
			`|\bgroup them\b`),
		Then: AutoCategorize,
	},
	rules.Rule[string, Intent]{
		Name: "create_table_in_category",
		When: match(`\b(create|add|make|new)\b.*\btable\b.*\b(in|into|under)\b.*\bcategory\b` +
			`|\bin the \w+ category\b`),
		Then: CreateTableInCategory,
	},
	rules.Rule[string, Intent]{
		Name: "create_category",
		When: match(`\b(create|add|make|new)\b.*\bcategory\b`),
		Then: CreateCategory,
	},
	rules.Rule[string, Intent]{
		Name: "assign_category",
		When: match(`\b(assign|move|put|place)\b.*\b(category|group)\b`),
		Then: AssignCategory,
	},
	rules.Rule[string, Intent]{
		Name: "color",
		When: match(`\bcolou?r\b`),
		Then: Color,
	},

	// Rename, type change, removal, column flags.
	rules.Rule[string, Intent]{
		Name: "rename_column",
		When: match(`\brename\b.*\b(column|field)\b|\brename \w+\.\w+`),
		Then: RenameColumn,
	},
	rules.Rule[string, Intent]{
		Name: "rename_table",
		When: match(`\brename\b`),
		Then: RenameTable,
	},
	rules.Rule[string, Intent]{
		Name: "change_type",
		When: match(`\bchange\b.*\btype\b|\btype of\b` +
			`|\bmake\b \w+ (a|an|the) (int|integer|bigint|varchar|text|boolean|bool|timestamp|date|decimal|numeric|uuid|json)\b`),
		Then: ChangeType,
	},
	rules.Rule[string, Intent]{
		Name: "remove_column",
		When: match(`\b(remove|delete|drop)\b.*\b(column|field)\b`),
		Then: RemoveColumn,
	},
	rules.Rule[string, Intent]{
		Name: "remove_table",
		When: match(`\b(remove|delete|drop)\b`),
		Then: RemoveTable,
	},
	rules.Rule[string, Intent]{
		Name: "set_pk",
		When: match(`\b(set|make|mark)\b.*\bprimary key\b|\bprimary key\b`),
		Then: SetPK,
	},
	rules.Rule[string, Intent]{
		Name: "set_unique",
		When: match(`\b(set|make|mark)\b.*\bunique\b`),
		Then: SetUnique,
	},
	rules.Rule[string, Intent]{
		Name: "set_required",
		When: match(`\b(required|not null|mandatory)\b`),
		Then: SetRequired,
	},
	rules.Rule[string, Intent]{
		Name: "set_nullable",
		When: match(`\b(nullable|optional)\b|\bcan be (null|empty)\b`),
		Then: SetNullable,
	},

	// Inspection and advice.
	rules.Rule[string, Intent]{
		Name: "describe",
		When: match(`\b(describe|show|list)\b|what('s| is) in\b`),
		Then: Describe,
	},
	rules.Rule[string, Intent]{
		Name: "optimize",
		When: match(`\b(optimi[sz]e|improve|normali[sz]e)\b`),
		Then: Optimize,
	},
	rules.Rule[string, Intent]{
		Name: "suggest",
		When: match(`\b(suggest|recommend)\b|\bwhat should\b`),
		Then: Suggest,
	},

	// Column addition with explicit column words.
	rules.Rule[string, Intent]{
		Name: "add_columns",
		When: match(`\b(add|insert|give)\b.*\bcolumns\b|\b(add|create|insert)\b.*\bcolumns\b.*\b(to|in|on|for)\b`),
		Then: AddColumns,
	},
	rules.Rule[string, Intent]{
		Name: "add_column",
		When: match(`\b(add|insert|give|create)\b.*\b(column|field)\b`),
		Then: AddColumn,
	},

	// Generic create, sub-branched on plural cues.
	rules.Rule[string, Intent]{
		Name: "create_tables",
		When: match(`\b(create|add|make|build|generate)\b.*\btables\b`),
		Then: CreateTables,
	},
	rules.Rule[string, Intent]{
		Name: "create_table",
		When: match(`\b(create|add|make|build|generate|new)\b.*\btable\b`),
		Then: CreateTable,
	},
	// Bare "add X to Y" forms, after the table words had their chance.
	rules.Rule[string, Intent]{
		Name: "add_columns_bare",
		When: match(`\badd\b.*,.*\bto\s+\w+|\badd\b.*\band\b.*\bto\s+\w+`),
		Then: AddColumns,
	},
	rules.Rule[string, Intent]{
		Name: "add_column_bare",
		When: match(`\badd\s+(a\s+|an\s+)?\w+\s+to\s+\w+`),
		Then: AddColumn,
	},
	rules.Rule[string, Intent]{
		Name: "create_tables_list",
		When: match(`\b(create|build|generate)\b[^,]*,|\b(create|build|generate)\b.*\band\b`),
		Then: CreateTables,
	},
	rules.Rule[string, Intent]{
		Name: "create_table_bare",
		When: match(`^(create|make|new)\s+(a\s+|an\s+)?\w+$`),
		Then: CreateTable,
	},

	// Context-referential fallback: anaphora with an add verb is treated as
	// column addition against the recently touched tables.
	rules.Rule[string, Intent]{
		Name: "context_add",
		When: match(`\badd\b.*\b(them|those|these|it)\b|\balso add\b|\badd\b.*\bthe new tables?\b`),
		Then: AddColumns,
	},
)

// Classify maps a free-text command to exactly one intent.
func Classify(text string) Intent {
	return chain.Eval(strings.ToLower(strings.TrimSpace(text)))
}

// Cascade exposes the ordered rule chain for priority-order tests.
func Cascade() *rules.Chain[string, Intent] {
	return chain
}
