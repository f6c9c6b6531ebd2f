// Package intent classifies free-form chat commands into a closed intent set
// and extracts candidate operand tokens. Classification is an ordered
// first-match-wins cascade; the order is the correctness property, so it is
// exposed as data for tests.
package intent

// Intent is the closed-set classification of a free-text command.
type Intent string

// The full intent vocabulary. Anything that matches no rule is Unknown.
const (
	CreateTables          Intent = "create_tables"
	CreateTable           Intent = "create_table"
	CreateTableInCategory Intent = "create_table_in_category"
	AddColumn             Intent = "add_column"
	AddColumns            Intent = "add_columns"
	RemoveTable           Intent = "remove_table"
	RemoveColumn          Intent = "remove_column"
	RenameTable           Intent = "rename_table"
	RenameColumn          Intent = "rename_column"
	AddFK                 Intent = "add_fk"
	AddFKsAuto            Intent = "add_fks_auto"
	RemoveFK              Intent = "remove_fk"
	SetPK                 Intent = "set_pk"
	SetUnique             Intent = "set_unique"
	SetNullable           Intent = "set_nullable"
	SetRequired           Intent = "set_required"
	Describe              Intent = "describe"
	Clear                 Intent = "clear"
	Help                  Intent = "help"
	Stats                 Intent = "stats"
	Greeting              Intent = "greeting"
	Thanks                Intent = "thanks"
	Bye                   Intent = "bye"
	ChangeType            Intent = "change_type"
	Color                 Intent = "color"
	Optimize              Intent = "optimize"
	Suggest               Intent = "suggest"
	AssignCategory        Intent = "assign_category"
	CreateCategory        Intent = "create_category"
	AutoCategorize        Intent = "auto_categorize"
	Unknown               Intent = "unknown"
)
