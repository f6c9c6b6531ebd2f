package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tablesmith/internal/cli/output"
	"github.com/leapstack-labs/tablesmith/internal/state"
	"github.com/leapstack-labs/tablesmith/pkg/chat"
	"github.com/leapstack-labs/tablesmith/pkg/core"
	"github.com/leapstack-labs/tablesmith/pkg/export"
)

// NewChatCommand creates the interactive chat command.
func NewChatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Design a schema interactively",
		Long: `Start an interactive session against the active schema.

Plain sentences mutate the schema; dot-commands manage the session:
  .schema        show the current tables
  .sql           print the schema as SQL DDL
  .save          persist the schema to the workspace
  .load <name>   switch to another saved schema
  .clear         wipe the in-memory schema
  .quit          save and exit`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChat(cmd)
		},
	}
}

func runChat(cmd *cobra.Command) error {
	cfg := getConfig(cmd)
	styles := output.NewStyles(cfg.NoColor)

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	name := cfg.Schema
	schema := loadOrEmpty(store, name)
	sess := core.NewSession()
	exec := chat.New()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          styles.Prompt.Render("tablesmith> "),
		HistoryFile:     cfg.History,
		AutoComplete:    chatCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize chat: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, styles.Title.Render(fmt.Sprintf("tablesmith (schema: %s)", name)))
	fmt.Fprintln(out, styles.Muted.Render("Describe what you want, e.g. \"create tables users, products, orders\". Type .help for commands."))
	fmt.Fprintln(out)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			quit, switched := handleDotCommand(cmd, store, styles, line, &name, &schema, sess)
			if quit {
				break
			}
			if switched {
				rl.SetPrompt(styles.Prompt.Render("tablesmith> "))
			}
			continue
		}

		next, resp := exec.Execute(schema, line, sess)
		schema = next
		_ = store.AppendMessage(name, state.RoleUser, line)
		_ = store.AppendMessage(name, state.RoleAssistant, resp)
		fmt.Fprintln(out, styles.Reply.Render(resp))
		fmt.Fprintln(out)
	}

	// persist on exit so ^D never loses work
	if err := store.SaveSchema(name, schema); err != nil {
		return fmt.Errorf("failed to save schema on exit: %w", err)
	}
	fmt.Fprintln(out, styles.Muted.Render(fmt.Sprintf("Saved schema %q.", name)))
	return nil
}

// handleDotCommand runs one dot-command. It reports whether the REPL should
// quit and whether the active schema changed.
func handleDotCommand(cmd *cobra.Command, store *state.SQLiteStore, styles *output.Styles,
	line string, name *string, schema **core.Schema, sess *core.Session) (quit, switched bool) {

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	parts := strings.Fields(line)

	switch strings.ToLower(parts[0]) {
	case ".quit", ".exit":
		return true, false

	case ".help":
		fmt.Fprintln(out, styles.Muted.Render(`.schema  .sql  .save  .load <name>  .clear  .quit`))

	case ".schema":
		if len((*schema).Tables) == 0 {
			fmt.Fprintln(out, styles.Muted.Render("(empty schema)"))
			break
		}
		for _, t := range (*schema).Tables {
			fmt.Fprintf(out, "%s (%d columns)\n", styles.Badge.Render(t.Name), len(t.Columns))
		}

	case ".sql":
		fmt.Fprintln(out, export.SQL(*schema))

	case ".save":
		if err := store.SaveSchema(*name, *schema); err != nil {
			fmt.Fprintln(errOut, styles.Error.Render(fmt.Sprintf("save failed: %v", err)))
			break
		}
		fmt.Fprintln(out, styles.Success.Render(fmt.Sprintf("Saved schema %q.", *name)))

	case ".load":
		if len(parts) < 2 {
			fmt.Fprintln(errOut, "Usage: .load <name>")
			break
		}
		if err := store.SaveSchema(*name, *schema); err != nil {
			fmt.Fprintln(errOut, styles.Error.Render(fmt.Sprintf("save failed: %v", err)))
			break
		}
		*name = parts[1]
		*schema = loadOrEmpty(store, *name)
		sess.Reset()
		fmt.Fprintln(out, styles.Success.Render(fmt.Sprintf("Now editing schema %q.", *name)))
		return false, true

	case ".clear":
		*schema = core.NewSchema()
		(*schema).Name = *name
		sess.Reset()
		fmt.Fprintln(out, styles.Muted.Render("Cleared the schema."))

	default:
		fmt.Fprintf(errOut, "Unknown command: %s (type .help for commands)\n", parts[0])
	}
	return false, false
}

func chatCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".schema"),
		readline.PcItem(".sql"),
		readline.PcItem(".save"),
		readline.PcItem(".load"),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem("create"),
		readline.PcItem("add"),
		readline.PcItem("remove"),
		readline.PcItem("rename"),
		readline.PcItem("link"),
		readline.PcItem("describe"),
		readline.PcItem("categorize"),
	)
}
