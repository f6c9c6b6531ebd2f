package commands

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tablesmith/internal/server"
)

// NewServeCommand creates the HTTP server command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the schema engine over HTTP",
		Long: `Start an HTTP server exposing the chat engine and the active schema.

Endpoints:
  POST /api/chat              run a command, returns the reply and the schema
  GET  /api/schema            the active schema as JSON
  POST /api/schema/ddl        import CREATE TABLE statements
  POST /api/schema/categorize auto-categorize the schema
  GET  /api/schema/sql        export the schema as SQL DDL
  GET  /api/messages          recent transcript entries`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}
	cmd.Flags().Int("port", 0, "listen port (default 8815)")
	cmd.Flags().String("host", "", "listen host (default 127.0.0.1)")
	cmd.Flags().Bool("watch", false, "reset conversation contexts when the workspace changes on disk")
	return cmd
}

func runServe(cmd *cobra.Command) error {
	cfg := getConfig(cmd)

	// serve flags are local, so bind them by hand
	if port, err := cmd.Flags().GetInt("port"); err == nil && port != 0 {
		cfg.Server.Port = port
	}
	if host, err := cmd.Flags().GetString("host"); err == nil && host != "" {
		cfg.Server.Host = host
	}
	if watch, err := cmd.Flags().GetBool("watch"); err == nil && watch {
		cfg.Server.Watch = true
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	srv := server.New(server.Config{
		Host:       cfg.Server.Host,
		Port:       cfg.Server.Port,
		Schema:     cfg.Schema,
		SessionKey: cfg.Server.SessionKey,
		Watch:      cfg.Server.Watch,
		WatchPath:  cfg.DatabasePath(),
		Logger:     logger,
	}, store)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Serve(ctx)
}
