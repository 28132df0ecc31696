// Package main implements sitectl, the operator CLI for the site API. It
// works directly on the static data directory and the SQLite database, so
// it can run while the service is down.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/polyworks/site-api/internal/adapters/persistence/sqlite"
	"github.com/polyworks/site-api/internal/adapters/static"
	"github.com/polyworks/site-api/internal/app"
	"github.com/polyworks/site-api/internal/platform/config"
	"github.com/polyworks/site-api/internal/platform/logging"
)

// options are the persistent flags shared by every command.
type options struct {
	configDir string
	profile   string
	dsn       string
	staticDir string
	verbose   bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "sitectl",
		Short:         "Operate the site content store",
		Long:          "sitectl validates static content, imports custom entries, lists merged collections and purges abandoned carts.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configDir, "config-dir", "configs", "Directory holding base.yaml and profile files")
	flags.StringVar(&opts.profile, "profile", envOr("APP_ENVIRONMENT", "local"), "Configuration profile")
	flags.StringVar(&opts.dsn, "dsn", "", "SQLite DSN (overrides database.dsn)")
	flags.StringVar(&opts.staticDir, "static-dir", "", "Static data directory (overrides content.static_dir)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log at debug level")

	root.AddCommand(
		newValidateCmd(opts),
		newImportCmd(opts),
		newListCmd(opts),
		newPurgeCartsCmd(opts),
	)

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

// env is what a command needs from configuration.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
}

func (o *options) load(cmd *cobra.Command) (*env, error) {
	cfg, err := config.LoadFrom(o.configDir, o.profile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if o.dsn != "" {
		cfg.Database.DSN = o.dsn
	}

	if o.staticDir != "" {
		cfg.Content.StaticDir = o.staticDir
	}

	level := "warn"
	if o.verbose {
		level = "debug"
	}

	logger := logging.NewWithWriter(&logging.Config{
		Level:   level,
		Format:  "text",
		Service: "sitectl",
		Version: cfg.App.Version,
	}, cmd.ErrOrStderr())

	return &env{cfg: cfg, logger: logger}, nil
}

func (e *env) openDB() (*sqlite.DB, error) {
	db, err := sqlite.Open(sqlite.Options{
		DSN:          e.cfg.Database.DSN,
		MaxOpenConns: max(e.cfg.Database.MaxOpenConns, 1),
		LogQueries:   e.cfg.Database.LogQueries,
		Logger:       e.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return db, nil
}

// contentService merges the static data with the custom entries in db.
func (e *env) contentService(db *sqlite.DB) (*app.ContentService, error) {
	store, err := static.Load(e.cfg.Content.StaticDir)
	if err != nil {
		return nil, fmt.Errorf("loading static content: %w", err)
	}

	return app.NewContentService(app.ContentServiceConfig{
		Static: store,
		Custom: sqlite.NewContentStore(db),
		Logger: e.logger,
	}), nil
}
