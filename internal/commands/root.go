// Package commands wires the CLI surface. Every subcommand operates
// through a shared App so storage, logging and the salary engine are set
// up once per invocation.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"gastos/internal/config"
	"gastos/internal/log"
	"gastos/internal/notify"
	"gastos/internal/services"
	"gastos/internal/storage"
)

// App bundles the initialized dependencies shared by all subcommands.
type App struct {
	Config   *config.Config
	Log      *log.Logger
	Notifier *notify.Notifier
	Store    *storage.Store
	Salary   *services.Salary

	kv storage.KV
}

// NewApp loads configuration from the environment and opens the
// configured backing store. Call Close when done.
func NewApp() (*App, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logger := log.New(cfg.SlogLevel())
	return newApp(cfg, logger)
}

func newApp(cfg *config.Config, logger *log.Logger) (*App, error) {
	var kv storage.KV
	switch cfg.DataBackend {
	case "memory":
		kv = storage.NewMemoryKV()
	default:
		sq, err := storage.NewSQLiteKV(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		kv = sq
	}

	notifier := notify.New(cfg.SaveEventTTL)
	store := storage.New(kv, notifier, logger.WithComponent("storage"))

	return &App{
		Config:   cfg,
		Log:      logger,
		Notifier: notifier,
		Store:    store,
		Salary:   services.NewSalary(store, logger.WithComponent("salary")),
		kv:       kv,
	}, nil
}

func (a *App) Close() error {
	return a.kv.Close()
}

// NewRootCommand creates the root CLI command with all subcommands
// registered. The App is opened lazily on first run so commands like
// help and completion never touch the database.
func NewRootCommand() *cobra.Command {
	var app *App

	rootCmd := &cobra.Command{
		Use:   "gastos",
		Short: "Personal finance tracker",
		Long:  "Track transactions, categories and salary, with monthly summaries.",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			app, err = NewApp()
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app == nil {
				return nil
			}
			return app.Close()
		},
	}

	get := func() *App { return app }

	rootCmd.AddCommand(
		newAddCommand(get),
		newListCommand(get),
		newUpdateCommand(get),
		newDeleteCommand(get),
		newSummaryCommand(get),
		newCategoriesCommand(get),
		newSettingsCommand(get),
		newSyncCommand(get),
		newExportCommand(get),
		newImportCommand(get),
		newClearCommand(get),
		newStatsCommand(get),
		newMigrateCommand(get),
	)

	return rootCmd
}
