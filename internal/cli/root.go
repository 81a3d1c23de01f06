package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"todo-cli/internal/config"
	"todo-cli/internal/format"
	"todo-cli/internal/log"
	"todo-cli/internal/store"
	"todo-cli/internal/tasks"
	"todo-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	ConfigPath string
	File       string
	Store      string
	Format     string
	PrettyJSON bool
	Debug      bool

	cfg      *config.Config
	logger   log.Logger
	closeLog func() error
}

func NewRootCmd() *cobra.Command {
	cmd, _ := newRootCmd()
	return cmd
}

// Execute runs the command line and always closes the log file. Cobra skips
// PersistentPostRunE when RunE fails.
func Execute(ctx context.Context) error {
	cmd, app := newRootCmd()
	return execute(ctx, cmd, app)
}

func execute(ctx context.Context, cmd *cobra.Command, app *App) (err error) {
	defer func() {
		if cerr := app.teardown(); err == nil {
			err = cerr
		}
	}()
	return cmd.ExecuteContext(ctx)
}

func newRootCmd() (*cobra.Command, *App) {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "todo",
		Short:        "A small to-do list manager (TUI + CLI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  todo

  # Scriptable commands
  todo add "Buy milk" --due 2024-06-01
  todo list --status in-progress
  todo toggle 1
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup(cmd)
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.teardown()
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Path to config.toml (default: $TODO_CONFIG or the user config dir)")
	cmd.PersistentFlags().StringVar(&app.File, "file", "", "Task file (overrides config and TODO_FILE)")
	cmd.PersistentFlags().StringVar(&app.Store, "store", "", "Storage backend (jsonfile|sqlite)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TODO_FORMAT", "text"), "Output format (text|json|yaml)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().BoolVar(&app.Debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newToggleCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newRmCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd, app
}

// setup resolves the effective configuration (defaults < file < env < flags)
// and opens the log file.
func (app *App) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return writeErr(cmd, err)
	}
	if strings.TrimSpace(app.File) != "" {
		cfg.File = app.File
	}
	if strings.TrimSpace(app.Store) != "" {
		cfg.Store = app.Store
	}
	if app.Debug {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return writeErr(cmd, fmt.Errorf("invalid config: %w", err))
	}
	app.cfg = cfg

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		// Logging is best effort; the task list still works without it.
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: logging disabled: %v\n", err)
		logger, closeLog = log.Noop, func() error { return nil }
	}
	app.logger = logger.WithValues(log.Kv{"cmd": cmd.CommandPath()})
	app.closeLog = closeLog
	app.logger.Debugf("config loaded (source=%q file=%q store=%s)", cfg.Source, cfg.File, cfg.Store)
	return nil
}

func (app *App) teardown() error {
	if app.closeLog == nil {
		return nil
	}
	err := app.closeLog()
	app.closeLog = nil
	return err
}

func runTUI(cmd *cobra.Command, app *App) error {
	l, s, res, err := openList(cmd, app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer s.Close()

	err = tui.Run(cmd.Context(), tui.Options{
		List:      l,
		TaskFile:  s.Path(),
		StatePath: store.TUIStatePath(s.Path()),
		Warning:   res.Warning,
		Logger:    app.logger,
		Theme:     app.cfg.TUI.Theme,
		Glyphs:    app.cfg.TUI.Glyphs,
	})
	if err != nil && cmd.Context().Err() == nil {
		return writeErr(cmd, err)
	}
	return nil
}

// openList opens the configured store, applies the corrupt-file policy and
// wraps the loaded tasks. Callers must Close the store.
func openList(cmd *cobra.Command, app *App) (*tasks.List, store.Store, store.LoadResult, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, res, err := store.OpenWithRecovery(ctx, store.Config{
		Kind:   app.cfg.Store,
		Path:   app.cfg.File,
		Logger: app.logger,
	}, app.cfg.CorruptPolicy)
	if err != nil {
		return nil, nil, store.LoadResult{}, err
	}
	return tasks.New(res.Tasks, s, app.logger), s, res, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
