// Package cli wires configuration, logging, storage and the tracker behind
// the duetoday command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/duetoday/internal/config"
	"github.com/sandeepkv93/duetoday/internal/logging"
	"github.com/sandeepkv93/duetoday/internal/storage"
	"github.com/sandeepkv93/duetoday/internal/tracker"
	"github.com/sandeepkv93/duetoday/internal/update"
	"github.com/spf13/cobra"
)

// App holds the global flags and the seams tests replace.
type App struct {
	configPath string
	statePath  string
	store      string
	logFile    string
	verbose    bool

	Now        func() time.Time
	Notifier   update.DesktopNotifier
	RunProgram func(tea.Model) (tea.Model, error)
}

func NewApp() *App {
	return &App{
		Now:      time.Now,
		Notifier: update.ExecDesktopNotifier{},
		RunProgram: func(m tea.Model) (tea.Model, error) {
			return tea.NewProgram(m, tea.WithAltScreen()).Run()
		},
	}
}

// NewRootCommand builds the command tree. Running the root command opens the
// interactive checklist.
func (a *App) NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "duetoday",
		Short: "Daily checklist for recurring game tasks",
		Long: `duetoday shows which recurring game tasks are due today.

Daily and weekly tasks follow the calendar. Periodic tasks come back a fixed
number of days after they were last completed. Without a subcommand the
interactive checklist opens; the first run asks when each periodic task was
last done.`,
		RunE:          a.runTUI,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ~/.config/duetoday/config.yaml)")
	flags.StringVar(&a.statePath, "state", "", "state file for the json store")
	flags.StringVar(&a.store, "store", "", "state backend: json or sqlite")
	flags.StringVar(&a.logFile, "log-file", "", "append JSON logs to this file")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log to stderr (subcommands only)")

	root.AddCommand(
		a.newTodayCmd(),
		a.newDoneCmd(),
		a.newInitCmd(),
		a.newStatusCmd(),
		a.newStateCmd(),
	)
	return root
}

// Execute runs the CLI with os.Args.
func Execute(version string) error {
	root := NewApp().NewRootCommand(version)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// session is everything a command needs once flags are resolved.
type session struct {
	cfg     config.RuntimeConfig
	logger  *slog.Logger
	tracker *tracker.Tracker
	closers []func() error
}

func (s *session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			s.logger.Warn("close failed", "err", err)
		}
	}
}

func (a *App) resolveConfig(cmd *cobra.Command) (config.RuntimeConfig, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return config.RuntimeConfig{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("state") {
		cfg.StatePath = a.statePath
	}
	if flags.Changed("store") {
		cfg.Store = a.store
	}
	if flags.Changed("log-file") {
		cfg.LogFile = a.logFile
	}
	if a.verbose && cfg.LogLevel == "info" {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return config.RuntimeConfig{}, err
	}
	return cfg, nil
}

// open resolves config, builds the logger and store, and loads the tracker.
// interactive keeps log output off the terminal.
func (a *App) open(cmd *cobra.Command, interactive bool) (*session, error) {
	cfg, err := a.resolveConfig(cmd)
	if err != nil {
		return nil, err
	}

	var stderr io.Writer
	if a.verbose && !interactive {
		stderr = cmd.ErrOrStderr()
	}
	logger, closeLog, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel, Stderr: stderr})
	if err != nil {
		return nil, err
	}
	s := &session{cfg: cfg, logger: logger, closers: []func() error{closeLog}}

	store, closeStore, err := storage.Open(storage.Options{
		Backend:    cfg.Store,
		JSONPath:   cfg.StatePath,
		SQLitePath: cfg.SQLitePath,
		Logger:     logger,
	})
	if err != nil {
		s.Close()
		return nil, err
	}
	s.closers = append(s.closers, closeStore)

	now := a.Now
	if now == nil {
		now = time.Now
	}
	s.tracker = tracker.New(store, tracker.Options{Logger: logger, Now: now})
	phase := s.tracker.Open(cmd.Context())
	logger.Debug("command started", "command", cmd.Name(), "store", cfg.Store, "phase", string(phase))
	return s, nil
}

func (a *App) runTUI(cmd *cobra.Command, _ []string) error {
	s, err := a.open(cmd, true)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	m := update.NewModel(ctx, s.tracker, s.cfg, a.Notifier, s.logger)
	final, err := a.RunProgram(m)
	if err != nil {
		return fmt.Errorf("duetoday failed: %w", err)
	}
	if fm, ok := final.(update.Model); ok && fm.Saved {
		fmt.Fprintln(cmd.OutOrStdout(), "saved.")
	}
	return nil
}
