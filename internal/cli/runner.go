// Package cli wires configuration, logging and storage behind the todo
// command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idilsaglam/simpletodo/internal/config"
	"github.com/idilsaglam/simpletodo/internal/logging"
	"github.com/idilsaglam/simpletodo/internal/store"
	"github.com/idilsaglam/simpletodo/internal/store/filekv"
	"github.com/idilsaglam/simpletodo/internal/store/memkv"
	"github.com/idilsaglam/simpletodo/internal/store/sqlitekv"
	"github.com/idilsaglam/simpletodo/internal/tui"
	"github.com/idilsaglam/simpletodo/internal/ui"
)

// Exit codes: 0 ok, 1 runtime or storage error, 2 usage error.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// exitError carries the exit code for an error returned by a command.
type exitError struct {
	code int
	err  error
	hint string
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func failure(err error) error { return &exitError{code: ExitError, err: err} }

func usage(format string, args ...any) error {
	return &exitError{code: ExitUsage, err: fmt.Errorf(format, args...)}
}

// Options are the root flags. They override the config file and environment.
type Options struct {
	ConfigFile string
	DataDir    string
	Backend    string
	LogLevel   string
	Theme      string
	NoColor    bool
}

// session is what every subcommand works with once the root has set up.
type session struct {
	cfg   *config.Config
	log   *zap.Logger
	store *store.Store
}

type app struct {
	opt     Options
	stdout  io.Writer
	stderr  io.Writer
	session *session
}

// Run executes the command line and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	a.close()
	if err == nil {
		return ExitOK
	}

	var ee *exitError
	if errors.As(err, &ee) {
		ui.Fail(stderr, ee.Error())
		if ee.hint != "" {
			ui.Hint(stderr, ee.hint)
		}
		return ee.code
	}
	// cobra's own parse errors: unknown command, bad flag, wrong arg count
	ui.Fail(stderr, err.Error())
	fmt.Fprintln(stderr, root.UsageString())
	return ExitUsage
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "todo",
		Short: "todo - a simple to-do list",
		Long: `todo keeps a list of tasks with a title and a description.

Run without a command to open the interactive list.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		Args:              cobra.NoArgs,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context())
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &exitError{code: ExitUsage, err: err}
	})

	f := root.PersistentFlags()
	f.StringVar(&a.opt.ConfigFile, "config", "", "config file (default ~/.simpletodo/config.toml)")
	f.StringVar(&a.opt.DataDir, "data-dir", "", "directory holding the task data")
	f.StringVar(&a.opt.Backend, "backend", "", "storage backend: file, sqlite or memory")
	f.StringVar(&a.opt.LogLevel, "log-level", "", "debug, info, warn, error or off")
	f.StringVar(&a.opt.Theme, "theme", "", "classic, neon or mono")
	f.BoolVar(&a.opt.NoColor, "no-color", false, "disable colour output")

	root.AddCommand(
		a.addCmd(),
		a.listCmd(),
		a.showCmd(),
		a.editCmd(),
		a.removeCmd(),
		&cobra.Command{
			Use:   "tui",
			Short: "Open the interactive list",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runTUI(cmd.Context())
			},
		},
	)
	return root
}

// needsSession reports whether cmd works on the task list. cobra's help
// and completion commands do not, and must not touch the data dir.
func needsSession(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}
	return true
}

// setup loads config, styles output, starts logging and opens the store.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if !needsSession(cmd) {
		return nil
	}
	o := config.Overrides{
		ConfigFile: a.opt.ConfigFile,
		DataDir:    a.opt.DataDir,
		Backend:    a.opt.Backend,
		LogLevel:   a.opt.LogLevel,
		Theme:      a.opt.Theme,
	}
	if cmd.Flags().Changed("no-color") {
		o.NoColor = &a.opt.NoColor
	}
	cfg, err := config.Load(o)
	if err != nil {
		return &exitError{code: ExitUsage, err: fmt.Errorf("config: %w", err)}
	}

	ui.SetColorForcing(false, cfg.NoColor)
	ui.SetTheme(cfg.Theme)
	if !ui.ColorEnabled() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	log, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return failure(fmt.Errorf("logging: %w", err))
	}

	ctx := cmd.Context()
	backend, err := openBackend(ctx, cfg, log)
	if err != nil {
		_ = log.Sync()
		return failure(fmt.Errorf("open %s storage: %w", cfg.Backend, err))
	}
	st, err := store.Open(ctx, backend, log)
	if err != nil {
		_ = backend.Close()
		_ = log.Sync()
		return failure(fmt.Errorf("load: %w", err))
	}

	if st.Recovered() {
		ui.Warn(a.stderr, fmt.Sprintf("stored tasks were unreadable and the list starts empty; a copy was kept under %q", store.CorruptKey))
	}

	log.Debug("session started",
		zap.String("command", cmd.Name()),
		zap.String("backend", cfg.Backend),
		zap.String("data_dir", cfg.DataDir))
	a.session = &session{cfg: cfg, log: log, store: st}
	return nil
}

func openBackend(ctx context.Context, cfg *config.Config, log *zap.Logger) (store.Backend, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return sqlitekv.OpenDir(ctx, cfg.DataDir, log)
	case config.BackendMemory:
		return memkv.New(), nil
	default:
		return filekv.Open(cfg.DataDir)
	}
}

func (a *app) close() {
	if a.session == nil {
		return
	}
	if err := a.session.store.Close(); err != nil {
		a.session.log.Error("close store", zap.Error(err))
	}
	_ = a.session.log.Sync()
	a.session = nil
}

func (a *app) runTUI(ctx context.Context) error {
	s := a.session
	if s.store.Recovered() {
		s.log.Warn("interactive session started after recovering malformed data")
	}
	if err := tui.Run(ctx, s.store, s.log); err != nil {
		return failure(fmt.Errorf("tui: %w", err))
	}
	return nil
}
