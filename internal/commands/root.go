package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/gerunddev/todotree/internal/config"
	"github.com/gerunddev/todotree/internal/logger"
	"github.com/gerunddev/todotree/internal/render"
)

// skipConfig marks commands that run without loading the config file
const skipConfig = "skip-config"

// app carries the loaded configuration and logger across a command run
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	closeLog func()

	format   string
	minDepth int
	strict   bool
	plain    bool
}

// Execute runs the CLI and closes the log file whether or not the command
// succeeded.
func Execute(ctx context.Context, version string) error {
	root, a := newRootCmd(version)
	defer a.close()
	return root.ExecuteContext(ctx)
}

// newRootCmd creates the top-level "todotree" command and registers all
// subcommands.
func newRootCmd(version string) (*cobra.Command, *app) {
	a := &app{
		log:      logger.Discard(),
		closeLog: func() {},
	}

	root := &cobra.Command{
		Use:           "todotree",
		Short:         "Read Markdown heading outlines as to-do trees",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipConfig] == "true" {
				return nil
			}
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.format, "format", "f", "", "output format: tree, org, json, yaml")
	flags.IntVar(&a.minDepth, "min-depth", 0, "shallowest heading level that starts an item (1-6)")
	flags.BoolVar(&a.strict, "strict", false, "fail on headings left over after the outline")
	flags.BoolVar(&a.plain, "plain", false, "disable colors and styling")

	root.AddCommand(
		newShowCmd(a),
		newScanCmd(a),
		newDiffCmd(a),
		newBrowseCmd(a),
		newConfigCmd(a),
		newLogCmd(a),
	)

	return root, a
}

// close releases the log file opened by setup
func (a *app) close() {
	a.closeLog()
	a.closeLog = func() {}
}

// setup loads the config, applies flag overrides and opens the logger
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = a.format
	}
	if flags.Changed("min-depth") {
		cfg.MinDepth = a.minDepth
	}
	if flags.Changed("strict") {
		cfg.Strict = a.strict
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	if cfg.LogFile != "" {
		l, cleanup, err := logger.NewFileLogger(cfg.LogFile, level)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		a.log = l
		a.closeLog = cleanup
	} else {
		a.log = logger.NewWithLevel(cmd.ErrOrStderr(), level)
	}

	a.log.ConfigLoaded(config.ConfigPath(), cfg.MinDepth, cfg.Strict)
	return nil
}

// outputFormat returns the configured format, already validated
func (a *app) outputFormat() render.Format {
	format, err := render.ParseFormat(a.cfg.Format)
	if err != nil {
		return render.FormatTree
	}
	return format
}

// plainOutput reports whether styling should be disabled for w
func (a *app) plainOutput(w io.Writer) bool {
	return a.plain || !isTerminal(w)
}

// isTerminal reports whether w is an interactive terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ExitError carries a process exit code alongside an error
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit status the process should use
func (e *ExitError) ExitCode() int {
	return e.Code
}
