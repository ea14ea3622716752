// Package cli provides command-line interface functionality for recenttests.
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/recenttests/internal/config"
	"github.com/AndreyAkinshin/recenttests/internal/errors"
	"github.com/AndreyAkinshin/recenttests/internal/output"
	"github.com/AndreyAkinshin/recenttests/internal/project"
)

// Version is set at build time.
var Version = "dev"

// GlobalOptions holds parsed global flags.
type GlobalOptions struct {
	Quiet      bool
	Verbose    bool
	NoColor    bool
	ConfigPath string
}

// app carries the state shared by all commands of one invocation.
type app struct {
	opts   GlobalOptions
	stdout io.Writer
	stderr io.Writer
	out    *output.Writer
	logger *slog.Logger
	now    func() time.Time
}

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	return RunContext(context.Background(), args, os.Stdout, os.Stderr)
}

// RunContext is Run with explicit output streams. Cancelling ctx stops
// long-running commands such as watch.
func RunContext(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	return execute(ctx, args, stdout, stderr, time.Now)
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer, now func() time.Time) int {
	a := &app{
		stdout: stdout,
		stderr: stderr,
		out:    output.NewWithWriters(stdout, stderr, output.IsTerminal(stdout)),
		logger: slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
		now:    now,
	}

	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return errors.ExitSuccess
	}

	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindTestsFailing {
		a.out.ErrorPrefix("%v", err)
	}
	return errors.GetExitCode(err)
}

func (a *app) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "recenttests",
		Short: "recenttests - the tests worth looking at right now",
		Long: "Aggregates test-execution events per run configuration and shows one entry per\n" +
			"configuration: the most recent failing test, or the configuration itself when\n" +
			"everything passed.",
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return errors.Configf("unknown command %q (run 'recenttests --help' for usage)", args[0])
		},
	}
	root.SetVersionTemplate("recenttests {{.Version}}\n")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Config(err.Error())
	})

	flags := root.PersistentFlags()
	flags.BoolVarP(&a.opts.Quiet, "quiet", "q", false, "Minimal output (errors only)")
	flags.BoolVarP(&a.opts.Verbose, "verbose", "v", false, "Maximum detail, including debug logs")
	flags.BoolVar(&a.opts.NoColor, "no-color", false, "Disable colored output")
	flags.StringVar(&a.opts.ConfigPath, "config", "", "Path to config.json (default: discovered .recenttests/config.json)")

	root.AddCommand(
		a.newShowCmd(),
		a.newRecordCmd(),
		a.newTreeCmd(),
		a.newWatchCmd(),
		a.newSessionsCmd(),
		a.newConfigCmd(),
		a.newVersionCmd(),
	)
	return root
}

// setup validates global flags and applies them to the writer and logger.
func (a *app) setup() error {
	if a.opts.Quiet && a.opts.Verbose {
		return errors.Config("--quiet and --verbose are mutually exclusive")
	}

	a.out.SetQuiet(a.opts.Quiet)
	if a.opts.NoColor {
		a.out.SetColor(false)
	}
	a.logger = newLogger(a.stderr, a.opts)
	return nil
}

// newLogger creates the process logger: debug with --verbose, errors only
// with --quiet, warnings otherwise.
func newLogger(w io.Writer, opts GlobalOptions) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case opts.Verbose:
		level = slog.LevelDebug
	case opts.Quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadProject loads the workspace and applies its display settings.
func (a *app) loadProject() (*project.Project, error) {
	var (
		proj *project.Project
		err  error
	)
	if a.opts.ConfigPath != "" {
		proj, err = project.LoadProjectFromConfig(a.opts.ConfigPath)
	} else {
		proj, err = project.LoadProject()
	}
	if config.IsInvalid(err) {
		return nil, errors.Validation(err, "invalid configuration")
	}
	if err != nil {
		return nil, &errors.Error{Kind: errors.KindConfig, Message: "invalid workspace", Cause: err}
	}

	for _, w := range proj.Warnings {
		a.out.Warning("%s", w)
	}

	if !a.opts.NoColor && proj.Config.Display != nil {
		switch proj.Config.Display.Color {
		case "always":
			a.out.SetColor(true)
		case "never":
			a.out.SetColor(false)
		}
	}

	a.logger.Debug("workspace loaded", "root", proj.Root, "config", proj.ConfigPath())
	return proj, nil
}

// requireArgs is cobra.MinimumNArgs with a configuration error.
func requireArgs(n int, what string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return errors.Configf("%s: %s required", cmd.Name(), what)
		}
		return nil
	}
}

func (a *app) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.out.Println("recenttests %s", Version)
			return nil
		},
	}
}

func formatTime(t time.Time) string {
	return t.Local().Format(time.DateTime)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
