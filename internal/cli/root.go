package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/limitbreak/internal/config"
	"github.com/roach88/limitbreak/internal/solver"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string

	cfg    *config.Config
	logger *slog.Logger

	// solverOptions are appended after config and flag options. Tests use
	// them to inject deterministic clocks and report IDs.
	solverOptions []solver.Option
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the limitbreak CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "limitbreak",
		Short: "limitbreak - bounded coin-combination counter",
		Long: `Count the ways to reach a target sum with at most a given number of coins.

Counts are exact 64-bit integers; results that do not fit are reported as
CountOverflow instead of wrapping.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config file")

	cmd.AddCommand(NewSolveCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewBenchCommand(opts))

	return cmd
}

// Execute runs the CLI with args and returns the process exit code.
// Errors cobra raises before a command runs (unknown flags, missing
// required flags, wrong argument count) are command errors.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintf(stderr, "Error: %v\nRun 'limitbreak --help' for usage.\n", err)
		return ExitCommandError
	}
	if !exitErr.Reported {
		fmt.Fprintf(stderr, "Error: %v\n", exitErr)
	}
	return exitErr.Code
}

// setup validates global flags, loads the config and builds the logger.
func (o *RootOptions) setup(stderr io.Writer) error {
	if !slices.Contains(ValidFormats, o.Format) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats))
	}

	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	o.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if o.ConfigPath == "" {
		o.cfg = config.Default()
		return nil
	}
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	o.logger.Debug("config loaded", "path", o.ConfigPath)
	o.cfg = cfg
	return nil
}

// settings returns the loaded config, or defaults when the command runs
// without the root (as in tests).
func (o *RootOptions) settings() *config.Config {
	if o.cfg == nil {
		o.cfg = config.Default()
	}
	return o.cfg
}

func (o *RootOptions) log() *slog.Logger {
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o.logger
}

// newSolver builds a solver from config, then flag overrides, then test
// hooks.
func (o *RootOptions) newSolver(overrides ...solver.Option) (*solver.Solver, error) {
	extra := append(slices.Clone(overrides), o.solverOptions...)
	s, err := o.settings().NewSolver(o.log(), extra...)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid solver settings", err)
	}
	return s, nil
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}
