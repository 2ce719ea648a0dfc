package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/roach88/limitbreak/internal/solver"
)

// SolveOptions holds flags for the solve command.
type SolveOptions struct {
	*RootOptions
	problemFlags
	Strategy         string
	Verify           bool
	EnumerationLimit int64
}

// SolveOutput is the JSON payload of the solve command.
type SolveOutput struct {
	Report   solver.Report `json:"report"`
	Verified *bool         `json:"verified,omitempty"`
}

// printer groups digits in text output.
var printer = message.NewPrinter(language.English)

// String renders the text form of a solve.
func (o SolveOutput) String() string {
	var b strings.Builder
	printer.Fprintf(&b, "Combinations: %d\n", o.Report.Count)
	fmt.Fprintf(&b, "Time: %s", o.Report.ElapsedMillis())
	if o.Verified != nil && *o.Verified {
		b.WriteString("\nVerified: enumeration agrees")
	}
	return b.String()
}

// NewSolveCommand creates the solve command.
func NewSolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SolveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Count combinations for one problem",
		Long: `Count the multisets of coin uses that sum exactly to the target with at most
max-coins uses.

Coins are a comma-separated list; duplicates are distinct slots. Negative
coins are rejected unless --allow-negative is set.

Exit codes:
  0 - Count computed
  1 - Count overflow or --verify mismatch
  2 - Command error (bad flags, rejected input)

Examples:
  limitbreak solve --target 100 --max-coins 10 --coins 10,50,100
  limitbreak solve --target 0 --max-coins 4 --coins 1,-1 --allow-negative
  limitbreak solve --target 5 --max-coins 5 --coins 1,2,5 --verify --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Target, "target", "", "target sum")
	cmd.Flags().StringVar(&opts.MaxCoins, "max-coins", "", "maximum number of coin uses")
	cmd.Flags().StringVar(&opts.Coins, "coins", "", "comma-separated coin values")
	cmd.Flags().BoolVar(&opts.AllowNegative, "allow-negative", false, "accept negative coin values")
	cmd.Flags().StringVar(&opts.Strategy, "strategy", "", "fill strategy (auto|sequential|parallel); default from config")
	cmd.Flags().BoolVar(&opts.Verify, "verify", false, "cross-check the count by brute-force enumeration")
	cmd.Flags().Int64Var(&opts.EnumerationLimit, "enumeration-limit", solver.DefaultEnumerationLimit, "node budget for --verify")
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagRequired("max-coins")

	return cmd
}

// solverOverrides converts command flags into solver options.
func solverOverrides(strategy string, allowNegative bool) ([]solver.Option, error) {
	var opts []solver.Option
	if strategy != "" {
		st, err := solver.ParseStrategy(strategy)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "invalid --strategy", err)
		}
		opts = append(opts, solver.WithStrategy(st))
	}
	if allowNegative {
		opts = append(opts, solver.WithAllowNegativeCoins(true))
	}
	return opts, nil
}

func runSolve(opts *SolveOptions, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	p, err := opts.problem()
	if err != nil {
		return inputError(out, err)
	}
	overrides, err := solverOverrides(opts.Strategy, opts.AllowNegative)
	if err != nil {
		return err
	}
	s, err := opts.newSolver(overrides...)
	if err != nil {
		return err
	}

	rep := s.Solve(p)
	out.VerboseLog("problem %s: strategy=%s report=%s", rep.ProblemID, rep.Strategy, rep.ID)
	if !rep.OK() {
		return out.SolverError(rep.Err)
	}

	result := SolveOutput{Report: rep}
	if opts.Verify {
		want, err := solver.Enumerate(p, opts.EnumerationLimit)
		if err != nil {
			if errors.Is(err, solver.ErrEnumerationLimit) {
				return WrapExitError(ExitCommandError, "verify could not finish; raise --enumeration-limit", err)
			}
			return WrapExitError(ExitFailure, "verify failed", err)
		}
		ok := want == rep.Count
		result.Verified = &ok
		if !ok {
			msg := fmt.Sprintf("enumeration found %d combinations, solver %d", want, rep.Count)
			if out.Format == "json" {
				if err := out.Failure(result, ErrCodeMismatch, msg); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), result)
				fmt.Fprintf(cmd.OutOrStdout(), "Verified: MISMATCH (%s)\n", msg)
			}
			return &ExitError{Code: ExitFailure, Message: msg, Reported: true}
		}
	}

	return out.Success(result)
}

// inputError renders flag parsing failures: solver errors (OutOfRange) in
// the formatter, usage errors as plain command errors.
func inputError(out *OutputFormatter, err error) error {
	if solver.CodeOf(err) != "" {
		return out.SolverError(err)
	}
	return err
}
