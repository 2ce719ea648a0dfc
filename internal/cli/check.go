package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/limitbreak/internal/scenario"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Filter string // case filter (glob pattern)
	Update bool   // regenerate golden files
	Watch  bool   // re-run on file changes
}

// SuiteResult holds the result of a single suite file.
type SuiteResult struct {
	Name   string                `json:"name"`
	Path   string                `json:"path"`
	Pass   bool                  `json:"pass"`
	Cases  []scenario.CaseResult `json:"cases,omitempty"`
	Errors []string              `json:"errors,omitempty"`
}

// CheckResult holds the overall check result.
type CheckResult struct {
	Suites []SuiteResult `json:"suites"`
	Passed int           `json:"passed"`
	Failed int           `json:"failed"`
	Total  int           `json:"total"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <suite-file-or-dir>...",
		Short: "Run conformance suites",
		Long: `Run conformance suites of solve cases.

Suites are YAML (.yaml, .yml) or CUE (.cue) files; directories are searched
recursively. Each case declares an expected count or error code plus optional
properties (permutation_invariant, monotone_budget, matches_enumeration,
strategies_agree). When golden/<suite>.golden exists next to a suite file, the
outcome snapshot must match it byte for byte.

Exit codes:
  0 - All cases passed
  1 - One or more cases failed
  2 - Command error (invalid paths, etc.)

Examples:
  limitbreak check ./suites
  limitbreak check ./suites/known.yaml --filter "overflow-*"
  limitbreak check ./suites --update
  limitbreak check ./suites --watch`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Watch {
				return watchChecks(cmd.Context(), opts, args, cmd)
			}
			return runChecks(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter cases by glob pattern")
	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "re-run suites when files change")

	return cmd
}

func runChecks(opts *CheckOptions, paths []string, cmd *cobra.Command) error {
	if opts.Filter != "" {
		if _, err := filepath.Match(opts.Filter, ""); err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("invalid --filter %q", opts.Filter), err)
		}
	}

	files, err := scenario.FindSuites(paths)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to find suites", err)
	}

	out := opts.formatter(cmd)
	result := CheckResult{Suites: make([]SuiteResult, 0, len(files)), Total: len(files)}
	if len(files) == 0 {
		if opts.Format == "json" {
			return out.Success(result)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No suites found.")
		return nil
	}

	runner := scenario.NewRunner(
		scenario.WithSolverOptions(opts.settings().SolverOptions(opts.log(), opts.solverOptions...)...),
		scenario.WithLogger(opts.log()),
	)
	for _, file := range files {
		out.VerboseLog("running %s", file)
		sr := runSuite(runner, file, opts)
		if opts.Format != "json" {
			printSuite(cmd.OutOrStdout(), sr)
		}
		result.Suites = append(result.Suites, sr)
		if sr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if result.Failed > 0 {
		msg := fmt.Sprintf("%d suite(s) failed", result.Failed)
		if opts.Format == "json" {
			if err := out.Failure(result, ErrCodeCheckFailed, msg); err != nil {
				return err
			}
		} else {
			printSummary(cmd.OutOrStdout(), result)
		}
		return &ExitError{Code: ExitFailure, Message: msg, Reported: true}
	}

	if opts.Format == "json" {
		return out.Success(result)
	}
	printSummary(cmd.OutOrStdout(), result)
	return nil
}

// runSuite loads, runs and golden-checks one suite file.
func runSuite(runner *scenario.Runner, file string, opts *CheckOptions) SuiteResult {
	suite, err := scenario.LoadSuite(file)
	if err != nil {
		return SuiteResult{Name: filepath.Base(file), Path: file, Errors: []string{fmt.Sprintf("load error: %v", err)}}
	}
	sr := SuiteResult{Name: suite.Name, Path: file}

	filtered, err := suite.Filter(opts.Filter)
	if err != nil {
		sr.Errors = append(sr.Errors, err.Error())
		return sr
	}
	result, err := runner.Run(filtered)
	if err != nil {
		sr.Errors = append(sr.Errors, fmt.Sprintf("execution failed: %v", err))
		return sr
	}
	sr.Cases = result.Cases
	sr.Pass = result.Pass

	// A filtered run is a partial snapshot; golden files cover whole suites.
	if opts.Filter != "" {
		return sr
	}
	if err := checkGolden(suite, result, opts.Update); err != nil {
		sr.Pass = false
		sr.Errors = append(sr.Errors, err.Error())
	}
	return sr
}

// goldenFilePath returns the path to the golden file for a suite.
func goldenFilePath(suite *scenario.Suite) string {
	return filepath.Join(filepath.Dir(suite.Path), "golden", suite.Name+".golden")
}

// errGoldenMismatch marks a snapshot that differs from its golden file.
var errGoldenMismatch = errors.New("outcome does not match golden file (run with --update to regenerate)")

// checkGolden compares the snapshot against the suite's golden file, or
// writes it when update is set. A missing golden file is not an error.
func checkGolden(suite *scenario.Suite, result *scenario.Result, update bool) error {
	snapshot, err := result.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	path := goldenFilePath(suite)

	if update {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create golden directory: %w", err)
		}
		if err := os.WriteFile(path, snapshot, 0o644); err != nil {
			return fmt.Errorf("failed to write golden file: %w", err)
		}
		return nil
	}

	golden, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read golden file: %w", err)
	}
	if !bytes.Equal(golden, snapshot) {
		return errGoldenMismatch
	}
	return nil
}

func printSuite(w io.Writer, sr SuiteResult) {
	if sr.Pass {
		fmt.Fprintf(w, "✓ %s (%d cases)\n", sr.Name, len(sr.Cases))
		return
	}
	fmt.Fprintf(w, "✗ %s\n", sr.Name)
	for _, e := range sr.Errors {
		fmt.Fprintf(w, "  %s\n", e)
	}
	for _, c := range sr.Cases {
		for _, e := range c.Errors {
			fmt.Fprintf(w, "  %s: %s\n", c.Name, e)
		}
	}
}

func printSummary(w io.Writer, result CheckResult) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Check Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)
	if result.Failed == 0 {
		fmt.Fprintln(w, "✓ All suites passed")
	}
}
