package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/limitbreak/internal/benchmark"
	"github.com/roach88/limitbreak/internal/solver"
)

// BenchOptions holds flags for the bench command.
type BenchOptions struct {
	*RootOptions
	problemFlags
	Runs     int
	Warmup   int
	Textfile string

	// clock overrides the benchmark clock in tests.
	clock solver.Clock
}

// benchReport renders a benchmark.Result as text.
type benchReport struct {
	*benchmark.Result
}

func (r benchReport) String() string {
	var b strings.Builder
	p := r.Problem
	printer.Fprintf(&b, "Target: %d, MaxCoins: %d, Coins: %v\n", p.Target, p.MaxCoins, p.Coins)
	for _, t := range r.Timings {
		fmt.Fprintf(&b, "%-10s %.6f sec", string(t.Strategy)+":", t.Best.Seconds())
		if t.ErrCode != "" {
			fmt.Fprintf(&b, " (%s)\n", t.ErrCode)
		} else {
			printer.Fprintf(&b, " (count %d)\n", t.Count)
		}
	}
	fmt.Fprintf(&b, "Speedup: %.2fx\n", r.Speedup)
	if r.Consistent {
		b.WriteString("Consistency: OK")
	} else {
		b.WriteString("Consistency: FAIL")
	}
	return b.String()
}

// NewBenchCommand creates the bench command.
func NewBenchCommand(rootOpts *RootOptions) *cobra.Command {
	return newBenchCommand(&BenchOptions{RootOptions: rootOpts})
}

func newBenchCommand(opts *BenchOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare sequential and parallel strategies",
		Long: `Solve one problem with every fill strategy, report the best time of each,
the speedup of parallel over sequential and whether the counts agree.

With --textfile the result is also written in Prometheus text exposition
format for a node_exporter textfile collector.

Exit codes:
  0 - Strategies agree
  1 - Strategies disagree
  2 - Command error (bad flags, rejected input)

Examples:
  limitbreak bench --target 100000 --max-coins 1000 --coins 10,50,100,500
  limitbreak bench --target 10000 --max-coins 100 --coins 10,50,100,500 --runs 10 --textfile bench.prom`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Target, "target", "", "target sum")
	cmd.Flags().StringVar(&opts.MaxCoins, "max-coins", "", "maximum number of coin uses")
	cmd.Flags().StringVar(&opts.Coins, "coins", "", "comma-separated coin values")
	cmd.Flags().BoolVar(&opts.AllowNegative, "allow-negative", false, "accept negative coin values")
	cmd.Flags().IntVar(&opts.Runs, "runs", 0, "timed runs per strategy; default from config")
	cmd.Flags().IntVar(&opts.Warmup, "warmup", -1, "untimed runs per strategy; default from config")
	cmd.Flags().StringVar(&opts.Textfile, "textfile", "", "write Prometheus metrics to this path")
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagRequired("max-coins")

	return cmd
}

func runBench(opts *BenchOptions, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	p, err := opts.problem()
	if err != nil {
		return inputError(out, err)
	}
	overrides, err := solverOverrides("", opts.AllowNegative)
	if err != nil {
		return err
	}
	s, err := opts.newSolver(overrides...)
	if err != nil {
		return err
	}

	cfg := opts.settings().Bench
	bopts := benchmark.Options{Runs: cfg.Runs, Warmup: cfg.Warmup, Clock: opts.clock}
	if opts.Runs > 0 {
		bopts.Runs = opts.Runs
	}
	if opts.Warmup >= 0 {
		bopts.Warmup = opts.Warmup
	}
	out.VerboseLog("benchmark: runs=%d warmup=%d", bopts.Runs, bopts.Warmup)

	result, err := benchmark.Run(cmd.Context(), s, p, bopts)
	if err != nil {
		if solver.CodeOf(err) != "" {
			return out.SolverError(err)
		}
		return WrapExitError(ExitCommandError, "benchmark failed", err)
	}

	if opts.Textfile != "" {
		if err := benchmark.WriteTextfileAtomic(opts.Textfile, result); err != nil {
			return WrapExitError(ExitCommandError, "failed to write textfile", err)
		}
		out.VerboseLog("metrics written to %s", opts.Textfile)
	}

	if !result.Consistent {
		msg := "strategies disagree"
		if out.Format == "json" {
			if err := out.Failure(result, ErrCodeMismatch, msg); err != nil {
				return err
			}
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), benchReport{result})
		}
		return &ExitError{Code: ExitFailure, Message: msg, Reported: true}
	}

	if out.Format == "json" {
		return out.Success(result)
	}
	return out.Success(benchReport{result})
}
