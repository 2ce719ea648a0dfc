package benchmark

import (
	"context"
	"fmt"
	"time"

	"github.com/roach88/limitbreak/internal/solver"
)

// Strategies are timed in this order.
var Strategies = []solver.Strategy{solver.StrategySequential, solver.StrategyParallel}

// Options configures a benchmark run.
type Options struct {
	// Runs is the number of timed runs per strategy. Must be positive.
	Runs int

	// Warmup is the number of untimed runs per strategy.
	Warmup int

	// Clock times each run. Default: solver.SystemClock.
	Clock solver.Clock
}

// Timing is the measured outcome of one strategy.
type Timing struct {
	Strategy solver.Strategy  `json:"strategy"`
	Count    int64            `json:"count"`
	ErrCode  solver.ErrorCode `json:"error_code,omitempty"`
	Best     time.Duration    `json:"best_ns"`
	Mean     time.Duration    `json:"mean_ns"`
}

// Result is the outcome of a benchmark.
type Result struct {
	Problem solver.Problem `json:"problem"`
	Runs    int            `json:"runs"`
	Timings []Timing       `json:"timings"`

	// Consistent is true when every strategy produced the same count and
	// error code.
	Consistent bool `json:"consistent"`

	// Speedup is sequential best over parallel best; 0 when the parallel
	// run was too fast to measure.
	Speedup float64 `json:"speedup"`
}

// Timing returns the timing for a strategy.
func (r *Result) Timing(st solver.Strategy) (Timing, bool) {
	for _, t := range r.Timings {
		if t.Strategy == st {
			return t, true
		}
	}
	return Timing{}, false
}

// Run benchmarks every strategy on p using s.
//
// Input errors abort the benchmark. CountOverflow is an outcome like any
// count and takes part in the consistency check. ctx is checked between
// runs; a single solve is never interrupted.
func Run(ctx context.Context, s *solver.Solver, p solver.Problem, opts Options) (*Result, error) {
	if opts.Runs <= 0 {
		return nil, fmt.Errorf("benchmark: runs must be positive, got %d", opts.Runs)
	}
	if opts.Warmup < 0 {
		return nil, fmt.Errorf("benchmark: warmup must not be negative, got %d", opts.Warmup)
	}
	clock := opts.Clock
	if clock == nil {
		clock = solver.SystemClock{}
	}

	result := &Result{Problem: p, Runs: opts.Runs, Consistent: true}
	for _, st := range Strategies {
		timing, err := measure(ctx, s, p, st, opts, clock)
		if err != nil {
			return nil, err
		}
		result.Timings = append(result.Timings, timing)
	}

	first := result.Timings[0]
	for _, t := range result.Timings[1:] {
		if t.Count != first.Count || t.ErrCode != first.ErrCode {
			result.Consistent = false
		}
	}

	seq, _ := result.Timing(solver.StrategySequential)
	par, _ := result.Timing(solver.StrategyParallel)
	if par.Best > 0 {
		result.Speedup = float64(seq.Best) / float64(par.Best)
	}
	return result, nil
}

func measure(ctx context.Context, s *solver.Solver, p solver.Problem, st solver.Strategy, opts Options, clock solver.Clock) (Timing, error) {
	timing := Timing{Strategy: st}

	once := func() error {
		count, err := s.CountWith(p, st)
		if err != nil && solver.CodeOf(err) != solver.CodeCountOverflow {
			return fmt.Errorf("benchmark %s: %w", st, err)
		}
		timing.Count = count
		timing.ErrCode = solver.CodeOf(err)
		return nil
	}

	for i := 0; i < opts.Warmup; i++ {
		if err := ctx.Err(); err != nil {
			return Timing{}, err
		}
		if err := once(); err != nil {
			return Timing{}, err
		}
	}

	var total time.Duration
	for i := 0; i < opts.Runs; i++ {
		if err := ctx.Err(); err != nil {
			return Timing{}, err
		}
		start := clock.Now()
		if err := once(); err != nil {
			return Timing{}, err
		}
		d := clock.Now().Sub(start)
		total += d
		if i == 0 || d < timing.Best {
			timing.Best = d
		}
	}
	timing.Mean = total / time.Duration(opts.Runs)
	return timing, nil
}
