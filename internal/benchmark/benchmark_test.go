package benchmark

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/limitbreak/internal/solver"
	"github.com/roach88/limitbreak/internal/testutil"
)

func newSolver(t *testing.T) *solver.Solver {
	t.Helper()
	s, err := solver.New(solver.WithWorkers(4))
	require.NoError(t, err)
	return s
}

func TestRun_ConsistentStrategies(t *testing.T) {
	p := solver.Problem{Target: 10000, MaxCoins: 100, Coins: []int64{10, 50, 100, 500}}
	clock := testutil.NewStepClock(time.Millisecond)

	result, err := Run(context.Background(), newSolver(t), p, Options{Runs: 3, Warmup: 1, Clock: clock})
	require.NoError(t, err)

	assert.True(t, result.Consistent)
	require.Len(t, result.Timings, 2)
	for _, timing := range result.Timings {
		assert.Equal(t, int64(2780), timing.Count)
		assert.Empty(t, timing.ErrCode)
		assert.Equal(t, time.Millisecond, timing.Best)
		assert.Equal(t, time.Millisecond, timing.Mean)
	}
	assert.InDelta(t, 1.0, result.Speedup, 1e-9)

	// Two reads per timed run, none during warmup.
	assert.Equal(t, 2*3*2, clock.Reads())
}

func TestRun_OverflowIsAnOutcome(t *testing.T) {
	coins := make([]int64, 13)
	for i := range coins {
		coins[i] = 1
	}
	p := solver.Problem{Target: 200, MaxCoins: 200, Coins: coins}

	result, err := Run(context.Background(), newSolver(t), p, Options{Runs: 1})
	require.NoError(t, err)

	assert.True(t, result.Consistent)
	seq, ok := result.Timing(solver.StrategySequential)
	require.True(t, ok)
	assert.Equal(t, solver.CodeCountOverflow, seq.ErrCode)
}

func TestRun_InputErrorAborts(t *testing.T) {
	p := solver.Problem{Target: 5, MaxCoins: -1, Coins: []int64{1}}

	_, err := Run(context.Background(), newSolver(t), p, Options{Runs: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, solver.ErrInvalidBound)
}

func TestRun_InvalidOptions(t *testing.T) {
	p := solver.Problem{Target: 5, MaxCoins: 5, Coins: []int64{1}}

	_, err := Run(context.Background(), newSolver(t), p, Options{Runs: 0})
	assert.ErrorContains(t, err, "runs must be positive")

	_, err = Run(context.Background(), newSolver(t), p, Options{Runs: 1, Warmup: -1})
	assert.ErrorContains(t, err, "warmup must not be negative")
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := solver.Problem{Target: 5, MaxCoins: 5, Coins: []int64{1, 2, 5}}
	_, err := Run(ctx, newSolver(t), p, Options{Runs: 5})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_ZeroParallelTime(t *testing.T) {
	p := solver.Problem{Target: 5, MaxCoins: 5, Coins: []int64{1, 2, 5}}

	result, err := Run(context.Background(), newSolver(t), p, Options{Runs: 2, Clock: testutil.NewStepClock(0)})
	require.NoError(t, err)
	assert.Zero(t, result.Speedup)
}
