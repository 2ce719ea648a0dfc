package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/limitbreak/internal/solver"
)

func loadFromString(t *testing.T, content string) (*Config, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "limitbreak.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return Load(path)
}

func TestLoad_Valid(t *testing.T) {
	cfg, err := loadFromString(t, `
solver:
  max_denominations: 16
  max_table_cells: 1000
  allow_negative_coins: true
  strategy: parallel
  workers: 3
  parallel_threshold: 10
bench:
  runs: 9
  warmup: 0
`)
	require.NoError(t, err)

	assert.Equal(t, 16, cfg.Solver.MaxDenominations)
	assert.Equal(t, int64(1000), cfg.Solver.MaxTableCells)
	assert.True(t, cfg.Solver.AllowNegativeCoins)
	assert.Equal(t, "parallel", cfg.Solver.Strategy)
	assert.Equal(t, 3, cfg.Solver.Workers)
	assert.Equal(t, int64(10), cfg.Solver.ParallelThreshold)
	assert.Equal(t, 9, cfg.Bench.Runs)
	assert.Equal(t, 0, cfg.Bench.Warmup)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := loadFromString(t, "solver:\n  workers: 2\n")
	require.NoError(t, err)

	assert.Equal(t, solver.DefaultMaxDenominations, cfg.Solver.MaxDenominations)
	assert.Equal(t, solver.DefaultMaxTableCells, cfg.Solver.MaxTableCells)
	assert.Equal(t, "auto", cfg.Solver.Strategy)
	assert.Equal(t, solver.DefaultParallelThreshold, cfg.Solver.ParallelThreshold)
	assert.Equal(t, DefaultRuns, cfg.Bench.Runs)
	assert.Equal(t, DefaultWarmup, cfg.Bench.Warmup)
}

func TestParse_EmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read file")
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte("solver:\n  max_coins: 3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse yaml")
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"zero denominations", "solver:\n  max_denominations: 0\n", "solver.max_denominations"},
		{"negative cells", "solver:\n  max_table_cells: -1\n", "solver.max_table_cells"},
		{"bad strategy", "solver:\n  strategy: greedy\n", "solver.strategy"},
		{"negative workers", "solver:\n  workers: -2\n", "solver.workers"},
		{"negative threshold", "solver:\n  parallel_threshold: -1\n", "solver.parallel_threshold"},
		{"zero runs", "bench:\n  runs: 0\n", "bench.runs"},
		{"negative warmup", "bench:\n  warmup: -1\n", "bench.warmup"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNewSolver_AppliesConfig(t *testing.T) {
	cfg, err := Parse([]byte("solver:\n  max_denominations: 2\n"))
	require.NoError(t, err)

	s, err := cfg.NewSolver(nil)
	require.NoError(t, err)

	_, err = s.Count(solver.Problem{Target: 5, MaxCoins: 5, Coins: []int64{1, 2, 5}})
	assert.ErrorIs(t, err, solver.ErrTooManyDenominations)
}

func TestNewSolver_ExtraOptionsOverride(t *testing.T) {
	cfg := Default()

	s, err := cfg.NewSolver(nil, solver.WithAllowNegativeCoins(true))
	require.NoError(t, err)

	n, err := s.Count(solver.Problem{Target: 0, MaxCoins: 4, Coins: []int64{1, -1}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestNewSolver_NegativeCoinsRejectedByDefault(t *testing.T) {
	s, err := Default().NewSolver(nil)
	require.NoError(t, err)

	_, err = s.Count(solver.Problem{Target: 0, MaxCoins: 4, Coins: []int64{1, -1}})
	assert.ErrorIs(t, err, solver.ErrUnboundedDomain)
}
