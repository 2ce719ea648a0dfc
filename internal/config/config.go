package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/limitbreak/internal/solver"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultRuns   = 5
	DefaultWarmup = 1
)

// Config is the top-level limitbreak configuration.
type Config struct {
	Solver SolverConfig `yaml:"solver"`
	Bench  BenchConfig  `yaml:"bench"`
}

// SolverConfig holds the solver limits and strategy selection.
type SolverConfig struct {
	// MaxDenominations caps the coin list length.
	MaxDenominations int `yaml:"max_denominations"`

	// MaxTableCells caps the DP table size; larger problems fail with
	// OutOfRange instead of allocating.
	MaxTableCells int64 `yaml:"max_table_cells"`

	// AllowNegativeCoins accepts negative coin values, bounding the sum
	// range by the coin-count bound.
	AllowNegativeCoins bool `yaml:"allow_negative_coins"`

	// Strategy is one of: auto | sequential | parallel.
	Strategy string `yaml:"strategy"`

	// Workers is the parallel worker count. Zero means GOMAXPROCS.
	Workers int `yaml:"workers"`

	// ParallelThreshold is the table size from which auto fills in parallel.
	ParallelThreshold int64 `yaml:"parallel_threshold"`
}

// BenchConfig holds benchmark loop settings.
type BenchConfig struct {
	// Runs is the number of timed runs per strategy.
	Runs int `yaml:"runs"`

	// Warmup is the number of untimed runs per strategy before timing.
	Warmup int `yaml:"warmup"`
}

// Default returns a Config pre-populated with default values.
func Default() *Config {
	return &Config{
		Solver: SolverConfig{
			MaxDenominations:  solver.DefaultMaxDenominations,
			MaxTableCells:     solver.DefaultMaxTableCells,
			Strategy:          string(solver.StrategyAuto),
			ParallelThreshold: solver.DefaultParallelThreshold,
		},
		Bench: BenchConfig{
			Runs:   DefaultRuns,
			Warmup: DefaultWarmup,
		},
	}
}

// Load reads and parses the YAML config file at path.
// Missing fields are filled with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML config bytes. An empty document yields Default().
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Validate checks structural constraints.
func (c *Config) Validate() error {
	if c.Solver.MaxDenominations <= 0 {
		return fmt.Errorf("solver.max_denominations must be positive")
	}
	if c.Solver.MaxTableCells <= 0 {
		return fmt.Errorf("solver.max_table_cells must be positive")
	}
	if _, err := solver.ParseStrategy(c.Solver.Strategy); err != nil {
		return fmt.Errorf("solver.strategy: %w", err)
	}
	if c.Solver.Workers < 0 {
		return fmt.Errorf("solver.workers must not be negative")
	}
	if c.Solver.ParallelThreshold < 0 {
		return fmt.Errorf("solver.parallel_threshold must not be negative")
	}
	if c.Bench.Runs <= 0 {
		return fmt.Errorf("bench.runs must be positive")
	}
	if c.Bench.Warmup < 0 {
		return fmt.Errorf("bench.warmup must not be negative")
	}
	return nil
}

// SolverOptions converts the solver section into solver options.
// Extra options are appended last, so they override config values.
func (c *Config) SolverOptions(logger *slog.Logger, extra ...solver.Option) []solver.Option {
	opts := []solver.Option{
		solver.WithMaxDenominations(c.Solver.MaxDenominations),
		solver.WithMaxTableCells(c.Solver.MaxTableCells),
		solver.WithAllowNegativeCoins(c.Solver.AllowNegativeCoins),
		solver.WithStrategy(solver.Strategy(c.Solver.Strategy)),
		solver.WithParallelThreshold(c.Solver.ParallelThreshold),
	}
	if c.Solver.Workers > 0 {
		opts = append(opts, solver.WithWorkers(c.Solver.Workers))
	}
	if logger != nil {
		opts = append(opts, solver.WithLogger(logger))
	}
	return append(opts, extra...)
}

// NewSolver builds a Solver from the solver section.
func (c *Config) NewSolver(logger *slog.Logger, extra ...solver.Option) (*solver.Solver, error) {
	s, err := solver.New(c.SolverOptions(logger, extra...)...)
	if err != nil {
		return nil, fmt.Errorf("config: build solver: %w", err)
	}
	return s, nil
}
