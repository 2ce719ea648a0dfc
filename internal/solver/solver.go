package solver

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
)

// Default limits.
const (
	// DefaultMaxDenominations caps the coin list length.
	DefaultMaxDenominations = 4096

	// DefaultMaxTableCells caps the DP table at 2^27 cells (1 GiB of uint64).
	DefaultMaxTableCells int64 = 1 << 27

	// DefaultParallelThreshold is the table size from which StrategyAuto
	// switches to the parallel fill.
	DefaultParallelThreshold int64 = 1 << 20
)

// Solver counts bounded coin combinations.
//
// Build one with New. The zero value is not ready and reports
// NotInitialized from every method. A Solver holds only configuration, so
// concurrent calls never share a table.
type Solver struct {
	ready bool

	maxDenominations  int
	maxTableCells     int64
	allowNegative     bool
	strategy          Strategy
	workers           int
	parallelThreshold int64

	clock    Clock
	reporter *Reporter
	logger   *slog.Logger
}

// Option configures a Solver.
type Option func(*Solver)

// WithMaxDenominations sets the coin list cap.
func WithMaxDenominations(n int) Option {
	return func(s *Solver) { s.maxDenominations = n }
}

// WithMaxTableCells sets the DP table cap in cells.
func WithMaxTableCells(n int64) Option {
	return func(s *Solver) { s.maxTableCells = n }
}

// WithAllowNegativeCoins enables negative coin values. The sum range is then
// bounded by maxCoins times the extreme coin values.
func WithAllowNegativeCoins(allow bool) Option {
	return func(s *Solver) { s.allowNegative = allow }
}

// WithStrategy selects the fill strategy.
func WithStrategy(st Strategy) Option {
	return func(s *Solver) { s.strategy = st }
}

// WithWorkers sets the parallel worker count.
// Default: runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(s *Solver) { s.workers = n }
}

// WithParallelThreshold sets the table size from which StrategyAuto fills
// in parallel.
func WithParallelThreshold(cells int64) Option {
	return func(s *Solver) { s.parallelThreshold = cells }
}

// WithClock sets the clock used for elapsed time in reports.
func WithClock(c Clock) Option {
	return func(s *Solver) { s.clock = c }
}

// WithIDGenerator sets the report ID generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Solver) { s.reporter = NewReporter(g) }
}

// WithLogger sets the diagnostic logger. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(s *Solver) { s.logger = l }
}

// New returns a ready Solver.
func New(opts ...Option) (*Solver, error) {
	s := &Solver{
		maxDenominations:  DefaultMaxDenominations,
		maxTableCells:     DefaultMaxTableCells,
		strategy:          StrategyAuto,
		workers:           runtime.GOMAXPROCS(0),
		parallelThreshold: DefaultParallelThreshold,
		clock:             SystemClock{},
		reporter:          NewReporter(UUIDv7Generator{}),
		logger:            slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.maxDenominations <= 0 {
		return nil, fmt.Errorf("max denominations must be positive, got %d", s.maxDenominations)
	}
	if s.maxTableCells <= 0 {
		return nil, fmt.Errorf("max table cells must be positive, got %d", s.maxTableCells)
	}
	if s.workers <= 0 {
		return nil, fmt.Errorf("workers must be positive, got %d", s.workers)
	}
	if s.parallelThreshold < 0 {
		return nil, fmt.Errorf("parallel threshold must be non-negative, got %d", s.parallelThreshold)
	}
	if _, err := ParseStrategy(string(s.strategy)); err != nil {
		return nil, err
	}
	if s.clock == nil || s.reporter == nil || s.logger == nil {
		return nil, fmt.Errorf("clock, id generator and logger must not be nil")
	}

	s.ready = true
	return s, nil
}

// Count returns the number of combinations for p.
func (s *Solver) Count(p Problem) (int64, error) {
	count, _, err := s.count(p)
	return count, err
}

// Solve counts p and packages the outcome with timing and IDs.
// Errors are carried inside the Report, never returned as a zero count.
func (s *Solver) Solve(p Problem) Report {
	if s == nil || !s.ready {
		return NewReporter(UUIDv7Generator{}).Report(p, Outcome{}, ErrNotInitialized, 0)
	}
	start := s.clock.Now()
	count, strategy, err := s.count(p)
	elapsed := s.clock.Now().Sub(start)
	return s.reporter.Report(p, Outcome{Count: count, Strategy: strategy}, err, elapsed)
}

// CountWith runs p with an explicit strategy, ignoring the configured one.
// Used to compare strategies on the same input.
func (s *Solver) CountWith(p Problem, st Strategy) (int64, error) {
	if s == nil || !s.ready {
		return 0, ErrNotInitialized
	}
	if _, err := ParseStrategy(string(st)); err != nil {
		return 0, err
	}
	clone := *s
	clone.strategy = st
	return clone.Count(p)
}

func (s *Solver) count(p Problem) (int64, Strategy, error) {
	if s == nil || !s.ready {
		return 0, "", ErrNotInitialized
	}

	pl, err := s.validate(p)
	if err != nil {
		s.logger.Debug("solver: input rejected", "code", CodeOf(err), "err", err)
		return 0, "", err
	}

	var raw uint64
	strategy := StrategySequential
	if pl.cells == 0 {
		raw = pl.countTrivial()
	} else {
		strategy = s.pick(pl)
		t := newTable(pl)
		s.logger.Debug("solver: table",
			"rows", t.rows,
			"stride", t.stride,
			"denominations", len(pl.coins),
			"zero_slots", pl.zeros,
			"strategy", strategy,
		)
		if strategy == StrategyParallel {
			fillParallel(t, pl.coins, s.workers)
		} else {
			fillSequential(t, pl.coins)
		}
		raw = pl.total(t.row(int(p.Target - pl.lo)))
	}

	if raw >= overflowMark {
		s.logger.Debug("solver: count overflow", "target", p.Target, "max_coins", p.MaxCoins)
		return 0, strategy, newError(CodeCountOverflow, "combination count exceeds int64", map[string]string{
			"target":    fmt.Sprint(p.Target),
			"max_coins": fmt.Sprint(p.MaxCoins),
		})
	}
	return int64(raw), strategy, nil
}

// pick resolves StrategyAuto against the table size.
func (s *Solver) pick(pl *plan) Strategy {
	switch s.strategy {
	case StrategySequential, StrategyParallel:
		return s.strategy
	}
	if s.workers > 1 && pl.cells >= s.parallelThreshold {
		return StrategyParallel
	}
	return StrategySequential
}

var defaultSolver = sync.OnceValue(func() *Solver {
	s, err := New()
	if err != nil {
		panic(fmt.Sprintf("solver: default options rejected: %v", err))
	}
	return s
})

// Solve counts the combinations of coins summing to target with at most
// maxCoins uses, using default limits.
//
//	n, err := solver.Solve(5, 5, []int64{1, 2, 5}) // n == 4
func Solve(target, maxCoins int64, coins []int64) (int64, error) {
	return defaultSolver().Count(Problem{Target: target, MaxCoins: maxCoins, Coins: coins})
}
