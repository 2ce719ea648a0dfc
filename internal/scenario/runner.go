package scenario

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/roach88/limitbreak/internal/solver"
)

// Result is the outcome of running a suite.
type Result struct {
	// Suite is the suite name.
	Suite string `json:"suite"`

	// Pass is true when every case passed.
	Pass bool `json:"pass"`

	// Cases holds one entry per case, in suite order.
	Cases []CaseResult `json:"cases"`
}

// CaseResult is the outcome of one case.
type CaseResult struct {
	Name    string           `json:"name"`
	Pass    bool             `json:"pass"`
	Count   int64            `json:"count"`
	ErrCode solver.ErrorCode `json:"error_code,omitempty"`

	// Errors lists expectation and property failures. Empty when Pass.
	Errors []string `json:"errors,omitempty"`
}

func (r *CaseResult) addError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Pass = false
}

// Failed returns the cases that did not pass.
func (r *Result) Failed() []CaseResult {
	var out []CaseResult
	for _, c := range r.Cases {
		if !c.Pass {
			out = append(out, c)
		}
	}
	return out
}

// Runner executes suites with a base solver configuration.
type Runner struct {
	base   []solver.Option
	logger *slog.Logger

	// enumerationLimit bounds matches_enumeration.
	enumerationLimit int64
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithSolverOptions sets the options every suite solver starts from.
// Suite settings are applied on top.
func WithSolverOptions(opts ...solver.Option) RunnerOption {
	return func(r *Runner) { r.base = append(r.base, opts...) }
}

// WithLogger sets the runner logger. Default: discard.
func WithLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// WithEnumerationLimit sets the node budget for matches_enumeration.
func WithEnumerationLimit(n int64) RunnerOption {
	return func(r *Runner) { r.enumerationLimit = n }
}

// NewRunner creates a Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		logger:           slog.New(slog.DiscardHandler),
		enumerationLimit: solver.DefaultEnumerationLimit,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes a suite with default settings.
func Run(suite *Suite) (*Result, error) {
	return NewRunner().Run(suite)
}

// Run executes every case of suite and evaluates expectations and
// properties. A returned error means the suite could not run at all;
// case failures are reported in the Result.
func (r *Runner) Run(suite *Suite) (*Result, error) {
	s, err := r.solverFor(suite)
	if err != nil {
		return nil, fmt.Errorf("suite %q: %w", suite.Name, err)
	}

	result := &Result{Suite: suite.Name, Pass: true, Cases: make([]CaseResult, 0, len(suite.Cases))}
	for _, c := range suite.Cases {
		cr := r.runCase(s, c)
		if !cr.Pass {
			result.Pass = false
		}
		r.logger.Debug("scenario: case", "suite", suite.Name, "case", c.Name, "pass", cr.Pass)
		result.Cases = append(result.Cases, cr)
	}
	return result, nil
}

func (r *Runner) solverFor(suite *Suite) (*solver.Solver, error) {
	opts := slices.Clone(r.base)
	opts = append(opts, solver.WithLogger(r.logger))
	if suite.Solver.AllowNegativeCoins {
		opts = append(opts, solver.WithAllowNegativeCoins(true))
	}
	if suite.Solver.Strategy != "" {
		opts = append(opts, solver.WithStrategy(solver.Strategy(suite.Solver.Strategy)))
	}
	if suite.Solver.MaxTableCells > 0 {
		opts = append(opts, solver.WithMaxTableCells(suite.Solver.MaxTableCells))
	}
	return solver.New(opts...)
}

func (r *Runner) runCase(s *solver.Solver, c Case) CaseResult {
	cr := CaseResult{Name: c.Name, Pass: true}

	count, err := s.Count(c.Problem())
	cr.Count = count
	cr.ErrCode = solver.CodeOf(err)
	if err != nil && cr.ErrCode == "" {
		cr.addError("unexpected error: %v", err)
		return cr
	}

	switch {
	case c.Expect.Count != nil && err != nil:
		cr.addError("expected count %d, got error %s", *c.Expect.Count, cr.ErrCode)
	case c.Expect.Count != nil && count != *c.Expect.Count:
		cr.addError("expected count %d, got %d", *c.Expect.Count, count)
	case c.Expect.Error != "" && err == nil:
		cr.addError("expected error %s, got count %d", c.Expect.Error, count)
	case c.Expect.Error != "" && string(cr.ErrCode) != c.Expect.Error:
		cr.addError("expected error %s, got %s", c.Expect.Error, cr.ErrCode)
	}

	for _, p := range c.Properties {
		if msg := r.checkProperty(s, p, c.Problem(), count, err); msg != "" {
			cr.addError("%s: %s", p, msg)
		}
	}
	return cr
}
