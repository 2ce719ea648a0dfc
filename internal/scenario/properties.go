package scenario

import (
	"errors"
	"fmt"
	"slices"

	"github.com/roach88/limitbreak/internal/solver"
)

// checkProperty evaluates one property around a solved case. It returns
// an empty string when the property holds.
func (r *Runner) checkProperty(s *solver.Solver, prop Property, p solver.Problem, count int64, err error) string {
	switch prop {
	case PropPermutationInvariant:
		return checkPermutations(s, p, count, err)
	case PropMonotoneBudget:
		return checkMonotone(s, p, count, err)
	case PropMatchesEnumeration:
		return r.checkEnumeration(p, count, err)
	case PropStrategiesAgree:
		return checkStrategies(s, p)
	}
	return fmt.Sprintf("unknown property %q", prop)
}

// sameOutcome compares two solver results by count and error code.
func sameOutcome(c1 int64, e1 error, c2 int64, e2 error) bool {
	return c1 == c2 && solver.CodeOf(e1) == solver.CodeOf(e2)
}

func describe(count int64, err error) string {
	if err != nil {
		return string(solver.CodeOf(err))
	}
	return fmt.Sprint(count)
}

func checkPermutations(s *solver.Solver, p solver.Problem, count int64, err error) string {
	n := len(p.Coins)
	if n < 2 {
		return ""
	}

	reversed := slices.Clone(p.Coins)
	slices.Reverse(reversed)
	rotated := append(slices.Clone(p.Coins[1:]), p.Coins[0])

	for _, coins := range [][]int64{reversed, rotated} {
		q := p
		q.Coins = coins
		c2, e2 := s.Count(q)
		if !sameOutcome(count, err, c2, e2) {
			return fmt.Sprintf("coins %v gave %s, want %s", coins, describe(c2, e2), describe(count, err))
		}
	}
	return ""
}

func checkMonotone(s *solver.Solver, p solver.Problem, count int64, err error) string {
	if err != nil {
		return "requires a count, got " + describe(count, err)
	}

	wider := p
	wider.MaxCoins++
	c2, e2 := s.Count(wider)
	switch {
	case errors.Is(e2, solver.ErrCountOverflow):
		// A larger budget overflowing is still monotone.
	case e2 != nil:
		return fmt.Sprintf("budget %d gave %s", wider.MaxCoins, describe(c2, e2))
	case c2 < count:
		return fmt.Sprintf("budget %d gave %d < %d", wider.MaxCoins, c2, count)
	}

	if p.MaxCoins == 0 {
		return ""
	}
	narrower := p
	narrower.MaxCoins--
	c3, e3 := s.Count(narrower)
	if e3 != nil {
		return fmt.Sprintf("budget %d gave %s", narrower.MaxCoins, describe(c3, e3))
	}
	if c3 > count {
		return fmt.Sprintf("budget %d gave %d > %d", narrower.MaxCoins, c3, count)
	}
	return ""
}

func (r *Runner) checkEnumeration(p solver.Problem, count int64, err error) string {
	if err != nil {
		return "requires a count, got " + describe(count, err)
	}
	want, enumErr := solver.Enumerate(p, r.enumerationLimit)
	if enumErr != nil {
		return fmt.Sprintf("enumeration failed: %v", enumErr)
	}
	if want != count {
		return fmt.Sprintf("enumeration gave %d, solver %d", want, count)
	}
	return ""
}

func checkStrategies(s *solver.Solver, p solver.Problem) string {
	seq, seqErr := s.CountWith(p, solver.StrategySequential)
	par, parErr := s.CountWith(p, solver.StrategyParallel)
	if !sameOutcome(seq, seqErr, par, parErr) {
		return fmt.Sprintf("sequential gave %s, parallel %s", describe(seq, seqErr), describe(par, parErr))
	}
	return ""
}
