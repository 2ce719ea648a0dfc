package solver

import (
	"strconv"
)

// plan is the validated shape of one solve. It is derived once by validate
// and read by the counter; nothing in it outlives the call.
type plan struct {
	problem Problem

	// coins holds the non-zero coin values in input order. Zero-value slots
	// are folded in by a closed-form factor instead of a DP pass.
	coins []int64
	zeros uint64

	// lo and hi bound the sums a table row can represent (inclusive).
	lo, hi int64

	// k bounds the number of non-zero coin uses that can still reach the
	// target: min(maxCoins, target/minPositive) without negative coins,
	// maxCoins with them.
	k int64

	// unreachable is set when the target lies outside [lo, hi].
	unreachable bool

	// cells is the table size, or 0 when no table is needed.
	cells int64
}

func (p *plan) rows() int   { return int(p.hi-p.lo) + 1 }
func (p *plan) stride() int { return int(p.k) + 1 }

// validate checks the problem against the solver limits and derives the
// plan. Checks run in taxonomy order: bound, list length, sign, range.
func (s *Solver) validate(p Problem) (*plan, error) {
	if p.MaxCoins < 0 {
		return nil, newError(CodeInvalidBound, "max coins must be non-negative", map[string]string{
			"max_coins": strconv.FormatInt(p.MaxCoins, 10),
		})
	}

	if len(p.Coins) > s.maxDenominations {
		return nil, newError(CodeTooManyDenominations, "coin list exceeds the denomination limit", map[string]string{
			"coins": strconv.Itoa(len(p.Coins)),
			"limit": strconv.Itoa(s.maxDenominations),
		})
	}

	pl := &plan{problem: p, coins: make([]int64, 0, len(p.Coins))}
	var minNeg, maxPos, minPos int64
	for i, c := range p.Coins {
		switch {
		case c == 0:
			pl.zeros++
			continue
		case c < 0:
			if !s.allowNegative {
				return nil, newError(CodeUnboundedDomain, "negative coin values make the sum range unbounded", map[string]string{
					"index": strconv.Itoa(i),
					"coin":  strconv.FormatInt(c, 10),
				})
			}
			minNeg = min(minNeg, c)
		default:
			maxPos = max(maxPos, c)
			if minPos == 0 || c < minPos {
				minPos = c
			}
		}
		pl.coins = append(pl.coins, c)
	}

	if minNeg == 0 {
		// Sums only grow, so rows past the target are never needed.
		if p.Target < 0 {
			pl.unreachable = true
			return pl, nil
		}
		pl.lo, pl.hi = 0, p.Target
		if minPos > 0 {
			pl.k = min(p.MaxCoins, p.Target/minPos)
		}
	} else {
		lo, okLo := mulInt64(p.MaxCoins, minNeg)
		hi, okHi := mulInt64(p.MaxCoins, maxPos)
		if !okLo || !okHi {
			return nil, newError(CodeOutOfRange, "reachable sum range overflows int64", map[string]string{
				"max_coins": strconv.FormatInt(p.MaxCoins, 10),
				"min_coin":  strconv.FormatInt(minNeg, 10),
				"max_coin":  strconv.FormatInt(maxPos, 10),
			})
		}
		if p.Target < lo || p.Target > hi {
			pl.unreachable = true
			return pl, nil
		}
		pl.lo, pl.hi = lo, hi
		pl.k = p.MaxCoins
	}

	if pl.k == 0 {
		// Only the empty use of non-zero coins is possible; no table.
		pl.unreachable = p.Target != 0
		pl.lo, pl.hi = 0, 0
		return pl, nil
	}

	if err := s.checkTable(pl); err != nil {
		return nil, err
	}
	return pl, nil
}

// checkTable computes the cell count and enforces the table limit.
func (s *Solver) checkTable(pl *plan) error {
	tooLarge := func() error {
		return newError(CodeOutOfRange, "DP table exceeds the cell limit", map[string]string{
			"sum_range": strconv.FormatInt(pl.lo, 10) + ".." + strconv.FormatInt(pl.hi, 10),
			"max_uses":  strconv.FormatInt(pl.k, 10),
			"limit":     strconv.FormatInt(s.maxTableCells, 10),
		})
	}

	span := pl.hi - pl.lo
	if span < 0 || span >= s.maxTableCells || pl.k >= s.maxTableCells {
		return tooLarge()
	}
	cells, ok := mulInt64(span+1, pl.k+1)
	if !ok || cells > s.maxTableCells {
		return tooLarge()
	}
	pl.cells = cells
	return nil
}
