package solver

import (
	"math"
	"strconv"
)

// DefaultEnumerationLimit bounds the nodes Enumerate visits by default.
const DefaultEnumerationLimit int64 = 10_000_000

// Enumerate counts combinations by walking every use-count vector directly.
// It is exponential and exists as an independent oracle for the DP: tests
// and `solve --verify` compare both on small inputs.
//
// Negative and zero-value coins are accepted without a bounding option
// because the walk is already bounded by maxCoins. Returns
// ErrEnumerationLimit once more than limit nodes were visited (limit ≤ 0
// means DefaultEnumerationLimit) and CountOverflow when the count no longer
// fits in int64.
func Enumerate(p Problem, limit int64) (int64, error) {
	if p.MaxCoins < 0 {
		return 0, newError(CodeInvalidBound, "max coins must be non-negative", map[string]string{
			"max_coins": strconv.FormatInt(p.MaxCoins, 10),
		})
	}
	if limit <= 0 {
		limit = DefaultEnumerationLimit
	}

	// nonNegSuffix[i] is true when coins[i:] holds no negative value, so a
	// partial sum above the target can never come back down.
	n := len(p.Coins)
	nonNegSuffix := make([]bool, n+1)
	nonNegSuffix[n] = true
	for i := n - 1; i >= 0; i-- {
		nonNegSuffix[i] = nonNegSuffix[i+1] && p.Coins[i] >= 0
	}

	e := &enumerator{coins: p.Coins, target: p.Target, nonNegSuffix: nonNegSuffix, limit: limit}
	if err := e.walk(0, 0, p.MaxCoins); err != nil {
		return 0, err
	}
	return e.count, nil
}

type enumerator struct {
	coins        []int64
	target       int64
	nonNegSuffix []bool
	limit        int64
	visited      int64
	count        int64
}

func (e *enumerator) walk(i int, sum, budget int64) error {
	e.visited++
	if e.visited > e.limit {
		return ErrEnumerationLimit
	}
	if i == len(e.coins) {
		if sum == e.target {
			if e.count == math.MaxInt64 {
				return newError(CodeCountOverflow, "combination count exceeds int64", nil)
			}
			e.count++
		}
		return nil
	}
	if e.nonNegSuffix[i] && sum > e.target {
		return nil
	}

	c := e.coins[i]
	for u := int64(0); u <= budget; u++ {
		next, ok := addMul(sum, u, c)
		if !ok {
			return newError(CodeOutOfRange, "partial sum overflows int64", nil)
		}
		if err := e.walk(i+1, next, budget-u); err != nil {
			return err
		}
		if c > 0 && e.nonNegSuffix[i] && next > e.target {
			break
		}
	}
	return nil
}

// addMul returns sum + u*c and whether it fits in int64.
func addMul(sum, u, c int64) (int64, bool) {
	p, ok := mulInt64(u, c)
	if !ok {
		return 0, false
	}
	r := sum + p
	if (p > 0 && r < sum) || (p < 0 && r > sum) {
		return 0, false
	}
	return r, true
}
