package solver

import "math/bits"

// overflowMark is the saturation value for table cells. Any cell holding it
// represents a count ≥ 2^63, which does not fit in int64.
const overflowMark = uint64(1) << 63

// satAdd returns a+b, saturating at overflowMark. Inputs are ≤ overflowMark.
func satAdd(a, b uint64) uint64 {
	s, carry := bits.Add64(a, b, 0)
	if carry != 0 || s > overflowMark {
		return overflowMark
	}
	return s
}

// satMul returns a*b, saturating at overflowMark.
func satMul(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 || lo > overflowMark {
		return overflowMark
	}
	return lo
}

// mulDiv returns c*a/b for an exact division, saturating at overflowMark.
// b must be non-zero.
func mulDiv(c, a, b uint64) uint64 {
	if c >= overflowMark {
		return overflowMark
	}
	hi, lo := bits.Mul64(c, a)
	if hi >= b {
		// Quotient needs more than 64 bits.
		return overflowMark
	}
	q, _ := bits.Div64(hi, lo, b)
	if q > overflowMark {
		return overflowMark
	}
	return q
}

// binomial returns C(n, r), saturating at overflowMark.
//
// The running value after step i is C(n-r+i, i), which is non-decreasing in
// i when r ≤ n-r, so saturating early never hides an exact final value.
func binomial(n, r uint64) uint64 {
	if r > n {
		return 0
	}
	if r > n-r {
		r = n - r
	}
	c := uint64(1)
	for i := uint64(1); i <= r; i++ {
		c = mulDiv(c, n-r+i, i)
		if c == overflowMark {
			return overflowMark
		}
	}
	return c
}

// mulInt64 returns a*b and whether it fits in int64.
func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	p := a * b
	if p/b != a || (a == -1 && b == -1<<63) || (b == -1 && a == -1<<63) {
		return 0, false
	}
	return p, true
}
