package solver

// table is the flat DP state for one call, laid out [sum][k] so the inner
// k loop walks contiguous memory. Row i holds sum lo+i.
type table struct {
	cells  []uint64
	rows   int
	stride int
}

func newTable(pl *plan) *table {
	t := &table{
		rows:   pl.rows(),
		stride: pl.stride(),
	}
	t.cells = make([]uint64, t.rows*t.stride)
	// The empty combination: sum 0 with 0 uses.
	t.cells[t.offset(0-pl.lo)] = 1
	return t
}

func (t *table) offset(row int64) int { return int(row) * t.stride }

func (t *table) row(i int) []uint64 {
	return t.cells[i*t.stride : (i+1)*t.stride]
}

// addShifted applies dst[k] += src[k-1] for every k ≥ 1, saturating.
func addShifted(dst, src []uint64) {
	n := len(dst)
	src = src[:n-1]
	for k := 1; k < n; k++ {
		dst[k] = satAdd(dst[k], src[k-1])
	}
}

// applyCoin runs one full denomination pass over the table.
//
// For a positive coin rows are visited in ascending order, so row i-c
// already includes uses of the same coin and dp[i] picks up every repeat
// count in one sweep. Negative coins mirror this in descending order.
func (t *table) applyCoin(c int64) {
	d, ok := t.step(c)
	if !ok {
		return
	}
	if c > 0 {
		for i := d; i < t.rows; i++ {
			addShifted(t.row(i), t.row(i-d))
		}
		return
	}
	for i := t.rows - 1 - d; i >= 0; i-- {
		addShifted(t.row(i), t.row(i+d))
	}
}

// applyChain runs the pass for coin c restricted to rows ≡ r (mod |c|).
// Chains for distinct residues touch disjoint rows.
func (t *table) applyChain(c int64, r int) {
	d, ok := t.step(c)
	if !ok {
		return
	}
	if c > 0 {
		for i := r + d; i < t.rows; i += d {
			addShifted(t.row(i), t.row(i-d))
		}
		return
	}
	top := t.rows - 1 - d
	if top < r {
		return
	}
	for i := top - (top-r)%d; i >= 0; i -= d {
		addShifted(t.row(i), t.row(i+d))
	}
}

// step returns |c| as a row distance, or false when no row can use the coin.
func (t *table) step(c int64) (int, bool) {
	d := c
	if d < 0 {
		d = -d
	}
	if d >= int64(t.rows) {
		return 0, false
	}
	return int(d), true
}

// fillSequential applies every denomination in input order.
func fillSequential(t *table, coins []int64) {
	for _, c := range coins {
		t.applyCoin(c)
	}
}

// total sums the target row, weighting each use count k by the number of
// ways to spend the remaining budget on zero-value slots.
func (pl *plan) total(row []uint64) uint64 {
	if pl.zeros == 0 {
		var sum uint64
		for _, v := range row {
			sum = satAdd(sum, v)
		}
		return sum
	}

	// F(k) = C(m-k+z, z) counts distributions of at most m-k extra uses
	// over z zero slots. Start from the smallest factor F(K) and step down:
	// F(k-1) = F(k)·(m-k+1+z)/(m-k+1).
	m := uint64(pl.problem.MaxCoins)
	z := pl.zeros
	kmax := uint64(len(row) - 1)
	f := binomial(m-kmax+z, z)

	var sum uint64
	for k := kmax; ; k-- {
		if row[k] != 0 {
			sum = satAdd(sum, satMul(row[k], f))
		}
		if k == 0 {
			break
		}
		f = mulDiv(f, m-k+1+z, m-k+1)
	}
	return sum
}

// countTrivial handles plans that need no table.
func (pl *plan) countTrivial() uint64 {
	if pl.unreachable {
		return 0
	}
	return pl.total([]uint64{1})
}
