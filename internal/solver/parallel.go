package solver

import (
	"golang.org/x/sync/errgroup"
)

// chainsPerWorker controls how finely residue classes are split into
// tasks. Several tasks per worker keep the pool busy when chain lengths
// differ by one row.
const chainsPerWorker = 4

// fillParallel applies every denomination in input order, splitting each
// pass into residue classes modulo |c| that run on up to workers goroutines.
// The pool is drained before the next denomination starts, so the
// processing order that prevents double counting is unchanged.
func fillParallel(t *table, coins []int64, workers int) {
	for _, c := range coins {
		d, ok := t.step(c)
		if !ok {
			continue
		}
		if d == 1 || workers <= 1 {
			// A single residue class is one dependent chain.
			t.applyCoin(c)
			continue
		}

		block := max(1, d/(workers*chainsPerWorker))
		g := new(errgroup.Group)
		g.SetLimit(workers)
		for start := 0; start < d; start += block {
			end := min(start+block, d)
			g.Go(func() error {
				for r := start; r < end; r++ {
					t.applyChain(c, r)
				}
				return nil
			})
		}
		// Tasks never fail; Wait is the barrier between denominations.
		_ = g.Wait()
	}
}
