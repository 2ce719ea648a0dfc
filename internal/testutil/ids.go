package testutil

import (
	"fmt"
	"sync"
)

// FixedIDs returns predetermined report IDs for testing.
//
// IDs are returned in order; once exhausted, Generate falls back to
// "test-id-<n>" so long-running suites keep producing stable values.
//
// Thread-safety: FixedIDs is safe for concurrent use via internal mutex.
type FixedIDs struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedIDs creates a generator that returns ids in order.
//
//	gen := NewFixedIDs("report-1", "report-2")
//	gen.Generate() // "report-1"
//	gen.Generate() // "report-2"
//	gen.Generate() // "test-id-3"
func NewFixedIDs(ids ...string) *FixedIDs {
	return &FixedIDs{ids: ids}
}

// Generate returns the next ID.
func (g *FixedIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.idx++
	if g.idx <= len(g.ids) {
		return g.ids[g.idx-1]
	}
	return fmt.Sprintf("test-id-%d", g.idx)
}
