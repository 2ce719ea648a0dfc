package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedIDs_InOrder(t *testing.T) {
	gen := NewFixedIDs("report-1", "report-2")

	assert.Equal(t, "report-1", gen.Generate())
	assert.Equal(t, "report-2", gen.Generate())
}

func TestFixedIDs_FallbackAfterExhaustion(t *testing.T) {
	gen := NewFixedIDs("only")

	assert.Equal(t, "only", gen.Generate())
	assert.Equal(t, "test-id-2", gen.Generate())
	assert.Equal(t, "test-id-3", gen.Generate())
}

func TestFixedIDs_ThreadSafe(t *testing.T) {
	gen := NewFixedIDs()

	seen := make(map[string]bool)
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				id := gen.Generate()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 500)
}
