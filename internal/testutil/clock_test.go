package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStepClock_Advances(t *testing.T) {
	c := NewStepClock(250 * time.Microsecond)

	first := c.Now()
	second := c.Now()

	assert.Equal(t, Epoch, first)
	assert.Equal(t, 250*time.Microsecond, second.Sub(first))
	assert.Equal(t, 2, c.Reads())
}

func TestStepClock_Reset(t *testing.T) {
	c := NewStepClock(time.Second)
	c.Now()
	c.Now()

	c.Reset()
	assert.Equal(t, Epoch, c.Now())
}

func TestStepClock_ZeroStep(t *testing.T) {
	c := NewStepClock(0)
	assert.Equal(t, Epoch, c.Now())
	assert.Equal(t, Epoch, c.Now())
	assert.Equal(t, 0, c.Reads())
}

func TestStepClock_ThreadSafe(t *testing.T) {
	c := NewStepClock(time.Millisecond)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Now()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1000, c.Reads())
}
