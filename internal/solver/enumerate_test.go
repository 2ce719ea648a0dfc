package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumerateKnownInstances(t *testing.T) {
	tests := []struct {
		p    Problem
		want int64
	}{
		{Problem{Target: 5, MaxCoins: 5, Coins: []int64{1, 2, 5}}, 4},
		{Problem{Target: 4, MaxCoins: 2, Coins: []int64{1, 2, 3}}, 2},
		{Problem{Target: 100, MaxCoins: 3, Coins: []int64{25, 50, 75}}, 3},
		{Problem{Target: 0, MaxCoins: 3}, 1},
		{Problem{Target: 2, MaxCoins: 3}, 0},
		{Problem{Target: 0, MaxCoins: 4, Coins: []int64{1, -1}}, 3},
	}

	for _, tt := range tests {
		got, err := Enumerate(tt.p, 0)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%+v", tt.p)
	}
}

func TestEnumerateRejectsNegativeBudget(t *testing.T) {
	_, err := Enumerate(Problem{Target: 1, MaxCoins: -2, Coins: []int64{1}}, 0)
	assert.ErrorIs(t, err, ErrInvalidBound)
}

func TestEnumerateLimit(t *testing.T) {
	_, err := Enumerate(Problem{Target: 1000, MaxCoins: 1000, Coins: []int64{1, 1, 1, 1}}, 50)
	assert.ErrorIs(t, err, ErrEnumerationLimit)
}

func TestAddMulOverflow(t *testing.T) {
	_, ok := addMul(1<<62, 2, 1<<61)
	assert.False(t, ok)

	r, ok := addMul(-5, 3, 4)
	assert.True(t, ok)
	assert.Equal(t, int64(7), r)
}
