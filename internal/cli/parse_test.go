package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/limitbreak/internal/solver"
)

func TestParseCoins(t *testing.T) {
	tests := []struct {
		input string
		want  []int64
	}{
		{"1,2,5", []int64{1, 2, 5}},
		{" 1 , 2,5 ", []int64{1, 2, 5}},
		{"", []int64{}},
		{"   ", []int64{}},
		{"-3", []int64{-3}},
		{"9223372036854775807", []int64{9223372036854775807}},
		{"1,1,1", []int64{1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCoins(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCoins_OutOfRange(t *testing.T) {
	_, err := ParseCoins("1,9223372036854775808")
	require.Error(t, err)
	assert.ErrorIs(t, err, solver.ErrOutOfRange)

	var se *solver.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "9223372036854775808", se.Details["coins[1]"])
}

func TestParseCoins_Malformed(t *testing.T) {
	for _, input := range []string{"1,,2", "1,x", "1.5", "1,"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseCoins(input)
			require.Error(t, err)
			assert.Empty(t, solver.CodeOf(err))
			assert.Equal(t, ExitCommandError, GetExitCode(err))
		})
	}
}

func TestParseInt(t *testing.T) {
	v, err := ParseInt("target", " -42 ")
	require.NoError(t, err)
	assert.Equal(t, int64(-42), v)

	_, err = ParseInt("target", "-9223372036854775809")
	assert.ErrorIs(t, err, solver.ErrOutOfRange)

	_, err = ParseInt("target", "ten")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid --target "ten"`)
}
