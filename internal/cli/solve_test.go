package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/limitbreak/internal/ir"
)

func TestSolveCommand_Text(t *testing.T) {
	cmd := NewSolveCommand(testRootOptions("text"))

	stdout, _, err := execute(t, cmd, "--target", "5", "--max-coins", "5", "--coins", "1,2,5")
	require.NoError(t, err)
	assert.Equal(t, "Combinations: 4\nTime: 0.02 ms\n", stdout)
}

func TestSolveCommand_GroupsDigits(t *testing.T) {
	cmd := NewSolveCommand(testRootOptions("text"))

	stdout, _, err := execute(t, cmd, "--target", "200", "--max-coins", "200", "--coins", "1,1,1,1,1,1,1,1,1,1,1,1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Combinations: 709,284,896,615,071,686\n")
}

func TestSolveCommand_JSON(t *testing.T) {
	cmd := NewSolveCommand(testRootOptions("json"))

	stdout, _, err := execute(t, cmd, "--target", "100", "--max-coins", "10", "--coins", "10, 50, 100", "--strategy", "sequential")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   SolveOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)

	rep := resp.Data.Report
	assert.Equal(t, "report-1", rep.ID)
	assert.Equal(t, ir.ProblemID(100, 10, []int64{10, 50, 100}), rep.ProblemID)
	assert.Equal(t, int64(4), rep.Count)
	assert.False(t, rep.Overflow)
	assert.Equal(t, "sequential", string(rep.Strategy))
	assert.Equal(t, int64(20_000), int64(rep.Elapsed))
	assert.Nil(t, resp.Data.Verified)
}

func TestSolveCommand_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode string
		wantExit int
	}{
		{"negative bound", []string{"--target", "1", "--max-coins", "-1", "--coins", "1"}, "InvalidBound", ExitCommandError},
		{"negative coin", []string{"--target", "5", "--max-coins", "5", "--coins", "1,-1"}, "UnboundedDomain", ExitCommandError},
		{"target out of range", []string{"--target", "99999999999999999999", "--max-coins", "5"}, "OutOfRange", ExitCommandError},
		{"overflow", []string{"--target", "200", "--max-coins", "200", "--coins", "1,1,1,1,1,1,1,1,1,1,1,1,1"}, "CountOverflow", ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewSolveCommand(testRootOptions("json"))

			stdout, _, err := execute(t, cmd, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.wantExit, GetExitCode(err))
			assert.True(t, IsReported(err))

			var resp CLIResponse
			require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
			assert.Equal(t, "error", resp.Status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestSolveCommand_TextError(t *testing.T) {
	cmd := NewSolveCommand(testRootOptions("text"))

	stdout, _, err := execute(t, cmd, "--target", "1", "--max-coins", "-1", "--coins", "1")
	require.Error(t, err)
	assert.Contains(t, stdout, "Error [InvalidBound]: InvalidBound: max coins must be non-negative")
}

func TestSolveCommand_MalformedCoins(t *testing.T) {
	cmd := NewSolveCommand(testRootOptions("text"))

	stdout, _, err := execute(t, cmd, "--target", "5", "--max-coins", "5", "--coins", "1,two")
	require.Error(t, err)
	assert.Empty(t, stdout)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.False(t, IsReported(err))
	assert.Contains(t, err.Error(), "coins[1]")
}

func TestSolveCommand_AllowNegative(t *testing.T) {
	cmd := NewSolveCommand(testRootOptions("text"))

	stdout, _, err := execute(t, cmd, "--target", "0", "--max-coins", "4", "--coins", "1,-1", "--allow-negative")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Combinations: 3\n")
}

func TestSolveCommand_EmptyCoins(t *testing.T) {
	cmd := NewSolveCommand(testRootOptions("text"))

	stdout, _, err := execute(t, cmd, "--target", "0", "--max-coins", "3")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Combinations: 1\n")
}

func TestSolveCommand_Verify(t *testing.T) {
	cmd := NewSolveCommand(testRootOptions("text"))

	stdout, _, err := execute(t, cmd, "--target", "1000", "--max-coins", "15", "--coins", "10,50,100,500", "--verify")
	require.NoError(t, err)
	assert.Equal(t, "Combinations: 20\nTime: 0.02 ms\nVerified: enumeration agrees\n", stdout)
}

func TestSolveCommand_VerifyJSON(t *testing.T) {
	cmd := NewSolveCommand(testRootOptions("json"))

	stdout, _, err := execute(t, cmd, "--target", "5", "--max-coins", "5", "--coins", "1,2,5", "--verify")
	require.NoError(t, err)

	var resp struct {
		Data SolveOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	require.NotNil(t, resp.Data.Verified)
	assert.True(t, *resp.Data.Verified)
}

func TestSolveCommand_VerifyLimit(t *testing.T) {
	cmd := NewSolveCommand(testRootOptions("text"))

	_, _, err := execute(t, cmd, "--target", "40", "--max-coins", "40", "--coins", "1,2,3,4", "--verify", "--enumeration-limit", "10")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "--enumeration-limit")
}

func TestSolveCommand_InvalidStrategy(t *testing.T) {
	cmd := NewSolveCommand(testRootOptions("text"))

	_, _, err := execute(t, cmd, "--target", "5", "--max-coins", "5", "--coins", "1", "--strategy", "greedy")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid --strategy")
}

func TestSolveCommand_StrategiesAgree(t *testing.T) {
	for _, strategy := range []string{"auto", "sequential", "parallel"} {
		t.Run(strategy, func(t *testing.T) {
			cmd := NewSolveCommand(testRootOptions("text"))

			stdout, _, err := execute(t, cmd, "--target", "10000", "--max-coins", "100", "--coins", "10,50,100,500", "--strategy", strategy)
			require.NoError(t, err)
			assert.Contains(t, stdout, "Combinations: 2,780\n")
		})
	}
}

func TestSolveHelpText(t *testing.T) {
	cmd := NewSolveCommand(testRootOptions("text"))

	stdout, _, err := execute(t, cmd, "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "--target")
	assert.Contains(t, stdout, "--max-coins")
	assert.Contains(t, stdout, "--verify")
	assert.Contains(t, stdout, "--allow-negative")
}
