package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/limitbreak/internal/solver"
	"github.com/roach88/limitbreak/internal/testutil"
)

// testRootOptions returns options with a 20µs step clock and fixed report
// IDs, so text and JSON output are reproducible.
func testRootOptions(format string) *RootOptions {
	return &RootOptions{
		Format: format,
		solverOptions: []solver.Option{
			solver.WithClock(testutil.NewStepClock(20 * time.Microsecond)),
			solver.WithIDGenerator(testutil.NewFixedIDs("report-1", "report-2")),
		},
	}
}

// execute runs a single command built from opts and returns stdout,
// stderr and the command error.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
