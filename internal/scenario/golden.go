package scenario

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/limitbreak/internal/ir"
)

// toCanonicalMap converts a Result to a map[string]any for canonical JSON.
// Error messages are left out: they carry solver detail text that may be
// reworded without changing behavior. Codes and counts are the contract.
func (r *Result) toCanonicalMap() map[string]any {
	cases := make([]any, len(r.Cases))
	for i, c := range r.Cases {
		m := map[string]any{
			"name":  c.Name,
			"pass":  c.Pass,
			"count": c.Count,
		}
		if c.ErrCode != "" {
			m["error_code"] = string(c.ErrCode)
		}
		cases[i] = m
	}
	return map[string]any{
		"suite": r.Suite,
		"pass":  r.Pass,
		"cases": cases,
	}
}

// Snapshot renders the Result as canonical JSON.
func (r *Result) Snapshot() ([]byte, error) {
	return ir.MarshalCanonical(r.toCanonicalMap())
}

// RunWithGolden runs a suite and compares the outcome snapshot against
// testdata/golden/{suite.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/scenario -update
func RunWithGolden(t *testing.T, suite *Suite, opts ...RunnerOption) (*Result, error) {
	t.Helper()

	result, err := NewRunner(opts...).Run(suite)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, suite.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing Result against a golden file without
// re-running the suite.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	snapshot, err := result.Snapshot()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, snapshot)
	return nil
}
