package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithGolden_Suites(t *testing.T) {
	files, err := FindSuites([]string{"testdata"})
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, path := range files {
		suite, err := LoadSuite(path)
		require.NoError(t, err)

		t.Run(suite.Name, func(t *testing.T) {
			result, err := RunWithGolden(t, suite)
			require.NoError(t, err)
			assert.True(t, result.Pass, "%v", result.Failed())
		})
	}
}

func TestSnapshot_Canonical(t *testing.T) {
	result := &Result{
		Suite: "s",
		Pass:  false,
		Cases: []CaseResult{
			{Name: "b", Pass: true, Count: 4},
			{Name: "a", Pass: false, ErrCode: "CountOverflow", Errors: []string{"ignored"}},
		},
	}

	got, err := result.Snapshot()
	require.NoError(t, err)
	assert.Equal(t,
		`{"cases":[{"count":4,"name":"b","pass":true},{"count":0,"error_code":"CountOverflow","name":"a","pass":false}],"pass":false,"suite":"s"}`,
		string(got))
}
