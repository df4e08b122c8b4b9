package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/flagrescue/internal/store"
)

func loadAll(t *testing.T) []*Scenario {
	t.Helper()
	scenarios, err := LoadDir("testdata/scenarios", "")
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)
	return scenarios
}

func TestScenarios_Golden(t *testing.T) {
	for _, s := range loadAll(t) {
		t.Run(s.Name, func(t *testing.T) {
			result, err := RunWithGolden(t, s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

// The SQLite backend must produce exactly the in-memory results.
func TestScenarios_SQLiteMatchesMemory(t *testing.T) {
	for _, s := range loadAll(t) {
		t.Run(s.Name, func(t *testing.T) {
			want, err := Run(s)
			require.NoError(t, err)

			st, err := store.Open(filepath.Join(t.TempDir(), "props.db"))
			require.NoError(t, err)
			t.Cleanup(func() { st.Close() })

			got, err := RunWith(s, st, nil)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestRun_Deterministic(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/repeated-failed-boots.yaml")
	require.NoError(t, err)

	first, err := Run(s)
	require.NoError(t, err)
	second, err := Run(s)
	require.NoError(t, err)

	a, err := MarshalSnapshot(s.Name, first)
	require.NoError(t, err)
	b, err := MarshalSnapshot(s.Name, second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestRun_ReportsMismatch(t *testing.T) {
	s := &Scenario{
		Name:        "wrong-expectation",
		Description: "expects a flag to survive a reset",
		Properties: map[string]string{
			"persist.device_config.attempted_boot_count": "4",
			"persist.device_config.a.b":                  "x",
		},
		Steps:  []string{StepBoot},
		Expect: map[string]string{"persist.device_config.a.b": "x"},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], `persist.device_config.a.b: expected "x", got ""`)
}

func TestRun_CustomThreshold(t *testing.T) {
	s := &Scenario{
		Name:        "threshold-two",
		Description: "lower threshold resets on the third boot",
		Threshold:   2,
		Properties:  map[string]string{"persist.device_config.a.b": "x"},
		Steps:       []string{StepBoot, StepBoot, StepBoot},
		Expect:      map[string]string{"persist.device_config.a.b": ""},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	require.Len(t, result.Trace, 3)
	assert.Equal(t, "reset", result.Trace[2].Action)
}
