package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithGolden_MixerLevels(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "mixer_levels.yaml"))
	require.NoError(t, err)

	require.NoError(t, RunWithGolden(t, scenario))
}

func TestRunWithGolden_Deterministic(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "mixer_levels.yaml"))
	require.NoError(t, err)

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	a, err := snapshotJSON(TraceSnapshot{ScenarioName: scenario.Name, Trace: first.Trace})
	require.NoError(t, err)
	b, err := snapshotJSON(TraceSnapshot{ScenarioName: scenario.Name, Trace: second.Trace})
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestSnapshotJSON_OmitsUnpinnedRunID(t *testing.T) {
	data, err := snapshotJSON(TraceSnapshot{ScenarioName: "x", Pass: true, Trace: []TraceEvent{}})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"scenario_name\": \"x\",\n  \"pass\": true,\n  \"trace\": []\n}\n", string(data))
}

func TestAssertGolden_TripleIndex(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "triple_index.yaml"))
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	require.True(t, result.Pass, result.Errors)

	require.NoError(t, AssertGolden(t, "triple_index", result))
}
