package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// TraceSnapshot is the golden form of a run. The run ID is included only
// when the scenario pins it, so unpinned runs still compare equal.
type TraceSnapshot struct {
	ScenarioName  string         `json:"scenario_name"`
	RunID         string         `json:"run_id,omitempty"`
	Pass          bool           `json:"pass"`
	Trace         []TraceEvent   `json:"trace"`
	ObserverCalls map[string]int `json:"observer_calls,omitempty"`
	Errors        []string       `json:"errors,omitempty"`
}

func snapshotJSON(s TraceSnapshot) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Snapshot renders the golden form of a finished run.
func Snapshot(scenario *Scenario, result *Result) ([]byte, error) {
	snapshot := TraceSnapshot{
		ScenarioName:  scenario.Name,
		Pass:          result.Pass,
		Trace:         result.Trace,
		ObserverCalls: result.ObserverCalls,
		Errors:        result.Errors,
	}
	if scenario.RunID != "" {
		snapshot.RunID = result.RunID
	}
	return snapshotJSON(snapshot)
}

// RunWithGolden executes a scenario and compares its trace against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario, opts ...Option) error {
	t.Helper()

	result, err := Run(scenario, opts...)
	if err != nil {
		return err
	}

	data, err := Snapshot(scenario, result)
	if err != nil {
		return err
	}
	assertGoldenBytes(t, scenario.Name, data)
	return nil
}

// AssertGolden compares an existing result against a golden file without
// re-running the scenario. The run ID is left out of the snapshot.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := Snapshot(&Scenario{Name: scenarioName}, result)
	if err != nil {
		return err
	}
	assertGoldenBytes(t, scenarioName, data)
	return nil
}

func assertGoldenBytes(t *testing.T, name string, data []byte) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
}
