package harness

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wires/internal/hexastore"
	"github.com/roach88/wires/internal/testutil"
)

var levelsGraph = filepath.Join("testdata", "graphs", "levels.cue")

func kinds(trace []TraceEvent) []string {
	out := make([]string, len(trace))
	for i, ev := range trace {
		out[i] = ev.Kind
	}
	return out
}

func TestRun_PullThroughConnection(t *testing.T) {
	scenario := &Scenario{
		Name:        "pull",
		Description: "amp.out multiplies the connected source level by gain",
		Graph:       levelsGraph,
		Steps: []Step{
			{Expect: &ExpectStep{Ref: "amp.input", Value: 2}},
			{Expect: &ExpectStep{Ref: "amp.out", Value: 6}},
			{Set: &SetStep{Ref: "source.level", Value: 4}},
			{Expect: &ExpectStep{Ref: "amp.out", Value: 12}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Errors)
	assert.Empty(t, result.Errors)
	assert.Equal(t, []string{EventPull, EventPull, EventSet, EventPull}, kinds(result.Trace))
}

func TestRun_ValueMismatchFails(t *testing.T) {
	scenario := &Scenario{
		Name:        "mismatch",
		Description: "wrong expectation",
		Graph:       levelsGraph,
		Steps: []Step{
			{Expect: &ExpectStep{Ref: "amp.out", Value: 7}},
			{Expect: &ExpectStep{Ref: "source.label", Value: 2}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "want int 7, got int 6")
	assert.Contains(t, result.Errors[1], "want int 2, got string in")
}

func TestRun_ExpectedErrors(t *testing.T) {
	scenario := &Scenario{
		Name:        "errors",
		Description: "error codes are checked",
		Graph:       levelsGraph,
		Steps: []Step{
			{Set: &SetStep{Ref: "source.level", Value: "loud", Error: "TYPE_MISMATCH"}},
			{Set: &SetStep{Ref: "nobody.level", Value: 1, Error: "NOT_FOUND"}},
			{Expect: &ExpectStep{Ref: "amp.nothing", Error: "NOT_FOUND"}},
		},
		Assertions: []Assertion{
			{Type: AssertErrorCode, Code: "TYPE_MISMATCH", Ref: "source.level"},
			{Type: AssertErrorCode, Code: "NOT_FOUND"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Errors)
	assert.Equal(t, "TYPE_MISMATCH", result.Trace[0].Error)
	assert.Equal(t, "NOT_FOUND", result.Trace[1].Error)
}

func TestRun_UnexpectedOutcomes(t *testing.T) {
	scenario := &Scenario{
		Name:        "unexpected",
		Description: "wrong error expectations",
		Graph:       levelsGraph,
		Steps: []Step{
			{Set: &SetStep{Ref: "source.level", Value: 9, Error: "TYPE_MISMATCH"}},
			{Set: &SetStep{Ref: "source.level", Value: "x"}},
			{Expect: &ExpectStep{Ref: "amp.out", Error: "NO_VALUE"}},
			{Expect: &ExpectStep{Ref: "ghost.x", Error: "NO_VALUE"}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 4)
	assert.Contains(t, result.Errors[0], "expected TYPE_MISMATCH, got success")
	assert.Contains(t, result.Errors[1], "unexpected error")
	assert.Contains(t, result.Errors[2], "expected NO_VALUE, got success")
	assert.Contains(t, result.Errors[3], "expected NO_VALUE, got")
}

func TestRun_ObserversSeeExplicitWritesOnly(t *testing.T) {
	scenario := &Scenario{
		Name:        "observers",
		Description: "evaluator recomputation does not notify",
		Graph:       levelsGraph,
		Steps: []Step{
			{Observe: "source.level"},
			{Observe: "amp.out"},
			{Expect: &ExpectStep{Ref: "amp.out", Value: 6}},
			{Set: &SetStep{Ref: "source.level", Value: 5}},
			{Set: &SetStep{Ref: "source.level", Value: 6}},
		},
		Assertions: []Assertion{
			{Type: AssertObserverCount, Ref: "source.level", Count: 2},
			{Type: AssertObserverCount, Ref: "amp.out", Count: 0},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Errors)
	assert.Equal(t,
		[]string{EventObserve, EventObserve, EventPull, EventSet, EventNotify, EventSet, EventNotify},
		kinds(result.Trace))

	for i, ev := range result.Trace {
		assert.Equal(t, int64(i+1), ev.Seq)
	}
}

func TestRun_ObserveUnknownAttribute(t *testing.T) {
	scenario := &Scenario{
		Name:        "observe_unknown",
		Description: "observing an undeclared attribute fails the step",
		Graph:       levelsGraph,
		Steps:       []Step{{Observe: "amp.ghost"}, {Observe: "amp"}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Len(t, result.Errors, 2)
	assert.Equal(t, "NOT_FOUND", result.Trace[0].Error)
}

func TestRun_TripleSteps(t *testing.T) {
	scenario := &Scenario{
		Name:        "triples",
		Description: "connect, query, disconnect",
		Triples:     [][]string{{"alice", "knows", "bob"}},
		Steps: []Step{
			{Connect: []string{"bob", "knows", "carol"}},
			{Query: &QueryStep{
				Pattern: []string{"*", "knows", "*"},
				Expect:  [][]string{{"bob", "knows", "carol"}, {"alice", "knows", "bob"}},
			}},
			{Disconnect: []string{"alice", "knows", "bob"}},
			{Query: &QueryStep{Pattern: []string{"alice", "knows", "bob"}}},
		},
		Assertions: []Assertion{
			{Type: AssertTripleCount, Count: 1},
			{Type: AssertTripleCount, Pattern: []string{"*", "*", "carol"}, Count: 1},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Errors)
	assert.Equal(t,
		[]string{EventConnect, EventConnect, EventQuery, EventDisconnect, EventQuery},
		kinds(result.Trace))
	assert.Equal(t, &hexastore.Triple{Subject: "alice", Predicate: "knows", Object: "bob"}, result.Trace[3].Triple)
	assert.Empty(t, result.Trace[4].Results)
}

func TestRun_QueryMismatch(t *testing.T) {
	scenario := &Scenario{
		Name:        "query_mismatch",
		Description: "results compare in index order",
		Triples:     [][]string{{"alice", "knows", "bob"}, {"bob", "knows", "carol"}},
		Steps: []Step{
			{Query: &QueryStep{
				Pattern: []string{"*", "knows", "*"},
				Expect:  [][]string{{"alice", "knows", "bob"}, {"bob", "knows", "carol"}},
			}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "steps[0] query")
}

func TestRun_IsolatedRuns(t *testing.T) {
	scenario := &Scenario{
		Name:        "isolated",
		Description: "each run starts from an empty store",
		Steps:       []Step{{Connect: []string{"a", "b", "c"}}},
		Assertions:  []Assertion{{Type: AssertTripleCount, Count: 1}},
	}

	for i := 0; i < 2; i++ {
		result, err := Run(scenario)
		require.NoError(t, err)
		assert.True(t, result.Pass, result.Errors)
	}
}

func TestRun_RunIDs(t *testing.T) {
	scenario := &Scenario{
		Name:        "ids",
		Description: "run id selection",
		Steps:       []Step{{Connect: []string{"a", "b", "c"}}},
	}

	t.Run("UUIDv7 by default", func(t *testing.T) {
		result, err := Run(scenario)
		require.NoError(t, err)
		id, err := uuid.Parse(result.RunID)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(7), id.Version())
	})

	t.Run("generator option", func(t *testing.T) {
		result, err := Run(scenario, WithRunIDGenerator(testutil.NewFixedRunIDGenerator("run-a")))
		require.NoError(t, err)
		assert.Equal(t, "run-a", result.RunID)
	})

	t.Run("pinned by scenario", func(t *testing.T) {
		pinned := *scenario
		pinned.RunID = "pinned"
		result, err := Run(&pinned, WithRunIDGenerator(testutil.NewFixedRunIDGenerator("run-a")))
		require.NoError(t, err)
		assert.Equal(t, "pinned", result.RunID)
	})
}

func TestRun_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	scenario := &Scenario{
		Name:        "logged",
		Description: "run logs its outcome",
		RunID:       "run-logged",
		Steps:       []Step{{Connect: []string{"a", "b", "c"}}},
	}
	_, err := Run(scenario, WithLogger(logger))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "scenario finished")
	assert.Contains(t, buf.String(), "run_id=run-logged")
	assert.Contains(t, buf.String(), "pass=true")
}

func TestRun_BadGraphIsAnError(t *testing.T) {
	scenario := &Scenario{
		Name:        "bad_graph",
		Description: "graph that does not exist",
		Graph:       filepath.Join(t.TempDir(), "missing.cue"),
		Steps:       []Step{{Observe: "a.b"}},
	}
	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load graph")
}

func TestRun_ExampleScenarios(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)
			result, err := Run(scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, result.Errors)
		})
	}
}
