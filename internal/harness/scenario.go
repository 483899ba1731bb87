package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/wires/internal/graph"
)

// Scenario is one scripted run against a graph and a triple store.
type Scenario struct {
	// Name uniquely identifies this scenario. Golden files are named after it.
	Name string `yaml:"name"`

	// Description explains what this scenario checks.
	Description string `yaml:"description"`

	// Graph is a CUE graph definition (file or directory). Optional; a
	// scenario that only exercises triples can leave it out.
	Graph string `yaml:"graph,omitempty"`

	// Triples are connected before the first step.
	Triples [][]string `yaml:"triples,omitempty"`

	// Steps run in order.
	Steps []Step `yaml:"steps"`

	// Assertions are checked after the last step.
	Assertions []Assertion `yaml:"assertions,omitempty"`

	// RunID pins the run ID for golden comparison. Empty means a fresh UUIDv7.
	RunID string `yaml:"run_id,omitempty"`
}

// Step holds exactly one action.
type Step struct {
	Set        *SetStep    `yaml:"set,omitempty"`
	Expect     *ExpectStep `yaml:"expect,omitempty"`
	Observe    string      `yaml:"observe,omitempty"`
	Query      *QueryStep  `yaml:"query,omitempty"`
	Connect    []string    `yaml:"connect,omitempty"`
	Disconnect []string    `yaml:"disconnect,omitempty"`
}

// SetStep writes Value to Ref. A non-empty Error is the graph error code
// the write must fail with.
type SetStep struct {
	Ref   string `yaml:"ref"`
	Value any    `yaml:"value"`
	Error string `yaml:"error,omitempty"`
}

// ExpectStep pulls Ref and compares it with Value, or, when Error is set,
// checks that the pull fails with that code.
type ExpectStep struct {
	Ref   string `yaml:"ref"`
	Value any    `yaml:"value,omitempty"`
	Error string `yaml:"error,omitempty"`
}

// QueryStep runs a triple pattern. Expect lists the facts in the order
// the store returns them.
type QueryStep struct {
	Pattern []string   `yaml:"pattern"`
	Expect  [][]string `yaml:"expect"`
}

// Assertion checks the finished run.
type Assertion struct {
	// Type is observer_count, error_code or triple_count.
	Type string `yaml:"type"`

	// Ref selects the attribute (observer_count, error_code).
	Ref string `yaml:"ref,omitempty"`

	// Code is the expected graph error code (error_code).
	Code string `yaml:"code,omitempty"`

	// Pattern restricts triple_count. Empty counts every fact.
	Pattern []string `yaml:"pattern,omitempty"`

	// Count is the expected number (observer_count, triple_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertObserverCount = "observer_count"
	AssertErrorCode     = "error_code"
	AssertTripleCount   = "triple_count"
)

var knownCodes = map[string]bool{
	string(graph.ErrCodeNotFound):        true,
	string(graph.ErrCodeNoValue):         true,
	string(graph.ErrCodeTypeMismatch):    true,
	string(graph.ErrCodeCycleDetected):   true,
	string(graph.ErrCodeEvaluatorFailed): true,
	string(graph.ErrCodeInvalidValue):    true,
}

// LoadScenario reads and parses a scenario YAML file. The graph path is
// resolved relative to the file's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data, filepath.Dir(path))
}

// ParseScenario parses scenario YAML, resolving a relative graph path
// against baseDir. Unknown fields are rejected so typos surface early.
func ParseScenario(data []byte, baseDir string) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Graph != "" && !filepath.IsAbs(scenario.Graph) && baseDir != "" {
		scenario.Graph = filepath.Join(baseDir, scenario.Graph)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	if s.Graph != "" {
		if _, err := os.Stat(s.Graph); os.IsNotExist(err) {
			return fmt.Errorf("graph definition not found: %s", s.Graph)
		}
	}

	for i, t := range s.Triples {
		if len(t) != 3 {
			return fmt.Errorf("triples[%d]: need [subject, predicate, object], got %d elements", i, len(t))
		}
	}

	for i := range s.Steps {
		if err := validateStep(i, &s.Steps[i]); err != nil {
			return err
		}
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateStep(index int, st *Step) error {
	actions := 0
	if st.Set != nil {
		actions++
		if st.Set.Ref == "" {
			return fmt.Errorf("steps[%d].set: ref is required", index)
		}
		if st.Set.Value == nil {
			return fmt.Errorf("steps[%d].set: value is required", index)
		}
		if err := checkCode(st.Set.Error); err != nil {
			return fmt.Errorf("steps[%d].set: %w", index, err)
		}
	}
	if st.Expect != nil {
		actions++
		if st.Expect.Ref == "" {
			return fmt.Errorf("steps[%d].expect: ref is required", index)
		}
		if (st.Expect.Value == nil) == (st.Expect.Error == "") {
			return fmt.Errorf("steps[%d].expect: exactly one of value or error is required", index)
		}
		if err := checkCode(st.Expect.Error); err != nil {
			return fmt.Errorf("steps[%d].expect: %w", index, err)
		}
	}
	if st.Observe != "" {
		actions++
	}
	if st.Query != nil {
		actions++
		if len(st.Query.Pattern) != 3 {
			return fmt.Errorf("steps[%d].query: pattern needs 3 terms, got %d", index, len(st.Query.Pattern))
		}
		for j, t := range st.Query.Expect {
			if len(t) != 3 {
				return fmt.Errorf("steps[%d].query.expect[%d]: need 3 elements, got %d", index, j, len(t))
			}
		}
	}
	if st.Connect != nil {
		actions++
		if len(st.Connect) != 3 {
			return fmt.Errorf("steps[%d].connect: need [subject, predicate, object]", index)
		}
	}
	if st.Disconnect != nil {
		actions++
		if len(st.Disconnect) != 3 {
			return fmt.Errorf("steps[%d].disconnect: need [subject, predicate, object]", index)
		}
	}

	if actions != 1 {
		return fmt.Errorf("steps[%d]: exactly one action is required, got %d", index, actions)
	}
	return nil
}

func checkCode(code string) error {
	if code != "" && !knownCodes[code] {
		return fmt.Errorf("unknown error code %q", code)
	}
	return nil
}

func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertObserverCount:
		if a.Ref == "" {
			return fmt.Errorf("assertions[%d]: ref is required for observer_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for observer_count", index)
		}
	case AssertErrorCode:
		if a.Code == "" {
			return fmt.Errorf("assertions[%d]: code is required for error_code", index)
		}
		if err := checkCode(a.Code); err != nil {
			return fmt.Errorf("assertions[%d]: %w", index, err)
		}
	case AssertTripleCount:
		if a.Pattern != nil && len(a.Pattern) != 3 {
			return fmt.Errorf("assertions[%d]: pattern needs 3 terms for triple_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for triple_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
