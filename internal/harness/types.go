package harness

import (
	"github.com/roach88/wires/internal/hexastore"
	"github.com/roach88/wires/internal/value"
)

// Trace event kinds.
const (
	EventSet        = "set"
	EventPull       = "pull"
	EventObserve    = "observe"
	EventNotify     = "notify"
	EventQuery      = "query"
	EventConnect    = "connect"
	EventDisconnect = "disconnect"
)

// TraceEvent records one thing that happened during a run.
type TraceEvent struct {
	Seq     int64              `json:"seq"`
	Kind    string             `json:"kind"`
	Ref     string             `json:"ref,omitempty"`
	Value   *value.JSON        `json:"value,omitempty"`
	Error   string             `json:"error,omitempty"`
	Triple  *hexastore.Triple  `json:"triple,omitempty"`
	Pattern []string           `json:"pattern,omitempty"`
	Results []hexastore.Triple `json:"results,omitempty"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every step and assertion held.
	Pass bool `json:"pass"`

	// RunID identifies this run in logs.
	RunID string `json:"run_id"`

	// Trace lists events in the order they happened.
	Trace []TraceEvent `json:"trace"`

	// Errors holds step and assertion failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// ObserverCalls counts notifications per observed attribute.
	ObserverCalls map[string]int `json:"observer_calls,omitempty"`
}

// NewResult creates a passing result.
func NewResult(runID string) *Result {
	return &Result{
		Pass:          true,
		RunID:         runID,
		Trace:         []TraceEvent{},
		Errors:        []string{},
		ObserverCalls: make(map[string]int),
	}
}

// AddError records a failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

func (r *Result) record(ev TraceEvent) {
	r.Trace = append(r.Trace, ev)
}

func jsonValue(v value.Value) *value.JSON {
	if v == nil {
		return nil
	}
	return &value.JSON{Value: v}
}
