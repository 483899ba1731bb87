package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/roach88/wires/internal/badgerkv"
	"github.com/roach88/wires/internal/graph"
	"github.com/roach88/wires/internal/graphdef"
	"github.com/roach88/wires/internal/hexastore"
	"github.com/roach88/wires/internal/testutil"
	"github.com/roach88/wires/internal/value"
)

// RunIDGenerator produces run IDs.
type RunIDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 run IDs.
//
// Stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7. It panics if the system
// random source fails.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Option configures a run.
type Option func(*config)

type config struct {
	logger *slog.Logger
	runIDs RunIDGenerator
}

// WithLogger sets the logger for the run and the stores it creates.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithRunIDGenerator overrides how run IDs are produced for scenarios that
// do not pin run_id.
func WithRunIDGenerator(gen RunIDGenerator) Option {
	return func(c *config) {
		c.runIDs = gen
	}
}

// Harness holds the state of one scenario run.
type Harness struct {
	graph   *graph.Graph
	triples *hexastore.Store
	clock   *testutil.DeterministicClock
	logger  *slog.Logger
	result  *Result
}

// Run executes scenario with a background context.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	return RunContext(context.Background(), scenario, opts...)
}

// RunContext executes scenario against a fresh graph and a fresh
// in-memory triple store.
//
// Step and assertion failures are reported in the Result. The returned
// error is reserved for runs that could not be carried out at all: an
// unloadable graph definition or a failing store.
func RunContext(ctx context.Context, scenario *Scenario, opts ...Option) (*Result, error) {
	cfg := config{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		runIDs: UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	runIDs := cfg.runIDs
	if scenario.RunID != "" {
		runIDs = testutil.NewFixedRunIDGenerator(scenario.RunID)
	}
	runID := runIDs.Generate()
	logger := cfg.logger.With("scenario", scenario.Name, "run_id", runID)

	dbCfg := badgerkv.InMemoryConfig()
	dbCfg.Logger = logger
	db, err := badgerkv.Open(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory triple store: %w", err)
	}
	triples, err := hexastore.New(ctx, db, hexastore.WithLogger(logger))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open in-memory triple store: %w", err)
	}
	defer triples.Close()

	g := graph.New(graph.WithLogger(logger))
	if scenario.Graph != "" {
		def, err := graphdef.Load(scenario.Graph)
		if err != nil {
			return nil, fmt.Errorf("failed to load graph: %w", err)
		}
		if err := def.Build(g); err != nil {
			return nil, fmt.Errorf("failed to build graph: %w", err)
		}
	}

	h := &Harness{
		graph:   g,
		triples: triples,
		clock:   testutil.NewDeterministicClock(),
		logger:  logger,
		result:  NewResult(runID),
	}

	for i, t := range scenario.Triples {
		if err := h.connect(ctx, tripleOf(t)); err != nil {
			return nil, fmt.Errorf("triples[%d]: %w", i, err)
		}
	}

	for i, step := range scenario.Steps {
		if err := h.executeStep(ctx, i, step); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}

	actx := &AssertionContext{Triples: triples, Ctx: ctx}
	for _, msg := range EvaluateAssertions(h.result, scenario.Assertions, actx) {
		h.result.AddError(msg)
	}

	logger.Info("scenario finished", "pass", h.result.Pass, "events", len(h.result.Trace))
	return h.result, nil
}

// executeStep runs one step. Mismatches are recorded on the result; only
// store failures are returned.
func (h *Harness) executeStep(ctx context.Context, i int, step Step) error {
	switch {
	case step.Set != nil:
		h.set(i, step.Set)
	case step.Expect != nil:
		h.expect(i, step.Expect)
	case step.Observe != "":
		h.observe(i, step.Observe)
	case step.Query != nil:
		return h.query(ctx, i, step.Query)
	case step.Connect != nil:
		return h.connect(ctx, tripleOf(step.Connect))
	case step.Disconnect != nil:
		return h.disconnect(ctx, tripleOf(step.Disconnect))
	}
	return nil
}

func (h *Harness) set(i int, s *SetStep) {
	ref := graph.ParseRef(s.Ref)
	v, err := value.FromGo(s.Value)
	if err != nil {
		h.result.AddError(fmt.Sprintf("steps[%d] set %s: %v", i, s.Ref, err))
		return
	}

	// Recorded before the write so notifications it triggers follow it.
	idx := len(h.result.Trace)
	h.result.record(TraceEvent{Seq: h.clock.Next(), Kind: EventSet, Ref: s.Ref, Value: jsonValue(v)})
	err = h.graph.SetValue(ref.Node(), ref.Attr(), v)
	h.result.Trace[idx].Error = codeOf(err)

	h.checkOutcome(i, "set", s.Ref, s.Error, err)
	h.logger.Debug("set", "step", i, "ref", s.Ref, "error", h.result.Trace[idx].Error)
}

func (h *Harness) expect(i int, e *ExpectStep) {
	ref := graph.ParseRef(e.Ref)
	got, err := h.graph.ValueOf(ref)

	ev := TraceEvent{Seq: h.clock.Next(), Kind: EventPull, Ref: e.Ref, Value: jsonValue(got), Error: codeOf(err)}
	h.result.record(ev)

	if e.Error != "" || err != nil {
		h.checkOutcome(i, "expect", e.Ref, e.Error, err)
		return
	}

	want, convErr := value.FromGo(e.Value)
	if convErr != nil {
		h.result.AddError(fmt.Sprintf("steps[%d] expect %s: %v", i, e.Ref, convErr))
		return
	}
	if !value.Equal(want, got) {
		h.result.AddError(fmt.Sprintf("steps[%d] expect %s: want %s %s, got %s %s",
			i, e.Ref, want.Type(), value.Format(want), got.Type(), value.Format(got)))
	}
}

// checkOutcome compares err with the expected error code. An empty code
// means the operation had to succeed.
func (h *Harness) checkOutcome(i int, op, ref, wantCode string, err error) {
	switch {
	case wantCode == "" && err != nil:
		h.result.AddError(fmt.Sprintf("steps[%d] %s %s: unexpected error: %v", i, op, ref, err))
	case wantCode != "" && err == nil:
		h.result.AddError(fmt.Sprintf("steps[%d] %s %s: expected %s, got success", i, op, ref, wantCode))
	case wantCode != "" && !graph.HasCode(err, graph.ErrorCode(wantCode)):
		h.result.AddError(fmt.Sprintf("steps[%d] %s %s: expected %s, got %v", i, op, ref, wantCode, err))
	}
}

func (h *Harness) observe(i int, refStr string) {
	ref := graph.ParseRef(refStr)
	ev := TraceEvent{Seq: h.clock.Next(), Kind: EventObserve, Ref: refStr}
	if !ref.IsAttribute() || !h.graph.HasAttribute(ref.Node(), ref.Attr()) {
		ev.Error = string(graph.ErrCodeNotFound)
		h.result.record(ev)
		h.result.AddError(fmt.Sprintf("steps[%d] observe %s: no such attribute", i, refStr))
		return
	}
	h.result.record(ev)

	h.graph.AddObserver(ref.Node(), ref.Attr(), func(_ *graph.Graph, r graph.Ref, v value.Value) {
		h.result.ObserverCalls[r.String()]++
		h.result.record(TraceEvent{Seq: h.clock.Next(), Kind: EventNotify, Ref: r.String(), Value: jsonValue(v)})
	})
}

func (h *Harness) query(ctx context.Context, i int, q *QueryStep) error {
	s, p, o := patternOf(q.Pattern)
	found, err := h.triples.Query(ctx, s, p, o)
	if err != nil {
		return fmt.Errorf("query %v: %w", q.Pattern, err)
	}
	h.result.record(TraceEvent{Seq: h.clock.Next(), Kind: EventQuery, Pattern: q.Pattern, Results: found})

	want := make([]hexastore.Triple, len(q.Expect))
	for j, t := range q.Expect {
		want[j] = tripleOf(t)
	}
	if !slices.Equal(want, found) {
		h.result.AddError(fmt.Sprintf("steps[%d] query %v: want %v, got %v", i, q.Pattern, want, found))
	}
	return nil
}

func (h *Harness) connect(ctx context.Context, t hexastore.Triple) error {
	if err := h.triples.Connect(ctx, t); err != nil {
		return fmt.Errorf("connect %s: %w", t, err)
	}
	h.result.record(TraceEvent{Seq: h.clock.Next(), Kind: EventConnect, Triple: &t})
	return nil
}

func (h *Harness) disconnect(ctx context.Context, t hexastore.Triple) error {
	if err := h.triples.Disconnect(ctx, t); err != nil {
		return fmt.Errorf("disconnect %s: %w", t, err)
	}
	h.result.record(TraceEvent{Seq: h.clock.Next(), Kind: EventDisconnect, Triple: &t})
	return nil
}

func codeOf(err error) string {
	if err == nil {
		return ""
	}
	if code, ok := graph.CodeOf(err); ok {
		return string(code)
	}
	return "ERROR"
}

func tripleOf(parts []string) hexastore.Triple {
	return hexastore.Triple{Subject: parts[0], Predicate: parts[1], Object: parts[2]}
}

func patternOf(parts []string) (s, p, o hexastore.Term) {
	return hexastore.ParseTerm(parts[0]), hexastore.ParseTerm(parts[1]), hexastore.ParseTerm(parts[2])
}
