package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/wires/internal/hexastore"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, ev := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s\n", ev.Seq, describe(ev))
		}
	}
	return buf.String()
}

func describe(ev TraceEvent) string {
	var parts []string
	parts = append(parts, ev.Kind)
	if ev.Ref != "" {
		parts = append(parts, ev.Ref)
	}
	if ev.Triple != nil {
		parts = append(parts, ev.Triple.String())
	}
	if ev.Pattern != nil {
		parts = append(parts, strings.Join(ev.Pattern, " "))
	}
	if ev.Error != "" {
		parts = append(parts, "!"+ev.Error)
	}
	return strings.Join(parts, " ")
}

// assertObserverCount checks how many notifications ref received.
func assertObserverCount(result *Result, a Assertion) error {
	got := result.ObserverCalls[a.Ref]
	if got != a.Count {
		return &AssertionError{
			Type:     AssertObserverCount,
			Expected: fmt.Sprintf("%d notifications on %s", a.Count, a.Ref),
			Actual:   fmt.Sprintf("%d notifications", got),
			Trace:    result.Trace,
		}
	}
	return nil
}

// assertErrorCode checks that some event failed with the code, on Ref if
// the assertion names one.
func assertErrorCode(result *Result, a Assertion) error {
	for _, ev := range result.Trace {
		if ev.Error == a.Code && (a.Ref == "" || ev.Ref == a.Ref) {
			return nil
		}
	}

	expected := a.Code
	if a.Ref != "" {
		expected = fmt.Sprintf("%s on %s", a.Code, a.Ref)
	}
	return &AssertionError{
		Type:     AssertErrorCode,
		Expected: expected,
		Actual:   "no matching failure in trace",
		Trace:    result.Trace,
	}
}

// assertTripleCount counts the facts matching the pattern in the final
// store state.
func assertTripleCount(ctx context.Context, triples *hexastore.Store, a Assertion) error {
	pattern := a.Pattern
	if pattern == nil {
		pattern = []string{hexastore.Wildcard, hexastore.Wildcard, hexastore.Wildcard}
	}
	s, p, o := patternOf(pattern)

	found, err := triples.Query(ctx, s, p, o)
	if err != nil {
		return &AssertionError{
			Type:     AssertTripleCount,
			Expected: fmt.Sprintf("query %v", pattern),
			Actual:   fmt.Sprintf("query error: %v", err),
		}
	}
	if len(found) != a.Count {
		return &AssertionError{
			Type:     AssertTripleCount,
			Expected: fmt.Sprintf("%d facts matching %v", a.Count, pattern),
			Actual:   fmt.Sprintf("%d facts: %v", len(found), found),
		}
	}
	return nil
}

// AssertionContext provides store access for assertions that inspect
// final state.
type AssertionContext struct {
	Triples *hexastore.Store
	Ctx     context.Context
}

// EvaluateAssertions evaluates all assertions against the result and
// returns one message per failure.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertObserverCount:
			err = assertObserverCount(result, assertion)
		case AssertErrorCode:
			err = assertErrorCode(result, assertion)
		case AssertTripleCount:
			if actx == nil || actx.Triples == nil {
				err = fmt.Errorf("assertion[%d]: triple_count requires a triple store", i)
			} else {
				err = assertTripleCount(actx.Ctx, actx.Triples, assertion)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}
	return errors
}
