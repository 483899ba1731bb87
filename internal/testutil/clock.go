// Package testutil holds deterministic helpers shared by tests and the
// scenario harness.
package testutil

import "sync/atomic"

// DeterministicClock is a logical clock that stamps trace events with
// strictly increasing sequence numbers. Two runs of the same scenario get
// the same stamps, which keeps golden traces byte-identical.
//
// Safe for concurrent use.
type DeterministicClock struct {
	seq atomic.Int64
}

// NewDeterministicClock creates a clock whose first Next returns 1.
func NewDeterministicClock() *DeterministicClock {
	return &DeterministicClock{}
}

// NewDeterministicClockAt creates a clock whose first Next returns start+1.
func NewDeterministicClockAt(start int64) *DeterministicClock {
	c := &DeterministicClock{}
	c.seq.Store(start)
	return c
}

// Next advances the clock and returns the new value.
func (c *DeterministicClock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the last value handed out, or the start value.
func (c *DeterministicClock) Current() int64 {
	return c.seq.Load()
}

// Reset rewinds the clock to zero.
func (c *DeterministicClock) Reset() {
	c.seq.Store(0)
}
