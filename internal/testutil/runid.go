package testutil

import (
	"fmt"
	"sync"
)

// DefaultRunID is used when a scenario does not pin its own run ID.
const DefaultRunID = "00000000-0000-7000-8000-000000000000"

// FixedRunIDGenerator hands out predetermined run IDs in order, then
// keeps returning the last one.
//
// Safe for concurrent use.
type FixedRunIDGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedRunIDGenerator creates a generator over ids. With no ids it
// always returns DefaultRunID.
func NewFixedRunIDGenerator(ids ...string) *FixedRunIDGenerator {
	if len(ids) == 0 {
		ids = []string{DefaultRunID}
	}
	return &FixedRunIDGenerator{ids: ids}
}

// Generate returns the next run ID.
func (g *FixedRunIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.ids[g.idx]
	if g.idx < len(g.ids)-1 {
		g.idx++
	}
	return id
}

// String describes the generator for test failure messages.
func (g *FixedRunIDGenerator) String() string {
	return fmt.Sprintf("FixedRunIDGenerator(%d ids)", len(g.ids))
}
