package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedRunIDGenerator_Default(t *testing.T) {
	gen := NewFixedRunIDGenerator()
	assert.Equal(t, DefaultRunID, gen.Generate())
	assert.Equal(t, DefaultRunID, gen.Generate())
}

func TestFixedRunIDGenerator_InOrderThenSticks(t *testing.T) {
	gen := NewFixedRunIDGenerator("run-1", "run-2")
	assert.Equal(t, "run-1", gen.Generate())
	assert.Equal(t, "run-2", gen.Generate())
	assert.Equal(t, "run-2", gen.Generate())
	assert.Equal(t, "FixedRunIDGenerator(2 ids)", gen.String())
}
