// Package value provides the typed value slot stored on graph attributes.
//
// Values form a closed sum type: Int, Float, String, Bool, Matrix44 and
// Opaque. Every value reports a Type, and a Slot locks onto the Type of the
// first value stored in it. Later stores of a different Type are rejected
// and leave the slot unchanged.
//
// This package imports nothing internal so that graph, report, graphdef and
// harness can all depend on it.
package value
