// Package harness runs YAML scenarios against a live attribute graph and a
// triple store.
//
// # Scenario Format
//
//	name: transform_chain
//	description: "Two identity transforms multiply to identity"
//	graph: ../graphs/transform.cue
//	triples:
//	  - [xform1, feeds, xformFinal]
//	steps:
//	  - observe: xform1.xformOut
//	  - set: {ref: xform1.xformOut, value: 3, error: TYPE_MISMATCH}
//	  - expect: {ref: xformFinal.xformOut, value: [1,0,0,0, 0,1,0,0, 0,0,1,0, 0,0,0,1]}
//	  - query: {pattern: ["*", feeds, xformFinal], expect: [[xform1, feeds, xformFinal]]}
//	  - connect: [xform2, feeds, xformFinal]
//	  - disconnect: [xform2, feeds, xformFinal]
//	assertions:
//	  - type: observer_count
//	    ref: xform1.xformOut
//	    count: 0
//	  - type: error_code
//	    code: TYPE_MISMATCH
//	  - type: triple_count
//	    pattern: ["*", feeds, "*"]
//	    count: 1
//
// The graph path is resolved relative to the scenario file. Values are
// YAML scalars; a list of 16 numbers is a 4x4 matrix.
//
// # Steps
//
//   - set: writes a value; error names the code the write must fail with
//   - expect: pulls a value and compares it, or checks the pull fails with error
//   - observe: registers an observer that records every notification
//   - query: runs a triple pattern ("*" is a wildcard); results compare in index order
//   - connect, disconnect: add or remove one fact
//
// # Assertion Types
//
//   - observer_count: number of notifications seen for ref
//   - error_code: some step failed with code (on ref, if given)
//   - triple_count: number of facts matching pattern (all facts if omitted)
//
// # Deterministic Runs
//
// Every trace event is stamped by a testutil.DeterministicClock, and the
// triple store lives in an in-memory Badger database created per run, so
// two runs of one scenario produce identical traces. The run ID is a
// UUIDv7 unless the scenario pins run_id.
package harness
