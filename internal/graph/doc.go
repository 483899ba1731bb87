// Package graph implements the attribute dependency graph.
//
// A Graph owns named nodes, the attributes declared on them, directed
// connections between nodes or attributes, per-attribute evaluators and
// per-attribute observers. Values are pulled lazily:
//
//	g := graph.New()
//	g.AddNode("xform1")
//	g.AddAttribute("xform1", "xformOut")
//	g.AddNode("xformFinal")
//	g.AddAttribute("xformFinal", "xformL")
//	g.ConnectAttribute("xform1", "xformOut", "xformFinal", "xformL")
//	_ = g.SetValue("xform1", "xformOut", value.Identity44())
//	m, err := graph.Get[value.Matrix44](g, "xformFinal", "xformL")
//
// # Pull evaluation
//
// Value resolves an attribute in this order:
//
//  1. Unknown attribute: NOT_FOUND.
//  2. An incoming connection from another attribute: that attribute's value
//     is resolved instead. Local data and the evaluator are ignored.
//  3. An evaluator: it runs, with full access to the graph, and is expected
//     to call SetValue on its own attribute. It runs on every pull; nothing
//     is memoized.
//  4. The stored value, or NO_VALUE when nothing was ever stored.
//
// An attribute that is re-entered while it is still being resolved fails
// with CYCLE_DETECTED. Acyclic graphs always terminate.
//
// # Observers
//
// Observers fire synchronously, in registration order, after an explicit
// SetValue stores a value. A SetValue issued by an attribute's own evaluator
// while it recomputes does not notify, and neither does a value obtained
// through a connection.
//
// # Concurrency
//
// A Graph is not safe for concurrent use. Evaluators and observers run on
// the caller's goroutine and may call back into the graph.
package graph
