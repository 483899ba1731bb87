// Package graphdef compiles CUE graph definitions into attribute graphs.
//
// A definition declares nodes, their attributes with optional initial
// values or built-in evaluators, and connections:
//
//	node: xform1: attr: xformOut: matrix: [1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1]
//	node: xformFinal: attr: {
//		xformL: {}
//		xformR: {}
//		xformOut: eval: {op: "product", inputs: ["xformL", "xformR"]}
//	}
//	connect: [{from: "xform1.xformOut", to: "xformFinal.xformL"}]
//
// Evaluator inputs name an attribute on the same node ("xformL") or on
// another node ("xform1.xformOut"). Connection endpoints are either both
// nodes or both attributes.
package graphdef
