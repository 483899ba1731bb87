package graphdef

import (
	"fmt"
	"slices"
	"strings"
)

// Warning describes a definition that builds but will not behave the way
// it reads.
//
// Warnings are not errors: a cycle only fails when one of its attributes is
// pulled, and a shadowed evaluator is legal.
type Warning struct {
	Path    []string `json:"path,omitempty"` // Cycle path: ["a.x", "b.y", "a.x"]
	Message string   `json:"message"`
	Level   string   `json:"level"` // "warning" or "info"
}

// Analyze performs static analysis on a valid definition.
//
// It builds the attribute dependency graph from attribute connections and
// evaluator inputs and reports:
//   - every strongly connected component with more than one attribute, or a
//     self-loop, as a potential cycle (pulling any member fails with a cycle
//     error)
//   - evaluators on attributes that also have an incoming connection, since
//     the connection wins and the evaluator never runs
//   - attributes with more than one incoming connection, since only the
//     first one is used
//
// An acyclic definition without shadowing returns an empty list.
func Analyze(d *Definition) []Warning {
	warnings := []Warning{}

	incoming := make(map[string][]string)
	for _, c := range d.Connections {
		if strings.Contains(c.From, ".") && strings.Contains(c.To, ".") {
			incoming[c.To] = append(incoming[c.To], c.From)
		}
	}

	deps := buildDependencyGraph(d, incoming)
	for _, scc := range tarjanSCC(deps) {
		if len(scc) > 1 || (len(scc) == 1 && hasSelfLoop(scc[0], deps)) {
			warnings = append(warnings, cycleSCCToWarning(scc, deps))
		}
	}

	for _, n := range d.Nodes {
		for _, a := range n.Attributes {
			ref := n.Name + "." + a.Name
			sources := incoming[ref]
			if a.Eval != nil && len(sources) > 0 {
				warnings = append(warnings, Warning{
					Message: fmt.Sprintf("Evaluator on %s never runs: it is connected from %s", ref, sources[0]),
					Level:   "info",
				})
			}
			if len(sources) > 1 {
				warnings = append(warnings, Warning{
					Message: fmt.Sprintf("%s has %d incoming connections; only the first (from %s) is used", ref, len(sources), sources[0]),
					Level:   "info",
				})
			}
		}
	}

	return warnings
}

// dependencyGraph maps an attribute to the attributes whose pull reads it.
type dependencyGraph map[string][]string

func buildDependencyGraph(d *Definition, incoming map[string][]string) dependencyGraph {
	graph := make(dependencyGraph)
	addEdge := func(from, to string) {
		if graph[to] == nil {
			graph[to] = []string{}
		}
		graph[from] = append(graph[from], to)
	}

	// A pull of an attribute with an incoming connection reads only the
	// first source.
	for to, sources := range incoming {
		addEdge(sources[0], to)
	}

	for _, n := range d.Nodes {
		for _, a := range n.Attributes {
			ref := n.Name + "." + a.Name
			if a.Eval == nil || len(incoming[ref]) > 0 {
				continue
			}
			for _, in := range a.Eval.Inputs {
				addEdge(inputRef(n.Name, in).String(), ref)
			}
		}
	}

	for from := range graph {
		slices.Sort(graph[from])
	}
	return graph
}

// hasSelfLoop checks if a node has an edge to itself.
func hasSelfLoop(node string, graph dependencyGraph) bool {
	return slices.Contains(graph[node], node)
}

// tarjanSCC finds strongly connected components using Tarjan's algorithm.
// Nodes are visited in sorted order so results are deterministic.
func tarjanSCC(graph dependencyGraph) [][]string {
	var (
		index   = 0
		stack   []string
		indices = make(map[string]int)
		lowlink = make(map[string]int)
		onStack = make(map[string]bool)
		sccs    [][]string
	)

	var strongConnect func(string)
	strongConnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range graph[v] {
			if _, visited := indices[w]; !visited {
				strongConnect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], indices[w])
			}
		}

		// If v is a root node, pop the stack and create an SCC
		if lowlink[v] == indices[v] {
			var scc []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			slices.Sort(scc)
			sccs = append(sccs, scc)
		}
	}

	nodes := make([]string, 0, len(graph))
	for node := range graph {
		nodes = append(nodes, node)
	}
	slices.Sort(nodes)
	for _, node := range nodes {
		if _, visited := indices[node]; !visited {
			strongConnect(node)
		}
	}

	return sccs
}

func cycleSCCToWarning(scc []string, graph dependencyGraph) Warning {
	if len(scc) == 1 {
		ref := scc[0]
		return Warning{
			Path:    []string{ref, ref},
			Message: fmt.Sprintf("Self-dependent attribute detected: %s → %s", ref, ref),
			Level:   "warning",
		}
	}

	path := reconstructCyclePath(scc, graph)
	return Warning{
		Path:    path,
		Message: fmt.Sprintf("Potential cycle detected: %s", strings.Join(path, " → ")),
		Level:   "warning",
	}
}

// reconstructCyclePath starts at the first SCC member and follows edges to
// other members until it returns to the start.
func reconstructCyclePath(scc []string, graph dependencyGraph) []string {
	if len(scc) == 0 {
		return []string{}
	}

	sccSet := make(map[string]bool)
	for _, node := range scc {
		sccSet[node] = true
	}

	start := scc[0]
	current := start
	path := []string{current}
	visited := make(map[string]bool)

	for {
		visited[current] = true

		var next string
		for _, neighbor := range graph[current] {
			if sccSet[neighbor] && (!visited[neighbor] || neighbor == start) {
				next = neighbor
				break
			}
		}
		if next == "" {
			break
		}

		path = append(path, next)
		if next == start {
			break
		}
		current = next
	}

	return path
}
