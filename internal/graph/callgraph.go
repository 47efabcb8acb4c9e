// Package graph holds the corpus-wide indexes and the resolution pass
// that turn raw call expressions into a navigable bidirectional call
// graph keyed purely by qualified name — relationships are expressed by
// string key, never by pointer between entities, so the structure is
// cycle-free by construction.
package graph

import (
	"sort"

	"github.com/DeusData/javagraph/internal/entity"
)

// Graph is the directed call relation over qualified names.
// Forward edges answer "what does this call"; reverse edges answer
// "who calls this".
type Graph struct {
	edges   map[string]map[string]struct{}
	reverse map[string]map[string]struct{}
}

// NewGraph returns an empty call graph.
func NewGraph() *Graph {
	return &Graph{
		edges:   make(map[string]map[string]struct{}),
		reverse: make(map[string]map[string]struct{}),
	}
}

// Build constructs the graph from resolved entities, one edge per
// caller/callee pair. Unresolved calls contribute no edges.
func Build(entities []*entity.Entity) *Graph {
	g := NewGraph()
	for _, e := range entities {
		if !e.Kind.Callable() {
			continue
		}
		for _, callee := range e.Calls {
			if IsUnresolved(callee) {
				continue
			}
			g.AddEdge(e.QualifiedName, callee)
		}
	}
	return g
}

// AddEdge records caller -> callee in both directions.
func (g *Graph) AddEdge(caller, callee string) {
	addKey(g.edges, caller, callee)
	addKey(g.reverse, callee, caller)
}

// Callees returns the sorted targets called by a qualified name.
func (g *Graph) Callees(qualifiedName string) []string {
	return sortedKeys(g.edges[qualifiedName])
}

// Callers returns the sorted qualified names calling a target.
func (g *Graph) Callers(qualifiedName string) []string {
	return sortedKeys(g.reverse[qualifiedName])
}

// EdgeCount returns the number of forward edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, targets := range g.edges {
		n += len(targets)
	}
	return n
}

// Chain traverses the call relation breadth-first from a starting
// qualified name down to the given depth, following forward edges (or
// reverse edges when backward is true). The start itself is excluded.
// Useful for tracing a business flow from an entry point.
func (g *Graph) Chain(start string, depth int, backward bool) []string {
	type item struct {
		qn string
		d  int
	}
	visited := map[string]bool{}
	var result []string
	queue := []item{{start, 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visited[cur.qn] || cur.d > depth {
			continue
		}
		visited[cur.qn] = true
		if cur.qn != start {
			result = append(result, cur.qn)
		}
		var neighbors []string
		if backward {
			neighbors = g.Callers(cur.qn)
		} else {
			neighbors = g.Callees(cur.qn)
		}
		for _, n := range neighbors {
			if !visited[n] {
				queue = append(queue, item{n, cur.d + 1})
			}
		}
	}
	return result
}

func addKey(m map[string]map[string]struct{}, key, value string) {
	set, ok := m[key]
	if !ok {
		set = make(map[string]struct{})
		m[key] = set
	}
	set[value] = struct{}{}
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
