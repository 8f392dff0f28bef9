// Package domain contains the core domain models and business logic for the inferred task graph.
package domain

import (
	"iter"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Edge is a directed dependency From -> To.
type Edge struct {
	From string
	To   string
}

// Graph is the dependency graph inferred from a pipeline's bindings.
// Nodes keep declaration order; edges are a set.
type Graph struct {
	order []string
	tasks map[string]*TaskDescriptor
	preds map[string]map[string]struct{}
	succs map[string]map[string]struct{}
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		tasks: make(map[string]*TaskDescriptor),
		preds: make(map[string]map[string]struct{}),
		succs: make(map[string]map[string]struct{}),
	}
}

// BuildGraph derives the dependency graph of a pipeline.
// An edge A -> B exists when some output binding of A equals some input binding of B.
// The result is deterministic for a given declaration order. Cycles are not rejected here.
func BuildGraph(p *Pipeline) *Graph {
	descs := p.Descriptors()
	g := NewGraph()
	for _, d := range descs {
		g.addNode(d)
	}
	for _, next := range descs {
		for _, prev := range descs {
			if prev.Feeds(next) {
				g.addEdge(prev.ID, next.ID)
			}
		}
	}
	return g
}

func (g *Graph) addNode(d *TaskDescriptor) {
	g.order = append(g.order, d.ID)
	g.tasks[d.ID] = d
	g.preds[d.ID] = make(map[string]struct{})
	g.succs[d.ID] = make(map[string]struct{})
}

func (g *Graph) addEdge(from, to string) {
	g.succs[from][to] = struct{}{}
	g.preds[to][from] = struct{}{}
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.order)
}

// Get returns the descriptor attached to a node.
func (g *Graph) Get(id string) (*TaskDescriptor, bool) {
	d, ok := g.tasks[id]
	return d, ok
}

// IDs returns the node ids in declaration order.
func (g *Graph) IDs() []string {
	return slices.Clone(g.order)
}

// Nodes returns an iterator over the node descriptors in declaration order.
func (g *Graph) Nodes() iter.Seq[*TaskDescriptor] {
	return func(yield func(*TaskDescriptor) bool) {
		for _, id := range g.order {
			if !yield(g.tasks[id]) {
				return
			}
		}
	}
}

// Predecessors returns the direct predecessors of id, sorted.
func (g *Graph) Predecessors(id string) []string {
	return sortedSet(g.preds[id])
}

// Successors returns the direct successors of id, sorted.
func (g *Graph) Successors(id string) []string {
	return sortedSet(g.succs[id])
}

// HasEdge reports whether the edge from -> to exists.
func (g *Graph) HasEdge(from, to string) bool {
	_, ok := g.succs[from][to]
	return ok
}

// Edges returns every edge, ordered by source declaration order then target id.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for _, from := range g.order {
		for _, to := range sortedSet(g.succs[from]) {
			edges = append(edges, Edge{From: from, To: to})
		}
	}
	return edges
}

// DetectCycles walks the graph depth-first and reports the first cycle found.
func (g *Graph) DetectCycles() error {
	visited := make(map[string]int, len(g.order)) // 0: unvisited, 1: visiting, 2: visited
	var path []string

	var visit func(u string) error
	visit = func(u string) error {
		visited[u] = 1
		path = append(path, u)

		for _, next := range sortedSet(g.succs[u]) {
			if visited[next] == 1 {
				return buildCycleError(path, next)
			}
			if visited[next] == 0 {
				if err := visit(next); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		return nil
	}

	for _, id := range g.order {
		if visited[id] == 0 {
			if err := visit(id); err != nil {
				return err
			}
		}
	}
	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func buildCycleError(path []string, dep string) error {
	start := slices.Index(path, dep)
	cycle := append(slices.Clone(path[start:]), dep)
	return zerr.With(zerr.Wrap(ErrCycleDetected, "invalid pipeline"), "cycle", strings.Join(cycle, " -> "))
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
