// Package digraph provides the directed multigraph view of a diagram spec
// that the layout strategies traverse.
//
// Unlike a strict DAG, a Graph tolerates cycles, self-loops and parallel
// edges: diagram specs come from a language model and carry no structural
// guarantees. Traversal order is deterministic - nodes keep spec input order
// and adjacency lists keep edge input order.
package digraph

import (
	"errors"

	"github.com/jvalaj/gridai/pkg/diagram"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownEndpoint is returned by [Graph.AddEdge] when either endpoint
	// does not exist in the graph.
	ErrUnknownEndpoint = errors.New("unknown edge endpoint")
)

// Graph is a directed multigraph with deterministic iteration order.
// The zero value is not usable - use New or FromSpec.
// Graph is not safe for concurrent mutation without external synchronization.
type Graph struct {
	nodes    map[string]diagram.Node
	order    []string // node IDs in insertion order
	edges    []diagram.Edge
	outgoing map[string][]string // nodeID -> successor IDs, edge input order
	incoming map[string][]string // nodeID -> predecessor IDs, edge input order
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]diagram.Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// FromSpec builds a graph from a diagram spec. Duplicate node ids keep the
// first occurrence and edges referencing missing nodes are skipped, matching
// the validation policy of [diagram.Spec.Clean]. Self-loops are kept in the
// edge list but excluded from adjacency so traversals cannot revisit a node
// through its own edge.
func FromSpec(spec diagram.Spec) *Graph {
	g := New()
	for _, n := range spec.Nodes {
		_ = g.AddNode(n) // duplicates and empty ids dropped
	}
	for _, e := range spec.Edges {
		_ = g.AddEdge(e) // dangling endpoints dropped
	}
	return g
}

// AddNode adds a node to the graph.
// Returns ErrInvalidNodeID for an empty ID or ErrDuplicateNodeID if the ID
// is already present.
func (g *Graph) AddNode(n diagram.Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	g.nodes[n.ID] = n
	g.order = append(g.order, n.ID)
	return nil
}

// AddEdge adds a directed edge between two existing nodes.
// Returns ErrUnknownEndpoint if either node is missing. Parallel edges are
// allowed; self-loops are recorded but do not appear in adjacency lists.
func (g *Graph) AddEdge(e diagram.Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return ErrUnknownEndpoint
	}
	if _, ok := g.nodes[e.To]; !ok {
		return ErrUnknownEndpoint
	}
	g.edges = append(g.edges, e)
	if e.From != e.To {
		g.outgoing[e.From] = append(g.outgoing[e.From], e.To)
		g.incoming[e.To] = append(g.incoming[e.To], e.From)
	}
	return nil
}

// Node returns the node with the given ID and true, or a zero node and false.
func (g *Graph) Node(id string) (diagram.Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// NodeIDs returns all node IDs in insertion order.
// The returned slice is the graph's own index; callers must not modify it.
func (g *Graph) NodeIDs() []string { return g.order }

// Edges returns all edges in insertion order, including self-loops and
// parallel edges. Callers must not modify the returned slice.
func (g *Graph) Edges() []diagram.Edge { return g.edges }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Successors returns the IDs this node has edges to, in edge input order.
// Parallel edges contribute one entry each. Callers must not modify the
// returned slice.
func (g *Graph) Successors(id string) []string { return g.outgoing[id] }

// Predecessors returns the IDs with edges to this node, in edge input order.
// Callers must not modify the returned slice.
func (g *Graph) Predecessors(id string) []string { return g.incoming[id] }

// OutDegree returns the number of outgoing edges from the node,
// excluding self-loops.
func (g *Graph) OutDegree(id string) int { return len(g.outgoing[id]) }

// InDegree returns the number of incoming edges to the node,
// excluding self-loops.
func (g *Graph) InDegree(id string) int { return len(g.incoming[id]) }

// Degree returns the total edge count touching the node (in + out),
// excluding self-loops. Used by degree-ranked layouts.
func (g *Graph) Degree(id string) int { return len(g.incoming[id]) + len(g.outgoing[id]) }

// Sources returns the IDs of nodes with no incoming edges, in insertion
// order. Returns nil when every node has a predecessor (pure cycle).
func (g *Graph) Sources() []string {
	var sources []string
	for _, id := range g.order {
		if len(g.incoming[id]) == 0 {
			sources = append(sources, id)
		}
	}
	return sources
}

// Sinks returns the IDs of nodes with no outgoing edges, in insertion order.
func (g *Graph) Sinks() []string {
	var sinks []string
	for _, id := range g.order {
		if len(g.outgoing[id]) == 0 {
			sinks = append(sinks, id)
		}
	}
	return sinks
}
