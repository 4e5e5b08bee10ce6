// Package layout computes deterministic 2D geometry for diagram specs.
//
// The engine maps an abstract graph (nodes, directed edges, a diagram-type
// tag) to non-overlapping node positions and boundary-anchored edge
// endpoints. It never fails: every failure mode degrades to a deterministic
// pure-computation fallback so diagram rendering is never blocked.
//
// # Architecture
//
// Layout happens in three stages:
//
//  1. Strategy selection: the diagram type picks one of the per-type
//     positioning strategies (sequence, tree, flowchart, state machine, ...).
//     Unknown types route to the generic directed-graph strategy.
//  2. Positioning: either the external engine adapter (a Graphviz dot
//     Sugiyama-style solver, see the graphviz subpackage) or the selected
//     pure-Go strategy produces one position per node. External results
//     missing nodes are completed from the fallback strategy, and external
//     failures fall back wholesale.
//  3. Anchoring: each edge gets two points on the node box boundaries where
//     a straight connector between box centers would exit, so rendered
//     connectors touch borders instead of crossing node interiors.
//
// # Determinism
//
// All strategies are pure functions over the spec's input order: calling a
// strategy twice with the same node and edge order yields identical
// positions. Traversals are iterative (explicit stacks), so graph size is
// bounded only by memory, not by call-stack depth.
//
// # Coordinate Space
//
// Positions are top-left corners of node bounding boxes in an abstract 2D
// space with no inherent units; the origin is shifted so all coordinates are
// non-negative. Consumers scale and translate for display.
//
// # Usage
//
//	eng := layout.NewEngine(layout.DefaultConfig(), nil)
//	res := eng.Compute(ctx, spec)
//	for id, pos := range res.Positions {
//	    // place shape for node id at pos
//	}
//	for _, e := range res.Edges {
//	    // draw connector from e.Start to e.End
//	}
package layout
