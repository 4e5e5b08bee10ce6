package layout

import "github.com/jvalaj/gridai/pkg/diagram/digraph"

// AssignLayers computes a topological depth for every node in the graph.
//
// Each node is placed one layer below the deepest of its predecessors
// (longest-path layering), so a node never sits above a known ancestor: in a
// diamond the shared descendant lands below the longer branch, not where the
// first traversal happened to reach it. Roots (no incoming edge) sit at
// layer 0, and so does every node with no path from a root.
//
// Cycles cannot cause non-termination: a preliminary depth-first pass marks
// back edges, starting from the roots in input order - or from the first
// node in input order when no root exists - and the layering pass ignores
// them. Self-loops and parallel edges are tolerated. All traversal is
// iterative, so call-stack depth never limits graph size.
//
// Every input node receives exactly one layer; the minimum layer in use is
// always 0, and for every edge u->v that is not a back edge,
// layer(v) >= layer(u)+1.
func AssignLayers(g *digraph.Graph) map[string]int {
	layers := make(map[string]int, g.NodeCount())
	if g.NodeCount() == 0 {
		return layers
	}

	back := backEdges(g)

	// Longest-path layering via topological traversal, skipping back edges.
	inDegree := make(map[string]int, g.NodeCount())
	for _, id := range g.NodeIDs() {
		layers[id] = 0
		for _, p := range g.Predecessors(id) {
			if !back[[2]string{p, id}] {
				inDegree[id]++
			}
		}
	}

	queue := make([]string, 0, g.NodeCount())
	for _, id := range g.NodeIDs() {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range g.Successors(curr) {
			if back[[2]string{curr, child}] {
				continue
			}
			if l := layers[curr] + 1; l > layers[child] {
				layers[child] = l
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	return layers
}

// backEdges finds the edges closing a cycle, as (from,to) pairs. The search
// is a depth-first coloring seeded from the source nodes in input order,
// then from any still-unvisited node in input order, so the choice of which
// cycle edge counts as "back" is deterministic. Parallel edges between the
// same pair share one mark.
func backEdges(g *digraph.Graph) map[[2]string]bool {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, g.NodeCount())
	back := make(map[[2]string]bool)

	type frame struct {
		id   string
		next int // index into Successors(id)
	}

	dfs := func(start string) {
		if color[start] != white {
			return
		}
		stack := []frame{{id: start}}
		color[start] = gray
		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			succ := g.Successors(f.id)
			if f.next >= len(succ) {
				color[f.id] = black
				stack = stack[:len(stack)-1]
				continue
			}
			child := succ[f.next]
			f.next++
			switch color[child] {
			case white:
				color[child] = gray
				stack = append(stack, frame{id: child})
			case gray:
				back[[2]string{f.id, child}] = true
			}
		}
	}

	for _, id := range g.Sources() {
		dfs(id)
	}
	for _, id := range g.NodeIDs() {
		dfs(id)
	}

	return back
}

// maxLayer returns the highest layer value in the assignment, or 0 when
// empty.
func maxLayer(layers map[string]int) int {
	max := 0
	for _, l := range layers {
		if l > max {
			max = l
		}
	}
	return max
}

// layerRows groups node ids by layer, preserving input order within each
// layer. The outer slice is indexed by layer, 0..maxLayer.
func layerRows(g *digraph.Graph, layers map[string]int) [][]string {
	rows := make([][]string, maxLayer(layers)+1)
	for _, id := range g.NodeIDs() {
		l := layers[id]
		rows[l] = append(rows[l], id)
	}
	return rows
}
