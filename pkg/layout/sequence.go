package layout

import "github.com/jvalaj/gridai/pkg/diagram/digraph"

// sequenceLayout arranges nodes in left-to-right columns following edge flow
// from the start nodes (no incoming edges). A node's column is one past the
// deepest column of any predecessor that reached it during the descent;
// nodes sharing a column stack vertically in visitation order. Nodes
// unreachable from any start node are placed in a trailing column. The DFS
// visits edges in input order, which fixes the tie-break.
func sequenceLayout(g *digraph.Graph, cfg Config) map[string]Position {
	if g.NodeCount() == 0 {
		return map[string]Position{}
	}

	starts := g.Sources()
	if len(starts) == 0 {
		starts = g.NodeIDs()[:1]
	}

	cols := make(map[string]int, g.NodeCount())
	visitOrder := make([]string, 0, g.NodeCount())

	type visit struct {
		id  string
		col int
	}
	var stack []visit
	for _, s := range starts {
		stack = append(stack[:0], visit{id: s, col: 0})
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if seen, ok := cols[v.id]; ok {
				if v.col > seen {
					cols[v.id] = v.col
				}
				continue
			}
			cols[v.id] = v.col
			visitOrder = append(visitOrder, v.id)

			succ := g.Successors(v.id)
			for i := len(succ) - 1; i >= 0; i-- {
				stack = append(stack, visit{id: succ[i], col: v.col + 1})
			}
		}
	}

	trailing := 0
	for _, c := range cols {
		if c >= trailing {
			trailing = c + 1
		}
	}
	for _, id := range g.NodeIDs() {
		if _, ok := cols[id]; !ok {
			cols[id] = trailing
			visitOrder = append(visitOrder, id)
		}
	}

	// Stack nodes within a column in visitation order.
	pos := make(map[string]Position, g.NodeCount())
	rowInCol := make(map[int]int)
	for _, id := range visitOrder {
		c := cols[id]
		r := rowInCol[c]
		rowInCol[c] = r + 1
		pos[id] = Position{
			X: float64(c) * (cfg.NodeWidth + cfg.HGap),
			Y: float64(r) * (cfg.NodeHeight + cfg.VGap),
		}
	}
	return pos
}

// timelineLayout is strictly one-dimensional: nodes run left to right in
// input order at fixed spacing on a single shared baseline.
func timelineLayout(g *digraph.Graph, cfg Config) map[string]Position {
	pos := make(map[string]Position, g.NodeCount())
	for i, id := range g.NodeIDs() {
		pos[id] = Position{X: float64(i) * (cfg.NodeWidth + cfg.HGap), Y: 0}
	}
	return pos
}
