package layout

import "github.com/jvalaj/gridai/pkg/diagram/digraph"

// directedGraphLayout places layers as left-to-right columns centered on a
// shared horizontal axis. It is the default strategy for unrecognized
// diagram types.
func directedGraphLayout(g *digraph.Graph, cfg Config) map[string]Position {
	layers := AssignLayers(g)
	rows := layerRows(g, layers)
	mid := float64(maxLayer(layers)) / 2

	pos := make(map[string]Position, g.NodeCount())
	for layer, ids := range rows {
		x := (float64(layer) - mid) * (cfg.NodeWidth + cfg.HGap)
		total := float64(len(ids))*cfg.NodeHeight + float64(len(ids)-1)*cfg.VGap
		y := -total / 2
		for _, id := range ids {
			pos[id] = Position{X: x, Y: y}
			y += cfg.NodeHeight + cfg.VGap
		}
	}
	return pos
}

// flowchartLayout mirrors the directed-graph strategy with swapped axes:
// layers become top-to-bottom bands and nodes within a band are centered
// horizontally.
func flowchartLayout(g *digraph.Graph, cfg Config) map[string]Position {
	return layeredRows(g, cfg, cfg.VGap)
}

// deploymentLayout is the flowchart arrangement with a wider band gap, so
// each layer reads as a deployment tier.
func deploymentLayout(g *digraph.Graph, cfg Config) map[string]Position {
	return layeredRows(g, cfg, cfg.TierGap)
}

// layeredRows places each layer as a horizontally centered row, top to
// bottom, with the given gap between rows.
func layeredRows(g *digraph.Graph, cfg Config, rowGap float64) map[string]Position {
	layers := AssignLayers(g)
	rows := layerRows(g, layers)

	pos := make(map[string]Position, g.NodeCount())
	for layer, ids := range rows {
		y := float64(layer) * (cfg.NodeHeight + rowGap)
		total := float64(len(ids))*cfg.NodeWidth + float64(len(ids)-1)*cfg.HGap
		x := -total / 2
		for _, id := range ids {
			pos[id] = Position{X: x, Y: y}
			x += cfg.NodeWidth + cfg.HGap
		}
	}
	return pos
}

// treeLayout arranges nodes by breadth-first depth from the roots, each
// level an evenly spaced, horizontally centered row. When no root is
// identifiable (pure cycle) the graph is not a tree and the directed-graph
// strategy takes over. Nodes unreachable from every root land in a trailing
// row so coverage holds for disconnected input.
func treeLayout(g *digraph.Graph, cfg Config) map[string]Position {
	roots := g.Sources()
	if len(roots) == 0 && g.NodeCount() > 0 {
		return directedGraphLayout(g, cfg)
	}

	depth := make(map[string]int, g.NodeCount())
	queue := make([]string, 0, len(roots))
	for _, r := range roots {
		depth[r] = 0
		queue = append(queue, r)
	}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, child := range g.Successors(curr) {
			if _, seen := depth[child]; seen {
				continue
			}
			depth[child] = depth[curr] + 1
			queue = append(queue, child)
		}
	}

	maxDepth := 0
	for _, d := range depth {
		if d > maxDepth {
			maxDepth = d
		}
	}

	// Group by level in input order; unreached nodes form a trailing row.
	levels := make([][]string, maxDepth+2)
	for _, id := range g.NodeIDs() {
		if d, ok := depth[id]; ok {
			levels[d] = append(levels[d], id)
		} else {
			levels[maxDepth+1] = append(levels[maxDepth+1], id)
		}
	}

	pos := make(map[string]Position, g.NodeCount())
	y := 0.0
	for _, ids := range levels {
		if len(ids) == 0 {
			continue
		}
		total := float64(len(ids))*cfg.NodeWidth + float64(len(ids)-1)*cfg.HGap
		x := -total / 2
		for _, id := range ids {
			pos[id] = Position{X: x, Y: y}
			x += cfg.NodeWidth + cfg.HGap
		}
		y += cfg.NodeHeight + cfg.VGap
	}
	return pos
}
