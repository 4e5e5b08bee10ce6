package layout

import (
	"math"
	"slices"

	"github.com/jvalaj/gridai/pkg/diagram/digraph"
)

// stateMachineLayout places nodes evenly on a circle in input order. State
// machines have no inherent flow direction worth preferring, so a ring reads
// better than forcing a hierarchy onto them.
func stateMachineLayout(g *digraph.Graph, cfg Config) map[string]Position {
	return ringPositions(g.NodeIDs(), cfg.CircleRadius, cfg, nil)
}

// networkLayout is hub-and-spoke: nodes ranked by total degree, the top ~30%
// (at least enough to form an inner ring) on an inner circle and the rest on
// an outer circle, each ring evenly spaced by angle. Degree ties keep input
// order.
func networkLayout(g *digraph.Graph, cfg Config) map[string]Position {
	ids := slices.Clone(g.NodeIDs())
	slices.SortStableFunc(ids, func(a, b string) int {
		return g.Degree(b) - g.Degree(a)
	})

	inner := len(ids) * 3 / 10
	if inner < 3 {
		inner = 3
	}
	if inner > len(ids) {
		inner = len(ids)
	}

	pos := make(map[string]Position, len(ids))
	ringPositions(ids[:inner], cfg.CircleRadius*cfg.InnerRatio, cfg, pos)
	ringPositions(ids[inner:], cfg.CircleRadius, cfg, pos)
	return pos
}

// ringPositions spaces ids evenly on a circle of the given radius centered
// at the origin, starting at twelve o'clock. Positions are written into out
// when non-nil, otherwise a fresh map is returned. A single node sits at the
// center rather than on a degenerate ring.
func ringPositions(ids []string, radius float64, cfg Config, out map[string]Position) map[string]Position {
	if out == nil {
		out = make(map[string]Position, len(ids))
	}
	if len(ids) == 1 {
		out[ids[0]] = Position{X: -cfg.NodeWidth / 2, Y: -cfg.NodeHeight / 2}
		return out
	}
	for i, id := range ids {
		angle := 2*math.Pi*float64(i)/float64(len(ids)) - math.Pi/2
		out[id] = Position{
			X: radius*math.Cos(angle) - cfg.NodeWidth/2,
			Y: radius*math.Sin(angle) - cfg.NodeHeight/2,
		}
	}
	return out
}

// gridLayout places nodes row-major in ceil(sqrt(n)) columns at fixed cell
// spacing. Entity-relationship and class diagrams have no natural
// directional flow, so a dense grid is the most readable default.
func gridLayout(g *digraph.Graph, cfg Config) map[string]Position {
	n := g.NodeCount()
	if n == 0 {
		return map[string]Position{}
	}
	columns := int(math.Ceil(math.Sqrt(float64(n))))

	pos := make(map[string]Position, n)
	for i, id := range g.NodeIDs() {
		row, col := i/columns, i%columns
		pos[id] = Position{
			X: float64(col) * (cfg.NodeWidth + cfg.HGap),
			Y: float64(row) * (cfg.NodeHeight + cfg.VGap),
		}
	}
	return pos
}
