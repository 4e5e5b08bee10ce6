package layout

// Position is the top-left corner of a node's bounding box in the shared
// coordinate space.
type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Point is a single coordinate, used for edge anchor points.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// EdgeGeometry is the renderable form of one edge: its endpoints anchored on
// the source and target box boundaries. Parallel edges between the same pair
// produce identical geometry; offsetting them visually (e.g. via curvature)
// is the rendering layer's concern.
type EdgeGeometry struct {
	From  string `json:"from" bson:"from"`
	To    string `json:"to" bson:"to"`
	Label string `json:"label,omitempty" bson:"label,omitempty"`
	Start Point  `json:"start" bson:"start"`
	End   Point  `json:"end" bson:"end"`
}

// Result is the complete renderable geometry for a diagram: one position per
// node id, anchored endpoints per edge, and the bounding frame.
type Result struct {
	Positions map[string]Position `json:"positions" bson:"positions"`
	Edges     []EdgeGeometry      `json:"edges,omitempty" bson:"edges,omitempty"`
	Width     float64             `json:"width" bson:"width"`
	Height    float64             `json:"height" bson:"height"`
}

// shiftNonNegative translates all positions so the minimum coordinate on each
// axis is zero. Strategies compute around a centered axis; the shift keeps
// the public coordinate space in the first quadrant without changing any
// relative geometry.
func shiftNonNegative(pos map[string]Position) {
	if len(pos) == 0 {
		return
	}
	first := true
	var minX, minY float64
	for _, p := range pos {
		if first {
			minX, minY = p.X, p.Y
			first = false
			continue
		}
		if p.X < minX {
			minX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
	}
	if minX == 0 && minY == 0 {
		return
	}
	for id, p := range pos {
		pos[id] = Position{X: p.X - minX, Y: p.Y - minY}
	}
}

// frame returns the bounding width and height of the positions, assuming
// each node occupies a cfg.NodeWidth x cfg.NodeHeight box.
func frame(pos map[string]Position, cfg Config) (w, h float64) {
	for _, p := range pos {
		if x := p.X + cfg.NodeWidth; x > w {
			w = x
		}
		if y := p.Y + cfg.NodeHeight; y > h {
			h = y
		}
	}
	return w, h
}
