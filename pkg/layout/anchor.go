package layout

import "math"

// AnchorOnRect returns the point on this node's box boundary where a
// straight line toward the other node's center exits. Both boxes share the
// same width and height. Call it once per edge endpoint with the direction
// reversed for the far end, so connectors touch node borders instead of
// crossing interiors.
//
// When the direction between centers is more horizontal than vertical
// (|dx|*halfHeight > |dy|*halfWidth) the exit lies on the left or right
// edge with y interpolated; otherwise it lies on the top or bottom edge with
// x interpolated. Degenerate geometry - identical centers or a zero-size box -
// yields the box center so no NaN can escape.
func AnchorOnRect(this, other Position, width, height float64) Point {
	halfW, halfH := width/2, height/2
	cx, cy := this.X+halfW, this.Y+halfH
	dx := (other.X + halfW) - cx
	dy := (other.Y + halfH) - cy

	if (dx == 0 && dy == 0) || halfW == 0 || halfH == 0 {
		return Point{X: cx, Y: cy}
	}

	if math.Abs(dx)*halfH > math.Abs(dy)*halfW {
		// Exit on the left or right edge.
		x := cx + math.Copysign(halfW, dx)
		return Point{X: x, Y: cy + dy*(halfW/math.Abs(dx))}
	}
	// Exit on the top or bottom edge. dy cannot be zero here: that would
	// require dx == 0 as well, which the degenerate check already handled.
	y := cy + math.Copysign(halfH, dy)
	return Point{X: cx + dx*(halfH/math.Abs(dy)), Y: y}
}

// EdgeEndpoints returns the boundary-anchored start and end points for an
// edge between two equally sized boxes.
func EdgeEndpoints(from, to Position, width, height float64) (start, end Point) {
	return AnchorOnRect(from, to, width, height), AnchorOnRect(to, from, width, height)
}
