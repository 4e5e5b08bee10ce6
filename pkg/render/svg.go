package render

import (
	"bytes"
	"fmt"
	"html"
	"math"

	"github.com/jvalaj/gridai/pkg/diagram"
	"github.com/jvalaj/gridai/pkg/layout"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	theme Theme
	cfg   layout.Config
}

// WithTheme selects a color theme. The default is [ThemeLight].
func WithTheme(t Theme) SVGOption { return func(r *svgRenderer) { r.theme = t } }

// WithConfig supplies the layout config the result was computed with, so
// node boxes and edge routing match. The default is [layout.DefaultConfig].
func WithConfig(cfg layout.Config) SVGOption { return func(r *svgRenderer) { r.cfg = cfg } }

// RenderSVG draws a laid-out diagram as SVG. Nodes appear as rounded boxes
// at their computed positions, edges as connectors between the anchored
// boundary points from the layout result.
func RenderSVG(spec diagram.Spec, res layout.Result, opts ...SVGOption) []byte {
	r := svgRenderer{theme: ThemeLight, cfg: layout.DefaultConfig()}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		res.Width, res.Height, res.Width, res.Height)

	if spec.Title != "" {
		fmt.Fprintf(&buf, "<title>%s</title>\n", html.EscapeString(spec.Title))
	}

	r.renderDefs(&buf)
	fmt.Fprintf(&buf, `<rect width="100%%" height="100%%" fill=%q/>`+"\n", r.theme.Background)

	// Edges first so node boxes cover the anchor points.
	for _, e := range res.Edges {
		r.renderEdge(&buf, e)
	}
	for _, n := range spec.Nodes {
		pos, ok := res.Positions[n.ID]
		if !ok {
			continue
		}
		r.renderNode(&buf, n, pos)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderDefs(buf *bytes.Buffer) {
	fmt.Fprintf(buf, `<defs><marker id="arrow" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="7" markerHeight="7" orient="auto-start-reverse"><path d="M 0 0 L 10 5 L 0 10 z" fill=%q/></marker></defs>`+"\n",
		r.theme.EdgeStroke)
}

func (r *svgRenderer) renderNode(buf *bytes.Buffer, n diagram.Node, pos layout.Position) {
	// Positions are slot origins and edge endpoints are anchored on the
	// NodeWidth x NodeHeight border; the drawn box must use the same size.
	w, h := r.cfg.NodeWidth, r.cfg.NodeHeight

	fill, stroke, dash := r.theme.NodeFill, r.theme.NodeStroke, ""
	if n.Kind == diagram.KindNote {
		fill, stroke, dash = r.theme.NoteFill, r.theme.NoteStroke, ` stroke-dasharray="6,3"`
	}

	fmt.Fprintf(buf, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="8" fill=%q stroke=%q stroke-width="1.5"%s/>`+"\n",
		pos.X, pos.Y, w, h, fill, stroke, dash)

	fmt.Fprintf(buf, `<text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="central" font-family=%q font-size="%.0f" fill=%q>%s</text>`+"\n",
		pos.X+w/2, pos.Y+h/2, r.theme.FontFamily, r.theme.FontSize, r.theme.Text, html.EscapeString(n.Label))
}

func (r *svgRenderer) renderEdge(buf *bytes.Buffer, e layout.EdgeGeometry) {
	sx, sy := e.Start.X, e.Start.Y
	ex, ey := e.End.X, e.End.Y

	switch r.cfg.EdgeRouting {
	case layout.RoutingStraight:
		fmt.Fprintf(buf, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke=%q stroke-width="1.5" marker-end="url(#arrow)"/>`+"\n",
			sx, sy, ex, ey, r.theme.EdgeStroke)
	case layout.RoutingOrtho:
		fmt.Fprintf(buf, `<path d="M %.1f %.1f L %.1f %.1f L %.1f %.1f" fill="none" stroke=%q stroke-width="1.5" marker-end="url(#arrow)"/>`+"\n",
			sx, sy, ex, sy, ex, ey, r.theme.EdgeStroke)
	default:
		cx, cy := curveControl(sx, sy, ex, ey)
		fmt.Fprintf(buf, `<path d="M %.1f %.1f Q %.1f %.1f %.1f %.1f" fill="none" stroke=%q stroke-width="1.5" marker-end="url(#arrow)"/>`+"\n",
			sx, sy, cx, cy, ex, ey, r.theme.EdgeStroke)
	}

	if e.Label != "" {
		fmt.Fprintf(buf, `<text x="%.1f" y="%.1f" text-anchor="middle" font-family=%q font-size="%.0f" fill=%q>%s</text>`+"\n",
			(sx+ex)/2, (sy+ey)/2-6, r.theme.FontFamily, r.theme.FontSize-2, r.theme.EdgeLabel, html.EscapeString(e.Label))
	}
}

// curveControl bows the edge sideways: the control point sits on the
// perpendicular of the midpoint, offset by a fraction of the edge length.
func curveControl(sx, sy, ex, ey float64) (cx, cy float64) {
	mx, my := (sx+ex)/2, (sy+ey)/2
	dx, dy := ex-sx, ey-sy
	length := math.Hypot(dx, dy)
	if length == 0 {
		return mx, my
	}

	offset := math.Min(length*0.15, 40)
	return mx - dy/length*offset, my + dx/length*offset
}
