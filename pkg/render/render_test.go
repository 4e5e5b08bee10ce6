package render

import (
	"context"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/jvalaj/gridai/pkg/diagram"
	"github.com/jvalaj/gridai/pkg/layout"
)

// Matches node rects only; the background rect uses percentage sizing.
var nodeRectRe = regexp.MustCompile(`<rect x="(-?[0-9.]+)" y="(-?[0-9.]+)" width="([0-9.]+)" height="([0-9.]+)"`)

func parseRect(t *testing.T, m []string) (x, y, w, h float64) {
	t.Helper()
	for i, dst := range []*float64{&x, &y, &w, &h} {
		v, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			t.Fatalf("parse rect attr %q: %v", m[i+1], err)
		}
		*dst = v
	}
	return x, y, w, h
}

func laidOut(t *testing.T) (diagram.Spec, layout.Result) {
	t.Helper()
	spec := diagram.Spec{
		Type:  diagram.TypeFlowchart,
		Title: "Checkout",
		Nodes: []diagram.Node{
			{ID: "a", Label: "Start"},
			{ID: "b", Label: "Pay"},
			{ID: "n", Label: "Card only", Kind: diagram.KindNote},
		},
		Edges: []diagram.Edge{{From: "a", To: "b", Label: "ok"}},
	}
	return spec, layout.NewEngine(layout.DefaultConfig(), nil).Compute(context.Background(), spec)
}

func TestRenderSVG(t *testing.T) {
	spec, res := laidOut(t)
	svg := string(RenderSVG(spec, res))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Errorf("missing svg header:\n%s", svg[:80])
	}
	if !strings.HasSuffix(strings.TrimSpace(svg), "</svg>") {
		t.Error("missing closing tag")
	}

	for _, want := range []string{
		"<title>Checkout</title>",
		`marker id="arrow"`,
		">Start</text>",
		">Pay</text>",
		">Card only</text>",
		">ok</text>",
		`stroke-dasharray`, // note styling
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("missing %q in output", want)
		}
	}

	if got := strings.Count(svg, "<rect"); got != 4 { // background + 3 nodes
		t.Errorf("rect count = %d, want 4", got)
	}
}

func TestRenderSVGBoxesFillSlots(t *testing.T) {
	cfg := layout.DefaultConfig()
	spec := diagram.Spec{
		Type: diagram.TypeTimeline,
		Nodes: []diagram.Node{
			{ID: "q1", Label: "Quarterly planning and budget review"},
			{ID: "q2", Label: "Cross-region infrastructure migration"},
			{ID: "q3", Label: "General availability launch readiness"},
		},
		Edges: []diagram.Edge{{From: "q1", To: "q2"}, {From: "q2", To: "q3"}},
	}
	res := layout.NewEngine(cfg, nil).Compute(context.Background(), spec)
	svg := string(RenderSVG(spec, res, WithConfig(cfg)))

	boxes := nodeRectRe.FindAllStringSubmatch(svg, -1)
	if len(boxes) != len(spec.Nodes) {
		t.Fatalf("found %d node rects, want %d", len(boxes), len(spec.Nodes))
	}

	xs := make([]float64, 0, len(boxes))
	for _, m := range boxes {
		x, _, w, h := parseRect(t, m)
		if w != cfg.NodeWidth || h != cfg.NodeHeight {
			t.Errorf("rendered box %vx%v, want %vx%v", w, h, cfg.NodeWidth, cfg.NodeHeight)
		}
		xs = append(xs, x)
	}

	// Long labels must not widen boxes past the slot pitch.
	sort.Float64s(xs)
	for i := 1; i < len(xs); i++ {
		if xs[i-1]+cfg.NodeWidth > xs[i] {
			t.Errorf("boxes at x=%v and x=%v overlap", xs[i-1], xs[i])
		}
	}
}

func TestRenderSVGConnectorsTouchBoxes(t *testing.T) {
	cfg := layout.DefaultConfig()
	cfg.EdgeRouting = layout.RoutingStraight
	spec := diagram.Spec{
		Type: diagram.TypeFlowchart,
		Nodes: []diagram.Node{
			{ID: "a", Label: "Go"},
			{ID: "b", Label: "No"},
		},
		Edges: []diagram.Edge{{From: "a", To: "b"}},
	}
	res := layout.NewEngine(cfg, nil).Compute(context.Background(), spec)
	svg := string(RenderSVG(spec, res, WithConfig(cfg)))

	boxes := nodeRectRe.FindAllStringSubmatch(svg, -1)
	if len(boxes) != 2 {
		t.Fatalf("found %d node rects, want 2", len(boxes))
	}

	// Rects follow spec node order, so boxes[0] is "a". The edge start
	// must sit on its drawn border even for labels narrower than a slot.
	x, y, w, h := parseRect(t, boxes[0])
	start := res.Edges[0].Start

	const tol = 0.1 // rect attrs print at one decimal
	inside := start.X >= x-tol && start.X <= x+w+tol && start.Y >= y-tol && start.Y <= y+h+tol
	onBorder := math.Abs(start.X-x) < tol || math.Abs(start.X-(x+w)) < tol ||
		math.Abs(start.Y-y) < tol || math.Abs(start.Y-(y+h)) < tol
	if !inside || !onBorder {
		t.Errorf("edge start (%v,%v) not on box border x=%v y=%v w=%v h=%v",
			start.X, start.Y, x, y, w, h)
	}
}

func TestRenderSVGEscapesLabels(t *testing.T) {
	spec := diagram.Spec{
		Type:  diagram.TypeTimeline,
		Nodes: []diagram.Node{{ID: "x", Label: `<script>&"`}},
	}
	res := layout.NewEngine(layout.DefaultConfig(), nil).Compute(context.Background(), spec)

	svg := string(RenderSVG(spec, res))
	if strings.Contains(svg, "<script>") {
		t.Error("label was not escaped")
	}
	if !strings.Contains(svg, "&lt;script&gt;") {
		t.Error("escaped label missing from output")
	}
}

func TestRenderSVGRouting(t *testing.T) {
	spec, res := laidOut(t)

	cases := []struct {
		routing string
		want    string
	}{
		{layout.RoutingStraight, "<line "},
		{layout.RoutingCurved, " Q "},
		{layout.RoutingOrtho, " L "},
	}

	for _, tc := range cases {
		t.Run(tc.routing, func(t *testing.T) {
			cfg := layout.DefaultConfig()
			cfg.EdgeRouting = tc.routing
			svg := string(RenderSVG(spec, res, WithConfig(cfg)))
			if !strings.Contains(svg, tc.want) {
				t.Errorf("routing %q: missing %q", tc.routing, tc.want)
			}
		})
	}
}

func TestRenderSVGThemes(t *testing.T) {
	spec, res := laidOut(t)

	light := string(RenderSVG(spec, res, WithTheme(ThemeLight)))
	dark := string(RenderSVG(spec, res, WithTheme(ThemeDark)))
	if light == dark {
		t.Error("themes should produce different output")
	}
	if !strings.Contains(dark, ThemeDark.Background) {
		t.Error("dark background color missing")
	}
}

func TestThemeByName(t *testing.T) {
	if got := ThemeByName("dark"); got.Name != "dark" {
		t.Errorf("ThemeByName(dark) = %s", got.Name)
	}
	if got := ThemeByName("nope"); got.Name != "light" {
		t.Errorf("ThemeByName should default to light, got %s", got.Name)
	}
}

func TestToDOT(t *testing.T) {
	spec, res := laidOut(t)
	dot := ToDOT(spec, res, layout.DefaultConfig())

	for _, want := range []string{
		"digraph G {",
		`label="Checkout";`,
		`"a" [label="Start", pos="`,
		`"a" -> "b" [label="ok"];`,
		"!\"",          // pinned positions
		"width=2.2222", // slot width in inches, not label-proportional
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT missing %q:\n%s", want, dot)
		}
	}
}
