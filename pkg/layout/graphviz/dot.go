package graphviz

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jvalaj/gridai/pkg/diagram"
	"github.com/jvalaj/gridai/pkg/layout"
)

// dot measures node dimensions in inches and positions in points.
const pointsPerInch = 72.0

// BuildDOT converts a spec to Graphviz DOT input for the dot engine.
//
// Node boxes carry fixed sizes derived from their labels so the solver
// spaces ranks to fit them. Labels themselves stay out of the DOT text: the
// solver only needs geometry, and omitting user text keeps the output
// trivially parseable. Self-referencing edges are dropped since they do not
// influence placement.
func BuildDOT(spec diagram.Spec, cfg layout.Config) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankDir(spec.Type))
	fmt.Fprintf(&buf, "  ranksep=%s;\n", inches(cfg.RankSep))
	fmt.Fprintf(&buf, "  nodesep=%s;\n", inches(cfg.NodeSep))
	fmt.Fprintf(&buf, "  splines=%s;\n", splines(cfg.EdgeRouting))
	buf.WriteString("  node [shape=box, fixedsize=true, label=\"\"];\n")
	buf.WriteString("\n")

	for _, n := range spec.Nodes {
		w, h := cfg.NodeSize(n.Label)
		fmt.Fprintf(&buf, "  %q [width=%s, height=%s];\n", n.ID, inches(w), inches(h))
	}

	buf.WriteString("\n")
	for _, e := range spec.Edges {
		if e.From == e.To {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// rankDir picks the flow direction for the solver. Flowcharts, trees and
// deployment stacks read top to bottom; everything else flows left to right.
func rankDir(t diagram.Type) string {
	switch t {
	case diagram.TypeFlowchart, diagram.TypeTree, diagram.TypeDeployment:
		return "TB"
	default:
		return "LR"
	}
}

func splines(routing string) string {
	switch routing {
	case layout.RoutingStraight:
		return "line"
	case layout.RoutingOrtho:
		return "ortho"
	default:
		return "curved"
	}
}

func inches(units float64) string {
	return strconv.FormatFloat(units/pointsPerInch, 'f', 4, 64)
}

// posRe matches a plain node pos attribute. Edge pos attributes start with
// a spline prefix ("e," or "s,") and never match.
var posRe = regexp.MustCompile(`pos="(-?[0-9.]+),(-?[0-9.]+)"`)

// ParsePositions extracts one top-left position per spec node from the
// solver's xdot output. The solver reports box centers in points with the
// Y axis pointing up; positions come back converted to the top-left,
// Y-down convention the rest of the layout package uses.
//
// Nodes the solver did not place are simply absent from the map. An error
// means the output carried no usable positions at all.
func ParsePositions(xdot []byte, spec diagram.Spec, cfg layout.Config) (map[string]layout.Position, error) {
	pos := make(map[string]layout.Position, len(spec.Nodes))
	for _, n := range spec.Nodes {
		x, y, ok := nodePos(xdot, n.ID)
		if !ok {
			continue
		}
		w, h := cfg.NodeSize(n.Label)
		pos[n.ID] = layout.Position{X: x - w/2, Y: -y - h/2}
	}

	if len(pos) == 0 && len(spec.Nodes) > 0 {
		return nil, fmt.Errorf("no node positions in %d bytes of output", len(xdot))
	}
	return pos, nil
}

// bareIDRe covers ids the serializer writes without quotes.
var bareIDRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// nodePos finds the pos attribute of a single node statement. The
// serializer quotes ids only when it has to, so both forms are matched.
func nodePos(xdot []byte, id string) (x, y float64, ok bool) {
	pattern := regexp.QuoteMeta(quoteID(id))
	if bareIDRe.MatchString(id) && !dotKeyword(id) {
		pattern = `(?:` + pattern + `|\b` + regexp.QuoteMeta(id) + `)`
	}

	stmtRe, err := regexp.Compile(`(?s)` + pattern + `\s*\[([^\]]*)\]`)
	if err != nil {
		return 0, 0, false
	}

	stmt := stmtRe.FindSubmatch(xdot)
	if stmt == nil {
		return 0, 0, false
	}

	m := posRe.FindSubmatch(stmt[1])
	if m == nil {
		return 0, 0, false
	}

	x, errX := strconv.ParseFloat(string(m[1]), 64)
	y, errY := strconv.ParseFloat(string(m[2]), 64)
	if errX != nil || errY != nil {
		return 0, 0, false
	}
	return x, y, true
}

// dotKeyword reports whether id collides with a DOT reserved word, in which
// case the serializer always quotes it.
func dotKeyword(id string) bool {
	switch strings.ToLower(id) {
	case "graph", "digraph", "subgraph", "node", "edge", "strict":
		return true
	}
	return false
}

// quoteID reproduces how a node id appears in serialized DOT: quoted, with
// backslashes and double quotes escaped.
func quoteID(id string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(id)
	return `"` + escaped + `"`
}
