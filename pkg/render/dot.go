package render

import (
	"bytes"
	"fmt"

	"github.com/jvalaj/gridai/pkg/diagram"
	"github.com/jvalaj/gridai/pkg/layout"
)

// ToDOT exports a laid-out diagram as Graphviz DOT with pinned positions.
// Node pos attributes carry the computed centers (in points, with a
// trailing ! so neato keeps them), which lets external Graphviz tooling
// reprocess the exact layout.
func ToDOT(spec diagram.Spec, res layout.Result, cfg layout.Config) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	if spec.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n", spec.Title)
	}
	buf.WriteString("  node [shape=box, style=rounded];\n")
	buf.WriteString("\n")

	for _, n := range spec.Nodes {
		pos, ok := res.Positions[n.ID]
		if !ok {
			continue
		}
		w, h := cfg.NodeWidth, cfg.NodeHeight
		fmt.Fprintf(&buf, "  %q [label=%q, pos=\"%.1f,%.1f!\", width=%.4f, height=%.4f];\n",
			n.ID, n.Label, pos.X+w/2, pos.Y+h/2, w/72.0, h/72.0)
	}

	buf.WriteString("\n")
	for _, e := range spec.Edges {
		if e.Label != "" {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.From, e.To, e.Label)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}
