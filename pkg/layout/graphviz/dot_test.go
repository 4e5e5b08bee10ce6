package graphviz

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jvalaj/gridai/pkg/diagram"
	"github.com/jvalaj/gridai/pkg/layout"
)

func flowSpec() diagram.Spec {
	return diagram.Spec{
		Type: diagram.TypeFlowchart,
		Nodes: []diagram.Node{
			{ID: "start", Label: "Start"},
			{ID: "check", Label: "Valid?"},
			{ID: "done", Label: "Done"},
		},
		Edges: []diagram.Edge{
			{From: "start", To: "check"},
			{From: "check", To: "done"},
		},
	}
}

func TestBuildDOTRankDir(t *testing.T) {
	cases := []struct {
		typ  diagram.Type
		want string
	}{
		{diagram.TypeFlowchart, "rankdir=TB"},
		{diagram.TypeTree, "rankdir=TB"},
		{diagram.TypeDeployment, "rankdir=TB"},
		{diagram.TypeDirected, "rankdir=LR"},
		{diagram.TypeSequence, "rankdir=LR"},
		{diagram.Type("mystery"), "rankdir=LR"},
	}

	for _, tc := range cases {
		t.Run(string(tc.typ), func(t *testing.T) {
			spec := flowSpec()
			spec.Type = tc.typ
			dot := BuildDOT(spec, layout.DefaultConfig())
			if !strings.Contains(dot, tc.want) {
				t.Errorf("BuildDOT missing %q:\n%s", tc.want, dot)
			}
		})
	}
}

func TestBuildDOTNodesAndEdges(t *testing.T) {
	spec := flowSpec()
	spec.Edges = append(spec.Edges, diagram.Edge{From: "check", To: "check"})
	dot := BuildDOT(spec, layout.DefaultConfig())

	for _, want := range []string{
		`"start" [width=`,
		`"check" [width=`,
		`"done" [width=`,
		`"start" -> "check";`,
		`"check" -> "done";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("BuildDOT missing %q:\n%s", want, dot)
		}
	}

	if strings.Contains(dot, `"check" -> "check"`) {
		t.Errorf("BuildDOT kept self-loop:\n%s", dot)
	}
}

func TestBuildDOTSplines(t *testing.T) {
	cases := []struct {
		routing string
		want    string
	}{
		{layout.RoutingStraight, "splines=line"},
		{layout.RoutingCurved, "splines=curved"},
		{layout.RoutingOrtho, "splines=ortho"},
		{"", "splines=curved"},
	}

	for _, tc := range cases {
		cfg := layout.DefaultConfig()
		cfg.EdgeRouting = tc.routing
		dot := BuildDOT(flowSpec(), cfg)
		if !strings.Contains(dot, tc.want) {
			t.Errorf("routing %q: BuildDOT missing %q", tc.routing, tc.want)
		}
	}
}

// xdot output trimmed to the statements the parser cares about. Simple ids
// come back bare, ids with special characters stay quoted.
const sampleXDOT = `digraph G {
	graph [bb="0,0,400,300", rankdir=TB];
	node [fixedsize=true, label="", shape=box];
	start	[height=0.8333, pos="100,250", width=2.2];
	check	[height=0.8333, pos="100,150", width=2.2];
	"api/v1"	[height=0.8333, pos="300,50.5", width=2.2];
	start -> check	[pos="e,100,180 100,220 100,210 100,200 100,190"];
}
`

func TestParsePositions(t *testing.T) {
	cfg := layout.DefaultConfig()
	spec := diagram.Spec{
		Type: diagram.TypeFlowchart,
		Nodes: []diagram.Node{
			{ID: "start", Label: "Start"},
			{ID: "check", Label: "Valid?"},
			{ID: "api/v1", Label: "API"},
		},
	}

	pos, err := ParsePositions([]byte(sampleXDOT), spec, cfg)
	if err != nil {
		t.Fatalf("ParsePositions: %v", err)
	}
	if len(pos) != 3 {
		t.Fatalf("got %d positions, want 3: %v", len(pos), pos)
	}

	w, h := cfg.NodeSize("Start")
	want := layout.Position{X: 100 - w/2, Y: -250 - h/2}
	if pos["start"] != want {
		t.Errorf("start = %+v, want %+v", pos["start"], want)
	}

	// Larger dot Y means higher on screen, so start must end above check.
	if pos["start"].Y >= pos["check"].Y {
		t.Errorf("start.Y = %v not above check.Y = %v", pos["start"].Y, pos["check"].Y)
	}

	w, h = cfg.NodeSize("API")
	want = layout.Position{X: 300 - w/2, Y: -50.5 - h/2}
	if pos["api/v1"] != want {
		t.Errorf("api/v1 = %+v, want %+v", pos["api/v1"], want)
	}
}

func TestParsePositionsMissingNode(t *testing.T) {
	spec := diagram.Spec{
		Nodes: []diagram.Node{
			{ID: "start", Label: "Start"},
			{ID: "orphan", Label: "Orphan"},
		},
	}

	pos, err := ParsePositions([]byte(sampleXDOT), spec, layout.DefaultConfig())
	if err != nil {
		t.Fatalf("ParsePositions: %v", err)
	}
	if _, ok := pos["orphan"]; ok {
		t.Error("orphan should be absent from the result")
	}
	if _, ok := pos["start"]; !ok {
		t.Error("start should still be placed")
	}
}

func TestParsePositionsNoOutput(t *testing.T) {
	spec := diagram.Spec{Nodes: []diagram.Node{{ID: "a", Label: "A"}}}
	if _, err := ParsePositions([]byte("digraph G {}\n"), spec, layout.DefaultConfig()); err == nil {
		t.Error("expected error for output without positions")
	}
}

func TestParsePositionsSkipsKeywordDefaults(t *testing.T) {
	// A node literally named "node" must not match the node-defaults
	// statement; the serializer always quotes it.
	xdot := "digraph G {\n\tnode [label=\"\", shape=box];\n\t\"node\"\t[height=0.8, pos=\"10,20\", width=2];\n}\n"
	spec := diagram.Spec{Nodes: []diagram.Node{{ID: "node", Label: "node"}}}

	pos, err := ParsePositions([]byte(xdot), spec, layout.DefaultConfig())
	if err != nil {
		t.Fatalf("ParsePositions: %v", err)
	}
	if _, ok := pos["node"]; !ok {
		t.Fatalf("node not placed: %v", pos)
	}
}

func TestAdapterEmptySpec(t *testing.T) {
	pos, err := New().Compute(context.Background(), diagram.Spec{}, layout.DefaultConfig())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if len(pos) != 0 {
		t.Errorf("got %d positions, want 0", len(pos))
	}
}

func TestAdapterSolverFailure(t *testing.T) {
	a := New()
	a.run = func(ctx context.Context, dot string) ([]byte, error) {
		return nil, errors.New("boom")
	}

	if _, err := a.Compute(context.Background(), flowSpec(), layout.DefaultConfig()); err == nil {
		t.Error("expected error when the solver fails")
	}
}

func TestAdapterScriptedRun(t *testing.T) {
	a := New()
	var gotDOT string
	a.run = func(ctx context.Context, dot string) ([]byte, error) {
		gotDOT = dot
		return []byte(sampleXDOT), nil
	}

	pos, err := a.Compute(context.Background(), flowSpec(), layout.DefaultConfig())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if !strings.Contains(gotDOT, "digraph G {") {
		t.Errorf("solver did not receive DOT input:\n%s", gotDOT)
	}
	if len(pos) != 2 {
		t.Errorf("got %d positions, want 2 (done is not in the canned output)", len(pos))
	}
}
