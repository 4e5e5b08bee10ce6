package layout

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/jvalaj/gridai/pkg/diagram"
)

// fakeAdapter scripts the external engine's behavior for fallback tests.
type fakeAdapter struct {
	pos   map[string]Position
	err   error
	calls int
}

func (f *fakeAdapter) Compute(ctx context.Context, spec diagram.Spec, cfg Config) (map[string]Position, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]Position, len(f.pos))
	for k, v := range f.pos {
		out[k] = v
	}
	return out, nil
}

func testSpec() diagram.Spec {
	return diagram.Spec{
		Type:  diagram.TypeFlowchart,
		Nodes: []diagram.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Edges: []diagram.Edge{{From: "a", To: "b"}, {From: "b", To: "c"}},
	}
}

func TestEngineUsesExternalResult(t *testing.T) {
	ext := &fakeAdapter{pos: map[string]Position{
		"a": {X: 0, Y: 0}, "b": {X: 10, Y: 100}, "c": {X: 20, Y: 200},
	}}
	eng := NewEngine(DefaultConfig(), ext)

	res := eng.Compute(context.Background(), testSpec())
	if ext.calls != 1 {
		t.Fatalf("adapter calls = %d, want 1", ext.calls)
	}
	if len(res.Positions) != 3 {
		t.Fatalf("positions = %d, want 3", len(res.Positions))
	}
	if res.Positions["b"] != (Position{X: 10, Y: 100}) {
		t.Errorf("external position not used: %+v", res.Positions["b"])
	}
}

func TestEngineFallsBackOnError(t *testing.T) {
	ext := &fakeAdapter{err: errors.New("engine unavailable")}
	eng := NewEngine(DefaultConfig(), ext)
	spec := testSpec()

	res := eng.Compute(context.Background(), spec)
	if len(res.Positions) != len(spec.Nodes) {
		t.Fatalf("fallback positions = %d, want %d", len(res.Positions), len(spec.Nodes))
	}

	// The fallback must match the pure per-type strategy exactly.
	want := Positions(spec, DefaultConfig())
	if !reflect.DeepEqual(res.Positions, want) {
		t.Errorf("fallback differs from per-type strategy:\n got %+v\nwant %+v", res.Positions, want)
	}
}

func TestEngineMergesPartialResult(t *testing.T) {
	// External engine omits "c"; it must be filled from the fallback, not
	// dropped.
	ext := &fakeAdapter{pos: map[string]Position{
		"a": {X: 0, Y: 0}, "b": {X: 0, Y: 100},
	}}
	eng := NewEngine(DefaultConfig(), ext)

	res := eng.Compute(context.Background(), testSpec())
	if len(res.Positions) != 3 {
		t.Fatalf("positions = %d, want 3 after merge", len(res.Positions))
	}
	if _, ok := res.Positions["c"]; !ok {
		t.Error("omitted node c not merged from fallback")
	}
}

func TestEngineDiscardsSurplusNodes(t *testing.T) {
	ext := &fakeAdapter{pos: map[string]Position{
		"a": {}, "b": {X: 0, Y: 100}, "c": {X: 0, Y: 200}, "ghost": {X: 9, Y: 9},
	}}
	eng := NewEngine(DefaultConfig(), ext)

	res := eng.Compute(context.Background(), testSpec())
	if _, ok := res.Positions["ghost"]; ok {
		t.Error("surplus node from external engine leaked into result")
	}
}

func TestEngineWithoutAdapter(t *testing.T) {
	eng := NewEngine(DefaultConfig(), nil)
	res := eng.Compute(context.Background(), testSpec())
	if len(res.Positions) != 3 {
		t.Fatalf("positions = %d, want 3", len(res.Positions))
	}
	if len(res.Edges) != 2 {
		t.Fatalf("edges = %d, want 2", len(res.Edges))
	}
}

func TestEngineEmptySpec(t *testing.T) {
	eng := NewEngine(DefaultConfig(), &fakeAdapter{err: errors.New("must not be called")})
	res := eng.Compute(context.Background(), diagram.Spec{Type: diagram.TypeTree})
	if len(res.Positions) != 0 || len(res.Edges) != 0 {
		t.Errorf("empty spec should produce empty result: %+v", res)
	}
	if res.Width != 0 || res.Height != 0 {
		t.Errorf("empty spec frame = %vx%v, want 0x0", res.Width, res.Height)
	}
}

func TestEngineSkipsDanglingEdges(t *testing.T) {
	spec := diagram.Spec{
		Type:  diagram.TypeDirected,
		Nodes: []diagram.Node{{ID: "a"}, {ID: "b"}},
		Edges: []diagram.Edge{{From: "a", To: "b"}, {From: "a", To: "ghost"}},
	}
	eng := NewEngine(DefaultConfig(), nil)
	res := eng.Compute(context.Background(), spec)

	if len(res.Edges) != 1 {
		t.Fatalf("edges = %d, want dangling edge skipped", len(res.Edges))
	}
	if len(res.Positions) != 2 {
		t.Fatalf("positions = %d, want 2", len(res.Positions))
	}
}

func TestEngineKeepsParallelEdges(t *testing.T) {
	spec := diagram.Spec{
		Type:  diagram.TypeDirected,
		Nodes: []diagram.Node{{ID: "a"}, {ID: "b"}},
		Edges: []diagram.Edge{
			{From: "a", To: "b", Label: "req"},
			{From: "a", To: "b", Label: "retry"},
			{From: "b", To: "a", Label: "ack"},
		},
	}
	eng := NewEngine(DefaultConfig(), nil)
	res := eng.Compute(context.Background(), spec)

	if len(res.Positions) != 2 {
		t.Fatalf("positions = %d, want 2", len(res.Positions))
	}
	if len(res.Edges) != len(spec.Edges) {
		t.Fatalf("edge geometries = %d, want one per input edge (%d)", len(res.Edges), len(spec.Edges))
	}
	for i, e := range res.Edges {
		want := spec.Edges[i]
		if e.From != want.From || e.To != want.To || e.Label != want.Label {
			t.Errorf("edge %d = %s->%s %q, want %s->%s %q",
				i, e.From, e.To, e.Label, want.From, want.To, want.Label)
		}
	}
}

func TestEngineEdgeGeometryAnchored(t *testing.T) {
	cfg := DefaultConfig()
	eng := NewEngine(cfg, nil)
	res := eng.Compute(context.Background(), testSpec())

	for _, e := range res.Edges {
		from := res.Positions[e.From]
		to := res.Positions[e.To]
		wantStart, wantEnd := EdgeEndpoints(from, to, cfg.NodeWidth, cfg.NodeHeight)
		if e.Start != wantStart || e.End != wantEnd {
			t.Errorf("edge %s->%s endpoints %+v..%+v, want %+v..%+v",
				e.From, e.To, e.Start, e.End, wantStart, wantEnd)
		}
	}
}

func TestEngineFrameCoversAllNodes(t *testing.T) {
	cfg := DefaultConfig()
	eng := NewEngine(cfg, nil)
	res := eng.Compute(context.Background(), testSpec())

	for id, p := range res.Positions {
		if p.X+cfg.NodeWidth > res.Width || p.Y+cfg.NodeHeight > res.Height {
			t.Errorf("node %s box exceeds frame %vx%v", id, res.Width, res.Height)
		}
	}
}
