package layout

import (
	"testing"

	"github.com/jvalaj/gridai/pkg/diagram"
	"github.com/jvalaj/gridai/pkg/diagram/digraph"
)

func graphOf(nodes []string, edges [][2]string) *digraph.Graph {
	spec := diagram.Spec{}
	for _, id := range nodes {
		spec.Nodes = append(spec.Nodes, diagram.Node{ID: id})
	}
	for _, e := range edges {
		spec.Edges = append(spec.Edges, diagram.Edge{From: e[0], To: e[1]})
	}
	return digraph.FromSpec(spec)
}

func TestAssignLayers(t *testing.T) {
	tests := []struct {
		name  string
		nodes []string
		edges [][2]string
		want  map[string]int
	}{
		{
			name:  "Empty",
			nodes: nil,
			want:  map[string]int{},
		},
		{
			name:  "Chain",
			nodes: []string{"a", "b", "c"},
			edges: [][2]string{{"a", "b"}, {"b", "c"}},
			want:  map[string]int{"a": 0, "b": 1, "c": 2},
		},
		{
			name:  "DiamondKeepsMaxLayer",
			nodes: []string{"a", "b", "c", "d"},
			edges: [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}},
			want:  map[string]int{"a": 0, "b": 1, "c": 1, "d": 2},
		},
		{
			name:  "SharedDescendantPushedBelowLongestPath",
			nodes: []string{"a", "b", "c", "d"},
			edges: [][2]string{{"a", "d"}, {"a", "b"}, {"b", "c"}, {"c", "d"}},
			want:  map[string]int{"a": 0, "b": 1, "c": 2, "d": 3},
		},
		{
			name:  "PureCycleFirstNodeIsRoot",
			nodes: []string{"a", "b", "c"},
			edges: [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}},
			want:  map[string]int{"a": 0, "b": 1, "c": 2},
		},
		{
			name:  "DisconnectedNodeAtLayerZero",
			nodes: []string{"a", "b", "x"},
			edges: [][2]string{{"a", "b"}},
			want:  map[string]int{"a": 0, "b": 1, "x": 0},
		},
		{
			name:  "NoEdgesAllRoots",
			nodes: []string{"a", "b"},
			want:  map[string]int{"a": 0, "b": 0},
		},
		{
			name:  "SelfLoopIgnored",
			nodes: []string{"a", "b"},
			edges: [][2]string{{"a", "a"}, {"a", "b"}},
			want:  map[string]int{"a": 0, "b": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AssignLayers(graphOf(tt.nodes, tt.edges))
			if len(got) != len(tt.want) {
				t.Fatalf("layer count = %d, want %d", len(got), len(tt.want))
			}
			for id, want := range tt.want {
				if got[id] != want {
					t.Errorf("layer(%s) = %d, want %d", id, got[id], want)
				}
			}
		})
	}
}

func TestAssignLayersCycleWithTailTerminates(t *testing.T) {
	// Cycle reachable from a root, with a tail hanging off it.
	g := graphOf(
		[]string{"r", "a", "b", "c", "t"},
		[][2]string{{"r", "a"}, {"a", "b"}, {"b", "c"}, {"c", "a"}, {"c", "t"}},
	)
	layers := AssignLayers(g)

	if len(layers) != 5 {
		t.Fatalf("layer count = %d, want 5", len(layers))
	}
	for id, l := range layers {
		if l < 0 {
			t.Errorf("layer(%s) = %d, want non-negative", id, l)
		}
	}
	if layers["r"] != 0 {
		t.Errorf("layer(r) = %d, want 0", layers["r"])
	}
}

func TestAssignLayersMonotonicOnAcyclic(t *testing.T) {
	g := graphOf(
		[]string{"a", "b", "c", "d", "e"},
		[][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}, {"d", "e"}},
	)
	layers := AssignLayers(g)

	for _, e := range g.Edges() {
		if layers[e.To] < layers[e.From]+1 {
			t.Errorf("edge %s->%s: layer(%s)=%d < layer(%s)+1=%d",
				e.From, e.To, e.To, layers[e.To], e.From, layers[e.From]+1)
		}
	}
}
