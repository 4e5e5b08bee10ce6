package diagram

import (
	"encoding/json"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name      string
		spec      Spec
		wantNodes []string
		wantEdges int
	}{
		{
			name:      "Empty",
			spec:      Spec{Type: TypeFlowchart},
			wantNodes: []string{},
			wantEdges: 0,
		},
		{
			name: "Valid",
			spec: Spec{
				Nodes: []Node{{ID: "a"}, {ID: "b"}},
				Edges: []Edge{{From: "a", To: "b"}},
			},
			wantNodes: []string{"a", "b"},
			wantEdges: 1,
		},
		{
			name: "DanglingEdgeSkipped",
			spec: Spec{
				Nodes: []Node{{ID: "a"}, {ID: "b"}},
				Edges: []Edge{{From: "a", To: "b"}, {From: "a", To: "ghost"}, {From: "ghost", To: "b"}},
			},
			wantNodes: []string{"a", "b"},
			wantEdges: 1,
		},
		{
			name: "DuplicateNodeFirstWins",
			spec: Spec{
				Nodes: []Node{{ID: "a", Label: "first"}, {ID: "a", Label: "second"}, {ID: "b"}},
			},
			wantNodes: []string{"a", "b"},
		},
		{
			name: "EmptyIDDropped",
			spec: Spec{
				Nodes: []Node{{ID: ""}, {ID: "a"}},
				Edges: []Edge{{From: "", To: "a"}},
			},
			wantNodes: []string{"a"},
			wantEdges: 0,
		},
		{
			name: "ParallelEdgesKept",
			spec: Spec{
				Nodes: []Node{{ID: "a"}, {ID: "b"}},
				Edges: []Edge{{From: "a", To: "b"}, {From: "a", To: "b", Label: "retry"}, {From: "b", To: "a"}},
			},
			wantNodes: []string{"a", "b"},
			wantEdges: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.spec.Clean()
			if len(got.Nodes) != len(tt.wantNodes) {
				t.Fatalf("nodes = %d, want %d", len(got.Nodes), len(tt.wantNodes))
			}
			for i, id := range tt.wantNodes {
				if got.Nodes[i].ID != id {
					t.Errorf("node[%d] = %q, want %q", i, got.Nodes[i].ID, id)
				}
			}
			if len(got.Edges) != tt.wantEdges {
				t.Errorf("edges = %d, want %d", len(got.Edges), tt.wantEdges)
			}
		})
	}
}

func TestCleanPreservesFirstDuplicate(t *testing.T) {
	spec := Spec{Nodes: []Node{{ID: "a", Label: "first"}, {ID: "a", Label: "second"}}}
	got := spec.Clean()
	if got.Nodes[0].Label != "first" {
		t.Errorf("label = %q, want first occurrence kept", got.Nodes[0].Label)
	}
}

func TestUnmarshalSpec(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  bool
		wantType Type
	}{
		{
			name:     "Flowchart",
			input:    `{"type":"flowchart","nodes":[{"id":"a"}]}`,
			wantType: TypeFlowchart,
		},
		{
			name:     "MissingTypeKeptEmpty",
			input:    `{"nodes":[{"id":"a"}]}`,
			wantType: "",
		},
		{
			name:    "Malformed",
			input:   `{"nodes":`,
			wantErr: true,
		},
		{
			name:     "UnknownTypePassedThrough",
			input:    `{"type":"mindmap","nodes":[]}`,
			wantType: Type("mindmap"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UnmarshalSpec([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("UnmarshalSpec: %v", err)
			}
			if got.Type != tt.wantType {
				t.Errorf("type = %q, want %q", got.Type, tt.wantType)
			}
		})
	}
}

func TestSpecRoundTrip(t *testing.T) {
	spec := Spec{
		Type:  TypeStateMachine,
		Title: "doors",
		Nodes: []Node{{ID: "open"}, {ID: "closed", Kind: "state"}},
		Edges: []Edge{{From: "open", To: "closed", Label: "shut"}},
	}

	data, err := MarshalSpec(spec)
	if err != nil {
		t.Fatalf("MarshalSpec: %v", err)
	}

	var got Spec
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Edges[0].Label != "shut" {
		t.Errorf("edge label = %q, want shut", got.Edges[0].Label)
	}
	if got.Nodes[1].Kind != "state" {
		t.Errorf("kind = %q, want state", got.Nodes[1].Kind)
	}
}

func TestDisplayLabel(t *testing.T) {
	if got := (Node{ID: "db", Label: "Postgres"}).DisplayLabel(); got != "Postgres" {
		t.Errorf("DisplayLabel = %q, want Postgres", got)
	}
	if got := (Node{ID: "db"}).DisplayLabel(); got != "db" {
		t.Errorf("DisplayLabel = %q, want db", got)
	}
}
