package diagram

import "slices"

// Type identifies the diagram semantics a spec carries. The layout engine
// selects a positioning strategy based on this tag; unknown values route to
// the generic directed-graph strategy rather than failing.
type Type string

// Recognized diagram types.
const (
	TypeSequence     Type = "sequence"
	TypeTree         Type = "tree"
	TypeFlowchart    Type = "flowchart"
	TypeDirected     Type = "directed-graph"
	TypeStateMachine Type = "state-machine"
	TypeEntity       Type = "entity-relationship"
	TypeClass        Type = "class-diagram"
	TypeNetwork      Type = "network"
	TypeTimeline     Type = "timeline"
	TypeDeployment   Type = "deployment"
)

// Types lists every recognized diagram type.
// Useful for CLI flag validation and completion.
func Types() []Type {
	return []Type{
		TypeSequence, TypeTree, TypeFlowchart, TypeDirected, TypeStateMachine,
		TypeEntity, TypeClass, TypeNetwork, TypeTimeline, TypeDeployment,
	}
}

// KindNote marks annotation nodes. The layout engine treats node kinds as
// opaque; the rendering collaborator may exempt notes from standard sizing.
const KindNote = "note"

// Node is a single diagram element. Kind is an open vocabulary ("service",
// "database", "actor", ...) that only affects downstream visual mapping.
type Node struct {
	ID    string `json:"id" bson:"id"`
	Label string `json:"label,omitempty" bson:"label,omitempty"`
	Kind  string `json:"kind,omitempty" bson:"kind,omitempty"`
}

// IsNote reports whether the node is an annotation.
func (n Node) IsNote() bool { return n.Kind == KindNote }

// DisplayLabel returns the label if set, otherwise the ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge is a directed connection between two nodes. Multiple edges between the
// same pair (parallel or opposing) are allowed; layout must not assume
// uniqueness per pair.
type Edge struct {
	From  string `json:"from" bson:"from"`
	To    string `json:"to" bson:"to"`
	Label string `json:"label,omitempty" bson:"label,omitempty"`
}

// Spec is the complete diagram description handed to the layout engine.
// It is treated as an immutable input; layout results are computed fresh per
// invocation and never stored back onto the spec.
type Spec struct {
	ID    string `json:"id,omitempty" bson:"_id,omitempty"`
	Type  Type   `json:"type" bson:"type"`
	Title string `json:"title,omitempty" bson:"title,omitempty"`
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges,omitempty" bson:"edges,omitempty"`
}

// Clean returns a copy of the spec with structural problems repaired:
// nodes with empty or duplicate ids are dropped (first occurrence wins), and
// edges referencing a missing node id are skipped. Input order is preserved
// so cleaning never changes layout determinism.
func (s Spec) Clean() Spec {
	out := Spec{ID: s.ID, Type: s.Type, Title: s.Title}

	seen := make(map[string]bool, len(s.Nodes))
	for _, n := range s.Nodes {
		if n.ID == "" || seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		out.Nodes = append(out.Nodes, n)
	}

	for _, e := range s.Edges {
		if !seen[e.From] || !seen[e.To] {
			continue
		}
		out.Edges = append(out.Edges, e)
	}

	return out
}

// Node returns the node with the given ID and true, or a zero Node and false.
func (s Spec) Node(id string) (Node, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// NodeIDs returns the node ids in input order.
func (s Spec) NodeIDs() []string {
	ids := make([]string, len(s.Nodes))
	for i, n := range s.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// HasNode reports whether a node with the given id exists.
func (s Spec) HasNode(id string) bool {
	return slices.ContainsFunc(s.Nodes, func(n Node) bool { return n.ID == id })
}
