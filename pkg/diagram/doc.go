// Package diagram defines the abstract diagram description that is the sole
// input to the layout engine.
//
// A [Spec] is produced by an external collaborator (typically a parser over a
// language-model response) and consumed as an immutable value: a diagram type
// tag, a title, a list of nodes and a list of directed edges. The package also
// provides the JSON codec used for files, caching and the HTTP API.
//
// # Validation Policy
//
// Specs are never rejected for structural problems. [Spec.Clean] drops edges
// that reference missing node ids and deduplicates node ids, so downstream
// layout code can assume every edge endpoint resolves. A diagram with zero
// nodes is valid and produces an empty layout.
//
// # Example
//
//	spec := diagram.Spec{
//	    Type:  diagram.TypeFlowchart,
//	    Title: "Login flow",
//	    Nodes: []diagram.Node{{ID: "start"}, {ID: "check"}, {ID: "done"}},
//	    Edges: []diagram.Edge{{From: "start", To: "check"}, {From: "check", To: "done"}},
//	}
//	spec = spec.Clean()
package diagram
