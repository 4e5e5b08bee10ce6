// Package pkg provides the core libraries for gridai diagram layout.
//
// # Overview
//
// Gridai turns a diagram spec (nodes, edges, diagram type) into pixel
// positions and rendered output. The pkg directory is organized into:
//
//  1. [diagram] - The spec model: nodes, edges, diagram types, JSON codec
//  2. [layout] - Layout strategies, layer assignment, edge anchoring and
//     the engine that selects between them
//  3. [layout/graphviz] - External Sugiyama solver with built-in fallback
//  4. [render] - SVG rendering, themes, and PDF/PNG/DOT conversion
//  5. [cache] - Layout and artifact caching (memory, file, Redis)
//  6. [store] - Diagram persistence (memory, MongoDB)
//  7. [server] - The HTTP API used by the chat backend
//
// # Architecture
//
// The typical data flow:
//
//	Diagram Spec (JSON)
//	         ↓
//	    [diagram] package (decode + clean)
//	         ↓
//	    [layout] package (select strategy, place nodes, anchor edges)
//	         ↓
//	    [render] package (SVG, PDF, PNG, DOT)
//
// # Quick Start
//
// Compute a layout and render it:
//
//	import (
//	    "context"
//	    "github.com/jvalaj/gridai/pkg/diagram"
//	    "github.com/jvalaj/gridai/pkg/layout"
//	    "github.com/jvalaj/gridai/pkg/render"
//	)
//
//	spec, _ := diagram.ReadSpecFile("flow.json")
//	eng := layout.NewEngine(layout.DefaultConfig(), nil)
//	res := eng.Compute(context.Background(), spec)
//	svg := render.RenderSVG(spec, res)
//
// Layout never fails: when the external engine is unavailable or errors,
// the engine falls back to the pure-Go strategy for the diagram type.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/layout/...   # Specific package
//	go test -run Example       # Examples only
//
// [diagram]: https://pkg.go.dev/github.com/jvalaj/gridai/pkg/diagram
// [layout]: https://pkg.go.dev/github.com/jvalaj/gridai/pkg/layout
// [layout/graphviz]: https://pkg.go.dev/github.com/jvalaj/gridai/pkg/layout/graphviz
// [render]: https://pkg.go.dev/github.com/jvalaj/gridai/pkg/render
// [cache]: https://pkg.go.dev/github.com/jvalaj/gridai/pkg/cache
// [store]: https://pkg.go.dev/github.com/jvalaj/gridai/pkg/store
// [server]: https://pkg.go.dev/github.com/jvalaj/gridai/pkg/server
package pkg
