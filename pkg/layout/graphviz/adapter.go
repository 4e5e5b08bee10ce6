// Package graphviz adapts the Graphviz dot engine as the external layout
// backend for the layout engine.
//
// The dot engine is a Sugiyama-style layered solver: it assigns ranks,
// breaks cycles internally, minimizes crossings and routes edges, producing
// noticeably better layouts than the pure per-type strategies for dense
// graphs. The adapter builds a DOT description of the spec (node boxes sized
// proportionally to their labels, rank direction from the diagram type),
// runs the solver, and reads node centers back out of the laid-out output.
//
// The adapter is allowed to fail: timeouts, solver errors and unparsable
// output all surface as errors, which the layout engine answers with its
// deterministic fallback. Nothing here is load-bearing for correctness.
package graphviz

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/jvalaj/gridai/pkg/diagram"
	"github.com/jvalaj/gridai/pkg/layout"
)

// DefaultTimeout bounds a single solver run. Layout must never block
// rendering for long; past the deadline the caller falls back.
const DefaultTimeout = 5 * time.Second

// Adapter runs the Graphviz dot engine. The zero value is not usable - use
// New. One Adapter can serve concurrent Compute calls; each call creates its
// own solver instance.
type Adapter struct {
	timeout time.Duration
	run     runner
}

// runner abstracts the solver invocation so tests can script failures
// without a Graphviz runtime.
type runner func(ctx context.Context, dot string) ([]byte, error)

// Option configures an Adapter.
type Option func(*Adapter)

// WithTimeout overrides the per-call solver deadline.
func WithTimeout(d time.Duration) Option {
	return func(a *Adapter) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// New creates an adapter with the given options.
func New(opts ...Option) *Adapter {
	a := &Adapter{timeout: DefaultTimeout, run: renderXDOT}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Compute implements [layout.Adapter]: it lays out the spec with the dot
// engine and returns one top-left position per node the solver placed.
// Callers treat an error, or any node missing from the map, as a signal to
// fall back.
func (a *Adapter) Compute(ctx context.Context, spec diagram.Spec, cfg layout.Config) (map[string]layout.Position, error) {
	if len(spec.Nodes) == 0 {
		return map[string]layout.Position{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	dot := BuildDOT(spec, cfg)
	out, err := a.run(ctx, dot)
	if err != nil {
		return nil, fmt.Errorf("dot engine: %w", err)
	}

	pos, err := ParsePositions(out, spec, cfg)
	if err != nil {
		return nil, fmt.Errorf("parse dot output: %w", err)
	}
	return pos, nil
}

// renderXDOT runs the dot engine and returns the laid-out graph in xdot
// form, which carries a pos attribute per node.
func renderXDOT(ctx context.Context, dot string) ([]byte, error) {
	g, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer g.Close()

	graph, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer graph.Close()

	var buf bytes.Buffer
	if err := g.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
