package layout

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jvalaj/gridai/pkg/diagram"
	"github.com/jvalaj/gridai/pkg/observability"
)

// Adapter computes positions through an external layered-layout engine. It
// is the engine's only asynchronous collaborator: it may block on ctx, and
// it may fail or return a partial result. The engine treats any error, and
// any node missing from the returned map, as a reason to use the fallback
// strategy for those nodes.
type Adapter interface {
	Compute(ctx context.Context, spec diagram.Spec, cfg Config) (map[string]Position, error)
}

// Engine turns diagram specs into renderable geometry. It prefers the
// external adapter for higher-quality layered layouts and falls back to the
// deterministic per-type strategies whenever the adapter fails or omits
// nodes, so Compute never fails.
//
// Engine is stateless apart from its collaborators; one Engine can serve
// concurrent Compute calls.
type Engine struct {
	cfg      Config
	external Adapter
	logger   *log.Logger
}

// NewEngine creates an engine with the given spacing configuration.
// external may be nil, in which case only the per-type strategies run.
func NewEngine(cfg Config, external Adapter) *Engine {
	return &Engine{cfg: cfg, external: external, logger: log.Default()}
}

// WithLogger sets the logger used for fallback warnings and returns the
// engine for chaining.
func (e *Engine) WithLogger(l *log.Logger) *Engine {
	if l != nil {
		e.logger = l
	}
	return e
}

// Config returns the engine's spacing configuration.
func (e *Engine) Config() Config { return e.cfg }

// Compute produces the complete geometry for a spec: one position per node
// and boundary-anchored endpoints per edge. It cannot fail - external engine
// errors degrade to the per-type fallback and are logged at warning level,
// edges referencing missing nodes are skipped, and an empty spec yields an
// empty result.
func (e *Engine) Compute(ctx context.Context, spec diagram.Spec) Result {
	spec = spec.Clean()

	start := time.Now()
	observability.Layout().OnLayoutStart(ctx, string(spec.Type), len(spec.Nodes))

	pos := e.positions(ctx, spec)
	res := e.assemble(spec, pos)

	observability.Layout().OnLayoutComplete(ctx, string(spec.Type), time.Since(start))
	return res
}

// positions runs the external adapter when available, completing or
// replacing its output with the per-type strategy as needed.
func (e *Engine) positions(ctx context.Context, spec diagram.Spec) map[string]Position {
	if e.external == nil || len(spec.Nodes) == 0 {
		return Positions(spec, e.cfg)
	}

	pos, err := e.external.Compute(ctx, spec, e.cfg)
	if err != nil {
		e.logger.Warn("external layout engine failed, using per-type fallback",
			"type", spec.Type, "nodes", len(spec.Nodes), "err", err)
		observability.Layout().OnEngineFallback(ctx, string(spec.Type), err)
		return Positions(spec, e.cfg)
	}

	// Merge rule: nodes the external engine omitted are positioned by the
	// fallback strategy rather than dropped. Rebuilding over spec.Nodes also
	// discards any surplus ids the engine may have invented, keeping the
	// coverage invariant exact.
	out := make(map[string]Position, len(spec.Nodes))
	var fallback map[string]Position
	missing := 0
	for _, n := range spec.Nodes {
		if p, ok := pos[n.ID]; ok {
			out[n.ID] = p
			continue
		}
		if fallback == nil {
			fallback = Positions(spec, e.cfg)
		}
		out[n.ID] = fallback[n.ID]
		missing++
	}
	if missing > 0 {
		e.logger.Warn("external layout engine omitted nodes, merged from fallback",
			"type", spec.Type, "missing", missing)
	}
	shiftNonNegative(out)
	return out
}

// assemble anchors every edge on the computed positions and measures the
// bounding frame.
func (e *Engine) assemble(spec diagram.Spec, pos map[string]Position) Result {
	res := Result{Positions: pos}
	for _, edge := range spec.Edges {
		from, okF := pos[edge.From]
		to, okT := pos[edge.To]
		if !okF || !okT {
			continue
		}
		start, end := EdgeEndpoints(from, to, e.cfg.NodeWidth, e.cfg.NodeHeight)
		res.Edges = append(res.Edges, EdgeGeometry{
			From:  edge.From,
			To:    edge.To,
			Label: edge.Label,
			Start: start,
			End:   end,
		})
	}
	res.Width, res.Height = frame(pos, e.cfg)
	return res
}
