package layout

import (
	"github.com/jvalaj/gridai/pkg/diagram"
	"github.com/jvalaj/gridai/pkg/diagram/digraph"
)

// Strategy is a pure positioning function: given a graph view of the spec
// and the spacing configuration, it returns exactly one position per node.
// Strategies must be deterministic over the spec's input order and must
// terminate on cyclic input.
type Strategy func(g *digraph.Graph, cfg Config) map[string]Position

// strategyFor dispatches on the diagram type. Unknown or empty types route
// to the generic directed-graph strategy.
func strategyFor(t diagram.Type) Strategy {
	switch t {
	case diagram.TypeSequence:
		return sequenceLayout
	case diagram.TypeTree:
		return treeLayout
	case diagram.TypeFlowchart:
		return flowchartLayout
	case diagram.TypeStateMachine:
		return stateMachineLayout
	case diagram.TypeEntity, diagram.TypeClass:
		return gridLayout
	case diagram.TypeNetwork:
		return networkLayout
	case diagram.TypeTimeline:
		return timelineLayout
	case diagram.TypeDeployment:
		return deploymentLayout
	default:
		return directedGraphLayout
	}
}

// Positions runs the per-type strategy for the spec and returns one position
// per node id. This is the deterministic fallback path: it is pure
// computation and cannot fail. The caller is expected to have cleaned the
// spec; Positions cleans defensively so a raw spec cannot violate coverage.
func Positions(spec diagram.Spec, cfg Config) map[string]Position {
	spec = spec.Clean()
	g := digraph.FromSpec(spec)
	pos := strategyFor(spec.Type)(g, cfg)
	shiftNonNegative(pos)
	return pos
}
