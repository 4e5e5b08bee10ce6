package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jvalaj/gridai/pkg/observability"
)

// cliLayoutHooks surfaces layout events in the terminal: engine fallbacks
// become visible warnings, timings go to the debug log.
type cliLayoutHooks struct {
	logger *log.Logger
}

func (h *cliLayoutHooks) OnLayoutStart(ctx context.Context, diagramType string, nodeCount int) {
	h.logger.Debug("layout start", "type", diagramType, "nodes", nodeCount)
}

func (h *cliLayoutHooks) OnLayoutComplete(ctx context.Context, diagramType string, d time.Duration) {
	h.logger.Debug("layout complete", "type", diagramType, "duration", d.Round(time.Millisecond))
}

func (h *cliLayoutHooks) OnEngineFallback(ctx context.Context, diagramType string, err error) {
	printWarning("external engine failed, using built-in %s strategy", diagramType)
	h.logger.Debug("engine fallback", "type", diagramType, "err", err)
}

// registerHooks installs the CLI observability hooks.
func (c *CLI) registerHooks() {
	observability.SetLayoutHooks(&cliLayoutHooks{logger: c.Logger})
}

// Ensure cliLayoutHooks implements the hook interface.
var _ observability.LayoutHooks = (*cliLayoutHooks)(nil)
