package cli

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jvalaj/gridai/pkg/cache"
	"github.com/jvalaj/gridai/pkg/diagram"
	"github.com/jvalaj/gridai/pkg/errors"
	"github.com/jvalaj/gridai/pkg/layout"
	"github.com/jvalaj/gridai/pkg/layout/graphviz"
)

// Engine selector values for the --engine flag.
const (
	engineDot  = "dot"
	engineNone = "none"
)

// newEngine builds a layout engine for the requested external backend.
func newEngine(cfg layout.Config, engineName string, timeoutSec int, logger *log.Logger) (*layout.Engine, error) {
	var external layout.Adapter
	switch engineName {
	case engineDot:
		external = graphviz.New(graphviz.WithTimeout(time.Duration(timeoutSec) * time.Second))
	case engineNone, "":
		external = nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown engine %q (use dot or none)", engineName)
	}
	return layout.NewEngine(cfg, external).WithLogger(logger), nil
}

// computeCached runs layout with the local result cache in front. The
// returned bool reports whether the result came from cache. Cache failures
// degrade silently; layout itself never fails.
func computeCached(ctx context.Context, eng *layout.Engine, c cache.Cache, cfg layout.Config, engineName string, spec diagram.Spec) (layout.Result, bool) {
	logger := loggerFromContext(ctx)

	cfgData, _ := json.Marshal(cfg)
	specData, _ := diagram.MarshalSpec(spec)
	key := cache.NewDefaultKeyer().LayoutKey(cache.Hash(specData), cache.LayoutKeyOpts{
		DiagramType: string(spec.Type),
		Engine:      engineName,
		ConfigHash:  cache.Hash(cfgData),
	})

	if data, hit, err := c.Get(ctx, key); err == nil && hit {
		var res layout.Result
		if err := json.Unmarshal(data, &res); err == nil {
			return res, true
		}
	} else if err != nil {
		logger.Debug("layout cache get failed", "err", err)
	}

	res := eng.Compute(ctx, spec)

	if data, err := json.Marshal(res); err == nil {
		if err := c.Set(ctx, key, data, 0); err != nil {
			logger.Debug("layout cache set failed", "err", err)
		}
	}
	return res, false
}
