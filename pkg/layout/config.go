package layout

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Edge routing styles accepted by [Config.EdgeRouting].
// These affect only how the external engine routes connectors, never the
// node-coverage invariant.
const (
	RoutingStraight = "straight"
	RoutingCurved   = "curved"
	RoutingOrtho    = "ortho"
)

// Config holds the spacing constants shared by every layout strategy and the
// tuning knobs passed to the external engine. All values are in the abstract
// coordinate space of the produced positions.
//
// The zero value is not usable - start from [DefaultConfig].
type Config struct {
	// Node box used by the pure-Go strategies and edge anchoring.
	NodeWidth  float64 `toml:"node_width"`
	NodeHeight float64 `toml:"node_height"`

	// Gaps between adjacent node boxes.
	HGap float64 `toml:"h_gap"`
	VGap float64 `toml:"v_gap"`

	// TierGap separates deployment tiers; larger than VGap so tier rows
	// read as distinct bands.
	TierGap float64 `toml:"tier_gap"`

	// CircleRadius is the ring radius for state-machine and network layouts.
	// The network layout places its hub ring at InnerRatio of this radius.
	CircleRadius float64 `toml:"circle_radius"`
	InnerRatio   float64 `toml:"inner_ratio"`

	// Label-proportional sizing for the external engine:
	// width = clamp(MinNodeWidth, len(label)*CharWidth+IconAllowance+LabelPadding, MaxNodeWidth).
	CharWidth     float64 `toml:"char_width"`
	MinNodeWidth  float64 `toml:"min_node_width"`
	MaxNodeWidth  float64 `toml:"max_node_width"`
	LabelPadding  float64 `toml:"label_padding"`
	IconAllowance float64 `toml:"icon_allowance"`

	// External engine spacing and routing.
	RankSep     float64 `toml:"rank_sep"`
	NodeSep     float64 `toml:"node_sep"`
	EdgeRouting string  `toml:"edge_routing"`
}

// DefaultConfig returns the standard spacing constants.
func DefaultConfig() Config {
	return Config{
		NodeWidth:     160,
		NodeHeight:    60,
		HGap:          80,
		VGap:          40,
		TierGap:       100,
		CircleRadius:  260,
		InnerRatio:    0.45,
		CharWidth:     9,
		MinNodeWidth:  100,
		MaxNodeWidth:  280,
		LabelPadding:  24,
		IconAllowance: 28,
		RankSep:       70,
		NodeSep:       50,
		EdgeRouting:   RoutingCurved,
	}
}

// LoadConfigFile reads TOML overrides from path on top of the defaults.
// Keys absent from the file keep their default values.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// NodeSize returns the box the external engine should use for a label,
// applying the label-proportional width clamp. Height is fixed.
func (c Config) NodeSize(label string) (w, h float64) {
	w = float64(len(label))*c.CharWidth + c.IconAllowance + c.LabelPadding
	if w < c.MinNodeWidth {
		w = c.MinNodeWidth
	}
	if w > c.MaxNodeWidth {
		w = c.MaxNodeWidth
	}
	return w, c.NodeHeight
}
