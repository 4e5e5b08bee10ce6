package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jvalaj/gridai/pkg/diagram"
)

// layoutCommand creates the layout command for computing node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output        string
		configPath    string
		engineName    string
		noCache       bool
		engineTimeout int
	)

	cmd := &cobra.Command{
		Use:   "layout [spec.json]",
		Short: "Compute node positions for a diagram spec",
		Long: `Compute node positions for a diagram spec.

The layout command takes a spec file (nodes, edges, diagram type) and
computes a pixel position for every node, plus anchored edge endpoints.
The output is a layout.json file that can be rendered to SVG/PNG/PDF
using the 'render' command.

By default the Graphviz dot engine refines the placement; if it fails the
built-in per-type strategy takes over, so layout always succeeds.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], output, configPath, engineName, noCache, engineTimeout)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVar(&configPath, "config", "", "layout config TOML file")
	cmd.Flags().StringVar(&engineName, "engine", engineDot, "external layout engine: dot (default), none")
	cmd.Flags().IntVar(&engineTimeout, "engine-timeout", defaultEngineTimeout, "timeout in seconds for the external engine")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runLayout loads the spec, computes positions, and writes output.
func (c *CLI) runLayout(ctx context.Context, input, output, configPath, engineName string, noCache bool, engineTimeout int) error {
	spec, err := diagram.ReadSpecFile(input)
	if err != nil {
		return fmt.Errorf("load spec %s: %w", input, err)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config %s: %w", configPath, err)
	}

	eng, err := newEngine(cfg, engineName, engineTimeout, c.Logger)
	if err != nil {
		return err
	}

	localCache, err := newCache(noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer localCache.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", spec.Type))
	spinner.Start()
	res, cacheHit := computeCached(ctx, eng, localCache, cfg, engineName, spec)
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := writeDocument(layoutDocument{Spec: spec, Layout: &res}, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(spec.Nodes), len(spec.Edges), cacheHit)
	printNewline()
	printNextStep("Render", "gridai render "+outputPath)

	return nil
}
