package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jvalaj/gridai/pkg/errors"
	"github.com/jvalaj/gridai/pkg/render"
)

// Output formats for the render command.
const (
	formatSVG = "svg"
	formatPDF = "pdf"
	formatPNG = "png"
	formatDOT = "dot"
)

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatSVG}
	}
	return strings.Split(s, ",")
}

// validateFormats checks every requested output format.
func validateFormats(formats []string) error {
	for _, f := range formats {
		switch f {
		case formatSVG, formatPDF, formatPNG, formatDOT:
		default:
			return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (use svg, pdf, png or dot)", f)
		}
	}
	return nil
}

// renderCommand creates the render command for producing visual output.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr    string
		themeName     string
		output        string
		scale         float64
		configPath    string
		engineName    string
		noCache       bool
		engineTimeout int
	)

	cmd := &cobra.Command{
		Use:   "render [layout.json|spec.json]",
		Short: "Render a diagram as SVG, PDF, PNG, or DOT",
		Long: `Render a diagram as SVG, PDF, PNG, or DOT.

The render command takes a layout.json file (produced by 'layout') and
draws it. Given a bare spec file instead, it computes the layout first,
so 'gridai render diagram.json' is the one-step path from spec to image.

PNG and PDF output require librsvg (rsvg-convert) to be installed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if err := validateFormats(formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], renderParams{
				formats:       formats,
				theme:         themeName,
				output:        output,
				scale:         scale,
				configPath:    configPath,
				engineName:    engineName,
				noCache:       noCache,
				engineTimeout: engineTimeout,
			})
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), pdf, png, dot (comma-separated)")
	cmd.Flags().StringVar(&themeName, "theme", "light", "color theme: light (default), dark")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().Float64Var(&scale, "scale", 2.0, "raster scale factor for PNG output")
	cmd.Flags().StringVar(&configPath, "config", "", "layout config TOML file")
	cmd.Flags().StringVar(&engineName, "engine", engineDot, "external layout engine: dot (default), none")
	cmd.Flags().IntVar(&engineTimeout, "engine-timeout", defaultEngineTimeout, "timeout in seconds for the external engine")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

type renderParams struct {
	formats       []string
	theme         string
	output        string
	scale         float64
	configPath    string
	engineName    string
	noCache       bool
	engineTimeout int
}

// runRender loads the document, computes a layout if needed, and writes the
// requested artifacts.
func (c *CLI) runRender(ctx context.Context, input string, p renderParams) error {
	doc, err := readDocument(input)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}

	cfg, err := loadConfig(p.configPath)
	if err != nil {
		return fmt.Errorf("load config %s: %w", p.configPath, err)
	}

	cacheHit := false
	if doc.Layout == nil {
		eng, err := newEngine(cfg, p.engineName, p.engineTimeout, c.Logger)
		if err != nil {
			return err
		}
		localCache, err := newCache(p.noCache)
		if err != nil {
			return fmt.Errorf("initialize cache: %w", err)
		}
		defer localCache.Close()

		spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", doc.Spec.Type))
		spinner.Start()
		res, hit := computeCached(ctx, eng, localCache, cfg, p.engineName, doc.Spec)
		spinner.Stop()
		doc.Layout, cacheHit = &res, hit
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	svg := render.RenderSVG(doc.Spec, *doc.Layout,
		render.WithTheme(render.ThemeByName(p.theme)),
		render.WithConfig(cfg))

	var paths []string
	for _, format := range p.formats {
		var data []byte
		switch format {
		case formatSVG:
			data = svg
		case formatPDF:
			if data, err = render.ToPDF(svg); err != nil {
				return err
			}
		case formatPNG:
			if data, err = render.ToPNG(svg, p.scale); err != nil {
				return err
			}
		case formatDOT:
			data = []byte(render.ToDOT(doc.Spec, *doc.Layout, cfg))
		}

		path := outputPath(input, p.output, format, len(p.formats) > 1)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	printSuccess("Render complete")
	for _, path := range paths {
		printFile(path)
	}
	printStats(len(doc.Spec.Nodes), len(doc.Spec.Edges), cacheHit)

	return nil
}

// outputPath derives the artifact path for a format. An explicit output is
// used directly for a single format, or as the base path for several.
func outputPath(input, output, format string, multi bool) string {
	if output != "" && !multi {
		return output
	}

	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
		base = strings.TrimSuffix(base, ".layout")
	}
	return base + "." + format
}
