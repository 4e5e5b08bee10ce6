// Package render turns computed layouts into visual outputs.
//
// # Overview
//
// This package contains the rendering pipeline that transforms a diagram
// spec plus its layout result into deliverable artifacts. It provides:
//
//   - SVG rendering with themes ([RenderSVG])
//   - Positioned DOT export for Graphviz tooling ([ToDOT])
//   - Generic format conversion (SVG to PDF/PNG)
//
// # SVG Rendering
//
// [RenderSVG] draws nodes as rounded boxes at their computed positions and
// edges as anchored connectors, honoring the edge routing style from the
// layout config:
//
//	svg := render.RenderSVG(spec, result, render.WithTheme(render.ThemeDark))
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # DOT Export
//
// [ToDOT] emits the diagram with pinned node positions so external Graphviz
// tooling can reprocess the exact computed layout.
package render
