// Package export renders a page's node hierarchy as a node-link diagram.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz: every
// decorated shape on a page becomes a box, every parent/child relationship
// an arrow. It is a read-only view of the hierarchy - nothing on the page is
// modified.
//
// # Usage
//
// Convert a page to DOT format, then render to SVG or PNG:
//
//	dot, err := export.ToDOT(page, export.Options{Labels: true})
//	svg, err := export.RenderSVG(ctx, dot)
//	png, err := export.RenderPNG(ctx, dot)
//
// For machine consumption, [ToJSON] emits the same forest as flat node and
// edge arrays instead of DOT.
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG] or [RenderPNG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// Output is deterministic: nodes and edges are emitted in ascending id
// order, so the same page always produces the same DOT text.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process
// rendering; no external graphviz installation is required.
package export
