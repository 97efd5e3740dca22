// Package pkg provides the core libraries for Canopy diagram automation.
//
// # Overview
//
// Canopy grows tree diagrams on a slide-style canvas: it spawns child
// shapes, wires them to their parent with connectors, and keeps the
// hierarchy in hidden per-shape metadata so it survives a save/load
// round trip. The pkg directory is organized into these areas:
//
//  1. [ident] - Node identifiers (level letters + sibling number)
//  2. [descriptor] - The hierarchy descriptor codec stored in shape metadata
//  3. [layout] - Centered-stack placement and connection-site selection
//  4. [canvas] - The drawing-surface abstraction and the JSON deck backend
//  5. [tree] - Hierarchy operations (init, grow, sibling, link, re-flow)
//  6. [export] - DOT/SVG/PNG/JSON export of the decoded forest
//  7. [observability] - Optional instrumentation hooks
//
// # Architecture
//
// The typical data flow through Canopy:
//
//	Deck document (JSON)
//	         ↓
//	    [canvas/document] package (shapes, connectors, metadata)
//	         ↓
//	    [tree] package (decode descriptors, mutate the hierarchy)
//	         ↓
//	    [layout] package (place children, re-center sibling groups)
//	         ↓
//	    mutated deck, or [export] output (DOT/SVG/PNG/JSON)
//
// # Quick Start
//
// Decorate a shape as a root and grow two children below it:
//
//	import (
//	    "github.com/matzehuels/canopy/pkg/canvas"
//	    "github.com/matzehuels/canopy/pkg/canvas/document"
//	    "github.com/matzehuels/canopy/pkg/descriptor"
//	    "github.com/matzehuels/canopy/pkg/layout"
//	    "github.com/matzehuels/canopy/pkg/tree"
//	)
//
//	doc := document.New("architecture")
//	page, _ := doc.Page(0)
//	h, _ := page.CreateNode(canvas.KindRectangle, layout.Rect{Left: 60, Top: 60, Width: 120, Height: 48})
//
//	root, _ := tree.InitRoot(page, h) // becomes A1
//	_, _ = tree.CreateChildren(page, root.Handle, descriptor.TD, 2, tree.Options{
//	    Gap:       20,
//	    ChildSize: layout.Size{Width: 120, Height: 48},
//	}) // B1 and B2, connected and centered below A1
//
// The [tree] package never caches page state between operations: every call
// re-reads the shapes through the [canvas.Page] interface, so edits made by
// other tools are picked up on the next call.
package pkg
