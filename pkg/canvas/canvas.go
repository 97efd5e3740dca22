// Package canvas defines the adapter interface between the hierarchy engine
// and whatever actually owns the drawing surface.
//
// The engine (see [github.com/matzehuels/canopy/pkg/tree]) only ever talks
// to a [Page]: it lists shapes, reads and writes bounds, stores hierarchy
// descriptors in per-shape metadata, and asks the page to create shapes and
// connectors. It never reaches around the adapter, and the adapter never
// calls back into the engine.
//
// Descriptors live in an out-of-band metadata field addressed by shape
// handle, not in the user-visible label text, so editing a label can never
// silently un-decorate a node.
package canvas

import "github.com/matzehuels/canopy/pkg/layout"

// NodeHandle identifies a shape on a page. Handles are opaque to the
// engine; the document adapter uses uuids.
type NodeHandle string

// ConnectorHandle identifies a connector on a page.
type ConnectorHandle string

// Kind names a shape primitive. The set is open-ended; the engine only
// cares that a kind exists and exposes connection sites.
type Kind string

// Shape kinds understood by the document adapter.
const (
	KindRectangle Kind = "rectangle"
	KindRounded   Kind = "rounded"
	KindEllipse   Kind = "ellipse"
	KindDiamond   Kind = "diamond"
	KindLine      Kind = "line"
)

// VisualStyle is the paintable appearance of a shape. The engine copies it
// wholesale from parent to child and never inspects individual fields.
type VisualStyle struct {
	Fill        string  `json:"fill,omitempty"`
	Border      string  `json:"border,omitempty"`
	BorderWidth float64 `json:"border_width,omitempty"`
	FontFamily  string  `json:"font_family,omitempty"`
	FontSize    float64 `json:"font_size,omitempty"`
	FontColor   string  `json:"font_color,omitempty"`
}

// LineStyle is the appearance of a connector line.
type LineStyle struct {
	Color  string  `json:"color,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Dashed bool    `json:"dashed,omitempty"`
	Arrow  bool    `json:"arrow,omitempty"`
}

// Page is the capability set the engine needs from a drawing surface.
//
// Every operation re-reads page state through this interface; the engine
// keeps no cross-operation caches, so edits made through other channels are
// picked up on the next call.
type Page interface {
	// Nodes lists the handles of all shapes on the page, connectors excluded.
	Nodes() ([]NodeHandle, error)

	// CreateNode creates a shape of the given kind at the given bounds.
	CreateNode(kind Kind, bounds layout.Rect) (NodeHandle, error)

	// Bounds returns the shape's current bounding box.
	Bounds(h NodeHandle) (layout.Rect, error)

	// Kind returns the shape's primitive kind.
	Kind(h NodeHandle) (Kind, error)

	// SetBounds moves/resizes the shape.
	SetBounds(h NodeHandle, r layout.Rect) error

	// ConnectionSiteCount reports how many discrete attachment points the
	// shape's kind exposes.
	ConnectionSiteCount(h NodeHandle) (int, error)

	// ConnectionSitePoint resolves an attachment point to canvas coordinates.
	ConnectionSitePoint(h NodeHandle, index int) (layout.Point, error)

	// Connect draws a connector line between two attachment points.
	Connect(a, b layout.Point, style LineStyle) (ConnectorHandle, error)

	// CopyVisualStyle copies the full visual style from src onto dst.
	CopyVisualStyle(src, dst NodeHandle) error

	// SetVisualStyle replaces the shape's visual style wholesale.
	SetVisualStyle(h NodeHandle, style VisualStyle) error

	// LabelText and SetLabelText access the user-visible shape text.
	LabelText(h NodeHandle) (string, error)
	SetLabelText(h NodeHandle, text string) error

	// Metadata and SetMetadata access the hidden per-shape key/value store
	// used for hierarchy descriptors. A missing key reads as "".
	Metadata(h NodeHandle, key string) (string, error)
	SetMetadata(h NodeHandle, key, value string) error
}
