// Package document is a file-backed canvas implementation.
//
// A Document models a small slide deck: pages containing shapes and
// connectors, serialized as human-readable JSON (see store.go). Each
// *Page implements [canvas.Page], so the hierarchy engine can operate
// directly on a loaded document, and connection-site geometry is derived
// per shape kind the way slide hosts expose it.
package document

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/matzehuels/canopy/pkg/canvas"
	"github.com/matzehuels/canopy/pkg/layout"
)

var (
	// ErrUnknownShape is returned when a handle does not name a shape on
	// the page, typically because the shape was deleted out of band.
	ErrUnknownShape = errors.New("unknown shape handle")

	// ErrSiteOutOfRange is returned by ConnectionSitePoint for an index
	// outside the shape's site list.
	ErrSiteOutOfRange = errors.New("connection site index out of range")

	// ErrPageOutOfRange is returned by [Document.Page] for a bad page index.
	ErrPageOutOfRange = errors.New("page index out of range")
)

// Shape is one visual element on a page.
type Shape struct {
	ID     canvas.NodeHandle  `json:"id"`
	Kind   canvas.Kind        `json:"kind"`
	Bounds layout.Rect        `json:"bounds"`
	Label  string             `json:"label,omitempty"`
	Style  canvas.VisualStyle `json:"style,omitempty"`
	// Meta is the hidden key/value store; hierarchy descriptors live here.
	Meta map[string]string `json:"meta,omitempty"`
}

// Connector is a line between two attachment points.
type Connector struct {
	ID    canvas.ConnectorHandle `json:"id"`
	A     layout.Point           `json:"a"`
	B     layout.Point           `json:"b"`
	Style canvas.LineStyle       `json:"style,omitempty"`
}

// Page is one drawing surface of a document. It implements [canvas.Page].
// Pages are not safe for concurrent use; operations are expected to run
// one at a time, each re-reading current state.
type Page struct {
	Name       string       `json:"name,omitempty"`
	Shapes     []*Shape     `json:"shapes"`
	Connectors []*Connector `json:"connectors,omitempty"`
}

// Document is a deck of pages.
type Document struct {
	Title string  `json:"title,omitempty"`
	Pages []*Page `json:"pages"`
}

// New creates a document with a single empty page.
func New(title string) *Document {
	return &Document{Title: title, Pages: []*Page{{Name: "Page 1"}}}
}

// Page returns the page at the given index.
func (d *Document) Page(index int) (*Page, error) {
	if index < 0 || index >= len(d.Pages) {
		return nil, fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, index, len(d.Pages))
	}
	return d.Pages[index], nil
}

// AddPage appends a new empty page and returns it.
func (d *Document) AddPage(name string) *Page {
	p := &Page{Name: name}
	d.Pages = append(d.Pages, p)
	return p
}

func (p *Page) shape(h canvas.NodeHandle) (*Shape, error) {
	for _, s := range p.Shapes {
		if s.ID == h {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownShape, h)
}

// Nodes lists the handles of all shapes on the page.
func (p *Page) Nodes() ([]canvas.NodeHandle, error) {
	handles := make([]canvas.NodeHandle, len(p.Shapes))
	for i, s := range p.Shapes {
		handles[i] = s.ID
	}
	return handles, nil
}

// CreateNode adds a shape of the given kind at the given bounds.
func (p *Page) CreateNode(kind canvas.Kind, bounds layout.Rect) (canvas.NodeHandle, error) {
	s := &Shape{
		ID:     canvas.NodeHandle(uuid.NewString()),
		Kind:   kind,
		Bounds: bounds,
		Meta:   map[string]string{},
	}
	p.Shapes = append(p.Shapes, s)
	return s.ID, nil
}

// Bounds returns the shape's bounding box.
func (p *Page) Bounds(h canvas.NodeHandle) (layout.Rect, error) {
	s, err := p.shape(h)
	if err != nil {
		return layout.Rect{}, err
	}
	return s.Bounds, nil
}

// Kind returns the shape's primitive kind.
func (p *Page) Kind(h canvas.NodeHandle) (canvas.Kind, error) {
	s, err := p.shape(h)
	if err != nil {
		return "", err
	}
	return s.Kind, nil
}

// SetBounds moves/resizes the shape.
func (p *Page) SetBounds(h canvas.NodeHandle, r layout.Rect) error {
	s, err := p.shape(h)
	if err != nil {
		return err
	}
	s.Bounds = r
	return nil
}

// ConnectionSiteCount reports the number of attachment points of the shape.
func (p *Page) ConnectionSiteCount(h canvas.NodeHandle) (int, error) {
	s, err := p.shape(h)
	if err != nil {
		return 0, err
	}
	return len(sitePoints(s.Kind, s.Bounds)), nil
}

// ConnectionSitePoint resolves an attachment point to canvas coordinates.
func (p *Page) ConnectionSitePoint(h canvas.NodeHandle, index int) (layout.Point, error) {
	s, err := p.shape(h)
	if err != nil {
		return layout.Point{}, err
	}
	sites := sitePoints(s.Kind, s.Bounds)
	if index < 0 || index >= len(sites) {
		return layout.Point{}, fmt.Errorf("%w: %d of %d", ErrSiteOutOfRange, index, len(sites))
	}
	return sites[index], nil
}

// Connect draws a connector between two attachment points.
func (p *Page) Connect(a, b layout.Point, style canvas.LineStyle) (canvas.ConnectorHandle, error) {
	c := &Connector{
		ID:    canvas.ConnectorHandle(uuid.NewString()),
		A:     a,
		B:     b,
		Style: style,
	}
	p.Connectors = append(p.Connectors, c)
	return c.ID, nil
}

// CopyVisualStyle copies the full visual style from src onto dst.
func (p *Page) CopyVisualStyle(src, dst canvas.NodeHandle) error {
	from, err := p.shape(src)
	if err != nil {
		return err
	}
	to, err := p.shape(dst)
	if err != nil {
		return err
	}
	to.Style = from.Style
	return nil
}

// SetVisualStyle replaces the shape's visual style wholesale.
func (p *Page) SetVisualStyle(h canvas.NodeHandle, style canvas.VisualStyle) error {
	s, err := p.shape(h)
	if err != nil {
		return err
	}
	s.Style = style
	return nil
}

// LabelText returns the user-visible shape text.
func (p *Page) LabelText(h canvas.NodeHandle) (string, error) {
	s, err := p.shape(h)
	if err != nil {
		return "", err
	}
	return s.Label, nil
}

// SetLabelText sets the user-visible shape text.
func (p *Page) SetLabelText(h canvas.NodeHandle, text string) error {
	s, err := p.shape(h)
	if err != nil {
		return err
	}
	s.Label = text
	return nil
}

// Metadata reads a hidden metadata value; a missing key reads as "".
func (p *Page) Metadata(h canvas.NodeHandle, key string) (string, error) {
	s, err := p.shape(h)
	if err != nil {
		return "", err
	}
	return s.Meta[key], nil
}

// SetMetadata writes a hidden metadata value. An empty value deletes the key.
func (p *Page) SetMetadata(h canvas.NodeHandle, key, value string) error {
	s, err := p.shape(h)
	if err != nil {
		return err
	}
	if s.Meta == nil {
		s.Meta = map[string]string{}
	}
	if value == "" {
		delete(s.Meta, key)
		return nil
	}
	s.Meta[key] = value
	return nil
}

// sitePoints returns a shape's attachment points in kind order.
//
// Rectangles and ellipses expose 8 sites counter-clockwise starting at the
// top-right corner, so the edge midpoints land at indices 1 (top), 3
// (left), 5 (bottom) and 7 (right) - the order the site selector's 8-site
// table was fixed against. Diamonds expose their 4 vertices (top, left,
// bottom, right) and lines their 2 endpoints.
func sitePoints(kind canvas.Kind, r layout.Rect) []layout.Point {
	top := layout.Point{X: r.CenterX(), Y: r.Top}
	left := layout.Point{X: r.Left, Y: r.CenterY()}
	bottom := layout.Point{X: r.CenterX(), Y: r.Bottom()}
	right := layout.Point{X: r.Right(), Y: r.CenterY()}

	switch kind {
	case canvas.KindDiamond:
		return []layout.Point{top, left, bottom, right}
	case canvas.KindLine:
		return []layout.Point{
			{X: r.Left, Y: r.Top},
			{X: r.Right(), Y: r.Bottom()},
		}
	default: // rectangle, rounded, ellipse
		return []layout.Point{
			{X: r.Right(), Y: r.Top},      // 0: top-right corner
			top,                           // 1
			{X: r.Left, Y: r.Top},         // 2: top-left corner
			left,                          // 3
			{X: r.Left, Y: r.Bottom()},    // 4: bottom-left corner
			bottom,                        // 5
			{X: r.Right(), Y: r.Bottom()}, // 6: bottom-right corner
			right,                         // 7
		}
	}
}
