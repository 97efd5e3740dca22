package tree

import (
	"math"

	"github.com/matzehuels/canopy/pkg/canvas"
	"github.com/matzehuels/canopy/pkg/descriptor"
	"github.com/matzehuels/canopy/pkg/errors"
	"github.com/matzehuels/canopy/pkg/ident"
	"github.com/matzehuels/canopy/pkg/layout"
)

// Options carries the explicit styling and geometry knobs of the tree
// operations. There are no ambient defaults baked into the engine; the
// caller (typically CLI config) decides.
type Options struct {
	// Gap is the distance between parent and child stack, and between
	// stack members, in points.
	Gap float64
	// ChildSize is the size of newly created child shapes.
	ChildSize layout.Size
	// Line styles the connectors drawn between parents and children.
	Line canvas.LineStyle
}

// InitRoot decorates a shape as a new root node. The root number is the
// smallest positive number not used by any existing root on the page, so
// initialization never collides. Decorating an already decorated shape is
// a no-op returning the existing node.
func InitRoot(page canvas.Page, h canvas.NodeHandle) (*Node, error) {
	idx, err := BuildIndex(page)
	if err != nil {
		return nil, err
	}
	return initRoot(page, idx, h)
}

func initRoot(page canvas.Page, idx *Index, h canvas.NodeHandle) (*Node, error) {
	if existing := idx.ByHandle(h); existing != nil {
		return existing, nil
	}

	bounds, err := page.Bounds(h)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNodeNotFound, err, "anchor shape %s", h)
	}

	number := ident.NextRootNumber(idx.RootIDs())
	node := &Node{
		Handle: h,
		Desc:   &descriptor.Descriptor{ID: ident.Format(ident.RootLevel, number)},
		Bounds: bounds,
	}
	if err := store(page, node); err != nil {
		return nil, err
	}
	idx.nodes = append(idx.nodes, node)
	idx.byID[node.Desc.ID] = append(idx.byID[node.Desc.ID], node)
	return node, nil
}

// NextAvailableRootNumber scans the page and returns the smallest unused
// positive root number.
func NextAvailableRootNumber(page canvas.Page) (int, error) {
	idx, err := BuildIndex(page)
	if err != nil {
		return 0, err
	}
	return ident.NextRootNumber(idx.RootIDs()), nil
}

// CreateChildren adds count children to the anchor shape in the given
// direction: fresh identifiers one level below the anchor, shapes of the
// anchor's kind with its visual style, connectors wired side-to-side, the
// anchor's descriptor extended, and finally a re-flow of the affected
// layout group so earlier siblings stay centered on the anchor.
//
// An undecorated anchor is first initialized as a root. Geometry is
// validated before any shape is created; once creation starts there is no
// rollback.
func CreateChildren(page canvas.Page, anchor canvas.NodeHandle, dir descriptor.Direction, count int, opts Options) ([]*Node, error) {
	if count < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "child count must be positive, got %d", count)
	}
	if !dir.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown direction %q", dir)
	}

	idx, err := BuildIndex(page)
	if err != nil {
		return nil, err
	}
	parent, err := initRoot(page, idx, anchor)
	if err != nil {
		return nil, err
	}

	// Geometry first: a bad size/gap must fail before any shape exists.
	positions, err := layout.PlaceChildren(parent.Bounds, dir, opts.Gap, count, opts.ChildSize)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeGeometry, err, "place %d children", count)
	}

	level := ident.NextLevel(ident.Level(parent.Desc.ID))
	number := ident.NextSiblingNumber(level, parent.Desc.ChildIDs())

	kind, err := page.Kind(anchor)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read anchor kind")
	}

	created := make([]*Node, 0, count)
	for i, pos := range positions {
		id := ident.Format(level, number+i)
		child, err := createChild(page, parent, id, kind, pos)
		if err != nil {
			return created, err
		}
		if err := connect(page, parent.Handle, child.Handle, dir, opts.Line); err != nil {
			return created, err
		}
		parent.Desc.AddChild(id, dir)
		created = append(created, child)
	}
	parent.Desc.Layout = dir
	if err := store(page, parent); err != nil {
		return created, err
	}

	if err := reflow(page, idx, parent, dir, opts.Gap, created); err != nil {
		return created, err
	}
	return created, nil
}

// CreateSibling adds one sibling next to a non-root anchor: same parent,
// same layout group, next sibling number at the anchor's level. Only the
// affected layout group is re-flowed; other groups on the same parent keep
// their positions.
func CreateSibling(page canvas.Page, anchor canvas.NodeHandle, opts Options) (*Node, error) {
	idx, err := BuildIndex(page)
	if err != nil {
		return nil, err
	}

	node := idx.ByHandle(anchor)
	if node == nil {
		return nil, errors.New(errors.ErrCodeInvalidSelection, "shape %s is not part of a hierarchy", anchor)
	}
	if node.Desc.IsRoot() {
		return nil, errors.New(errors.ErrCodeRootSibling, "node %s is a root; roots have no siblings", node.Desc.ID)
	}
	parent := idx.Parent(node)
	if parent == nil {
		return nil, errors.New(errors.ErrCodeParentNotFound, "parent %s of %s not found on page", node.Desc.Parent(), node.Desc.ID)
	}

	dir := parent.Desc.ChildLayout(node.Desc.ID)
	if dir == "" {
		// Untagged child entry, typically imported data. Tag it with the
		// inferred direction so the anchor joins the re-flowed group.
		dir = inferDirection(parent.Bounds, node.Bounds)
		parent.Desc.SetChildLayout(node.Desc.ID, dir)
	}

	level := ident.Level(node.Desc.ID)
	number := ident.NextSiblingNumber(level, parent.Desc.ChildIDs())
	id := ident.Format(level, number)

	size := layout.Size{Width: node.Bounds.Width, Height: node.Bounds.Height}
	if size.Width <= 0 || size.Height <= 0 {
		return nil, errors.New(errors.ErrCodeGeometry, "anchor %s has degenerate bounds %gx%g", node.Desc.ID, size.Width, size.Height)
	}

	kind, err := page.Kind(anchor)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read anchor kind")
	}

	// Initial placement next to the group; the re-flow below settles it.
	positions, err := layout.PlaceChildren(parent.Bounds, dir, opts.Gap, 1, size)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeGeometry, err, "place sibling")
	}

	sibling, err := createChild(page, parent, id, kind, positions[0])
	if err != nil {
		return nil, err
	}
	if err := page.CopyVisualStyle(anchor, sibling.Handle); err != nil {
		return sibling, errors.Wrap(errors.ErrCodeInternal, err, "copy style onto %s", id)
	}
	if err := connect(page, parent.Handle, sibling.Handle, dir, opts.Line); err != nil {
		return sibling, err
	}

	parent.Desc.AddChild(id, dir)
	if err := store(page, parent); err != nil {
		return sibling, err
	}

	if err := reflow(page, idx, parent, dir, opts.Gap, []*Node{sibling}); err != nil {
		return sibling, err
	}
	return sibling, nil
}

// LinkExisting connects two already decorated, previously unrelated nodes.
// The shallower node (by level depth) becomes the parent regardless of
// argument order; equal depths cannot be linked. The child keeps its own
// identifier, the ancestor chains of the child and its whole subtree are
// rewritten under the new parent, and when the child was attached
// elsewhere before, the former parent's children list is cleaned up so
// the chain invariant holds.
func LinkExisting(page canvas.Page, a, b canvas.NodeHandle, opts Options) error {
	idx, err := BuildIndex(page)
	if err != nil {
		return err
	}

	na, nb := idx.ByHandle(a), idx.ByHandle(b)
	if na == nil || nb == nil {
		return errors.New(errors.ErrCodeInvalidSelection, "both shapes must be part of a hierarchy")
	}

	da := ident.Depth(ident.Level(na.Desc.ID))
	db := ident.Depth(ident.Level(nb.Desc.ID))
	if da == db {
		return errors.New(errors.ErrCodeInvalidSelection,
			"nodes %s and %s are at the same level; cannot decide the parent", na.Desc.ID, nb.Desc.ID)
	}
	parent, child := na, nb
	if db < da {
		parent, child = nb, na
	}

	// Detach from the former parent, if any, to keep the children/chain
	// invariant intact.
	if former := idx.Parent(child); former != nil && former != parent {
		removeChild(former.Desc, child.Desc.ID)
		if err := store(page, former); err != nil {
			return err
		}
	}

	dir := parent.Desc.Layout
	if dir == "" {
		dir = inferDirection(parent.Bounds, child.Bounds)
	}

	oldChain := append(append([]ident.ID{}, child.Desc.Ancestors...), child.Desc.ID)
	child.Desc.Ancestors = append(append([]ident.ID{}, parent.Desc.Ancestors...), parent.Desc.ID)
	if err := store(page, child); err != nil {
		return err
	}

	// The child's descendants still carry its old chain as a prefix; swap
	// that prefix for the new one so every chain on the page keeps the
	// child chain = parent chain + parent id shape.
	newChain := append(append([]ident.ID{}, child.Desc.Ancestors...), child.Desc.ID)
	for _, n := range idx.Nodes() {
		if !chainHasPrefix(n.Desc.Ancestors, oldChain) {
			continue
		}
		n.Desc.Ancestors = append(append([]ident.ID{}, newChain...), n.Desc.Ancestors[len(oldChain):]...)
		if err := store(page, n); err != nil {
			return err
		}
	}

	if !hasChild(parent.Desc, child.Desc.ID) {
		parent.Desc.AddChild(child.Desc.ID, dir)
	}
	if err := store(page, parent); err != nil {
		return err
	}

	return connect(page, parent.Handle, child.Handle, dir, opts.Line)
}

// =============================================================================
// Internal Helpers
// =============================================================================

// createChild creates one child shape below parent and stores its descriptor.
func createChild(page canvas.Page, parent *Node, id ident.ID, kind canvas.Kind, bounds layout.Rect) (*Node, error) {
	h, err := page.CreateNode(kind, bounds)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create shape for %s", id)
	}
	if err := page.CopyVisualStyle(parent.Handle, h); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "copy style onto %s", id)
	}
	child := &Node{
		Handle: h,
		Desc: &descriptor.Descriptor{
			ID:        id,
			Ancestors: append(append([]ident.ID{}, parent.Desc.Ancestors...), parent.Desc.ID),
		},
		Bounds: bounds,
	}
	if err := store(page, child); err != nil {
		return nil, err
	}
	return child, nil
}

// connect wires parent and child with a connector attached at the sides
// implied by the layout direction.
func connect(page canvas.Page, parent, child canvas.NodeHandle, dir descriptor.Direction, style canvas.LineStyle) error {
	parentSide, childSide := layout.Sides(dir)

	pa, err := sitePoint(page, parent, parentSide)
	if err != nil {
		return err
	}
	pb, err := sitePoint(page, child, childSide)
	if err != nil {
		return err
	}
	if _, err := page.Connect(pa, pb, style); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "connect shapes")
	}
	return nil
}

func sitePoint(page canvas.Page, h canvas.NodeHandle, side layout.Side) (layout.Point, error) {
	count, err := page.ConnectionSiteCount(h)
	if err != nil {
		return layout.Point{}, errors.Wrap(errors.ErrCodeInternal, err, "site count of %s", h)
	}
	index := layout.ClampSite(layout.SelectSite(count, side), count)
	pt, err := page.ConnectionSitePoint(h, index)
	if err != nil {
		return layout.Point{}, errors.Wrap(errors.ErrCodeInternal, err, "site %d of %s", index, h)
	}
	return pt, nil
}

// reflow re-runs the centered-stack placement for one layout group of
// parent, moving every member (pre-existing and fresh) to its settled
// position. fresh nodes are not yet in idx.
func reflow(page canvas.Page, idx *Index, parent *Node, dir descriptor.Direction, gap float64, fresh []*Node) error {
	byID := idx.ChildrenOf(parent)
	for _, n := range fresh {
		byID[n.Desc.ID] = n
	}

	var members []layout.Member
	for _, c := range parent.Desc.Group(dir) {
		n, ok := byID[c.ID]
		if !ok {
			continue // shape deleted out of band; nothing to move
		}
		members = append(members, layout.Member{ID: c.ID, Bounds: n.Bounds})
	}

	rects, err := layout.Reposition(parent.Bounds, dir, gap, members)
	if err != nil {
		return errors.Wrap(errors.ErrCodeGeometry, err, "re-flow %s group of %s", dir, parent.Desc.ID)
	}
	for i, m := range members {
		n := byID[m.ID]
		if err := page.SetBounds(n.Handle, rects[i]); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "move %s", m.ID)
		}
		n.Bounds = rects[i]
	}
	return nil
}

// inferDirection derives a layout direction from the relative placement of
// two shapes: the dominant axis between their centers wins, ties go to the
// horizontal.
func inferDirection(parent, child layout.Rect) descriptor.Direction {
	dx := child.CenterX() - parent.CenterX()
	dy := child.CenterY() - parent.CenterY()
	if math.Abs(dx) >= math.Abs(dy) {
		if dx >= 0 {
			return descriptor.LR
		}
		return descriptor.RL
	}
	if dy >= 0 {
		return descriptor.TD
	}
	return descriptor.DT
}

func hasChild(d *descriptor.Descriptor, id ident.ID) bool {
	for _, c := range d.Children {
		if c.ID == id {
			return true
		}
	}
	return false
}

func chainHasPrefix(chain, prefix []ident.ID) bool {
	if len(chain) < len(prefix) {
		return false
	}
	for i, id := range prefix {
		if chain[i] != id {
			return false
		}
	}
	return true
}

func removeChild(d *descriptor.Descriptor, id ident.ID) {
	out := d.Children[:0]
	for _, c := range d.Children {
		if c.ID != id {
			out = append(out, c)
		}
	}
	d.Children = out
}
