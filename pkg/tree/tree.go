// Package tree implements the hierarchy operations on a canvas page:
// decorating roots, growing children in a direction, inserting siblings and
// linking previously unrelated nodes.
//
// The page itself is the only persistent state. Every operation rebuilds an
// [Index] by scanning the page's shapes and decoding their stored
// descriptors, runs the identifier/layout algorithms in memory and writes
// the result back through the [canvas.Page] adapter. Indexes are never
// cached across operations, so edits made through other channels are picked
// up automatically.
//
// Operations validate their selection and geometry before the first canvas
// mutation. Once shape creation starts there is no rollback: a failure
// partway through a multi-child operation leaves the already created shapes
// on the page and reports the error (the host's own undo stack is the
// recovery mechanism).
package tree

import (
	stderrors "errors"

	"github.com/matzehuels/canopy/pkg/canvas"
	"github.com/matzehuels/canopy/pkg/descriptor"
	"github.com/matzehuels/canopy/pkg/errors"
	"github.com/matzehuels/canopy/pkg/ident"
	"github.com/matzehuels/canopy/pkg/layout"
)

// MetadataKey is the per-shape metadata field holding the encoded
// hierarchy descriptor.
const MetadataKey = "canopy.graph"

// Node is one decorated shape, as seen by a single operation: its handle,
// decoded descriptor and the bounds read at scan time.
type Node struct {
	Handle canvas.NodeHandle
	Desc   *descriptor.Descriptor
	Bounds layout.Rect
}

// ID returns the node's identifier.
func (n *Node) ID() ident.ID { return n.Desc.ID }

// Index is the per-operation view of a page's decorated nodes. Identifiers
// are only unique within one sibling set, so lookups by id may return
// several nodes; parent resolution disambiguates by ancestor chain.
type Index struct {
	nodes []*Node
	byID  map[ident.ID][]*Node
}

// BuildIndex scans every shape on the page and decodes its stored
// descriptor. Shapes without a decodable descriptor are simply absent from
// the index - a malformed descriptor never fails the scan.
func BuildIndex(page canvas.Page) (*Index, error) {
	handles, err := page.Nodes()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list page shapes")
	}

	idx := &Index{byID: make(map[ident.ID][]*Node)}
	for _, h := range handles {
		text, err := page.Metadata(h, MetadataKey)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "read metadata of %s", h)
		}
		desc, err := descriptor.Decode(text)
		if err != nil {
			if isUndecorated(err) {
				continue
			}
			return nil, errors.Wrap(errors.ErrCodeDescriptor, err, "decode descriptor of %s", h)
		}
		bounds, err := page.Bounds(h)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "read bounds of %s", h)
		}
		node := &Node{Handle: h, Desc: desc, Bounds: bounds}
		idx.nodes = append(idx.nodes, node)
		idx.byID[desc.ID] = append(idx.byID[desc.ID], node)
	}
	return idx, nil
}

// Nodes returns all decorated nodes in page scan order.
func (x *Index) Nodes() []*Node { return x.nodes }

// Roots returns all decorated nodes without ancestors, in page scan order.
func (x *Index) Roots() []*Node {
	var roots []*Node
	for _, n := range x.nodes {
		if n.Desc.IsRoot() {
			roots = append(roots, n)
		}
	}
	return roots
}

// RootIDs returns the identifiers of all root nodes.
func (x *Index) RootIDs() []ident.ID {
	roots := x.Roots()
	ids := make([]ident.ID, len(roots))
	for i, r := range roots {
		ids[i] = r.Desc.ID
	}
	return ids
}

// ByID returns all decorated nodes with the given identifier.
func (x *Index) ByID(id ident.ID) []*Node { return x.byID[id] }

// ByHandle returns the decorated node backing the given shape handle, or
// nil when the shape is undecorated or unknown.
func (x *Index) ByHandle(h canvas.NodeHandle) *Node {
	for _, n := range x.nodes {
		if n.Handle == h {
			return n
		}
	}
	return nil
}

// Parent resolves the immediate parent of a node: the decorated node whose
// id matches the last element of the child's ancestor chain and whose own
// chain is the child's chain minus that element. The chain comparison is
// what keeps the lookup unambiguous when unrelated subtrees reuse an id.
// Returns nil for roots and for orphaned chains.
func (x *Index) Parent(n *Node) *Node {
	parentID := n.Desc.Parent()
	if parentID == "" {
		return nil
	}
	want := n.Desc.Ancestors[:len(n.Desc.Ancestors)-1]
	for _, cand := range x.byID[parentID] {
		if chainsEqual(cand.Desc.Ancestors, want) {
			return cand
		}
	}
	return nil
}

// ChildrenOf returns the decorated nodes that are children of parent
// according to parent's children list, keyed by id. Children whose shapes
// were deleted out of band are silently missing from the result.
func (x *Index) ChildrenOf(parent *Node) map[ident.ID]*Node {
	wantChain := append(append([]ident.ID{}, parent.Desc.Ancestors...), parent.Desc.ID)
	found := make(map[ident.ID]*Node)
	for _, c := range parent.Desc.Children {
		for _, cand := range x.byID[c.ID] {
			if chainsEqual(cand.Desc.Ancestors, wantChain) {
				found[c.ID] = cand
				break
			}
		}
	}
	return found
}

func chainsEqual(a, b []ident.ID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// store writes a node's descriptor back to the page metadata.
func store(page canvas.Page, n *Node) error {
	if err := page.SetMetadata(n.Handle, MetadataKey, descriptor.Encode(n.Desc)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "store descriptor of %s", n.Desc.ID)
	}
	return nil
}

// isUndecorated classifies a descriptor decode failure: both "not
// descriptor-shaped" and "descriptor-shaped but invalid" make the shape an
// ordinary undecorated one, never a failure of the surrounding operation.
func isUndecorated(err error) bool {
	return stderrors.Is(err, descriptor.ErrNotDescriptor) ||
		stderrors.Is(err, descriptor.ErrMalformedDescriptor)
}
