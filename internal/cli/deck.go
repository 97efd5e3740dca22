package cli

import (
	"fmt"
	"strings"

	"github.com/matzehuels/canopy/pkg/canvas"
	"github.com/matzehuels/canopy/pkg/canvas/document"
	"github.com/matzehuels/canopy/pkg/errors"
	"github.com/matzehuels/canopy/pkg/ident"
	"github.com/matzehuels/canopy/pkg/layout"
	"github.com/matzehuels/canopy/pkg/tree"
)

// deckFlags are the flags shared by every command that operates on a deck:
// the document file and the page within it.
type deckFlags struct {
	file string
	page int
}

// openPage loads the deck document and returns the selected page.
func openPage(f deckFlags) (*document.Document, *document.Page, error) {
	doc, err := document.ReadDocumentFile(f.file)
	if err != nil {
		return nil, nil, fmt.Errorf("load deck: %w", err)
	}
	page, err := doc.Page(f.page)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodePageNotFound, err, "page %d", f.page)
	}
	return doc, page, nil
}

// saveDeck writes the mutated document back to its file.
func saveDeck(doc *document.Document, path string) error {
	if err := document.WriteDocumentFile(doc, path); err != nil {
		return fmt.Errorf("save deck: %w", err)
	}
	return nil
}

// resolveNode maps a user-supplied node reference to a shape handle.
//
// The reference is either a node identifier like "B2" (must be unambiguous
// on the page - identifiers are only unique within one sibling set) or a
// raw shape uuid. An empty reference starts the interactive picker.
func resolveNode(page *document.Page, ref string) (canvas.NodeHandle, error) {
	idx, err := tree.BuildIndex(page)
	if err != nil {
		return "", err
	}

	if ref == "" {
		return pickNode(page, idx)
	}

	if id := ident.ID(strings.ToUpper(ref)); ident.Valid(id) {
		matches := idx.ByID(id)
		switch len(matches) {
		case 1:
			return matches[0].Handle, nil
		case 0:
			return "", errors.New(errors.ErrCodeNodeNotFound, "no node %s on this page", id)
		default:
			return "", errors.New(errors.ErrCodeAmbiguousNode,
				"id %s matches %d shapes; pass the shape uuid instead", id, len(matches))
		}
	}

	handles, err := page.Nodes()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "list shapes")
	}
	for _, h := range handles {
		if string(h) == ref {
			return h, nil
		}
	}
	return "", errors.New(errors.ErrCodeNodeNotFound, "no shape %q on this page", ref)
}

// nodeLabel returns the node id for a handle, falling back to the handle
// itself for undecorated shapes. Used for status output only.
func nodeLabel(page *document.Page, h canvas.NodeHandle) string {
	idx, err := tree.BuildIndex(page)
	if err != nil {
		return string(h)
	}
	if n := idx.ByHandle(h); n != nil {
		return string(n.Desc.ID)
	}
	return string(h)
}

// parsePoint parses "X,Y" into a point.
func parsePoint(s string) (layout.Point, error) {
	var p layout.Point
	if _, err := fmt.Sscanf(s, "%f,%f", &p.X, &p.Y); err != nil {
		return p, errors.New(errors.ErrCodeInvalidInput, "invalid position %q (want X,Y)", s)
	}
	return p, nil
}

// parseSize parses "WxH" into a size.
func parseSize(s string) (layout.Size, error) {
	var sz layout.Size
	if _, err := fmt.Sscanf(s, "%fx%f", &sz.Width, &sz.Height); err != nil {
		return sz, errors.New(errors.ErrCodeInvalidInput, "invalid size %q (want WxH)", s)
	}
	if sz.Width <= 0 || sz.Height <= 0 {
		return sz, errors.New(errors.ErrCodeGeometry, "size must be positive, got %gx%g", sz.Width, sz.Height)
	}
	return sz, nil
}
