// Package descriptor encodes the hierarchy metadata stored on every
// decorated canvas node.
//
// The canvas host has no native graph model, so the whole tree lives in one
// compact string per node:
//
//	graph[<ancestors>][<layout>][<id>][<children>]
//
// where <ancestors> is the node's ancestor chain joined by "|" (root first,
// empty for roots), <layout> is the direction of the most recent child
// creation (or empty), <id> is the node's own identifier and <children> is a
// comma-separated list of "id" or "id:layout" entries. Children carry their
// own layout tag because a node can grow children in several directions over
// time; the tag partitions them into layout groups.
//
// Exactly one grammar is accepted. Earlier incarnations of this format (bare
// children without tags, a flat parent id instead of a chain) decode as
// plain text, which makes the owning node an ordinary undecorated shape.
// Decode and Encode are exact inverses for every valid descriptor.
package descriptor

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/matzehuels/canopy/pkg/ident"
)

var (
	// ErrNotDescriptor is returned by [Decode] when the text does not match
	// the graph[...][...][...][...] grammar at all. Callers treat this as
	// "undecorated shape", never as a failure of the surrounding operation.
	ErrNotDescriptor = errors.New("not a hierarchy descriptor")

	// ErrMalformedDescriptor is returned by [Decode] when the outer grammar
	// matches but a field is invalid (bad identifier, unknown layout tag).
	ErrMalformedDescriptor = errors.New("malformed hierarchy descriptor")
)

// Direction is the axis along which a node's children are laid out,
// relative to the node itself.
type Direction string

const (
	// LR lays children out to the right of the parent (left-to-right).
	LR Direction = "LR"
	// RL lays children out to the left of the parent (right-to-left).
	RL Direction = "RL"
	// TD lays children out below the parent (top-down).
	TD Direction = "TD"
	// DT lays children out above the parent (down-top).
	DT Direction = "DT"
)

// Valid reports whether d is one of the four layout directions.
func (d Direction) Valid() bool {
	switch d {
	case LR, RL, TD, DT:
		return true
	}
	return false
}

// Child is one entry in a node's children list: the child's identifier and
// the layout tag of the group it belongs to. A zero Layout means the tag is
// unknown (imported data); such children are encoded as a bare id.
type Child struct {
	ID     ident.ID
	Layout Direction
}

// Descriptor is the decoded hierarchy state of one node.
type Descriptor struct {
	// Ancestors is the chain of ancestor ids, root first. Empty for roots.
	Ancestors []ident.ID
	// Layout records the direction of the most recent child creation.
	// Purely informational once children carry their own tags.
	Layout Direction
	// ID is the node's own identifier.
	ID ident.ID
	// Children lists direct children in insertion order.
	Children []Child
}

// IsRoot reports whether the node has no ancestors.
func (d *Descriptor) IsRoot() bool { return len(d.Ancestors) == 0 }

// Parent returns the id of the immediate parent, or "" for roots.
func (d *Descriptor) Parent() ident.ID {
	if len(d.Ancestors) == 0 {
		return ""
	}
	return d.Ancestors[len(d.Ancestors)-1]
}

// ChildIDs returns the ids of all direct children, in insertion order.
func (d *Descriptor) ChildIDs() []ident.ID {
	ids := make([]ident.ID, len(d.Children))
	for i, c := range d.Children {
		ids[i] = c.ID
	}
	return ids
}

// Group returns the children tagged with the given layout direction,
// in insertion order.
func (d *Descriptor) Group(dir Direction) []Child {
	var group []Child
	for _, c := range d.Children {
		if c.Layout == dir {
			group = append(group, c)
		}
	}
	return group
}

// ChildLayout returns the layout tag recorded for the given child, falling
// back to the node's own Layout field when the child is untagged or absent.
func (d *Descriptor) ChildLayout(id ident.ID) Direction {
	for _, c := range d.Children {
		if c.ID == id && c.Layout != "" {
			return c.Layout
		}
	}
	return d.Layout
}

// SetChildLayout tags the child entry with the given direction. Absent
// children are left alone.
func (d *Descriptor) SetChildLayout(id ident.ID, dir Direction) {
	for i := range d.Children {
		if d.Children[i].ID == id {
			d.Children[i].Layout = dir
		}
	}
}

// AddChild appends a child entry and records dir as the most recent layout.
func (d *Descriptor) AddChild(id ident.ID, dir Direction) {
	d.Children = append(d.Children, Child{ID: id, Layout: dir})
	d.Layout = dir
}

var outerRe = regexp.MustCompile(`^graph\[([^\[\]]*)\]\[([^\[\]]*)\]\[([^\[\]]*)\]\[([^\[\]]*)\]$`)

// Encode serializes a descriptor into its canonical textual form.
// Encode is the exact inverse of [Decode].
func Encode(d *Descriptor) string {
	ancestors := make([]string, len(d.Ancestors))
	for i, a := range d.Ancestors {
		ancestors[i] = string(a)
	}
	children := make([]string, len(d.Children))
	for i, c := range d.Children {
		if c.Layout == "" {
			children[i] = string(c.ID)
			continue
		}
		children[i] = fmt.Sprintf("%s:%s", c.ID, c.Layout)
	}
	return fmt.Sprintf("graph[%s][%s][%s][%s]",
		strings.Join(ancestors, "|"), d.Layout, d.ID, strings.Join(children, ","))
}

// Decode parses a descriptor string. Returns ErrNotDescriptor when the text
// is not descriptor-shaped at all, or ErrMalformedDescriptor when the shape
// matches but a field is invalid.
func Decode(text string) (*Descriptor, error) {
	m := outerRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotDescriptor, text)
	}

	d := &Descriptor{ID: ident.ID(m[3])}
	if !ident.Valid(d.ID) {
		return nil, fmt.Errorf("%w: bad id %q", ErrMalformedDescriptor, m[3])
	}

	if m[1] != "" {
		for _, a := range strings.Split(m[1], "|") {
			id := ident.ID(a)
			if !ident.Valid(id) {
				return nil, fmt.Errorf("%w: bad ancestor %q", ErrMalformedDescriptor, a)
			}
			d.Ancestors = append(d.Ancestors, id)
		}
	}

	if m[2] != "" {
		dir := Direction(m[2])
		if !dir.Valid() {
			return nil, fmt.Errorf("%w: bad layout %q", ErrMalformedDescriptor, m[2])
		}
		d.Layout = dir
	}

	if m[4] != "" {
		for _, entry := range strings.Split(m[4], ",") {
			child, err := parseChild(entry)
			if err != nil {
				return nil, err
			}
			d.Children = append(d.Children, child)
		}
	}

	return d, nil
}

func parseChild(entry string) (Child, error) {
	id, tag, tagged := strings.Cut(entry, ":")
	c := Child{ID: ident.ID(id)}
	if !ident.Valid(c.ID) {
		return Child{}, fmt.Errorf("%w: bad child id %q", ErrMalformedDescriptor, id)
	}
	if tagged {
		c.Layout = Direction(tag)
		if !c.Layout.Valid() {
			return Child{}, fmt.Errorf("%w: bad child layout %q", ErrMalformedDescriptor, tag)
		}
	}
	return c, nil
}

// IsDescriptor reports whether text decodes as a valid descriptor.
func IsDescriptor(text string) bool {
	_, err := Decode(text)
	return err == nil
}
