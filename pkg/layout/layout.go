// Package layout computes shape positions for hierarchy diagrams.
//
// The engine places same-sized child boxes next to a parent box: stacked
// along the cross-axis, offset from the parent's edge by a gap along the
// main axis, with the whole stack centered on the parent's cross-axis
// center. The same formula drives both initial placement and the re-flow
// that keeps an existing sibling group centered after membership changes,
// which makes re-flow idempotent.
//
// The package also maps layout directions to the logical connector sides
// used when wiring a child to its parent, and selects concrete connection
// site indices for a shape's attachment points (see sites.go).
package layout

import (
	"errors"
	"fmt"
	"sort"

	"github.com/matzehuels/canopy/pkg/descriptor"
	"github.com/matzehuels/canopy/pkg/ident"
)

var (
	// ErrInvalidGeometry is returned when a requested placement has a
	// non-positive child size or a negative gap.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrInvalidDirection is returned when a direction outside LR/RL/TD/DT
	// reaches the engine.
	ErrInvalidDirection = errors.New("invalid layout direction")
)

// Point is a position on the canvas, in points.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned box on the canvas, in points.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// CenterX returns the x coordinate of the box center.
func (r Rect) CenterX() float64 { return r.Left + r.Width/2 }

// CenterY returns the y coordinate of the box center.
func (r Rect) CenterY() float64 { return r.Top + r.Height/2 }

// Center returns the box center.
func (r Rect) Center() Point { return Point{X: r.CenterX(), Y: r.CenterY()} }

// Size is a width/height pair, in points.
type Size struct {
	Width  float64
	Height float64
}

// PlaceChildren computes positions for count boxes of the given size, laid
// out from the parent's edge in the given direction. The stack starts at
// parent edge + gap on the main axis; on the cross-axis it is centered on
// the parent's center, members separated by gap.
//
// Returns ErrInvalidGeometry when size is non-positive or gap is negative,
// before any position is computed, and ErrInvalidDirection for an unknown
// direction. count <= 0 yields an empty slice.
func PlaceChildren(parent Rect, dir descriptor.Direction, gap float64, count int, size Size) ([]Rect, error) {
	if size.Width <= 0 || size.Height <= 0 || gap < 0 {
		return nil, fmt.Errorf("%w: size %gx%g gap %g", ErrInvalidGeometry, size.Width, size.Height, gap)
	}
	if !dir.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDirection, dir)
	}
	if count <= 0 {
		return nil, nil
	}

	var main float64 // fixed main-axis coordinate shared by the whole stack
	switch dir {
	case descriptor.LR:
		main = parent.Right() + gap
	case descriptor.RL:
		main = parent.Left - gap - size.Width
	case descriptor.TD:
		main = parent.Bottom() + gap
	case descriptor.DT:
		main = parent.Top - gap - size.Height
	}

	horizontal := dir == descriptor.LR || dir == descriptor.RL
	cross := size.Height
	center := parent.CenterY()
	if !horizontal {
		cross = size.Width
		center = parent.CenterX()
	}
	extent := float64(count)*cross + float64(count-1)*gap
	start := center - extent/2

	rects := make([]Rect, count)
	for i := range rects {
		offset := start + float64(i)*(cross+gap)
		if horizontal {
			rects[i] = Rect{Left: main, Top: offset, Width: size.Width, Height: size.Height}
		} else {
			rects[i] = Rect{Left: offset, Top: main, Width: size.Width, Height: size.Height}
		}
	}
	return rects, nil
}

// Member is one node of a layout group during re-flow: its identifier and
// its current bounds.
type Member struct {
	ID     ident.ID
	Bounds Rect
}

// Reposition recomputes positions for one layout group of an existing
// parent. Members are ordered by their numeric id suffix ascending, so the
// result is deterministic regardless of creation order or current
// placement, then laid out with the same centered-stack formula as
// [PlaceChildren] using the first member's current size.
//
// The returned rects are parallel to the sorted member order; SortMembers
// is applied to the input slice in place. Calling Reposition twice without
// a membership change produces identical positions.
func Reposition(parent Rect, dir descriptor.Direction, gap float64, members []Member) ([]Rect, error) {
	if len(members) == 0 {
		return nil, nil
	}
	SortMembers(members)
	size := Size{Width: members[0].Bounds.Width, Height: members[0].Bounds.Height}
	return PlaceChildren(parent, dir, gap, len(members), size)
}

// SortMembers orders members by the numeric suffix of their ids, ascending.
// Malformed ids sort first, by raw id as a tiebreak.
func SortMembers(members []Member) {
	sort.SliceStable(members, func(i, j int) bool {
		_, ni, erri := ident.Parse(members[i].ID)
		_, nj, errj := ident.Parse(members[j].ID)
		if erri != nil || errj != nil {
			if (erri == nil) != (errj == nil) {
				return erri != nil
			}
			return members[i].ID < members[j].ID
		}
		return ni < nj
	})
}
