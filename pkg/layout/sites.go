package layout

import "github.com/matzehuels/canopy/pkg/descriptor"

// Side is a logical side of a shape where a connector can attach.
type Side int

const (
	// SideTop is the top edge of a shape.
	SideTop Side = iota
	// SideRight is the right edge of a shape.
	SideRight
	// SideBottom is the bottom edge of a shape.
	SideBottom
	// SideLeft is the left edge of a shape.
	SideLeft
)

// String returns the side name in upper case (TOP, RIGHT, BOTTOM, LEFT).
func (s Side) String() string {
	switch s {
	case SideTop:
		return "TOP"
	case SideRight:
		return "RIGHT"
	case SideBottom:
		return "BOTTOM"
	case SideLeft:
		return "LEFT"
	}
	return "UNKNOWN"
}

// Sides returns the connector attachment sides for a parent/child pair laid
// out in the given direction: the child sits on the parent's dir-facing
// side, so the connector leaves the parent there and enters the child on
// the opposite side (LR → parent RIGHT, child LEFT, and so on).
func Sides(dir descriptor.Direction) (parent, child Side) {
	switch dir {
	case descriptor.RL:
		return SideLeft, SideRight
	case descriptor.TD:
		return SideBottom, SideTop
	case descriptor.DT:
		return SideTop, SideBottom
	default: // LR, also the fallback for unknown directions
		return SideRight, SideLeft
	}
}

// SelectSite picks the connection site index for a logical side on a shape
// exposing siteCount discrete attachment points.
//
// Shape primitives expose their sites in primitive-specific orders; this
// table is an empirically fixed correction so LEFT and RIGHT behave
// symmetrically across primitives. Shapes with one site (or an unexpected
// count) always attach at index 0. The selector has no state and cannot
// fail; resolved indices are clamped by the caller's fallback, see
// [ClampSite].
func SelectSite(siteCount int, side Side) int {
	switch {
	case siteCount >= 8:
		switch side {
		case SideLeft:
			return 3
		case SideRight:
			return 7
		case SideTop:
			return 1
		case SideBottom:
			return 5
		}
	case siteCount == 4:
		switch side {
		case SideLeft:
			return 1
		case SideRight:
			return 3
		case SideTop:
			return 0
		case SideBottom:
			return 2
		}
	case siteCount == 2:
		switch side {
		case SideLeft, SideBottom:
			return 1
		case SideRight, SideTop:
			return 0
		}
	}
	return 0
}

// ClampSite returns index if it addresses one of siteCount sites, else 0.
// Used when the reported site count and the actual site list disagree:
// attaching at the shape's first site beats failing the whole operation.
func ClampSite(index, siteCount int) int {
	if index < 0 || index >= siteCount {
		return 0
	}
	return index
}
