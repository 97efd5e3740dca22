package layout

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/canopy/pkg/descriptor"
)

const eps = 1e-9

func TestPlaceChildrenCentering(t *testing.T) {
	parent := Rect{Left: 100, Top: 100, Width: 80, Height: 40}
	size := Size{Width: 60, Height: 20}

	tests := []struct {
		name string
		dir  descriptor.Direction
		gap  float64
		n    int
	}{
		{name: "LR", dir: descriptor.LR, gap: 20, n: 3},
		{name: "RL", dir: descriptor.RL, gap: 20, n: 2},
		{name: "TD", dir: descriptor.TD, gap: 20, n: 2},
		{name: "DT", dir: descriptor.DT, gap: 10, n: 4},
		{name: "SingleChild", dir: descriptor.TD, gap: 15, n: 1},
		{name: "ZeroGap", dir: descriptor.LR, gap: 0, n: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rects, err := PlaceChildren(parent, tt.dir, tt.gap, tt.n, size)
			if err != nil {
				t.Fatalf("PlaceChildren: %v", err)
			}
			if len(rects) != tt.n {
				t.Fatalf("got %d rects, want %d", len(rects), tt.n)
			}

			horizontal := tt.dir == descriptor.LR || tt.dir == descriptor.RL

			// Main-axis offset: parent edge + gap, identical across the stack.
			for _, r := range rects {
				switch tt.dir {
				case descriptor.LR:
					if math.Abs(r.Left-(parent.Right()+tt.gap)) > eps {
						t.Errorf("LR left = %g, want %g", r.Left, parent.Right()+tt.gap)
					}
				case descriptor.RL:
					if math.Abs(r.Right()-(parent.Left-tt.gap)) > eps {
						t.Errorf("RL right = %g, want %g", r.Right(), parent.Left-tt.gap)
					}
				case descriptor.TD:
					if math.Abs(r.Top-(parent.Bottom()+tt.gap)) > eps {
						t.Errorf("TD top = %g, want %g", r.Top, parent.Bottom()+tt.gap)
					}
				case descriptor.DT:
					if math.Abs(r.Bottom()-(parent.Top-tt.gap)) > eps {
						t.Errorf("DT bottom = %g, want %g", r.Bottom(), parent.Top-tt.gap)
					}
				}
			}

			// Cross-axis: stack midpoint equals the parent's center.
			first, last := rects[0], rects[len(rects)-1]
			if horizontal {
				mid := (first.Top + last.Bottom()) / 2
				if math.Abs(mid-parent.CenterY()) > eps {
					t.Errorf("stack mid Y = %g, want %g", mid, parent.CenterY())
				}
			} else {
				mid := (first.Left + last.Right()) / 2
				if math.Abs(mid-parent.CenterX()) > eps {
					t.Errorf("stack mid X = %g, want %g", mid, parent.CenterX())
				}
			}

			// Members separated by exactly gap on the cross-axis.
			for i := 1; i < len(rects); i++ {
				var step float64
				if horizontal {
					step = rects[i].Top - rects[i-1].Bottom()
				} else {
					step = rects[i].Left - rects[i-1].Right()
				}
				if math.Abs(step-tt.gap) > eps {
					t.Errorf("gap between members %d and %d = %g, want %g", i-1, i, step, tt.gap)
				}
			}
		})
	}
}

func TestPlaceChildrenErrors(t *testing.T) {
	parent := Rect{Width: 80, Height: 40}

	if _, err := PlaceChildren(parent, descriptor.TD, 10, 2, Size{Width: 0, Height: 20}); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("zero width: err = %v, want ErrInvalidGeometry", err)
	}
	if _, err := PlaceChildren(parent, descriptor.TD, 10, 2, Size{Width: 60, Height: -1}); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("negative height: err = %v, want ErrInvalidGeometry", err)
	}
	if _, err := PlaceChildren(parent, descriptor.TD, -5, 2, Size{Width: 60, Height: 20}); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("negative gap: err = %v, want ErrInvalidGeometry", err)
	}
	if _, err := PlaceChildren(parent, "UP", 10, 2, Size{Width: 60, Height: 20}); !errors.Is(err, ErrInvalidDirection) {
		t.Errorf("bad direction: err = %v, want ErrInvalidDirection", err)
	}

	rects, err := PlaceChildren(parent, descriptor.TD, 10, 0, Size{Width: 60, Height: 20})
	if err != nil || len(rects) != 0 {
		t.Errorf("count 0: got (%v, %v), want empty", rects, err)
	}
}

func TestRepositionOrdering(t *testing.T) {
	parent := Rect{Left: 0, Top: 0, Width: 100, Height: 50}

	// Scattered bounds and shuffled order: the result must follow the
	// numeric id suffix, not the current geometry.
	members := []Member{
		{ID: "B3", Bounds: Rect{Left: 500, Top: 0, Width: 60, Height: 20}},
		{ID: "B1", Bounds: Rect{Left: -40, Top: 90, Width: 60, Height: 20}},
		{ID: "B10", Bounds: Rect{Left: 10, Top: 10, Width: 60, Height: 20}},
	}
	rects, err := Reposition(parent, descriptor.TD, 20, members)
	if err != nil {
		t.Fatalf("Reposition: %v", err)
	}

	wantOrder := []string{"B1", "B3", "B10"}
	for i, m := range members {
		if string(m.ID) != wantOrder[i] {
			t.Fatalf("member order = %v, want %v", members, wantOrder)
		}
	}
	for i := 1; i < len(rects); i++ {
		if rects[i].Left <= rects[i-1].Left-eps && rects[i].Top <= rects[i-1].Top {
			t.Errorf("rects not stacked in sorted order: %v", rects)
		}
	}

	mid := (rects[0].Left + rects[len(rects)-1].Right()) / 2
	if math.Abs(mid-parent.CenterX()) > eps {
		t.Errorf("group mid X = %g, want %g", mid, parent.CenterX())
	}
}

func TestRepositionIdempotent(t *testing.T) {
	parent := Rect{Left: 30, Top: 30, Width: 120, Height: 60}
	members := []Member{
		{ID: "C2", Bounds: Rect{Left: 300, Top: 40, Width: 50, Height: 25}},
		{ID: "C1", Bounds: Rect{Left: 200, Top: 140, Width: 50, Height: 25}},
	}

	first, err := Reposition(parent, descriptor.LR, 12, members)
	if err != nil {
		t.Fatalf("first Reposition: %v", err)
	}
	for i := range members {
		members[i].Bounds = first[i]
	}
	second, err := Reposition(parent, descriptor.LR, 12, members)
	if err != nil {
		t.Fatalf("second Reposition: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Reposition not idempotent:\nfirst  %v\nsecond %v", first, second)
	}
}

func TestRepositionEmpty(t *testing.T) {
	rects, err := Reposition(Rect{Width: 10, Height: 10}, descriptor.TD, 5, nil)
	if err != nil || rects != nil {
		t.Errorf("empty group: got (%v, %v), want (nil, nil)", rects, err)
	}
}

func TestSides(t *testing.T) {
	tests := []struct {
		dir           descriptor.Direction
		parent, child Side
	}{
		{descriptor.LR, SideRight, SideLeft},
		{descriptor.RL, SideLeft, SideRight},
		{descriptor.TD, SideBottom, SideTop},
		{descriptor.DT, SideTop, SideBottom},
	}
	for _, tt := range tests {
		p, c := Sides(tt.dir)
		if p != tt.parent || c != tt.child {
			t.Errorf("Sides(%s) = (%s, %s), want (%s, %s)", tt.dir, p, c, tt.parent, tt.child)
		}
	}
}

func TestSelectSite(t *testing.T) {
	tests := []struct {
		count int
		side  Side
		want  int
	}{
		{8, SideLeft, 3},
		{8, SideRight, 7},
		{8, SideTop, 1},
		{8, SideBottom, 5},
		{12, SideLeft, 3}, // >= 8 uses the 8-site table
		{4, SideLeft, 1},
		{4, SideRight, 3},
		{4, SideTop, 0},
		{4, SideBottom, 2},
		{2, SideLeft, 1},
		{2, SideRight, 0},
		{2, SideTop, 0},
		{2, SideBottom, 1},
		{1, SideLeft, 0},
		{1, SideBottom, 0},
		{3, SideRight, 0}, // unexpected counts collapse to 0
		{0, SideTop, 0},
	}
	for _, tt := range tests {
		if got := SelectSite(tt.count, tt.side); got != tt.want {
			t.Errorf("SelectSite(%d, %s) = %d, want %d", tt.count, tt.side, got, tt.want)
		}
	}
}

func TestSelectSiteSymmetry(t *testing.T) {
	for _, count := range []int{2, 4, 8} {
		l := SelectSite(count, SideLeft)
		r := SelectSite(count, SideRight)
		if l == r {
			t.Errorf("count %d: LEFT and RIGHT both resolve to site %d", count, l)
		}
	}
}

func TestClampSite(t *testing.T) {
	if got := ClampSite(7, 8); got != 7 {
		t.Errorf("ClampSite(7, 8) = %d, want 7", got)
	}
	if got := ClampSite(7, 4); got != 0 {
		t.Errorf("ClampSite(7, 4) = %d, want 0", got)
	}
	if got := ClampSite(-1, 4); got != 0 {
		t.Errorf("ClampSite(-1, 4) = %d, want 0", got)
	}
}
