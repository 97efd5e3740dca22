package descriptor

import (
	"errors"
	"reflect"
	"testing"

	"github.com/matzehuels/canopy/pkg/ident"
)

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		d    Descriptor
		text string
	}{
		{
			name: "BareRoot",
			d:    Descriptor{ID: "A1"},
			text: "graph[][][A1][]",
		},
		{
			name: "RootWithChildren",
			d: Descriptor{
				ID:     "A1",
				Layout: TD,
				Children: []Child{
					{ID: "B1", Layout: TD},
					{ID: "B2", Layout: TD},
				},
			},
			text: "graph[][TD][A1][B1:TD,B2:TD]",
		},
		{
			name: "MixedGroups",
			d: Descriptor{
				ID:     "B2",
				Layout: LR,
				Ancestors: []ident.ID{
					"A1",
				},
				Children: []Child{
					{ID: "C1", Layout: TD},
					{ID: "C2", Layout: LR},
				},
			},
			text: "graph[A1][LR][B2][C1:TD,C2:LR]",
		},
		{
			name: "DeepChain",
			d: Descriptor{
				ID:        "D4",
				Ancestors: []ident.ID{"A1", "B2", "C1"},
			},
			text: "graph[A1|B2|C1][][D4][]",
		},
		{
			name: "UntaggedChild",
			d: Descriptor{
				ID:       "A2",
				Children: []Child{{ID: "B1"}},
			},
			text: "graph[][][A2][B1]",
		},
		{
			name: "OverflowLevel",
			d: Descriptor{
				ID:        "AA3",
				Ancestors: []ident.ID{"A1", "Z2"},
				Layout:    DT,
			},
			text: "graph[A1|Z2][DT][AA3][]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Encode(&tt.d)
			if got != tt.text {
				t.Fatalf("Encode() = %q, want %q", got, tt.text)
			}
			back, err := Decode(got)
			if err != nil {
				t.Fatalf("Decode(%q) error: %v", got, err)
			}
			if !reflect.DeepEqual(*back, tt.d) {
				t.Errorf("Decode(Encode(d)) = %+v, want %+v", *back, tt.d)
			}
		})
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{name: "PlainLabel", text: "Quarterly revenue", want: ErrNotDescriptor},
		{name: "Empty", text: "", want: ErrNotDescriptor},
		{name: "MissingField", text: "graph[][][A1]", want: ErrNotDescriptor},
		{name: "ExtraField", text: "graph[][][A1][][]", want: ErrNotDescriptor},
		{name: "TrailingText", text: "graph[][][A1][] extra", want: ErrNotDescriptor},
		{name: "NestedBrackets", text: "graph[[A1]][][B1][]", want: ErrNotDescriptor},
		{name: "BadID", text: "graph[][][node-7][]", want: ErrMalformedDescriptor},
		{name: "BadLayout", text: "graph[][UP][A1][]", want: ErrMalformedDescriptor},
		{name: "BadAncestor", text: "graph[A1|root][][B1][]", want: ErrMalformedDescriptor},
		{name: "BadChildTag", text: "graph[][TD][A1][B1:XX]", want: ErrMalformedDescriptor},
		{name: "BadChildID", text: "graph[][TD][A1][1B:TD]", want: ErrMalformedDescriptor},
		// Older grammar generations decode as plain text, never half-decode.
		{name: "LegacyFlatParent", text: "graph[A1][B2][B1,B3]", want: ErrNotDescriptor},
		{name: "LegacyGlobalLayout", text: "graph[TD][A1]", want: ErrNotDescriptor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.text)
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode(%q) error = %v, want %v", tt.text, err, tt.want)
			}
			if IsDescriptor(tt.text) {
				t.Errorf("IsDescriptor(%q) = true, want false", tt.text)
			}
		})
	}
}

func TestDescriptorAccessors(t *testing.T) {
	d := &Descriptor{
		ID:        "B1",
		Ancestors: []ident.ID{"A1"},
		Layout:    LR,
		Children: []Child{
			{ID: "C1", Layout: TD},
			{ID: "C2", Layout: LR},
			{ID: "C3", Layout: TD},
		},
	}

	if d.IsRoot() {
		t.Error("IsRoot() = true for a node with ancestors")
	}
	if got := d.Parent(); got != "A1" {
		t.Errorf("Parent() = %q, want A1", got)
	}
	if got := d.ChildIDs(); !reflect.DeepEqual(got, []ident.ID{"C1", "C2", "C3"}) {
		t.Errorf("ChildIDs() = %v", got)
	}

	td := d.Group(TD)
	if len(td) != 2 || td[0].ID != "C1" || td[1].ID != "C3" {
		t.Errorf("Group(TD) = %v, want [C1 C3]", td)
	}

	if got := d.ChildLayout("C2"); got != LR {
		t.Errorf("ChildLayout(C2) = %q, want LR", got)
	}
	if got := d.ChildLayout("C9"); got != LR {
		t.Errorf("ChildLayout(unknown) = %q, want fallback to node layout LR", got)
	}

	d.AddChild("C4", DT)
	if d.Layout != DT {
		t.Errorf("AddChild did not update Layout, got %q", d.Layout)
	}
	if last := d.Children[len(d.Children)-1]; last.ID != "C4" || last.Layout != DT {
		t.Errorf("AddChild appended %+v", last)
	}

	d.SetChildLayout("C1", RL)
	if got := d.ChildLayout("C1"); got != RL {
		t.Errorf("ChildLayout(C1) after SetChildLayout = %q, want RL", got)
	}
	d.SetChildLayout("C9", RL) // absent child is a no-op
	if len(d.Children) != 4 {
		t.Errorf("SetChildLayout on absent id changed children: %v", d.Children)
	}
}

func TestRootAccessors(t *testing.T) {
	d := &Descriptor{ID: "A1"}
	if !d.IsRoot() {
		t.Error("IsRoot() = false for a root")
	}
	if got := d.Parent(); got != "" {
		t.Errorf("Parent() = %q for a root, want empty", got)
	}
}
