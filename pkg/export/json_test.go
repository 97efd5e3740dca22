package export

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/canopy/pkg/descriptor"
	"github.com/matzehuels/canopy/pkg/layout"
	"github.com/matzehuels/canopy/pkg/tree"
)

func TestToJSONRoundTrip(t *testing.T) {
	page := newTestPage(t)
	root := addShape(t, page)
	if _, err := tree.InitRoot(page, root); err != nil {
		t.Fatalf("InitRoot: %v", err)
	}
	if err := page.SetLabelText(root, "app"); err != nil {
		t.Fatal(err)
	}
	children, err := tree.CreateChildren(page, root, descriptor.TD, 2, tree.Options{
		Gap:       20,
		ChildSize: layout.Size{Width: 120, Height: 48},
	})
	if err != nil {
		t.Fatalf("CreateChildren: %v", err)
	}

	data, err := ToJSON(page, Options{Labels: true})
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	var got graphJSON
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(got.Nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(got.Nodes))
	}
	if got.Nodes[0].ID != "A1" || got.Nodes[0].Label != "app" {
		t.Errorf("first node = %+v, want the A1 root", got.Nodes[0])
	}
	if got.Nodes[1].ID != "B1" || got.Nodes[2].ID != "B2" {
		t.Errorf("children out of order: %+v", got.Nodes[1:])
	}
	if len(got.Edges) != 2 {
		t.Fatalf("got %d edges, want 2", len(got.Edges))
	}
	for i, e := range got.Edges {
		if e.From != string(root) || e.To != string(children[i].Handle) {
			t.Errorf("edge %d = %+v, want %s -> %s", i, e, root, children[i].Handle)
		}
	}
}

func TestToJSONEmptyPage(t *testing.T) {
	page := newTestPage(t)

	data, err := ToJSON(page, Options{})
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	var got graphJSON
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if got.Nodes == nil || got.Edges == nil {
		t.Error("empty forest should still emit empty arrays, not null")
	}
}
