package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/matzehuels/canopy/pkg/canvas"
	"github.com/matzehuels/canopy/pkg/tree"
)

// graphJSON is the interchange form of a page's forest: flat node and edge
// arrays that external tools can consume without knowing the descriptor
// grammar.
type graphJSON struct {
	Nodes []nodeJSON `json:"nodes"`
	Edges []edgeJSON `json:"edges"`
}

type nodeJSON struct {
	ID     string  `json:"id"`
	Handle string  `json:"handle"`
	Label  string  `json:"label,omitempty"`
	Layout string  `json:"layout,omitempty"`
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type edgeJSON struct {
	From string `json:"from"` // parent handle
	To   string `json:"to"`   // child handle
}

// ToJSON serializes the page's decorated forest as a nodes/edges JSON
// document. Like [ToDOT] the output is deterministic and keyed by shape
// handle, so duplicate node ids across trees stay distinct.
//
// The format is a flat graph:
//
//	{
//	  "nodes": [{"id": "A1", "handle": "...", "label": "app", ...}],
//	  "edges": [{"from": "<parent handle>", "to": "<child handle>"}]
//	}
func ToJSON(page canvas.Page, opts Options) ([]byte, error) {
	idx, err := tree.BuildIndex(page)
	if err != nil {
		return nil, err
	}

	nodes := append([]*tree.Node(nil), idx.Nodes()...)
	sort.Slice(nodes, func(i, j int) bool { return idLess(nodes[i], nodes[j]) })

	out := graphJSON{Nodes: []nodeJSON{}, Edges: []edgeJSON{}}
	for _, n := range nodes {
		jn := nodeJSON{
			ID:     string(n.Desc.ID),
			Handle: string(n.Handle),
			Layout: string(n.Desc.Layout),
			Left:   n.Bounds.Left,
			Top:    n.Bounds.Top,
			Width:  n.Bounds.Width,
			Height: n.Bounds.Height,
		}
		if opts.Labels {
			text, err := page.LabelText(n.Handle)
			if err != nil {
				return nil, err
			}
			jn.Label = text
		}
		out.Nodes = append(out.Nodes, jn)

		if parent := idx.Parent(n); parent != nil {
			out.Edges = append(out.Edges, edgeJSON{From: string(parent.Handle), To: string(n.Handle)})
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("encode graph: %w", err)
	}
	return buf.Bytes(), nil
}
