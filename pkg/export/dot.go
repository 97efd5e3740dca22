package export

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/canopy/pkg/canvas"
	"github.com/matzehuels/canopy/pkg/descriptor"
	"github.com/matzehuels/canopy/pkg/ident"
	"github.com/matzehuels/canopy/pkg/observability"
	"github.com/matzehuels/canopy/pkg/tree"
)

// Options configures node-link diagram generation.
type Options struct {
	// Labels includes the shape's visible label text in node labels.
	// When false, only the node id is shown.
	Labels bool
}

// ToDOT converts a page's decorated shapes to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
//
// Shape handles are used as DOT node names so duplicate node ids across
// separate trees stay distinct; the node id appears in the label instead.
func ToDOT(page canvas.Page, opts Options) (string, error) {
	idx, err := tree.BuildIndex(page)
	if err != nil {
		return "", err
	}

	nodes := append([]*tree.Node(nil), idx.Nodes()...)
	sort.Slice(nodes, func(i, j int) bool { return idLess(nodes[i], nodes[j]) })

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir(idx))
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range nodes {
		label := string(n.Desc.ID)
		if opts.Labels {
			text, err := page.LabelText(n.Handle)
			if err != nil {
				return "", err
			}
			if text != "" {
				label += "\n" + text
			}
		}
		fmt.Fprintf(&buf, "  %q [label=%q];\n", n.Handle, label)
	}

	buf.WriteString("\n")
	for _, n := range nodes {
		if parent := idx.Parent(n); parent != nil {
			fmt.Fprintf(&buf, "  %q -> %q;\n", parent.Handle, n.Handle)
		}
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

// rankdir picks the DOT layout direction from the first root that carries a
// layout tag; pages without one render top-to-bottom.
func rankdir(idx *tree.Index) string {
	for _, root := range idx.Roots() {
		switch root.Desc.Layout {
		case descriptor.LR:
			return "LR"
		case descriptor.RL:
			return "RL"
		case descriptor.DT:
			return "BT"
		case descriptor.TD:
			return "TB"
		}
	}
	return "TB"
}

// idLess orders nodes by level length, level, number, then handle so the
// emitted DOT is stable even with duplicate ids.
func idLess(a, b *tree.Node) bool {
	la, na, _ := ident.Parse(a.Desc.ID)
	lb, nb, _ := ident.Parse(b.Desc.ID)
	if la != lb {
		if len(la) != len(lb) {
			return len(la) < len(lb)
		}
		return la < lb
	}
	if na != nb {
		return na < nb
	}
	return a.Handle < b.Handle
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	observability.Render().OnRenderStart(ctx, string(format))
	start := time.Now()
	data, err := renderGraphviz(ctx, dot, format)
	observability.Render().OnRenderComplete(ctx, string(format), len(data), time.Since(start), err)
	return data, err
}

func renderGraphviz(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// Formats lists the output formats the render command accepts.
func Formats() []string {
	return []string{"dot", "json", "svg", "png"}
}

// ValidFormat reports whether s names a supported output format.
func ValidFormat(s string) bool {
	for _, f := range Formats() {
		if strings.EqualFold(s, f) {
			return true
		}
	}
	return false
}
