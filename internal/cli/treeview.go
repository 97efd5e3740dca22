package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/matzehuels/canopy/pkg/canvas"
	"github.com/matzehuels/canopy/pkg/ident"
	"github.com/matzehuels/canopy/pkg/tree"
)

// newTreeCmd creates the tree command for printing the page's forest.
func newTreeCmd() *cobra.Command {
	var deck deckFlags

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the node hierarchy of a page",
		Long: `Print the node hierarchy of a page as an indented forest.

Every decorated shape appears under its parent with its id, label and
layout tag. Undecorated shapes are not part of any tree and are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, page, err := openPage(deck)
			if err != nil {
				return err
			}
			idx, err := tree.BuildIndex(page)
			if err != nil {
				return err
			}
			return printForest(cmd.OutOrStdout(), page, idx)
		},
	}

	cmd.Flags().StringVarP(&deck.file, "file", "f", "", "deck document (required)")
	cmd.Flags().IntVar(&deck.page, "page", 0, "page index")
	cmd.MarkFlagRequired("file")

	return cmd
}

// printForest writes every root's subtree in ascending id order.
func printForest(w io.Writer, page canvas.Page, idx *tree.Index) error {
	roots := idx.Roots()
	sortNodes(roots)
	if len(roots) == 0 {
		fmt.Fprintln(w, StyleDim.Render("(no decorated nodes)"))
		return nil
	}
	for _, root := range roots {
		if err := printSubtree(w, page, idx, root, "", ""); err != nil {
			return err
		}
	}
	return nil
}

// printSubtree prints one node line and recurses into its children. prefix
// decorates this node's line, childPrefix is the indentation carried down
// to its children.
func printSubtree(w io.Writer, page canvas.Page, idx *tree.Index, n *tree.Node, prefix, childPrefix string) error {
	label, err := page.LabelText(n.Handle)
	if err != nil {
		return err
	}

	line := StyleNodeID.Render(string(n.Desc.ID))
	if label != "" {
		line += " " + StyleLabel.Render(label)
	}
	if n.Desc.Layout != "" {
		line += " " + StyleDim.Render("["+string(n.Desc.Layout)+"]")
	}
	fmt.Fprintln(w, prefix+line)

	children := make([]*tree.Node, 0, len(idx.ChildrenOf(n)))
	for _, child := range idx.ChildrenOf(n) {
		children = append(children, child)
	}
	sortNodes(children)

	for i, child := range children {
		branch, cont := "├── ", "│   "
		if i == len(children)-1 {
			branch, cont = "└── ", "    "
		}
		err := printSubtree(w, page, idx, child,
			childPrefix+styleBranch.Render(branch),
			childPrefix+styleBranch.Render(cont))
		if err != nil {
			return err
		}
	}
	return nil
}

// sortNodes orders nodes by level length, level, then number, so B2 sorts
// before B10 and Z1 before AA1.
func sortNodes(nodes []*tree.Node) {
	sort.Slice(nodes, func(i, j int) bool {
		li, ni, _ := ident.Parse(nodes[i].Desc.ID)
		lj, nj, _ := ident.Parse(nodes[j].Desc.ID)
		if li != lj {
			if len(li) != len(lj) {
				return len(li) < len(lj)
			}
			return li < lj
		}
		return ni < nj
	})
}
