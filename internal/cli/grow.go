package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/canopy/pkg/observability"
	"github.com/matzehuels/canopy/pkg/tree"
)

// newGrowCmd creates the grow command for spawning children under a node.
func newGrowCmd() *cobra.Command {
	var (
		deck       deckFlags
		configPath string
		node       string
		direction  string
		count      int
		labels     []string
	)

	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Spawn child shapes under a node and connect them",
		Long: `Spawn child shapes under a node, connect each one to it, and re-flow
the sibling group so it stays centered on the parent.

The anchor is selected with --node (a node id like B2 or a shape uuid);
without it an interactive picker opens. An undecorated anchor is first
promoted to a root. Children are numbered after the highest existing
sibling, so numbers are never recycled.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			dir, err := cfg.direction(direction)
			if err != nil {
				return err
			}

			doc, page, err := openPage(deck)
			if err != nil {
				return err
			}
			anchor, err := resolveNode(page, node)
			if err != nil {
				return err
			}

			observability.Tree().OnOperationStart(cmd.Context(), "grow", node)
			start := time.Now()
			children, err := tree.CreateChildren(page, anchor, dir, count, cfg.treeOptions())
			observability.Tree().OnOperationComplete(cmd.Context(), "grow", node, len(children), time.Since(start), err)
			if err != nil {
				return err
			}
			for i, child := range children {
				if i < len(labels) && labels[i] != "" {
					if err := page.SetLabelText(child.Handle, labels[i]); err != nil {
						return err
					}
				}
				logger.Debug("created child", "id", child.Desc.ID, "bounds", formatRect(child.Bounds))
			}

			if err := saveDeck(doc, deck.file); err != nil {
				return err
			}

			ids := make([]string, len(children))
			for i, child := range children {
				ids[i] = StyleNodeID.Render(string(child.Desc.ID))
			}
			printSuccess("Grew %d node(s): %s", len(children), strings.Join(ids, ", "))
			return nil
		},
	}

	cmd.Flags().StringVarP(&deck.file, "file", "f", "", "deck document (required)")
	cmd.Flags().IntVar(&deck.page, "page", 0, "page index")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default canopy.toml if present)")
	cmd.Flags().StringVarP(&node, "node", "n", "", "anchor node id or shape uuid (interactive picker if omitted)")
	cmd.Flags().StringVarP(&direction, "direction", "d", "", "growth direction: right, left, top, bottom (default from config)")
	cmd.Flags().IntVarP(&count, "count", "c", 1, "number of children to create")
	cmd.Flags().StringSliceVarP(&labels, "label", "l", nil, "labels for the new children, in order")
	cmd.MarkFlagRequired("file")

	return cmd
}
