package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/canopy/pkg/observability"
	"github.com/matzehuels/canopy/pkg/tree"
)

// newSiblingCmd creates the sibling command for extending a sibling group.
func newSiblingCmd() *cobra.Command {
	var (
		deck       deckFlags
		configPath string
		node       string
		label      string
	)

	cmd := &cobra.Command{
		Use:   "sibling",
		Short: "Add a sibling next to an existing child node",
		Long: `Add a sibling next to an existing child node.

The new node joins the anchor's sibling group: it inherits the group's
growth direction, copies the anchor's visual style, is connected to the
shared parent, and the whole group is re-centered. Roots have no parent
and therefore cannot take siblings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := loadConfig(configPath)
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

			observability.Tree().OnOperationStart(cmd.Context(), "sibling", node)
			start := time.Now()
			sibling, err := tree.CreateSibling(page, anchor, cfg.treeOptions())
			created := 0
			if sibling != nil {
				created = 1
			}
			observability.Tree().OnOperationComplete(cmd.Context(), "sibling", node, created, time.Since(start), err)
			if err != nil {
				return err
			}
			if label != "" {
				if err := page.SetLabelText(sibling.Handle, label); err != nil {
					return err
				}
			}
			logger.Debug("created sibling", "id", sibling.Desc.ID, "bounds", formatRect(sibling.Bounds))

			if err := saveDeck(doc, deck.file); err != nil {
				return err
			}
			printSuccess("Added sibling %s", StyleNodeID.Render(string(sibling.Desc.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&deck.file, "file", "f", "", "deck document (required)")
	cmd.Flags().IntVar(&deck.page, "page", 0, "page index")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default canopy.toml if present)")
	cmd.Flags().StringVarP(&node, "node", "n", "", "anchor node id or shape uuid (interactive picker if omitted)")
	cmd.Flags().StringVarP(&label, "label", "l", "", "label for the new sibling")
	cmd.MarkFlagRequired("file")

	return cmd
}
