package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/canopy/pkg/observability"
	"github.com/matzehuels/canopy/pkg/tree"
)

// newLinkCmd creates the link command for joining two existing nodes.
func newLinkCmd() *cobra.Command {
	var (
		deck       deckFlags
		configPath string
		from       string
		to         string
	)

	cmd := &cobra.Command{
		Use:   "link",
		Short: "Connect two existing nodes as parent and child",
		Long: `Connect two existing decorated nodes as parent and child.

The shallower node becomes the parent no matter which order the two are
given in. If the child already has a parent it is detached from it first,
then recorded under the new parent and wired with a connector. Nodes at
the same depth cannot be linked.`,
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
			a, err := resolveNode(page, from)
			if err != nil {
				return err
			}
			b, err := resolveNode(page, to)
			if err != nil {
				return err
			}

			observability.Tree().OnOperationStart(cmd.Context(), "link", from)
			start := time.Now()
			err = tree.LinkExisting(page, a, b, cfg.treeOptions())
			observability.Tree().OnOperationComplete(cmd.Context(), "link", from, 0, time.Since(start), err)
			if err != nil {
				return err
			}
			logger.Debug("linked nodes", "from", from, "to", to)

			if err := saveDeck(doc, deck.file); err != nil {
				return err
			}
			printSuccess("Linked %s and %s", StyleNodeID.Render(nodeLabel(page, a)), StyleNodeID.Render(nodeLabel(page, b)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&deck.file, "file", "f", "", "deck document (required)")
	cmd.Flags().IntVar(&deck.page, "page", 0, "page index")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default canopy.toml if present)")
	cmd.Flags().StringVar(&from, "from", "", "first node id or shape uuid (interactive picker if omitted)")
	cmd.Flags().StringVar(&to, "to", "", "second node id or shape uuid (interactive picker if omitted)")
	cmd.MarkFlagRequired("file")

	return cmd
}
