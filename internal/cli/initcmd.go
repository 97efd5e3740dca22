package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/canopy/pkg/canvas"
	"github.com/matzehuels/canopy/pkg/layout"
	"github.com/matzehuels/canopy/pkg/tree"
)

// newInitCmd creates the init command for decorating a new root node.
func newInitCmd() *cobra.Command {
	var (
		deck       deckFlags
		configPath string
		at         string
		size       string
		label      string
		kind       string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a shape and decorate it as a new root node",
		Long: `Create a shape on the page and decorate it as a new root node.

The root id is the smallest unused root number on the page (A1, A2, ...),
so initializing never collides with existing roots. The shape is styled
from the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			pos, err := parsePoint(at)
			if err != nil {
				return err
			}
			sz, err := parseSize(size)
			if err != nil {
				return err
			}

			doc, page, err := openPage(deck)
			if err != nil {
				return err
			}

			bounds := layout.Rect{Left: pos.X, Top: pos.Y, Width: sz.Width, Height: sz.Height}
			h, err := page.CreateNode(canvas.Kind(kind), bounds)
			if err != nil {
				return err
			}
			if err := page.SetVisualStyle(h, cfg.visualStyle()); err != nil {
				return err
			}
			if label != "" {
				if err := page.SetLabelText(h, label); err != nil {
					return err
				}
			}

			node, err := tree.InitRoot(page, h)
			if err != nil {
				return err
			}
			logger.Debug("decorated root", "id", node.Desc.ID, "bounds", formatRect(bounds))

			if err := saveDeck(doc, deck.file); err != nil {
				return err
			}
			printSuccess("Initialized root %s", StyleNodeID.Render(string(node.Desc.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&deck.file, "file", "f", "", "deck document (required)")
	cmd.Flags().IntVar(&deck.page, "page", 0, "page index")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default canopy.toml if present)")
	cmd.Flags().StringVar(&at, "at", "60,60", "position of the new shape as X,Y")
	cmd.Flags().StringVar(&size, "size", "120x48", "size of the new shape as WxH")
	cmd.Flags().StringVar(&label, "label", "", "visible label text")
	cmd.Flags().StringVar(&kind, "kind", string(canvas.KindRectangle), "shape kind: rectangle, rounded, ellipse, diamond")
	cmd.MarkFlagRequired("file")

	return cmd
}
