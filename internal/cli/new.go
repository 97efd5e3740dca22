package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/canopy/pkg/canvas/document"
)

// newNewCmd creates the new command for creating an empty deck document.
func newNewCmd() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "new [deck.json]",
		Short: "Create an empty deck document",
		Long: `Create an empty deck document with a single page.

The document is a plain JSON file; every other command operates on it via
the --file flag.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := document.New(title)
			if err := saveDeck(doc, args[0]); err != nil {
				return err
			}
			printSuccess("Created %s", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "document title")

	return cmd
}
