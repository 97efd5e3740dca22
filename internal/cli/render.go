package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/canopy/pkg/errors"
	"github.com/matzehuels/canopy/pkg/export"
)

// newRenderCmd creates the render command for exporting the forest.
func newRenderCmd() *cobra.Command {
	var (
		deck   deckFlags
		output string
		format string
		labels bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Export the node hierarchy as SVG, PNG, DOT, or JSON",
		Long: `Export the page's node hierarchy as a node-link diagram.

The format is taken from --format, or inferred from the output file
extension when --format is omitted. Supported formats: ` + strings.Join(export.Formats(), ", ") + `.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			if format == "" {
				format = strings.TrimPrefix(filepath.Ext(output), ".")
			}
			format = strings.ToLower(format)
			if !export.ValidFormat(format) {
				return errors.New(errors.ErrCodeInvalidFormat,
					"unsupported format %q (use %s)", format, strings.Join(export.Formats(), ", "))
			}

			_, page, err := openPage(deck)
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			var data []byte
			switch format {
			case "json":
				data, err = export.ToJSON(page, export.Options{Labels: labels})
				if err != nil {
					return err
				}
			case "dot":
				dot, err := export.ToDOT(page, export.Options{Labels: labels})
				if err != nil {
					return err
				}
				data = []byte(dot)
			case "svg", "png":
				dot, err := export.ToDOT(page, export.Options{Labels: labels})
				if err != nil {
					return err
				}
				spinner := newSpinnerWithContext(cmd.Context(), fmt.Sprintf("Rendering %s...", format))
				spinner.Start()
				if format == "svg" {
					data, err = export.RenderSVG(cmd.Context(), dot)
				} else {
					data, err = export.RenderPNG(cmd.Context(), dot)
				}
				spinner.Stop()
				if spinner.Cancelled() {
					return cmd.Context().Err()
				}
				if err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
				}
			}

			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			prog.done(fmt.Sprintf("Rendered %s", output))
			printSuccess("Wrote %s", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&deck.file, "file", "f", "", "deck document (required)")
	cmd.Flags().IntVar(&deck.page, "page", 0, "page index")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (required)")
	cmd.Flags().StringVar(&format, "format", "", "output format: dot, json, svg, png (default from extension)")
	cmd.Flags().BoolVar(&labels, "labels", true, "include shape labels in node boxes")
	cmd.MarkFlagRequired("file")
	cmd.MarkFlagRequired("output")

	return cmd
}
