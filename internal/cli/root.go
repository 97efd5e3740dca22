package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// This is typically called by the main package during initialization with values
// injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the canopy CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (new, init,
// grow, sibling, link, tree, render), configures logging based on the
// --verbose flag, and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "canopy",
		Short:        "Canopy grows tree diagrams on a slide canvas",
		Long:         `Canopy automates diagram construction on a slide-style canvas: it spawns child shapes in a chosen direction, wires them to their parent with connectors, keeps the parent/child/sibling relationships in hidden shape metadata, and re-flows sibling groups so they stay centered on their parent.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("canopy %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newNewCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newGrowCmd())
	root.AddCommand(newSiblingCmd())
	root.AddCommand(newLinkCmd())
	root.AddCommand(newTreeCmd())
	root.AddCommand(newRenderCmd())

	return root.ExecuteContext(ctx)
}
