// Command blogctl runs maintenance tasks against the blog database and
// previews markdown the way the site renders it.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "blogctl",
		Short: "Manage portfolio blog content",
		Long: `blogctl maintains the blog database and previews post markdown.

Database commands read the same environment (.env included) as the server.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newMigrateCmd())
	root.AddCommand(newImportCmd())
	root.AddCommand(newUpdateViewsCmd())
	root.AddCommand(newHeadingsCmd())
	root.AddCommand(newRenderCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
