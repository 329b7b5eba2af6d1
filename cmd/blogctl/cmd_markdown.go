package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"devfolio/internal/importer"
	"devfolio/internal/markdown"
	"devfolio/internal/toc"
)

// readBody returns the markdown of a post file without its front matter.
// "-" reads standard input.
func readBody(cmd *cobra.Command, name string) (string, error) {
	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", err
	}
	_, body, err := importer.SplitFrontMatter(data)
	return body, err
}

func newHeadingsCmd() *cobra.Command {
	var (
		levels  []int
		outline bool
	)
	cmd := &cobra.Command{
		Use:   "headings <file>",
		Short: "Print the outline of a markdown file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readBody(cmd, args[0])
			if err != nil {
				return err
			}
			headings := markdown.New(markdown.WithLevels(levels...)).Headings(body)

			if outline {
				active := ""
				if len(headings) > 0 {
					active = headings[0].ID
				}
				return toc.RenderOutline(cmd.OutOrStdout(), headings, toc.OutlineOptions{ActiveID: active})
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(headings)
		},
	}
	cmd.Flags().IntSliceVar(&levels, "levels", markdown.DefaultLevels, "Heading levels to include")
	cmd.Flags().BoolVar(&outline, "html", false, "Print the rendered outline instead of JSON")
	return cmd
}

func newRenderCmd() *cobra.Command {
	var style string
	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a markdown file to HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readBody(cmd, args[0])
			if err != nil {
				return err
			}
			html, err := markdown.New(markdown.WithHighlightStyle(style)).Render(body)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), html)
			return err
		},
	}
	cmd.Flags().StringVar(&style, "style", markdown.DefaultHighlightStyle, "Chroma style for code blocks")
	return cmd
}
