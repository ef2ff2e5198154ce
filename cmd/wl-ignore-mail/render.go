/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/kurogetsusai/wl-ignore-mail/cmd"
	"github.com/kurogetsusai/wl-ignore-mail/internal/bootstrap"
	"github.com/kurogetsusai/wl-ignore-mail/internal/colors"
	"github.com/kurogetsusai/wl-ignore-mail/internal/mail"
	"github.com/kurogetsusai/wl-ignore-mail/internal/page"
	"github.com/kurogetsusai/wl-ignore-mail/internal/page/htmldoc"
	"github.com/spf13/cobra"
)

type renderClient interface {
	LoadDocument(ctx context.Context, path string) (*htmldoc.Document, error)
	NewBootstrap(p page.Page, withTmux bool) (*bootstrap.Bootstrap, error)
}

// NewRenderCmd creates the render command with explicit dependencies.
func NewRenderCmd(client renderClient) *cobra.Command {
	if client == nil {
		panic("NewRenderCmd: client dependency cannot be nil")
	}

	var (
		input  string
		path   string
		output string
		clicks []int
	)

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Write the augmented mail listing HTML",
		Long: `Write the augmented mail listing HTML.

The page is read from --input, or loaded from the forum at --path (default
` + mail.ListingPath + `). The mail check runs against it; when the page is the
listing every thread row gets an Ignore control and its background color.
Each --click ID then clicks the control of that thread, toggling it in the
ignore list. The resulting document is written to --output or stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadRenderDocument(cmd.Context(), client, input, path)
			if err != nil {
				return err
			}
			b, err := client.NewBootstrap(doc, false)
			if err != nil {
				return err
			}
			if _, err := b.Run(cmd.Context()); err != nil {
				return err
			}
			for _, id := range clicks {
				state, err := b.Renderer().ClickID(id)
				if err != nil {
					return fmt.Errorf("click %d: %w", id, err)
				}
				colors.Debug(fmt.Sprintf("clicked %d: icon %s", id, state.Mode))
			}

			return writeDocument(cmd.OutOrStdout(), output, doc)
		},
	}

	renderCmd.Flags().StringVarP(&input, "input", "i", "", "Read the page from a file instead of the forum")
	renderCmd.Flags().StringVar(&path, "path", mail.ListingPath, "Forum path of the page")
	renderCmd.Flags().StringVarP(&output, "output", "o", "", "Write the HTML to a file instead of stdout")
	renderCmd.Flags().IntSliceVar(&clicks, "click", nil, "Click the Ignore control of a thread ID (repeatable)")

	return renderCmd
}

func loadRenderDocument(ctx context.Context, client renderClient, input, path string) (*htmldoc.Document, error) {
	if input == "" {
		doc, err := client.LoadDocument(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("load page: %w", err)
		}
		return doc, nil
	}
	f, err := os.Open(input)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	return htmldoc.Parse(f, path)
}

func writeDocument(stdout io.Writer, output string, doc *htmldoc.Document) error {
	if output == "" {
		return doc.Render(stdout)
	}
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := doc.Render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// renderCmd represents the render command
var renderCmd = NewRenderCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(renderCmd)
}
