/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"context"
	"fmt"

	"github.com/kurogetsusai/wl-ignore-mail/cmd"
	"github.com/kurogetsusai/wl-ignore-mail/internal/bootstrap"
	"github.com/kurogetsusai/wl-ignore-mail/internal/colors"
	"github.com/kurogetsusai/wl-ignore-mail/internal/config"
	"github.com/kurogetsusai/wl-ignore-mail/internal/page"
	"github.com/kurogetsusai/wl-ignore-mail/internal/page/htmldoc"
	"github.com/kurogetsusai/wl-ignore-mail/internal/status"
	"github.com/spf13/cobra"
)

type checkClient interface {
	BaseURL() string
	LoadDocument(ctx context.Context, path string) (*htmldoc.Document, error)
	NewBootstrap(p page.Page, withTmux bool) (*bootstrap.Bootstrap, error)
}

// NewCheckCmd creates the check command with explicit dependencies.
func NewCheckCmd(client checkClient) *cobra.Command {
	if client == nil {
		panic("NewCheckCmd: client dependency cannot be nil")
	}

	var (
		path     string
		format   string
		withTmux bool
		noColor  bool
	)

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Check for new mail and print the icon state",
		Long: `Check for new mail and print the icon state.

The current page (--path, default from current_path) is loaded from the forum,
the mail listing is fetched and scraped, and the mail icon is recomputed with
ignored threads left out. The result is printed in the chosen format:

  compact   icon glyph and new mail count, with tmux color markup
  detailed  mode, count and link target
  json      machine readable state
  mode      just the icon mode

With --tmux (or tmux_enabled) the state is also published to the tmux user
options @wl_mail_mode, @wl_mail_count and @wl_mail_target.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = config.Get("current_path", "/")
			}
			if format == "" {
				format = config.Get("status_format", status.FormatCompact)
			}

			doc, err := client.LoadDocument(cmd.Context(), path)
			if err != nil {
				return fmt.Errorf("load current page: %w", err)
			}
			b, err := client.NewBootstrap(doc, withTmux)
			if err != nil {
				return err
			}
			res, err := b.Run(cmd.Context())
			if err != nil {
				return err
			}
			colors.Debug(fmt.Sprintf("run %s: %d records, %d new", res.RunID, len(res.Records), len(res.NewMails)))

			opts := status.DefaultOptions(client.BaseURL())
			opts.Color = !noColor
			line, err := status.Format(res.State, format, opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
			return nil
		},
	}

	checkCmd.Flags().StringVar(&path, "path", "", "Forum path of the current page")
	checkCmd.Flags().StringVarP(&format, "format", "f", "", "Output format: compact, detailed, json, mode")
	checkCmd.Flags().BoolVar(&withTmux, "tmux", false, "Publish the state to tmux user options")
	checkCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable tmux color markup in compact output")

	return checkCmd
}

// checkCmd represents the check command
var checkCmd = NewCheckCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(checkCmd)
}
