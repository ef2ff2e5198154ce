/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"context"
	"fmt"

	"github.com/kurogetsusai/wl-ignore-mail/cmd"
	"github.com/kurogetsusai/wl-ignore-mail/internal/ignore"
	"github.com/kurogetsusai/wl-ignore-mail/internal/mail"
	"github.com/spf13/cobra"
)

const listRowFormat = "%8s  %-6s  %-7s  %s\n"

type listClient interface {
	FetchRecords(ctx context.Context) ([]mail.Record, error)
	IgnoredSet() (ignore.Set, error)
}

// NewListCmd creates the list command with explicit dependencies.
func NewListCmd(client listClient) *cobra.Command {
	if client == nil {
		panic("NewListCmd: client dependency cannot be nil")
	}

	var newOnly bool

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the threads of the mail listing",
		Long: `List the threads of the mail listing.

Fetches the mail listing and prints one line per thread with its ID, whether
it is unread, whether it is ignored and its last page offset. With --new only
unread threads that are not ignored are printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := client.FetchRecords(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch mail listing: %w", err)
			}
			set, err := client.IgnoredSet()
			if err != nil {
				return err
			}
			if newOnly {
				records = mail.NewMails(records, set)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, listRowFormat, "ID", "UNREAD", "IGNORED", "OFFSET")
			for _, r := range records {
				offset := "-"
				if r.HasOffset {
					offset = fmt.Sprint(r.Offset)
				}
				fmt.Fprintf(w, listRowFormat, fmt.Sprint(r.ID), yesNo(r.Unread), yesNo(set.Contains(r.ID)), offset)
			}
			return nil
		},
	}

	listCmd.Flags().BoolVar(&newOnly, "new", false, "Only show unread threads that are not ignored")

	return listCmd
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// listCmd represents the list command
var listCmd = NewListCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(listCmd)
}
