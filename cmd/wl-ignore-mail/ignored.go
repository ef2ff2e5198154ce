/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"fmt"

	"github.com/kurogetsusai/wl-ignore-mail/cmd"
	"github.com/kurogetsusai/wl-ignore-mail/internal/colors"
	"github.com/kurogetsusai/wl-ignore-mail/internal/ignore"
	"github.com/spf13/cobra"
)

type ignoredClient interface {
	IgnoredSet() (ignore.Set, error)
}

// NewIgnoredCmd creates the ignored command with explicit dependencies.
func NewIgnoredCmd(client ignoredClient) *cobra.Command {
	if client == nil {
		panic("NewIgnoredCmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "ignored",
		Short: "Print the ignored thread IDs",
		Long:  `Print the ignored thread IDs, one per line, in the order they were ignored.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := client.IgnoredSet()
			if err != nil {
				return err
			}
			if len(set.Ignored) == 0 {
				colors.Info("No ignored threads")
				return nil
			}
			for _, id := range set.Ignored {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

// ignoredCmd represents the ignored command
var ignoredCmd = NewIgnoredCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(ignoredCmd)
}
