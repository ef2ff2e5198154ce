/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kurogetsusai/wl-ignore-mail/cmd"
	"github.com/kurogetsusai/wl-ignore-mail/internal/colors"
	"github.com/kurogetsusai/wl-ignore-mail/internal/hooks"
	"github.com/spf13/cobra"
)

type toggleClient interface {
	Toggle(id int) (bool, error)
	RunHook(ctx context.Context, hookPoint string, envVars ...string) error
}

// NewToggleCmd creates the toggle command with explicit dependencies.
func NewToggleCmd(client toggleClient) *cobra.Command {
	if client == nil {
		panic("NewToggleCmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Ignore or stop ignoring a mail thread",
		Long: `Ignore or stop ignoring a mail thread.

Flips the thread ID in the ignore list: an ignored thread stops being ignored,
any other thread becomes ignored. Unread ignored threads no longer make the
mail icon flash. post-toggle hooks run afterwards with WL_MAIL_ID and
WL_MAIL_IGNORED set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid thread id %q: %w", args[0], err)
			}

			ignored, err := client.Toggle(id)
			if err != nil {
				return err
			}

			if err := client.RunHook(cmd.Context(), hooks.PostToggle, toggleEnv(id, ignored)...); err != nil {
				return err
			}

			if ignored {
				colors.Success(fmt.Sprintf("Ignoring thread %d", id))
			} else {
				colors.Success(fmt.Sprintf("Stopped ignoring thread %d", id))
			}
			return nil
		},
	}
}

// toggleCmd represents the toggle command
var toggleCmd = NewToggleCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(toggleCmd)
}
