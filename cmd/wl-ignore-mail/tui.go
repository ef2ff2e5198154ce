/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kurogetsusai/wl-ignore-mail/cmd"
	"github.com/spf13/cobra"
)

type tuiClient interface {
	NewModel(withTmux bool) (tea.Model, error)
	RunProgram(model tea.Model) error
}

// NewTUICmd creates the tui command with explicit dependencies.
func NewTUICmd(client tuiClient) *cobra.Command {
	if client == nil {
		panic("NewTUICmd: client dependency cannot be nil")
	}

	var withTmux bool

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse the mail listing interactively",
		Long: `Browse the mail listing interactively.

Shows every thread of the mail listing with its Ignore control. Unread threads
are highlighted, ignored ones are dimmed, and the header shows the mail icon as
it would appear on the forum.

Keys: up/down (k/j) move, i/enter/space toggles ignore, r reloads, ? help,
q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := client.NewModel(withTmux)
			if err != nil {
				return err
			}
			return client.RunProgram(model)
		},
	}

	tuiCmd.Flags().BoolVar(&withTmux, "tmux", false, "Publish icon changes to tmux user options")

	return tuiCmd
}

// tuiCmd represents the tui command
var tuiCmd = NewTUICmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(tuiCmd)
}
