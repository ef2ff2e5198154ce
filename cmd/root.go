/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/kurogetsusai/wl-ignore-mail/internal/colors"
	"github.com/kurogetsusai/wl-ignore-mail/internal/config"
	"github.com/kurogetsusai/wl-ignore-mail/internal/logging"
	"github.com/kurogetsusai/wl-ignore-mail/internal/version"
	"github.com/spf13/cobra"
)

var (
	debugFlag bool
	quietFlag bool
)

// RootCmd is the base command; subcommands register themselves on it.
var RootCmd = &cobra.Command{
	Use:           "wl-ignore-mail",
	Short:         "Ignore individual Warlight mail threads.",
	Long:          `Ignore individual Warlight mail threads so they stop lighting up the mail icon.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		shutdown()
		if err := logging.ShutdownGlobal(); err != nil {
			colors.Debug(fmt.Sprintf("log shutdown: %v", err))
		}
	},
}

var (
	closersMu sync.Mutex
	closers   []func() error
)

// RegisterCloser adds fn to the resources released after the command runs.
func RegisterCloser(fn func() error) {
	closersMu.Lock()
	defer closersMu.Unlock()
	closers = append(closers, fn)
}

// shutdown runs the registered closers once, newest first.
func shutdown() {
	closersMu.Lock()
	pending := closers
	closers = nil
	closersMu.Unlock()

	for i := len(pending) - 1; i >= 0; i-- {
		if err := pending[i](); err != nil {
			colors.Warning(fmt.Sprintf("shutdown: %v", err))
		}
	}
}

// Execute runs the root command. Closers also run when the command failed,
// since PersistentPostRun is skipped then.
func Execute() error {
	err := RootCmd.Execute()
	shutdown()
	return err
}

func setup(cmd *cobra.Command) error {
	config.Load()
	colors.SetDebug(debugFlag || config.GetBool("debug", false))
	colors.SetQuiet(quietFlag || config.GetBool("quiet", false))
	if err := logging.InitGlobal(); err != nil {
		colors.Warning(fmt.Sprintf("logging disabled: %v", err))
	}
	logging.Debug("command started", "command", cmd.Name())
	return nil
}

func init() {
	RootCmd.Version = version.String()
	RootCmd.CompletionOptions.HiddenDefaultCmd = true
	RootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Print debug output")
	RootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Only print errors")

	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != cmd.Root() {
			_ = cmd.Usage()
			return
		}
		PrintHelp(cmd.OutOrStdout(), cmd)
	})
}

// commandOrder lists the commands in help output order.
var commandOrder = []string{
	"check",
	"render",
	"list",
	"toggle",
	"ignored",
	"tui",
	"help",
	"version",
}

// PrintHelp writes the command overview of root to w.
func PrintHelp(w io.Writer, root *cobra.Command) {
	var cmdLines []string
	for _, name := range commandOrder {
		for _, c := range root.Commands() {
			if c.Name() == name {
				cmdLines = append(cmdLines, fmt.Sprintf("    %-16s %s", c.Name(), c.Short))
				break
			}
		}
	}

	fmt.Fprintf(w, `wl-ignore-mail v%s

Ignore individual Warlight mail threads so they stop lighting up the mail icon.

USAGE:
    wl-ignore-mail [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    -h, --help      Show help message
    -q, --quiet     Only print errors
        --debug     Print debug output

Settings are read from %s/config.toml and %s* environment variables.
`, version.String(), strings.Join(cmdLines, "\n"), config.Get("config_dir", "~/.config/wl-ignore-mail"), config.EnvPrefix)
}
