// Package app wires the interactive listing for the tui command.
package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kurogetsusai/wl-ignore-mail/internal/colors"
)

// ProgramRunner runs a bubbletea model to completion.
type ProgramRunner interface {
	Run(model tea.Model) error
}

// DefaultProgramRunner runs the model full screen.
type DefaultProgramRunner struct{}

// NewDefaultProgramRunner creates the alt-screen runner.
func NewDefaultProgramRunner() *DefaultProgramRunner {
	return &DefaultProgramRunner{}
}

// Run starts the program and blocks until it exits.
func (DefaultProgramRunner) Run(model tea.Model) error {
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

// Run runs model through runner, reporting failures on the console.
func Run(runner ProgramRunner, model tea.Model) error {
	if runner == nil {
		runner = NewDefaultProgramRunner()
	}
	if err := runner.Run(model); err != nil {
		colors.Error(fmt.Sprintf("Error running TUI: %v", err))
		return err
	}
	return nil
}
