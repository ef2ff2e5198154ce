package app

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubModel struct{}

func (stubModel) Init() tea.Cmd                         { return nil }
func (m stubModel) Update(tea.Msg) (tea.Model, tea.Cmd) { return m, nil }
func (stubModel) View() string                          { return "" }

type stubRunner struct {
	err   error
	calls int
}

func (s *stubRunner) Run(tea.Model) error {
	s.calls++
	return s.err
}

func TestRunUsesRunner(t *testing.T) {
	runner := &stubRunner{}
	require.NoError(t, Run(runner, stubModel{}))
	assert.Equal(t, 1, runner.calls)
}

func TestRunReturnsRunnerError(t *testing.T) {
	runner := &stubRunner{err: errors.New("no tty")}
	err := Run(runner, stubModel{})
	require.ErrorContains(t, err, "no tty")
}
