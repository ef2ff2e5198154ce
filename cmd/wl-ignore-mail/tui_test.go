package main

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

func TestTUICommandRunsModel(t *testing.T) {
	client := newFakeClient(t)
	client.model = stubModel{}

	_, err := executeCommand(NewTUICmd(client))
	require.NoError(t, err)
	assert.Equal(t, stubModel{}, client.ran)
}

func TestTUICommandReturnsProgramError(t *testing.T) {
	client := newFakeClient(t)
	client.model = stubModel{}
	client.runErr = errors.New("no tty")

	_, err := executeCommand(NewTUICmd(client))
	assert.EqualError(t, err, "no tty")
}
