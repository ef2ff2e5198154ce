package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(NewVersionCmd(newFakeClient(t)))
	require.NoError(t, err)
	assert.Equal(t, "wl-ignore-mail version 1.2.3\n", out)
}

func TestNewVersionCmdPanicsWithoutClient(t *testing.T) {
	assert.Panics(t, func() { NewVersionCmd(nil) })
}
