package main

import (
	"errors"
	"testing"

	"github.com/kurogetsusai/wl-ignore-mail/internal/hooks"
	"github.com/kurogetsusai/wl-ignore-mail/internal/ignore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleCommand(t *testing.T) {
	tests := []struct {
		name        string
		initial     []int
		expected    []int
		expectedEnv []string
	}{
		{
			name:        "ignore thread",
			initial:     []int{3},
			expected:    []int{3, 7},
			expectedEnv: []string{"WL_MAIL_ID=7", "WL_MAIL_IGNORED=true"},
		},
		{
			name:        "stop ignoring thread",
			initial:     []int{7, 3},
			expected:    []int{3},
			expectedEnv: []string{"WL_MAIL_ID=7", "WL_MAIL_IGNORED=false"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newFakeClient(t, tt.initial...)
			_, err := executeCommand(NewToggleCmd(client), "7")
			require.NoError(t, err)

			assert.Equal(t, tt.expected, client.store.List())
			require.Len(t, client.hookCalls, 1)
			assert.Equal(t, hooks.PostToggle, client.hookCalls[0].hookPoint)
			assert.Equal(t, tt.expectedEnv, client.hookCalls[0].envVars)
		})
	}
}

func TestToggleCommandRejectsBadID(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		err  error
	}{
		{name: "not a number", arg: "abc"},
		{name: "zero", arg: "0", err: ignore.ErrInvalidID},
		{name: "negative", arg: "-4", err: ignore.ErrInvalidID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newFakeClient(t)
			_, err := executeCommand(NewToggleCmd(client), "--", tt.arg)
			require.Error(t, err)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			}
			assert.Empty(t, client.hookCalls)
			assert.Empty(t, client.store.List())
		})
	}
}

func TestToggleCommandHookFailure(t *testing.T) {
	client := newFakeClient(t)
	client.hookErr = errors.New("hook aborted")

	_, err := executeCommand(NewToggleCmd(client), "7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hook aborted")
	assert.True(t, client.store.IsIgnored(7))
}

func TestToggleCommandRequiresOneArg(t *testing.T) {
	client := newFakeClient(t)
	_, err := executeCommand(NewToggleCmd(client))
	require.Error(t, err)
}
