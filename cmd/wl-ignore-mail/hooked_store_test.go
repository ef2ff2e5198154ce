package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/kurogetsusai/wl-ignore-mail/internal/hooks"
	"github.com/kurogetsusai/wl-ignore-mail/internal/ignore"
	"github.com/kurogetsusai/wl-ignore-mail/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeHook(t *testing.T, dir, body string) {
	t.Helper()
	hookDir := filepath.Join(dir, hooks.PostToggle)
	require.NoError(t, os.MkdirAll(hookDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(hookDir, "10-notify"), []byte("#!/bin/sh\n"+body+"\n"), 0o755))
}

func TestHookedStoreKeepsHookOutputOffTheTerminal(t *testing.T) {
	tests := []struct {
		name        string
		failureMode string
	}{
		{name: "warn mode", failureMode: hooks.FailureWarn},
		{name: "abort mode", failureMode: hooks.FailureAbort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			marker := filepath.Join(dir, "ran")
			writeHook(t, dir, `echo "toggled $WL_MAIL_ID $WL_MAIL_IGNORED" > "`+marker+`"; echo noisy; exit 3`)

			var terminal bytes.Buffer
			runner := &hooks.Runner{Dir: dir, FailureMode: tt.failureMode, Enabled: true, Output: &terminal}
			store := newHookedStore(ignore.NewStore(storage.NewMemoryBackend()), runner)

			ignored, err := store.Toggle(42)
			require.NoError(t, err)
			assert.True(t, ignored)
			assert.Equal(t, []int{42}, store.List())

			ran, err := os.ReadFile(marker)
			require.NoError(t, err)
			assert.Equal(t, "toggled 42 true\n", string(ran))
			assert.Empty(t, terminal.String())
			assert.Same(t, &terminal, runner.Output)
		})
	}
}

func TestHookedStoreSkipsHooksOnFailedToggle(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "ran")
	writeHook(t, dir, `touch "`+marker+`"`)

	runner := &hooks.Runner{Dir: dir, FailureMode: hooks.FailureWarn, Enabled: true}
	store := newHookedStore(ignore.NewStore(storage.NewMemoryBackend()), runner)

	_, err := store.Toggle(0)
	require.ErrorIs(t, err, ignore.ErrInvalidID)
	assert.NoFileExists(t, marker)
}
