package hooks

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kurogetsusai/wl-ignore-mail/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, dir, hookPoint, name, body string, mode os.FileMode) {
	t.Helper()
	hookDir := filepath.Join(dir, hookPoint)
	require.NoError(t, os.MkdirAll(hookDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(hookDir, name), []byte("#!/bin/sh\n"+body+"\n"), mode))
}

func newRunner(t *testing.T, mode string) (*Runner, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return &Runner{Dir: t.TempDir(), FailureMode: mode, Enabled: true, Output: &out}, &out
}

func TestRunPassesEnvironmentInOrder(t *testing.T) {
	r, out := newRunner(t, FailureWarn)
	writeScript(t, r.Dir, PostCheck, "20-second", `echo "second $WL_MAIL_MODE"`, 0o755)
	writeScript(t, r.Dir, PostCheck, "10-first", `echo "first $HOOK_POINT $WL_MAIL_COUNT"`, 0o755)

	err := r.Run(context.Background(), PostCheck, "WL_MAIL_MODE=flashing", "WL_MAIL_COUNT=2", "garbage")
	require.NoError(t, err)

	assert.Equal(t, "first post-check 2\nsecond flashing\n", out.String())
}

func TestRunSkipsNonExecutable(t *testing.T) {
	r, out := newRunner(t, FailureWarn)
	writeScript(t, r.Dir, PostToggle, "notes", "echo should not run", 0o644)

	require.NoError(t, r.Run(context.Background(), PostToggle))
	assert.Empty(t, out.String())
}

func TestRunFailureModes(t *testing.T) {
	tests := []struct {
		mode       string
		wantErr    bool
		wantOutput string
	}{
		{FailureAbort, true, ""},
		{FailureWarn, false, "warning: hook 10-fail failed"},
		{FailureIgnore, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			r, out := newRunner(t, tt.mode)
			writeScript(t, r.Dir, PostCheck, "10-fail", "exit 3", 0o755)
			writeScript(t, r.Dir, PostCheck, "20-after", "echo after", 0o755)

			err := r.Run(context.Background(), PostCheck)
			if tt.wantErr {
				require.Error(t, err)
				assert.NotContains(t, out.String(), "after")
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out.String(), tt.wantOutput)
			assert.Contains(t, out.String(), "after")
		})
	}
}

func TestDisabledRunnerDoesNothing(t *testing.T) {
	r, out := newRunner(t, FailureAbort)
	r.Enabled = false
	writeScript(t, r.Dir, PostCheck, "10-fail", "exit 1", 0o755)

	require.NoError(t, r.Run(context.Background(), PostCheck))
	assert.Empty(t, out.String())

	var nilRunner *Runner
	require.NoError(t, nilRunner.Run(context.Background(), PostCheck))
}

func TestFromConfigAndInit(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("WL_IGNORE_MAIL_HOOKS_DIR", filepath.Join(dir, "hooks"))
	t.Setenv("WL_IGNORE_MAIL_HOOKS_FAILURE_MODE", "abort")
	config.Load()

	r := FromConfig()
	assert.Equal(t, filepath.Join(dir, "hooks"), r.Dir)
	assert.Equal(t, FailureAbort, r.FailureMode)
	assert.True(t, r.Enabled)

	require.NoError(t, r.Init())
	info, err := os.Stat(r.Dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
