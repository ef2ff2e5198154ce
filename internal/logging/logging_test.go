package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/kurogetsusai/wl-ignore-mail/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTest(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmp, "state"))
	config.Load()
	return tmp
}

func TestConfigFromGlobal(t *testing.T) {
	setupTest(t)
	t.Setenv("WL_IGNORE_MAIL_LOGGING_ENABLED", "true")
	t.Setenv("WL_IGNORE_MAIL_LOGGING_LEVEL", "warn")
	t.Setenv("WL_IGNORE_MAIL_LOGGING_MAX_FILES", "5")
	config.Load()

	cfg := FromGlobalConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "warn", cfg.Level)
	assert.Equal(t, 5, cfg.MaxFiles)
	assert.Equal(t, os.Getpid(), cfg.PID)
}

func TestDebugAndQuietOverrideLevel(t *testing.T) {
	setupTest(t)
	t.Setenv("WL_IGNORE_MAIL_QUIET", "true")
	config.Load()
	assert.Equal(t, "error", FromGlobalConfig().Level)

	t.Setenv("WL_IGNORE_MAIL_DEBUG", "true")
	config.Load()
	assert.Equal(t, "debug", FromGlobalConfig().Level)
}

func TestLogDirUsesStateDir(t *testing.T) {
	tmp := setupTest(t)

	dir, err := LogDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmp, "state", "wl-ignore-mail", "logs"), dir)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestInitDisabledReturnsNoop(t *testing.T) {
	logger, err := Init(Config{Enabled: false})
	require.NoError(t, err)
	assert.IsType(t, noopLogger{}, logger)
	assert.NotPanics(t, func() {
		logger.With("k", "v").Info("ignored")
		require.NoError(t, logger.Shutdown())
	})
}

func TestLoggerWritesRedactedJSON(t *testing.T) {
	setupTest(t)

	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Level = "debug"
	cfg.Command = "check"
	logger, err := Init(cfg)
	require.NoError(t, err)

	logger.With("run_id", "r1").Info("fetched listing", "status", 200, "session_cookie", "abc")
	require.NoError(t, logger.Shutdown())

	path := logger.(*fileLogger).path
	assert.True(t, strings.HasPrefix(filepath.Base(path), logFilePrefix))
	assert.Contains(t, filepath.Base(path), fmt.Sprintf("_PID%d_check.log", os.Getpid()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry))
	assert.Equal(t, "fetched listing", entry["msg"])
	assert.Equal(t, "r1", entry["run_id"])
	assert.Equal(t, "[REDACTED]", entry["session_cookie"])
	assert.EqualValues(t, 200, entry["status"])
}

func TestRotateKeepsNewestFiles(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	for i := 0; i < 4; i++ {
		p := filepath.Join(dir, fmt.Sprintf("%s%d.log", logFilePrefix, i))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0600))
		mod := now.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(p, mod, mod))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.log"), []byte("x"), 0600))

	require.NoError(t, rotate(dir, 2))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{logFilePrefix + "2.log", logFilePrefix + "3.log", "other.log"}, names)
}

func TestRedactorMatchesKeySegments(t *testing.T) {
	r := newRedactor()
	assert.True(t, r.isSensitive("session_cookie"))
	assert.True(t, r.isSensitive("Auth-Header"))
	assert.False(t, r.isSensitive("authority"))
	assert.False(t, r.isSensitive("thread_id"))
}

func TestGlobalLoggerLifecycle(t *testing.T) {
	setupTest(t)
	t.Setenv("WL_IGNORE_MAIL_LOGGING_ENABLED", "true")
	config.Load()
	defer ShutdownGlobal()

	require.NoError(t, InitGlobal())
	path := CurrentLogFile()
	assert.NotEmpty(t, path)
	Info("hello")

	require.NoError(t, ShutdownGlobal())
	assert.Empty(t, CurrentLogFile())
	assert.IsType(t, noopLogger{}, GetGlobal())
}
