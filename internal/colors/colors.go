// Package colors provides console output helpers for wl-ignore-mail.
package colors

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
)

// ANSI color codes.
const (
	Red    = "\033[0;31m"
	Green  = "\033[0;32m"
	Yellow = "\033[1;33m"
	Blue   = "\033[0;34m"
	Cyan   = "\033[0;36m"
	Reset  = "\033[0m"
)

const checkmark = "✓"

// Logger mirrors console messages into the structured log.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

var (
	debugEnabled atomic.Bool
	quietEnabled atomic.Bool
	logger       Logger
	loggerMu     sync.RWMutex
)

func init() {
	if val := os.Getenv("WL_IGNORE_MAIL_DEBUG"); val == "true" || val == "1" {
		debugEnabled.Store(true)
	}
}

// SetDebug enables or disables debug output.
func SetDebug(enabled bool) {
	debugEnabled.Store(enabled)
}

// DebugEnabled reports whether debug output is on.
func DebugEnabled() bool {
	return debugEnabled.Load()
}

// SetQuiet suppresses Info and Success console output. Errors and warnings
// are always printed.
func SetQuiet(enabled bool) {
	quietEnabled.Store(enabled)
}

// QuietEnabled reports whether Info and Success output is suppressed.
func QuietEnabled() bool {
	return quietEnabled.Load()
}

// SetLogger sets the structured logger that mirrors console output.
func SetLogger(l Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

func currentLogger() Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// errorFallback writes without colors so a failing writer cannot recurse.
func errorFallback(msg string) {
	fmt.Fprintf(os.Stderr, "%s\n", msg)
}

func emit(w io.Writer, kind, line string) {
	if _, err := fmt.Fprint(w, line); err != nil {
		errorFallback(fmt.Sprintf("failed to print %s message: %v", kind, err))
	}
}

// Error outputs an error message to stderr.
func Error(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := currentLogger(); l != nil {
		l.Error(msg)
	}
	emit(os.Stderr, "error", fmt.Sprintf("%sError:%s %s%s\n", Red, Reset, msg, Reset))
}

// Warning outputs a warning message to stderr.
func Warning(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := currentLogger(); l != nil {
		l.Warn(msg)
	}
	emit(os.Stderr, "warning", fmt.Sprintf("%sWarning:%s %s%s\n", Yellow, Reset, msg, Reset))
}

// Success outputs a success message to stdout.
func Success(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := currentLogger(); l != nil {
		l.Info(msg, "type", "success")
	}
	if quietEnabled.Load() {
		return
	}
	emit(os.Stdout, "success", fmt.Sprintf("%s%s%s %s%s\n", Green, checkmark, Reset, msg, Reset))
}

// Info outputs an informational message to stdout.
func Info(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := currentLogger(); l != nil {
		l.Info(msg)
	}
	if quietEnabled.Load() {
		return
	}
	emit(os.Stdout, "info", fmt.Sprintf("%s%s%s\n", Blue, msg, Reset))
}

// Debug outputs a debug message to stderr when debug is enabled.
func Debug(msgs ...string) {
	if !debugEnabled.Load() {
		return
	}
	msg := strings.Join(msgs, " ")
	if l := currentLogger(); l != nil {
		l.Debug(msg)
	}
	emit(os.Stderr, "debug", fmt.Sprintf("%sDebug:%s %s%s\n", Cyan, Reset, msg, Reset))
}
