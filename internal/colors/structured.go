package colors

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
)

var (
	structuredMu             sync.Mutex
	structuredLoggingEnabled atomic.Bool
)

func init() {
	structuredLoggingEnabled.Store(true)
}

// StructuredLogLevel represents the level of a structured entry.
type StructuredLogLevel string

const (
	LevelDebug StructuredLogLevel = "debug"
	LevelInfo  StructuredLogLevel = "info"
	LevelWarn  StructuredLogLevel = "warn"
	LevelError StructuredLogLevel = "error"
)

// StructuredLogEntry is one JSON line written to stderr in debug mode.
type StructuredLogEntry struct {
	Timestamp string             `json:"timestamp"`
	Level     StructuredLogLevel `json:"level"`
	Component string             `json:"component"`
	Action    string             `json:"action"`
	Status    string             `json:"status"`
	Error     string             `json:"error,omitempty"`
	ID        string             `json:"id,omitempty"`
	Fields    map[string]any     `json:"fields,omitempty"`
}

// DisableStructuredLogging turns structured output off. The TUI does this so
// JSON lines do not tear the screen.
func DisableStructuredLogging() {
	structuredLoggingEnabled.Store(false)
}

// EnableStructuredLogging turns structured output back on.
func EnableStructuredLogging() {
	structuredLoggingEnabled.Store(true)
}

// StructuredLog writes a structured entry to stderr when debug is enabled.
func StructuredLog(level StructuredLogLevel, component, action, status string, err error, id string, fields map[string]any) {
	if !debugEnabled.Load() || !structuredLoggingEnabled.Load() {
		return
	}

	entry := StructuredLogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level,
		Component: component,
		Action:    action,
		Status:    status,
		ID:        id,
		Fields:    fields,
	}
	if err != nil {
		entry.Error = err.Error()
	}

	data, marshalErr := json.Marshal(entry)
	if marshalErr != nil {
		errorFallback(fmt.Sprintf("failed to marshal structured log: %v", marshalErr))
		return
	}

	structuredMu.Lock()
	defer structuredMu.Unlock()
	if _, writeErr := fmt.Fprintf(os.Stderr, "%s\n", data); writeErr != nil {
		errorFallback(fmt.Sprintf("failed to write structured log: %v", writeErr))
	}
}

// StructuredDebug logs a structured debug entry.
func StructuredDebug(component, action, status string, err error, id string, fields map[string]any) {
	StructuredLog(LevelDebug, component, action, status, err, id, fields)
}

// StructuredInfo logs a structured info entry.
func StructuredInfo(component, action, status string, err error, id string, fields map[string]any) {
	StructuredLog(LevelInfo, component, action, status, err, id, fields)
}

// StructuredWarn logs a structured warning entry.
func StructuredWarn(component, action, status string, err error, id string, fields map[string]any) {
	StructuredLog(LevelWarn, component, action, status, err, id, fields)
}

// StructuredError logs a structured error entry.
func StructuredError(component, action, status string, err error, id string, fields map[string]any) {
	StructuredLog(LevelError, component, action, status, err, id, fields)
}
