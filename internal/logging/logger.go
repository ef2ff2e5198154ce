package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/kurogetsusai/wl-ignore-mail/internal/colors"
)

// Logger is the structured logging interface.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	// With returns a logger carrying additional key/value pairs.
	With(args ...any) Logger
	// Shutdown closes the underlying file.
	Shutdown() error
}

// fileLogger writes JSON lines through charmbracelet/log.
type fileLogger struct {
	clogger  *clog.Logger
	file     *os.File
	redactor *redactor
	fields   []any
	path     string
}

// Init creates a Logger for cfg. A disabled config yields a no-op logger.
// The log directory is rotated before the new file is opened.
func Init(cfg Config) (Logger, error) {
	if !cfg.Enabled {
		return noopLogger{}, nil
	}
	logDir, err := LogDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine log directory: %w", err)
	}
	// keep one slot for the file opened below
	if cfg.MaxFiles > 0 {
		if err := rotate(logDir, cfg.MaxFiles-1); err != nil {
			fmt.Fprintf(os.Stderr, "log rotation failed: %v\n", err)
		}
	}

	fname := fmt.Sprintf("%s%s_PID%d_%s.log",
		logFilePrefix,
		time.Now().Format("20060102_150405"),
		cfg.PID,
		strings.ReplaceAll(cfg.Command, " ", "_"))
	path := filepath.Join(logDir, fname)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	clogger := clog.NewWithOptions(f, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339Nano,
		Level:           parseLevel(cfg.Level),
		Formatter:       clog.JSONFormatter,
	})
	clogger = clogger.With("pid", cfg.PID, "command", cfg.Command)

	return &fileLogger{
		clogger:  clogger,
		file:     f,
		redactor: newRedactor(),
		path:     path,
	}, nil
}

func parseLevel(level string) clog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return clog.DebugLevel
	case "warn", "warning":
		return clog.WarnLevel
	case "error":
		return clog.ErrorLevel
	default:
		return clog.InfoLevel
	}
}

func (l *fileLogger) Debug(msg string, args ...any) { l.log(clog.DebugLevel, msg, args) }
func (l *fileLogger) Info(msg string, args ...any)  { l.log(clog.InfoLevel, msg, args) }
func (l *fileLogger) Warn(msg string, args ...any)  { l.log(clog.WarnLevel, msg, args) }
func (l *fileLogger) Error(msg string, args ...any) { l.log(clog.ErrorLevel, msg, args) }

func (l *fileLogger) log(level clog.Level, msg string, args []any) {
	all := make([]any, 0, len(l.fields)+len(args))
	all = append(all, l.fields...)
	all = append(all, args...)
	l.clogger.Log(level, msg, l.redactor.redact(all)...)
}

// With shares the file and underlying logger; only the base fields differ.
func (l *fileLogger) With(args ...any) Logger {
	fields := make([]any, 0, len(l.fields)+len(args))
	fields = append(fields, l.fields...)
	fields = append(fields, args...)
	return &fileLogger{
		clogger:  l.clogger,
		file:     l.file,
		redactor: l.redactor,
		fields:   fields,
		path:     l.path,
	}
}

func (l *fileLogger) Shutdown() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

type noopLogger struct{}

func (noopLogger) Debug(msg string, args ...any) {}
func (noopLogger) Info(msg string, args ...any)  {}
func (noopLogger) Warn(msg string, args ...any)  {}
func (noopLogger) Error(msg string, args ...any) {}
func (n noopLogger) With(args ...any) Logger     { return n }
func (noopLogger) Shutdown() error               { return nil }

var (
	globalLogger   Logger
	globalLoggerMu sync.RWMutex
)

// InitGlobal initializes the global logger from the loaded configuration and
// mirrors console output into it. Later calls are no-ops.
func InitGlobal() error {
	globalLoggerMu.Lock()
	if globalLogger != nil {
		globalLoggerMu.Unlock()
		return nil
	}
	l, err := Init(FromGlobalConfig())
	if err != nil {
		globalLoggerMu.Unlock()
		return err
	}
	globalLogger = l
	globalLoggerMu.Unlock()

	if _, ok := l.(noopLogger); !ok {
		colors.SetLogger(l)
		colors.Debug("logging to file:", CurrentLogFile())
	}
	return nil
}

// GetGlobal returns the global logger, or a no-op logger if not initialized.
func GetGlobal() Logger {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	if globalLogger == nil {
		return noopLogger{}
	}
	return globalLogger
}

// Debug logs through the global logger.
func Debug(msg string, args ...any) { GetGlobal().Debug(msg, args...) }

// Info logs through the global logger.
func Info(msg string, args ...any) { GetGlobal().Info(msg, args...) }

// Warn logs through the global logger.
func Warn(msg string, args ...any) { GetGlobal().Warn(msg, args...) }

// Error logs through the global logger.
func Error(msg string, args ...any) { GetGlobal().Error(msg, args...) }

// With returns the global logger with additional key/value pairs.
func With(args ...any) Logger { return GetGlobal().With(args...) }

// ShutdownGlobal closes and forgets the global logger.
func ShutdownGlobal() error {
	globalLoggerMu.Lock()
	defer globalLoggerMu.Unlock()
	if globalLogger == nil {
		return nil
	}
	err := globalLogger.Shutdown()
	globalLogger = nil
	colors.SetLogger(nil)
	return err
}

// CurrentLogFile returns the active log file path, or "" when logging is off.
func CurrentLogFile() string {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	if impl, ok := globalLogger.(*fileLogger); ok {
		return impl.path
	}
	return ""
}
