// Package errors routes user-facing messages to the console or the TUI.
package errors

// ErrorHandler receives user-facing messages. Implementations decide where
// they are shown.
type ErrorHandler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}

// ColorOutput is the console surface used by CLIHandler.
type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
}

// CLIHandler prints messages through a ColorOutput.
type CLIHandler struct {
	colors ColorOutput
}

var _ ErrorHandler = (*CLIHandler)(nil)

// NewCLIHandler creates a handler printing through colors.
func NewCLIHandler(colors ColorOutput) *CLIHandler {
	return &CLIHandler{colors: colors}
}

func (h *CLIHandler) Error(msg string)   { h.colors.Error(msg) }
func (h *CLIHandler) Warning(msg string) { h.colors.Warning(msg) }
func (h *CLIHandler) Info(msg string)    { h.colors.Info(msg) }
func (h *CLIHandler) Success(msg string) { h.colors.Success(msg) }
