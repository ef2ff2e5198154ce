package tmux

import "errors"

var (
	// ErrTmuxNotRunning is returned when the tmux server is not available.
	ErrTmuxNotRunning = errors.New("tmux server is not running")

	// ErrTmuxCommandFailed is returned when a tmux command execution fails.
	ErrTmuxCommandFailed = errors.New("tmux command failed")
)
