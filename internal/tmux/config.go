package tmux

import "time"

// DefaultTimeout bounds every tmux invocation.
const DefaultTimeout = 5 * time.Second

// ClientOption configures a DefaultClient.
type ClientOption func(*DefaultClient)

// WithSocketPath selects a tmux socket name (tmux -L).
func WithSocketPath(socketPath string) ClientOption {
	return func(c *DefaultClient) {
		c.socketPath = socketPath
	}
}

// WithTimeout sets the timeout for tmux command execution.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *DefaultClient) {
		c.timeout = timeout
	}
}

// WithBinary runs a different executable instead of tmux.
func WithBinary(path string) ClientOption {
	return func(c *DefaultClient) {
		c.binary = path
	}
}
