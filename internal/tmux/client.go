// Package tmux publishes the mail icon state to tmux user options so a
// status line can show it.
package tmux

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/kurogetsusai/wl-ignore-mail/internal/colors"
)

// Client is the subset of tmux the publisher uses.
type Client interface {
	// HasSession checks if a tmux server is running.
	HasSession() (bool, error)
	// SetStatusOption sets a global tmux option.
	SetStatusOption(name, value string) error
	// Run executes a tmux command with the given arguments.
	Run(args ...string) (string, string, error)
}

// DefaultClient runs the tmux binary.
type DefaultClient struct {
	socketPath string
	timeout    time.Duration
	binary     string
}

var _ Client = (*DefaultClient)(nil)

// NewDefaultClient creates a client with the given options.
func NewDefaultClient(opts ...ClientOption) *DefaultClient {
	client := &DefaultClient{timeout: DefaultTimeout, binary: "tmux"}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

func (c *DefaultClient) runCommand(args ...string) (string, string, error) {
	start := time.Now()
	command := ""
	if len(args) > 0 {
		command = args[0]
	}
	colors.StructuredDebug("tmux", "run", "started", nil, command, map[string]any{"args_count": len(args)})

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	var cmdArgs []string
	if c.socketPath != "" {
		cmdArgs = append(cmdArgs, "-L", c.socketPath)
	}
	cmdArgs = append(cmdArgs, args...)

	cmd := exec.CommandContext(ctx, c.binary, cmdArgs...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	fields := map[string]any{"args_count": len(args), "duration_seconds": time.Since(start).Seconds()}
	if err != nil {
		colors.StructuredError("tmux", "run", "failed", err, command, fields)
	} else {
		colors.StructuredDebug("tmux", "run", "completed", nil, command, fields)
	}
	return stdout.String(), stderr.String(), err
}

// Run executes a tmux command and returns stdout and stderr.
func (c *DefaultClient) Run(args ...string) (string, string, error) {
	stdout, stderr, err := c.runCommand(args...)
	if err != nil {
		return stdout, stderr, fmt.Errorf("%w: %v: %w", ErrTmuxCommandFailed, args, err)
	}
	return stdout, stderr, nil
}

// HasSession reports whether a server answers.
func (c *DefaultClient) HasSession() (bool, error) {
	_, stderr, err := c.Run("has-session")
	if err != nil {
		if stderr != "" {
			colors.Debug("stderr: " + stderr)
		}
		return false, ErrTmuxNotRunning
	}
	return true, nil
}

// SetStatusOption sets a global option on a running server.
func (c *DefaultClient) SetStatusOption(name, value string) error {
	if _, err := c.HasSession(); err != nil {
		return err
	}

	_, stderr, err := c.Run("set", "-g", name, value)
	if err != nil {
		if stderr != "" {
			colors.Debug("stderr: " + stderr)
		}
		return fmt.Errorf("failed to set status option %s: %w", name, err)
	}
	return nil
}
