package tmux

import (
	"fmt"
	"strconv"

	"github.com/kurogetsusai/wl-ignore-mail/internal/icon"
)

// Options written on every publish.
const (
	OptionMode   = "@wl_mail_mode"
	OptionCount  = "@wl_mail_count"
	OptionTarget = "@wl_mail_target"
)

// Publisher writes icon states into tmux options. baseURL is prefixed to
// the target so the option holds an openable link.
type Publisher struct {
	client  Client
	baseURL string
}

var _ icon.Sink = (*Publisher)(nil)

// NewPublisher creates a publisher over client.
func NewPublisher(client Client, baseURL string) *Publisher {
	if client == nil {
		panic("NewPublisher: client dependency cannot be nil")
	}
	return &Publisher{client: client, baseURL: baseURL}
}

// Publish sets the mode, count and target options and refreshes the status
// line.
func (p *Publisher) Publish(state icon.State) error {
	options := []struct{ name, value string }{
		{OptionMode, string(state.Mode)},
		{OptionCount, strconv.Itoa(state.Count)},
		{OptionTarget, p.baseURL + state.Target},
	}
	for _, opt := range options {
		if err := p.client.SetStatusOption(opt.name, opt.value); err != nil {
			return fmt.Errorf("publish %s: %w", opt.name, err)
		}
	}
	if _, _, err := p.client.Run("refresh-client", "-S"); err != nil {
		return fmt.Errorf("refresh status line: %w", err)
	}
	return nil
}
