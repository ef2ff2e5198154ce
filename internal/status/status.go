// Package status renders a mail icon state as a line of text for terminals
// and tmux status bars.
package status

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/kurogetsusai/wl-ignore-mail/internal/icon"
)

// Formats accepted by Format.
const (
	FormatCompact  = "compact"
	FormatDetailed = "detailed"
	FormatJSON     = "json"
	FormatMode     = "mode"
)

const mailGlyph = "✉"

// Options tune the rendering.
type Options struct {
	// BaseURL is prefixed to the icon target in detailed and json output.
	BaseURL string
	// Color wraps compact output in tmux style markup.
	Color    bool
	FlashFg  string
	NormalFg string
}

// DefaultOptions returns options with tmux colors for the two icon states.
func DefaultOptions(baseURL string) Options {
	return Options{BaseURL: baseURL, Color: true, FlashFg: "yellow", NormalFg: ""}
}

type jsonState struct {
	Mode   icon.Mode `json:"mode"`
	Count  int       `json:"count"`
	Target string    `json:"target"`
	URL    string    `json:"url"`
}

// Format renders state in the named format.
func Format(state icon.State, format string, opts Options) (string, error) {
	switch format {
	case "", FormatCompact:
		return formatCompact(state, opts), nil
	case FormatDetailed:
		return formatDetailed(state, opts), nil
	case FormatJSON:
		data, err := json.Marshal(jsonState{
			Mode:   state.Mode,
			Count:  state.Count,
			Target: state.Target,
			URL:    opts.BaseURL + state.Target,
		})
		if err != nil {
			return "", fmt.Errorf("encode status: %w", err)
		}
		return string(data), nil
	case FormatMode:
		return string(state.Mode), nil
	default:
		return "", fmt.Errorf("unknown format: %s", format)
	}
}

func formatCompact(state icon.State, opts Options) string {
	text := mailGlyph
	if state.Count > 0 {
		text = fmt.Sprintf("%s %d", mailGlyph, state.Count)
	}

	fg := opts.NormalFg
	if state.Mode == icon.ModeFlashing || state.Mode == icon.ModeBoth {
		fg = opts.FlashFg
	}
	if !opts.Color || fg == "" {
		return text
	}
	return fmt.Sprintf("#[fg=%s]%s#[default]", fg, text)
}

func formatDetailed(state icon.State, opts Options) string {
	switch state.Count {
	case 0:
		return fmt.Sprintf("mail: %s, no new mail -> %s%s", state.Mode, opts.BaseURL, state.Target)
	case 1:
		return fmt.Sprintf("mail: %s, 1 new mail -> %s%s", state.Mode, opts.BaseURL, state.Target)
	default:
		return fmt.Sprintf("mail: %s, %d new mails -> %s%s", state.Mode, state.Count, opts.BaseURL, state.Target)
	}
}
