// Package icon maps the number of new mails onto the notification icon.
package icon

import (
	"fmt"

	"github.com/kurogetsusai/wl-ignore-mail/internal/logging"
	"github.com/kurogetsusai/wl-ignore-mail/internal/mail"
	"github.com/kurogetsusai/wl-ignore-mail/internal/page"
)

// Mode selects which icon variants are shown.
type Mode string

const (
	ModeNormal   Mode = "normal"
	ModeFlashing Mode = "flashing"
	ModeBoth     Mode = "both"
	ModeNeither  Mode = "neither"
)

// Visibility returns whether the normal and flashing variants are shown.
func (m Mode) Visibility() (normal, flashing bool) {
	switch m {
	case ModeNormal:
		return true, false
	case ModeFlashing:
		return false, true
	case ModeBoth:
		return true, true
	default:
		return false, false
	}
}

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeNormal, ModeFlashing, ModeBoth, ModeNeither:
		return m, nil
	default:
		return "", fmt.Errorf("unknown icon mode %q", s)
	}
}

// ModeOf derives the mode from the variants' visibility.
func ModeOf(normal, flashing bool) Mode {
	switch {
	case normal && flashing:
		return ModeBoth
	case flashing:
		return ModeFlashing
	case normal:
		return ModeNormal
	default:
		return ModeNeither
	}
}

// State is what the icon shows and where it links to. Count is the number
// of new mails it was derived from.
type State struct {
	Mode   Mode   `json:"mode"`
	Target string `json:"target"`
	Count  int    `json:"count"`
}

// StateFor computes the icon state for a list of new mails: none links to
// the listing, one links straight to its thread, several link to the
// listing and flash.
func StateFor(newMails []mail.Record) State {
	switch len(newMails) {
	case 0:
		return State{Mode: ModeNormal, Target: mail.ListingPath}
	case 1:
		return State{Mode: ModeFlashing, Target: newMails[0].URL(), Count: 1}
	default:
		return State{Mode: ModeFlashing, Target: mail.ListingPath, Count: len(newMails)}
	}
}

// Sink receives every applied state. The tmux publisher implements it.
type Sink interface {
	Publish(state State) error
}

// Controller drives a page's icon.
type Controller struct {
	icon  page.Icon
	sinks []Sink
	last  State
}

// NewController creates a controller for icon. Sinks are notified after
// every Apply.
func NewController(icon page.Icon, sinks ...Sink) *Controller {
	if icon == nil {
		panic("NewController: icon dependency cannot be nil")
	}
	return &Controller{icon: icon, sinks: sinks}
}

// SetMode shows and hides the icon variants.
func (c *Controller) SetMode(mode Mode) {
	c.icon.SetIconVisibility(mode.Visibility())
}

// SetTarget sets where the icon links to.
func (c *Controller) SetTarget(url string) {
	c.icon.SetTarget(url)
}

// Apply sets mode and target from newMails and returns the state shown.
func (c *Controller) Apply(newMails []mail.Record) State {
	state := StateFor(newMails)
	c.SetMode(state.Mode)
	c.SetTarget(state.Target)
	c.last = state

	for _, sink := range c.sinks {
		if err := sink.Publish(state); err != nil {
			logging.Warn("icon sink publish failed", "error", err)
		}
	}
	return state
}

// Current reads the state back from the icon. Count is the last applied
// count.
func (c *Controller) Current() State {
	return State{
		Mode:   ModeOf(c.icon.NormalVisible(), c.icon.FlashingVisible()),
		Target: c.icon.Target(),
		Count:  c.last.Count,
	}
}
