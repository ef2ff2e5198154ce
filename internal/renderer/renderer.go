// Package renderer augments the "My Mail" listing: it adds an ignore control
// to every row, colors unread rows by ignore state and recomputes the icon
// from the rows themselves.
package renderer

import (
	"errors"
	"fmt"

	"github.com/kurogetsusai/wl-ignore-mail/internal/icon"
	"github.com/kurogetsusai/wl-ignore-mail/internal/logging"
	"github.com/kurogetsusai/wl-ignore-mail/internal/mail"
	"github.com/kurogetsusai/wl-ignore-mail/internal/page"
)

const (
	LabelIgnore       = "Ignore"
	LabelStopIgnoring = "Stop Ignoring"

	// ColorAcknowledged marks unread rows the user ignores.
	ColorAcknowledged = "#333"
	// ColorAttention marks unread rows that count as new mail.
	ColorAttention = "#323400"
)

var (
	// ErrNotListing is returned when rendering a page that is not the listing.
	ErrNotListing = errors.New("page is not the mail listing")
	// ErrRowNotFound is returned by ClickID for an ID without a row.
	ErrRowNotFound = errors.New("no listing row for mail thread")
)

// IgnoreStore is the part of the ignore store the renderer needs.
type IgnoreStore interface {
	IsIgnored(id int) bool
	Toggle(id int) (bool, error)
}

// IconApplier turns new mails into the icon state.
type IconApplier interface {
	Apply(newMails []mail.Record) icon.State
}

// ToggleFunc is called after a click changed a thread's ignore state.
type ToggleFunc func(id int, ignored bool, state icon.State)

// Renderer walks the rows of a listing page.
type Renderer struct {
	page     page.Page
	store    IgnoreStore
	icon     IconApplier
	onToggle ToggleFunc
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithToggleHook registers fn to run after every successful click.
func WithToggleHook(fn ToggleFunc) Option {
	return func(r *Renderer) { r.onToggle = fn }
}

// New creates a renderer for p.
func New(p page.Page, store IgnoreStore, applier IconApplier, opts ...Option) *Renderer {
	if p == nil {
		panic("renderer.New: page dependency cannot be nil")
	}
	if store == nil {
		panic("renderer.New: store dependency cannot be nil")
	}
	if applier == nil {
		panic("renderer.New: icon dependency cannot be nil")
	}
	r := &Renderer{page: p, store: store, icon: applier}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render updates every row and applies the icon state derived from them.
// It is a no-op returning ErrNotListing on other pages.
func (r *Renderer) Render() (icon.State, []mail.Record, error) {
	if !r.page.IsListing() {
		return icon.State{}, nil, ErrNotListing
	}

	var newMails []mail.Record
	for _, row := range r.page.Rows() {
		id, ok := row.MailID()
		if !ok {
			logging.Debug("listing row without thread ID skipped")
			continue
		}

		record := mail.Record{ID: id, Unread: row.Unread()}
		if offset, ok := row.Offset(); ok {
			record = record.WithOffset(offset)
		}
		ignored := r.store.IsIgnored(id)

		row.InjectControl(label(ignored))

		switch {
		case record.Unread && ignored:
			row.SetBackground(ColorAcknowledged)
		case record.Unread:
			row.SetBackground(ColorAttention)
			newMails = append(newMails, record)
		}
	}

	state := r.icon.Apply(newMails)
	logging.Debug("listing rendered", "new_mails", len(newMails), "mode", string(state.Mode))
	return state, newMails, nil
}

// Click toggles the ignore state of row's thread and re-renders the page.
func (r *Renderer) Click(row page.Row) (icon.State, error) {
	id, ok := row.MailID()
	if !ok {
		return icon.State{}, fmt.Errorf("click: %w", ErrRowNotFound)
	}

	ignored, err := r.store.Toggle(id)
	if err != nil {
		return icon.State{}, fmt.Errorf("click on thread %d: %w", id, err)
	}

	state, _, err := r.Render()
	if err != nil {
		return state, err
	}
	if r.onToggle != nil {
		r.onToggle(id, ignored, state)
	}
	return state, nil
}

// ClickID clicks the control of the first row showing thread id.
func (r *Renderer) ClickID(id int) (icon.State, error) {
	for _, row := range r.page.Rows() {
		if rowID, ok := row.MailID(); ok && rowID == id {
			return r.Click(row)
		}
	}
	return icon.State{}, fmt.Errorf("%w %d", ErrRowNotFound, id)
}

func label(ignored bool) string {
	if ignored {
		return LabelStopIgnoring
	}
	return LabelIgnore
}
