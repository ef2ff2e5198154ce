// Package pagetest provides in-memory pages for tests.
package pagetest

import "github.com/kurogetsusai/wl-ignore-mail/internal/page"

// Page is an in-memory page.Page.
type Page struct {
	Normal   bool
	Flashing bool
	Link     string
	Listing  bool
	FakeRows []*Row

	// VisibilityCalls records every SetIconVisibility call.
	VisibilityCalls [][2]bool
}

var _ page.Page = (*Page)(nil)

func (p *Page) NormalVisible() bool   { return p.Normal }
func (p *Page) FlashingVisible() bool { return p.Flashing }

func (p *Page) SetIconVisibility(normal, flashing bool) {
	p.Normal, p.Flashing = normal, flashing
	p.VisibilityCalls = append(p.VisibilityCalls, [2]bool{normal, flashing})
}

func (p *Page) Target() string       { return p.Link }
func (p *Page) SetTarget(url string) { p.Link = url }
func (p *Page) IsListing() bool      { return p.Listing }

func (p *Page) Rows() []page.Row {
	rows := make([]page.Row, len(p.FakeRows))
	for i, r := range p.FakeRows {
		rows[i] = r
	}
	return rows
}

// Row is an in-memory page.Row. ID and Off of zero with the matching Has
// flag unset mean the link is missing.
type Row struct {
	ID         int
	HasID      bool
	Off        int
	HasOff     bool
	IsUnread   bool
	Label      string
	Control    bool
	Injections int
	Background string
}

var _ page.Row = (*Row)(nil)

// NewRow returns a row for thread id.
func NewRow(id int, unread bool) *Row {
	return &Row{ID: id, HasID: true, IsUnread: unread}
}

func (r *Row) MailID() (int, bool) { return r.ID, r.HasID }
func (r *Row) Offset() (int, bool) { return r.Off, r.HasOff }
func (r *Row) Unread() bool        { return r.IsUnread }
func (r *Row) HasControl() bool    { return r.Control }

func (r *Row) InjectControl(label string) {
	if !r.Control {
		r.Control = true
		r.Injections++
	}
	r.Label = label
}

func (r *Row) SetControlLabel(label string) {
	if r.Control {
		r.Label = label
	}
}

func (r *Row) SetBackground(color string) { r.Background = color }
