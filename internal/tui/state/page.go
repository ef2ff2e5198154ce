package state

import (
	"github.com/kurogetsusai/wl-ignore-mail/internal/mail"
	"github.com/kurogetsusai/wl-ignore-mail/internal/page"
)

// ListingPage is the listing as shown in the terminal. It holds the rows
// the renderer decorates and the icon shown in the header.
type ListingPage struct {
	normal   bool
	flashing bool
	target   string
	rows     []*ListingRow
}

var _ page.Page = (*ListingPage)(nil)

// NewListingPage creates an empty listing with the normal icon shown.
func NewListingPage() *ListingPage {
	return &ListingPage{normal: true, target: mail.ListingPath}
}

// SetRecords replaces the rows with records, dropping all decorations.
func (p *ListingPage) SetRecords(records []mail.Record) {
	p.rows = make([]*ListingRow, len(records))
	for i, r := range records {
		p.rows[i] = &ListingRow{Record: r}
	}
}

// ListingRows returns the concrete rows.
func (p *ListingPage) ListingRows() []*ListingRow { return p.rows }

func (p *ListingPage) NormalVisible() bool   { return p.normal }
func (p *ListingPage) FlashingVisible() bool { return p.flashing }

func (p *ListingPage) SetIconVisibility(normal, flashing bool) {
	p.normal, p.flashing = normal, flashing
}

func (p *ListingPage) Target() string       { return p.target }
func (p *ListingPage) SetTarget(url string) { p.target = url }
func (p *ListingPage) IsListing() bool      { return true }

func (p *ListingPage) Rows() []page.Row {
	rows := make([]page.Row, len(p.rows))
	for i, r := range p.rows {
		rows[i] = r
	}
	return rows
}

// ListingRow is one mail thread line.
type ListingRow struct {
	Record     mail.Record
	Label      string
	Background string
	control    bool
}

var _ page.Row = (*ListingRow)(nil)

func (r *ListingRow) MailID() (int, bool) { return r.Record.ID, r.Record.ID > 0 }

func (r *ListingRow) Offset() (int, bool) { return r.Record.Offset, r.Record.HasOffset }

func (r *ListingRow) Unread() bool { return r.Record.Unread }

func (r *ListingRow) HasControl() bool { return r.control }

func (r *ListingRow) InjectControl(label string) {
	r.control = true
	r.Label = label
}

func (r *ListingRow) SetControlLabel(label string) {
	if r.control {
		r.Label = label
	}
}

func (r *ListingRow) SetBackground(color string) { r.Background = color }
