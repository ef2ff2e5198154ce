// Package page defines the capabilities the mail logic needs from the page
// it runs against. Adapters exist for parsed HTML documents and for the TUI.
package page

// Icon is the site's mail notification icon: two image variants and the
// link around them.
type Icon interface {
	NormalVisible() bool
	FlashingVisible() bool
	SetIconVisibility(normal, flashing bool)
	Target() string
	SetTarget(url string)
}

// Row is one data row of the mail listing table.
type Row interface {
	// MailID parses the thread ID from the row's first link.
	MailID() (int, bool)
	// Offset parses the pagination offset from the row's last link.
	Offset() (int, bool)
	Unread() bool
	HasControl() bool
	// InjectControl adds the ignore control with the given label. Rows
	// that already carry one only get their label updated.
	InjectControl(label string)
	SetControlLabel(label string)
	SetBackground(color string)
}

// Page is the currently loaded page.
type Page interface {
	Icon
	IsListing() bool
	// Rows returns the data rows of the listing, header excluded. It is
	// empty on other pages.
	Rows() []Row
}
