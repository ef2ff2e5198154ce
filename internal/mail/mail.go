// Package mail holds the mail thread records derived from the forum's
// "My Mail" listing and the forum paths that point at them.
package mail

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	// ListingPath is the path of the "My Mail" listing page.
	ListingPath = "/Discussion/MyMail"
	// ThreadPath is the path prefix of a single mail thread.
	ThreadPath = "/Discussion/"
)

// Record is one mail thread as seen on the listing. Offset is only
// meaningful when HasOffset is set.
type Record struct {
	ID        int
	Unread    bool
	Offset    int
	HasOffset bool
}

// WithOffset returns a copy of r pointing at the given page offset.
func (r Record) WithOffset(offset int) Record {
	r.Offset = offset
	r.HasOffset = true
	return r
}

// URL returns the forum path of the thread, with the offset of the first
// unread page when known.
func (r Record) URL() string {
	return ThreadURL(r.ID, r.Offset, r.HasOffset)
}

// ThreadURL builds /Discussion/?ID=<id>[&Offset=<offset>].
func ThreadURL(id, offset int, hasOffset bool) string {
	u := ThreadPath + "?ID=" + strconv.Itoa(id)
	if hasOffset {
		u += "&Offset=" + strconv.Itoa(offset)
	}
	return u
}

// IsListing reports whether path (or a full URL) is the "My Mail" page.
func IsListing(path string) bool {
	return strings.Contains(path, ListingPath)
}

// IgnoreChecker reports whether a thread is ignored.
type IgnoreChecker interface {
	IsIgnored(id int) bool
}

// NewMails returns the records that are unread and not ignored, in order.
func NewMails(records []Record, ignored IgnoreChecker) []Record {
	var out []Record
	for _, r := range records {
		if r.Unread && !ignored.IsIgnored(r.ID) {
			out = append(out, r)
		}
	}
	return out
}

// QueryInt extracts an integer query parameter from an href. It accepts
// relative and absolute forms and HTML-escaped ampersands.
func QueryInt(href, name string) (int, bool) {
	href = strings.ReplaceAll(href, "&amp;", "&")
	u, err := url.Parse(href)
	if err != nil {
		return 0, false
	}
	raw := u.Query().Get(name)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
