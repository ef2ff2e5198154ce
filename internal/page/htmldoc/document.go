// Package htmldoc adapts a parsed forum HTML page to the page capabilities.
// Mutations are applied to the node tree and written back with Render.
package htmldoc

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kurogetsusai/wl-ignore-mail/internal/mail"
	"github.com/kurogetsusai/wl-ignore-mail/internal/page"
	"golang.org/x/net/html"
)

const (
	normalIconID   = "MailImgNormal"
	flashingIconID = "MailImgFlashing"
	mailLinkID     = "MailLink"
	contentID      = "MainSiteContent"
	listingClass   = "region"
	unreadMarker   = "UnreadTr"

	// ControlClass is the class list of the injected ignore control.
	ControlClass  = "wl-ignore-mail ignore-link"
	controlMarker = "ignore-link"
	smallFont     = "9px"
	controlMargin = "6px"
)

// Document is a parsed page loaded from path.
type Document struct {
	root *html.Node
	path string

	normal   *html.Node
	flashing *html.Node
	link     *html.Node
}

var _ page.Page = (*Document)(nil)

// Parse reads an HTML page. path is the location it was loaded from and
// decides whether it is the listing.
func Parse(r io.Reader, path string) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse page %s: %w", path, err)
	}
	return &Document{
		root:     root,
		path:     path,
		normal:   byID(root, normalIconID),
		flashing: byID(root, flashingIconID),
		link:     byID(root, mailLinkID),
	}, nil
}

func byID(root *html.Node, id string) *html.Node {
	return findFirst(root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && attr(n, "id") == id
	})
}

// Path returns the location the page was loaded from.
func (d *Document) Path() string { return d.path }

// Render writes the document, with all mutations, to w.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

func (d *Document) IsListing() bool { return mail.IsListing(d.path) }

// NormalVisible reports whether the normal icon is displayed. A page
// without the element has nothing visible.
func (d *Document) NormalVisible() bool { return visible(d.normal) }

func (d *Document) FlashingVisible() bool { return visible(d.flashing) }

func visible(n *html.Node) bool {
	return n != nil && styleValue(n, "display") != "none"
}

func (d *Document) SetIconVisibility(normal, flashing bool) {
	setDisplay(d.normal, normal)
	setDisplay(d.flashing, flashing)
}

func setDisplay(n *html.Node, shown bool) {
	if n == nil {
		return
	}
	if shown {
		setStyle(n, "display", "inline")
	} else {
		setStyle(n, "display", "none")
	}
}

func (d *Document) Target() string {
	if d.link == nil {
		return ""
	}
	return attr(d.link, "href")
}

func (d *Document) SetTarget(url string) {
	if d.link != nil {
		setAttr(d.link, "href", url)
	}
}

// Rows returns the rows of the listing tables after the header row.
func (d *Document) Rows() []page.Row {
	content := byID(d.root, contentID)
	if content == nil {
		return nil
	}

	var trs []*html.Node
	tables := findAll(content, func(n *html.Node) bool {
		return isElement(n, "table") && hasClass(n, listingClass)
	})
	for _, table := range tables {
		for _, tbody := range children(table, "tbody") {
			trs = append(trs, children(tbody, "tr")...)
		}
	}
	if len(trs) <= 1 {
		return nil
	}

	rows := make([]page.Row, 0, len(trs)-1)
	for _, tr := range trs[1:] {
		rows = append(rows, &Row{tr: tr})
	}
	return rows
}

// Row is a listing table row.
type Row struct {
	tr *html.Node
}

var _ page.Row = (*Row)(nil)

func (r *Row) cell() *html.Node {
	return findFirst(r.tr, func(n *html.Node) bool { return isElement(n, "td") })
}

// links returns the anchors of the first cell, the control excluded.
func (r *Row) links() []*html.Node {
	td := r.cell()
	if td == nil {
		return nil
	}
	return findAll(td, func(n *html.Node) bool {
		return isElement(n, "a") && !hasClass(n, controlMarker)
	})
}

func (r *Row) control() *html.Node {
	td := r.cell()
	if td == nil {
		return nil
	}
	return findFirst(td, func(n *html.Node) bool {
		return isElement(n, "a") && hasClass(n, controlMarker)
	})
}

func (r *Row) MailID() (int, bool) {
	links := r.links()
	if len(links) == 0 {
		return 0, false
	}
	return mail.QueryInt(attr(links[0], "href"), "ID")
}

func (r *Row) Offset() (int, bool) {
	links := r.links()
	if len(links) == 0 {
		return 0, false
	}
	return mail.QueryInt(attr(links[len(links)-1], "href"), "Offset")
}

// Unread reports whether the row's class carries the unread marker.
func (r *Row) Unread() bool {
	return strings.Contains(attr(r.tr, "class"), unreadMarker)
}

func (r *Row) HasControl() bool { return r.control() != nil }

// Label returns the control's text, or "" when there is none.
func (r *Row) Label() string {
	if c := r.control(); c != nil {
		return textOf(c)
	}
	return ""
}

// Background returns the row's inline background color.
func (r *Row) Background() string {
	return styleValue(r.tr, "background-color")
}

// InjectControl adds the ignore control before the last link of the first
// cell, or at its end when the cell has no links.
func (r *Row) InjectControl(label string) {
	if r.HasControl() {
		r.SetControlLabel(label)
		return
	}
	td := r.cell()
	if td == nil {
		return
	}

	a := &html.Node{
		Type: html.ElementNode,
		Data: "a",
		Attr: []html.Attribute{
			{Key: "class", Val: ControlClass},
			{Key: "style", Val: "font-size: " + smallFont},
		},
	}
	if id, ok := r.MailID(); ok {
		a.Attr = append(a.Attr, html.Attribute{Key: "data-mail-id", Val: strconv.Itoa(id)})
	}
	setText(a, label)

	if links := r.links(); len(links) > 0 {
		last := links[len(links)-1]
		last.Parent.InsertBefore(a, last)
	} else {
		td.AppendChild(a)
	}

	for _, small := range findAll(td, func(n *html.Node) bool {
		return isElement(n, "a") && styleValue(n, "font-size") == smallFont
	}) {
		setStyle(small, "margin-left", controlMargin)
	}
}

func (r *Row) SetControlLabel(label string) {
	if c := r.control(); c != nil {
		setText(c, label)
	}
}

func (r *Row) SetBackground(color string) {
	setStyle(r.tr, "background-color", color)
}
