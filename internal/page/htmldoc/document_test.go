package htmldoc

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const myMailPage = `<!DOCTYPE html>
<html><head><title>My Mail</title></head>
<body>
<a id="MailLink" href="/Discussion/?ID=99">
	<img id="MailImgNormal" src="/Images/Mail.png" style="display: none">
	<img id="MailImgFlashing" src="/Images/MailFlashing.gif" style="display: inline; vertical-align: middle">
</a>
<div id="MainSiteContent">
<table class="region">
	<tr><th>Subject</th><th>Last post</th></tr>
	<tr class="ReadTr">
		<td><a href="/Discussion/?ID=12">Alliance?</a></td>
		<td>Yesterday</td>
	</tr>
	<tr class="UnreadTr">
		<td><a href="/Discussion/?ID=99">Rematch</a> <a href="/Discussion/?ID=99&amp;Offset=20" style="font-size: 9px">Last</a></td>
		<td>Today</td>
	</tr>
</table>
</div>
</body></html>`

func parse(t *testing.T, src, path string) *Document {
	t.Helper()
	doc, err := Parse(strings.NewReader(src), path)
	require.NoError(t, err)
	return doc
}

func TestIconAccessors(t *testing.T) {
	doc := parse(t, myMailPage, "/Discussion/MyMail")

	assert.True(t, doc.IsListing())
	assert.False(t, doc.NormalVisible())
	assert.True(t, doc.FlashingVisible())
	assert.Equal(t, "/Discussion/?ID=99", doc.Target())

	doc.SetIconVisibility(true, false)
	doc.SetTarget("/Discussion/MyMail")

	assert.True(t, doc.NormalVisible())
	assert.False(t, doc.FlashingVisible())
	assert.Equal(t, "/Discussion/MyMail", doc.Target())

	var out bytes.Buffer
	require.NoError(t, doc.Render(&out))
	assert.Contains(t, out.String(), `style="display: none; vertical-align: middle"`)
	assert.Contains(t, out.String(), `href="/Discussion/MyMail"`)
}

func TestPageWithoutIcon(t *testing.T) {
	doc := parse(t, "<html><body><p>Forum</p></body></html>", "/Forum")

	assert.False(t, doc.IsListing())
	assert.False(t, doc.FlashingVisible())
	assert.Empty(t, doc.Rows())
	doc.SetIconVisibility(true, true)
	doc.SetTarget("/Discussion/MyMail")
	assert.Empty(t, doc.Target())
}

func TestRowsSkipHeader(t *testing.T) {
	doc := parse(t, myMailPage, "/Discussion/MyMail")

	rows := doc.Rows()
	require.Len(t, rows, 2)

	id, ok := rows[0].MailID()
	require.True(t, ok)
	assert.Equal(t, 12, id)
	assert.False(t, rows[0].Unread())
	_, ok = rows[0].Offset()
	assert.False(t, ok)

	id, ok = rows[1].MailID()
	require.True(t, ok)
	assert.Equal(t, 99, id)
	assert.True(t, rows[1].Unread())
	offset, ok := rows[1].Offset()
	require.True(t, ok)
	assert.Equal(t, 20, offset)
}

func TestInjectControlOnce(t *testing.T) {
	doc := parse(t, myMailPage, "/Discussion/MyMail")

	for _, label := range []string{"Ignore", "Stop Ignoring"} {
		for _, row := range doc.Rows() {
			row.InjectControl(label)
		}
	}

	var out bytes.Buffer
	require.NoError(t, doc.Render(&out))
	assert.Equal(t, 2, strings.Count(out.String(), `class="wl-ignore-mail ignore-link"`))

	row := doc.Rows()[1].(*Row)
	assert.True(t, row.HasControl())
	assert.Equal(t, "Stop Ignoring", row.Label())

	id, ok := row.MailID()
	require.True(t, ok)
	assert.Equal(t, 99, id)
	offset, ok := row.Offset()
	require.True(t, ok)
	assert.Equal(t, 20, offset)
}

func TestInjectControlPlacement(t *testing.T) {
	doc := parse(t, myMailPage, "/Discussion/MyMail")
	row := doc.Rows()[1].(*Row)
	row.InjectControl("Ignore")

	td := row.cell()
	var anchors []string
	for _, a := range findAll(td, func(n *html.Node) bool { return isElement(n, "a") }) {
		anchors = append(anchors, textOf(a))
	}
	assert.Equal(t, []string{"Rematch", "Ignore", "Last"}, anchors)

	control := row.control()
	require.NotNil(t, control)
	assert.Equal(t, "9px", styleValue(control, "font-size"))
	assert.Equal(t, "6px", styleValue(control, "margin-left"))
	assert.Equal(t, "99", attr(control, "data-mail-id"))

	last := findAll(td, func(n *html.Node) bool { return isElement(n, "a") })[2]
	assert.Equal(t, "6px", styleValue(last, "margin-left"))
}

func TestInjectControlAppendsWithoutLinks(t *testing.T) {
	src := `<div id="MainSiteContent"><table class="region"><tr><th>h</th></tr><tr><td>deleted thread</td></tr></table></div>`
	doc := parse(t, src, "/Discussion/MyMail")

	rows := doc.Rows()
	require.Len(t, rows, 1)
	_, ok := rows[0].MailID()
	assert.False(t, ok)

	rows[0].InjectControl("Ignore")
	row := rows[0].(*Row)
	assert.Equal(t, "Ignore", row.Label())
	assert.Equal(t, row.control(), row.cell().LastChild)
}

func TestSetBackground(t *testing.T) {
	doc := parse(t, myMailPage, "/Discussion/MyMail")
	row := doc.Rows()[1].(*Row)

	row.SetBackground("#323400")
	row.SetBackground("#333")

	assert.Equal(t, "#333", row.Background())
	assert.Equal(t, "background-color: #333", attr(row.tr, "style"))
}
