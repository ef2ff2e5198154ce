package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kurogetsusai/wl-ignore-mail/internal/bootstrap"
	"github.com/kurogetsusai/wl-ignore-mail/internal/icon"
	"github.com/kurogetsusai/wl-ignore-mail/internal/ignore"
	"github.com/kurogetsusai/wl-ignore-mail/internal/mail"
	"github.com/kurogetsusai/wl-ignore-mail/internal/page"
	"github.com/kurogetsusai/wl-ignore-mail/internal/page/htmldoc"
	"github.com/kurogetsusai/wl-ignore-mail/internal/scraper"
	"github.com/kurogetsusai/wl-ignore-mail/internal/storage"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const listingHTML = `<html><body>
<table id="Header">
<tr>
<td><a id="MailLink" href="/Discussion/?ID=99"><img id="MailImgNormal" style="display: none"><img id="MailImgFlashing" style="display: inline"></a></td>
</tr>
</table>
<div id="MainSiteContent">
<table class="region">
<tr>
<th>Subject</th>
</tr>
<tr class="ReadTr">
<td>
<a href="/Discussion/?ID=12">Alliance?</a>
</td>
</tr>
<tr class="UnreadTr">
<td>
<a href="/Discussion/?ID=99">Rematch</a>
<a href="/Discussion/?ID=99&amp;Offset=40">2</a>
</td>
</tr>
<tr>
<td>Page 1</td>
</tr>
</table>
</div>
</body></html>`

type hookCall struct {
	hookPoint string
	envVars   []string
}

// fakeClient serves every command interface from an in-memory listing.
type fakeClient struct {
	listing  string
	fetchErr error
	store    *ignore.Store

	hookErr   error
	hookCalls []hookCall

	model  tea.Model
	ran    tea.Model
	runErr error
}

func newFakeClient(t *testing.T, ignored ...int) *fakeClient {
	t.Helper()
	store := ignore.NewStore(storage.NewMemoryBackend())
	require.NoError(t, store.Save(ignore.Set{Ignored: ignored}))
	return &fakeClient{listing: listingHTML, store: store}
}

type staticFetcher struct {
	html string
	err  error
}

func (f staticFetcher) FetchListing(context.Context) (string, error) { return f.html, f.err }

func (f *fakeClient) Version() string { return "1.2.3" }

func (f *fakeClient) BaseURL() string { return "https://forum.test" }

func (f *fakeClient) LoadDocument(_ context.Context, path string) (*htmldoc.Document, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return htmldoc.Parse(strings.NewReader(f.listing), path)
}

func (f *fakeClient) NewBootstrap(p page.Page, _ bool) (*bootstrap.Bootstrap, error) {
	return bootstrap.New(p, staticFetcher{html: f.listing, err: f.fetchErr}, f.store, icon.NewController(p),
		[]bootstrap.Option{bootstrap.WithRunID(func() string { return "run-test" })}), nil
}

func (f *fakeClient) FetchRecords(context.Context) ([]mail.Record, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return scraper.Scrape(f.listing), nil
}

func (f *fakeClient) IgnoredSet() (ignore.Set, error) { return f.store.Read(), nil }

func (f *fakeClient) Toggle(id int) (bool, error) { return f.store.Toggle(id) }

func (f *fakeClient) RunHook(_ context.Context, hookPoint string, envVars ...string) error {
	f.hookCalls = append(f.hookCalls, hookCall{hookPoint: hookPoint, envVars: envVars})
	return f.hookErr
}

func (f *fakeClient) NewModel(bool) (tea.Model, error) { return f.model, nil }

func (f *fakeClient) RunProgram(model tea.Model) error {
	f.ran = model
	return f.runErr
}

func executeCommand(c *cobra.Command, args ...string) (string, error) {
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&out)
	c.SetArgs(args)
	err := c.Execute()
	return out.String(), err
}
