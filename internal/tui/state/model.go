// Package state holds the bubbletea model of the interactive listing.
package state

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kurogetsusai/wl-ignore-mail/internal/errors"
	"github.com/kurogetsusai/wl-ignore-mail/internal/icon"
	"github.com/kurogetsusai/wl-ignore-mail/internal/mail"
	"github.com/kurogetsusai/wl-ignore-mail/internal/renderer"
	"github.com/kurogetsusai/wl-ignore-mail/internal/tui/render"
)

const (
	defaultWidth      = 80
	defaultHeight     = 24
	headerFooterLines = 4
)

// Loader fetches and scrapes the listing.
type Loader func(ctx context.Context) ([]mail.Record, error)

type loadedMsg struct{ records []mail.Record }

type loadFailedMsg struct{ err error }

// Model is the interactive listing.
type Model struct {
	page     *ListingPage
	renderer *renderer.Renderer
	load     Loader
	baseURL  string

	state   icon.State
	cursor  int
	offset  int
	width   int
	height  int
	loading bool

	keys         keyMap
	help         help.Model
	errorHandler *errors.TUIHandler
	status       errors.Message
	hasStatus    bool
}

// NewModel creates the model. store is toggled on clicks, sinks receive
// every icon state, and load is called on start and on reload.
func NewModel(store renderer.IgnoreStore, load Loader, baseURL string, sinks ...icon.Sink) *Model {
	if load == nil {
		panic("NewModel: loader dependency cannot be nil")
	}
	p := NewListingPage()
	m := &Model{
		page:     p,
		renderer: renderer.New(p, store, icon.NewController(p, sinks...)),
		load:     load,
		baseURL:  baseURL,
		width:    defaultWidth,
		height:   defaultHeight,
		loading:  true,
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
	m.errorHandler = errors.NewTUIHandler(func(msg errors.Message) {
		m.status = msg
		m.hasStatus = msg.Text != ""
	})
	return m
}

// Init starts the first load.
func (m *Model) Init() tea.Cmd {
	return m.loadCmd()
}

func (m *Model) loadCmd() tea.Cmd {
	load := m.load
	return func() tea.Msg {
		records, err := load(context.Background())
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return loadedMsg{records: records}
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.loading = false
		m.page.SetRecords(msg.records)
		m.clampCursor()
		m.rerender()
		m.errorHandler.Info(fmt.Sprintf("loaded %d mail threads", len(msg.records)))
	case loadFailedMsg:
		m.loading = false
		m.errorHandler.Error(msg.err.Error())
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampCursor()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.cursor--
		m.clampCursor()
	case key.Matches(msg, m.keys.Down):
		m.cursor++
		m.clampCursor()
	case key.Matches(msg, m.keys.Toggle):
		m.toggleSelected()
	case key.Matches(msg, m.keys.Reload):
		if !m.loading {
			m.loading = true
			return m, m.loadCmd()
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) toggleSelected() {
	rows := m.page.ListingRows()
	if len(rows) == 0 {
		return
	}
	row := rows[m.cursor]
	state, err := m.renderer.Click(row)
	if err != nil {
		m.errorHandler.Error(err.Error())
		return
	}
	m.state = state
	if row.Label == renderer.LabelStopIgnoring {
		m.errorHandler.Success(fmt.Sprintf("thread %d ignored", row.Record.ID))
	} else {
		m.errorHandler.Success(fmt.Sprintf("thread %d no longer ignored", row.Record.ID))
	}
}

func (m *Model) rerender() {
	state, _, err := m.renderer.Render()
	if err != nil {
		m.errorHandler.Error(err.Error())
		return
	}
	m.state = state
}

func (m *Model) visibleRows() int {
	n := m.height - headerFooterLines
	if m.help.ShowAll {
		n -= 2
	}
	if n < 1 {
		return 1
	}
	return n
}

func (m *Model) clampCursor() {
	count := len(m.page.ListingRows())
	if m.cursor >= count {
		m.cursor = count - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
}

// View renders the listing.
func (m *Model) View() string {
	out := render.Header(render.HeaderState{State: m.state, BaseURL: m.baseURL, Loading: m.loading, Width: m.width}) + "\n"

	rows := m.page.ListingRows()
	if len(rows) == 0 && !m.loading {
		out += render.Empty() + "\n"
	}
	end := m.offset + m.visibleRows()
	if end > len(rows) {
		end = len(rows)
	}
	for i := m.offset; i < end; i++ {
		r := rows[i]
		out += render.Row(render.RowState{
			Record:     r.Record,
			Label:      r.Label,
			Background: r.Background,
			Selected:   i == m.cursor,
			Width:      m.width,
		}) + "\n"
	}

	footer := render.FooterState{Help: m.help.View(m.keys)}
	if m.hasStatus {
		footer.Message = m.status.Text
		footer.IsError = m.status.Type == errors.MessageTypeError
	}
	return out + render.Footer(footer)
}

// IconState returns the state currently shown in the header.
func (m *Model) IconState() icon.State { return m.state }

// Cursor returns the selected row index.
func (m *Model) Cursor() int { return m.cursor }

// Page returns the listing page.
func (m *Model) Page() *ListingPage { return m.page }

// Messages returns the status history.
func (m *Model) Messages() []errors.Message { return m.errorHandler.All() }
