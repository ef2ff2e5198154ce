// Package render draws the pieces of the interactive listing.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kurogetsusai/wl-ignore-mail/internal/colors"
	"github.com/kurogetsusai/wl-ignore-mail/internal/icon"
	"github.com/kurogetsusai/wl-ignore-mail/internal/mail"
)

const (
	idWidth     = 10
	stateWidth  = 8
	offsetWidth = 8
	labelWidth  = 15
)

// HeaderState is what the header shows.
type HeaderState struct {
	State   icon.State
	BaseURL string
	Loading bool
	Width   int
}

// RowState is one listing row.
type RowState struct {
	Record     mail.Record
	Label      string
	Background string
	Selected   bool
	Width      int
}

// FooterState is the help line plus the latest status message.
type FooterState struct {
	Help    string
	Message string
	IsError bool
}

// Header renders the icon line and the column titles.
func Header(state HeaderState) string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	iconStyle := lipgloss.NewStyle()
	if state.State.Mode == icon.ModeFlashing || state.State.Mode == icon.ModeBoth {
		iconStyle = iconStyle.Foreground(lipgloss.Color(ansiColorNumber(colors.Yellow))).Bold(true)
	}

	line := "✉ "
	switch {
	case state.Loading:
		line += "loading…"
	case state.State.Count == 0:
		line += "no new mail"
	case state.State.Count == 1:
		line += "1 new mail"
	default:
		line += fmt.Sprintf("%d new mails", state.State.Count)
	}
	if !state.Loading && state.State.Target != "" {
		line += "  → " + state.BaseURL + state.State.Target
	}

	columns := fmt.Sprintf("%-*s  %-*s  %-*s  %-*s",
		idWidth, "THREAD",
		stateWidth, "STATE",
		offsetWidth, "OFFSET",
		labelWidth, "ACTION",
	)
	columnStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ansiColorNumber(colors.Blue)))

	return titleStyle.Render(iconStyle.Render(truncate(line, state.Width))) + "\n" + columnStyle.Render(columns)
}

// Row renders one thread. The row background follows the page colors.
func Row(state RowState) string {
	style := lipgloss.NewStyle()
	if state.Background != "" {
		style = style.Background(lipgloss.Color(state.Background))
	}
	if state.Selected {
		style = style.Background(lipgloss.Color(ansiColorNumber(colors.Blue))).Foreground(lipgloss.Color("0"))
	}

	readState := "read"
	if state.Record.Unread {
		readState = "unread"
	}
	offset := ""
	if state.Record.HasOffset {
		offset = fmt.Sprint(state.Record.Offset)
	}
	label := "[" + state.Label + "]"

	row := fmt.Sprintf("%-*d  %-*s  %-*s  %-*s",
		idWidth, state.Record.ID,
		stateWidth, readState,
		offsetWidth, offset,
		labelWidth, label,
	)
	return style.Render(truncate(row, state.Width))
}

// Empty renders the placeholder for a listing without threads.
func Empty() string {
	return lipgloss.NewStyle().Faint(true).Render("no mail threads")
}

// Footer renders the status message above the key help.
func Footer(state FooterState) string {
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	out := ""
	if state.Message != "" {
		msgStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorNumber(colors.Green)))
		if state.IsError {
			msgStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorNumber(colors.Red)))
		}
		out = msgStyle.Render(state.Message) + "\n"
	}
	return out + helpStyle.Render(state.Help)
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= width {
		return value
	}
	return string(runes[:width])
}

// ansiColorNumber extracts the color number from an ANSI escape sequence.
// Example: "\033[0;34m" -> "34"
func ansiColorNumber(ansi string) string {
	lastSemicolon := strings.LastIndex(ansi, ";")
	if lastSemicolon == -1 || len(ansi) < 2 {
		return ""
	}
	return ansi[lastSemicolon+1 : len(ansi)-1]
}
