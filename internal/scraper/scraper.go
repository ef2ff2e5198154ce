// Package scraper extracts mail records from the raw HTML of the "My Mail"
// listing without a full parse. Lines are classified into tokens and folded
// by a small state machine.
package scraper

import (
	"strings"

	"github.com/kurogetsusai/wl-ignore-mail/internal/logging"
	"github.com/kurogetsusai/wl-ignore-mail/internal/mail"
)

const (
	threadLinkPrefix = `<a href="/Discussion/?ID=`
	unreadMarker     = "UnreadTr"

	// Leading and trailing tokens that belong to the table frame rather
	// than to mail rows.
	leadingBoundary  = 2
	trailingBoundary = 1
)

// TokenKind classifies a kept line.
type TokenKind int

const (
	TokenRow TokenKind = iota
	TokenThreadLink
	TokenPaginationLink
)

func (k TokenKind) String() string {
	switch k {
	case TokenRow:
		return "row"
	case TokenThreadLink:
		return "thread-link"
	case TokenPaginationLink:
		return "pagination-link"
	default:
		return "unknown"
	}
}

// Token is one classified line.
type Token struct {
	Kind TokenKind
	Line string
}

// Tokenize trims every line of html and keeps row openings, thread links
// and pagination links.
func Tokenize(html string) []Token {
	var tokens []Token
	for _, line := range strings.Split(html, "\n") {
		line = strings.TrimSpace(line)
		if tok, ok := classify(line); ok {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func classify(line string) (Token, bool) {
	switch {
	case strings.HasPrefix(line, "<tr"):
		return Token{Kind: TokenRow, Line: line}, true
	case strings.HasPrefix(line, threadLinkPrefix):
		if _, ok := mail.QueryInt(hrefOf(line), "Offset"); ok {
			return Token{Kind: TokenPaginationLink, Line: line}, true
		}
		return Token{Kind: TokenThreadLink, Line: line}, true
	default:
		return Token{}, false
	}
}

// hrefOf returns the double-quoted href value of an anchor line.
func hrefOf(line string) string {
	const attr = `href="`
	start := strings.Index(line, attr)
	if start < 0 {
		return ""
	}
	rest := line[start+len(attr):]
	end := strings.IndexByte(rest, '"')
	if end < 0 {
		return rest
	}
	return rest[:end]
}

// Trim drops the frame tokens around the data rows.
func Trim(tokens []Token) []Token {
	if len(tokens) <= leadingBoundary+trailingBoundary {
		return nil
	}
	return tokens[leadingBoundary : len(tokens)-trailingBoundary]
}

type state int

const (
	expectRow state = iota
	inRowExpectLink
	inRowExpectOffset
)

// machine folds tokens into records.
type machine struct {
	state   state
	current mail.Record
	valid   bool
	records []mail.Record
}

func (m *machine) step(tok Token) {
	switch tok.Kind {
	case TokenRow:
		m.flush()
		m.current = mail.Record{Unread: strings.Contains(tok.Line, unreadMarker)}
		m.valid = false
		m.state = inRowExpectLink
	case TokenThreadLink:
		if m.state != inRowExpectLink {
			return
		}
		if id, ok := mail.QueryInt(hrefOf(tok.Line), "ID"); ok && id > 0 {
			m.current.ID = id
			m.valid = true
		}
		m.state = inRowExpectOffset
	case TokenPaginationLink:
		if m.state != inRowExpectOffset {
			return
		}
		if offset, ok := mail.QueryInt(hrefOf(tok.Line), "Offset"); ok {
			m.current = m.current.WithOffset(offset)
		}
		m.state = expectRow
	}
}

func (m *machine) flush() {
	if m.state == expectRow && !m.valid {
		return
	}
	if !m.valid {
		logging.Debug("skipping mail row without thread ID", "unread", m.current.Unread)
	} else {
		m.records = append(m.records, m.current)
	}
	m.valid = false
	m.state = expectRow
}

// Scrape returns the mail records of a listing page in page order. Rows
// without a parsable thread ID are skipped.
func Scrape(html string) []mail.Record {
	m := &machine{state: expectRow}
	for _, tok := range Trim(Tokenize(html)) {
		m.step(tok)
	}
	m.flush()
	return m.records
}
