// Package forum loads pages from the forum over HTTP.
package forum

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/kurogetsusai/wl-ignore-mail/internal/config"
	"github.com/kurogetsusai/wl-ignore-mail/internal/logging"
	"github.com/kurogetsusai/wl-ignore-mail/internal/mail"
	"github.com/kurogetsusai/wl-ignore-mail/internal/version"
	"golang.org/x/net/publicsuffix"
)

// maxPageSize caps how much of a response body is read. Can be changed for
// testing.
var maxPageSize int64 = 8 << 20

var (
	// ErrUnexpectedStatus is returned for any response other than 200.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
	// ErrInvalidBaseURL is returned when the base URL is not absolute http(s).
	ErrInvalidBaseURL = errors.New("invalid forum base URL")
	// ErrPageTooLarge is returned for bodies over the size limit.
	ErrPageTooLarge = errors.New("forum page too large")
)

// Client fetches forum pages. A zero Timeout disables the per-request
// deadline.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	cookie    string
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithSessionCookie sends cookie verbatim in the Cookie header.
func WithSessionCookie(cookie string) Option {
	return func(c *Client) { c.cookie = strings.TrimSpace(cookie) }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// NewClient creates a client for the forum at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	c := &Client{
		baseURL:   u,
		http:      &http.Client{Jar: jar},
		userAgent: version.UserAgent(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewFromConfig creates a client from the base_url, session_cookie,
// user_agent and http_timeout settings.
func NewFromConfig() (*Client, error) {
	return NewClient(
		config.Get("base_url", "https://www.warlight.net"),
		WithSessionCookie(config.Get("session_cookie", "")),
		WithUserAgent(config.Get("user_agent", "")),
		WithTimeout(config.GetDuration("http_timeout", 30*time.Second)),
	)
}

// BaseURL returns the forum root without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// URL resolves a forum path against the base URL.
func (c *Client) URL(path string) string {
	ref, err := url.Parse(path)
	if err != nil {
		return c.BaseURL() + path
	}
	return c.baseURL.ResolveReference(ref).String()
}

// Fetch GETs path and returns the body. Only 200 is a success.
func (c *Client) Fetch(ctx context.Context, path string) (string, error) {
	target := c.URL(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", path, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html")
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("load %s: %w", path, err)
	}
	defer resp.Body.Close()

	logging.Debug("forum request", "path", path, "status", resp.StatusCode, "duration_seconds", time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxPageSize))
		return "", fmt.Errorf("cannot load %s: %w: %d", path, ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize+1))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if int64(len(body)) > maxPageSize {
		return "", fmt.Errorf("load %s: %w: over %d bytes", path, ErrPageTooLarge, maxPageSize)
	}
	return string(body), nil
}

// FetchListing loads the "My Mail" page.
func (c *Client) FetchListing(ctx context.Context) (string, error) {
	return c.Fetch(ctx, mail.ListingPath)
}
