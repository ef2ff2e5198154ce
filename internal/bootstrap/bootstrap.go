// Package bootstrap runs the mail check that starts every page load: fetch
// the listing, decide the icon state and augment the listing when it is the
// current page.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/kurogetsusai/wl-ignore-mail/internal/hooks"
	"github.com/kurogetsusai/wl-ignore-mail/internal/icon"
	"github.com/kurogetsusai/wl-ignore-mail/internal/logging"
	"github.com/kurogetsusai/wl-ignore-mail/internal/mail"
	"github.com/kurogetsusai/wl-ignore-mail/internal/page"
	"github.com/kurogetsusai/wl-ignore-mail/internal/renderer"
	"github.com/kurogetsusai/wl-ignore-mail/internal/scraper"
)

// Fetcher loads the raw listing HTML.
type Fetcher interface {
	FetchListing(ctx context.Context) (string, error)
}

// HookRunner runs user hooks.
type HookRunner interface {
	Run(ctx context.Context, hookPoint string, envVars ...string) error
}

// Result describes one run.
type Result struct {
	RunID string
	// Records is everything scraped from the fetched listing.
	Records []mail.Record
	// NewMails is the unread, not ignored subset of Records.
	NewMails []mail.Record
	// SiteQuiet is set when the page's flashing icon was hidden.
	SiteQuiet bool
	// Rendered is set when the current page is the listing and was
	// augmented; State then comes from its rows.
	Rendered bool
	State    icon.State
}

// Bootstrap wires the page, the listing source and the ignore store.
type Bootstrap struct {
	page     page.Page
	fetcher  Fetcher
	store    renderer.IgnoreStore
	icon     *icon.Controller
	renderer *renderer.Renderer
	hooks    HookRunner
	newRunID func() string
}

// Option configures a Bootstrap.
type Option func(*Bootstrap)

// WithHooks runs post-check hooks through runner.
func WithHooks(runner HookRunner) Option {
	return func(b *Bootstrap) { b.hooks = runner }
}

// WithRunID replaces the run ID generator.
func WithRunID(fn func() string) Option {
	return func(b *Bootstrap) { b.newRunID = fn }
}

// New creates a bootstrap for p. renderOpts configure the listing renderer.
func New(p page.Page, fetcher Fetcher, store renderer.IgnoreStore, controller *icon.Controller, opts []Option, renderOpts ...renderer.Option) *Bootstrap {
	if fetcher == nil {
		panic("bootstrap.New: fetcher dependency cannot be nil")
	}
	b := &Bootstrap{
		page:     p,
		fetcher:  fetcher,
		store:    store,
		icon:     controller,
		renderer: renderer.New(p, store, controller, renderOpts...),
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Renderer returns the listing renderer, for clicks after the run.
func (b *Bootstrap) Renderer() *renderer.Renderer { return b.renderer }

// Run performs the check. A failed fetch is logged and returned with the
// icon left as it was, apart from its target.
func (b *Bootstrap) Run(ctx context.Context) (Result, error) {
	res := Result{RunID: b.newRunID()}
	log := logging.With("run_id", res.RunID)

	b.icon.SetTarget(mail.ListingPath)

	html, err := b.fetcher.FetchListing(ctx)
	if err != nil {
		log.Error("mail listing fetch failed", "error", err)
		return res, fmt.Errorf("fetch mail listing: %w", err)
	}

	res.Records = scraper.Scrape(html)
	res.NewMails = mail.NewMails(res.Records, b.store)
	log.Info("mail listing scraped", "records", len(res.Records), "new_mails", len(res.NewMails))

	if !b.page.FlashingVisible() {
		res.SiteQuiet = true
		res.State = b.icon.Apply(nil)
	} else {
		b.icon.SetMode(icon.ModeNeither)
		res.State = b.icon.Apply(res.NewMails)
	}

	if b.page.IsListing() {
		state, _, err := b.renderer.Render()
		if err != nil && !errors.Is(err, renderer.ErrNotListing) {
			return res, err
		}
		res.State = state
		res.Rendered = true
	}

	log.Info("mail icon updated", "mode", string(res.State.Mode), "target", res.State.Target, "rendered", res.Rendered)

	if b.hooks != nil {
		err := b.hooks.Run(ctx, hooks.PostCheck,
			"WL_MAIL_RUN_ID="+res.RunID,
			"WL_MAIL_MODE="+string(res.State.Mode),
			"WL_MAIL_COUNT="+strconv.Itoa(res.State.Count),
			"WL_MAIL_TARGET="+res.State.Target,
		)
		if err != nil {
			return res, fmt.Errorf("post-check hook aborted: %w", err)
		}
	}
	return res, nil
}
