package main

import (
	"context"
	"io"
	"strconv"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kurogetsusai/wl-ignore-mail/cmd"
	"github.com/kurogetsusai/wl-ignore-mail/internal/bootstrap"
	"github.com/kurogetsusai/wl-ignore-mail/internal/colors"
	"github.com/kurogetsusai/wl-ignore-mail/internal/config"
	"github.com/kurogetsusai/wl-ignore-mail/internal/forum"
	"github.com/kurogetsusai/wl-ignore-mail/internal/hooks"
	"github.com/kurogetsusai/wl-ignore-mail/internal/icon"
	"github.com/kurogetsusai/wl-ignore-mail/internal/ignore"
	"github.com/kurogetsusai/wl-ignore-mail/internal/logging"
	"github.com/kurogetsusai/wl-ignore-mail/internal/mail"
	"github.com/kurogetsusai/wl-ignore-mail/internal/page"
	"github.com/kurogetsusai/wl-ignore-mail/internal/page/htmldoc"
	"github.com/kurogetsusai/wl-ignore-mail/internal/renderer"
	"github.com/kurogetsusai/wl-ignore-mail/internal/scraper"
	"github.com/kurogetsusai/wl-ignore-mail/internal/storage"
	"github.com/kurogetsusai/wl-ignore-mail/internal/tmux"
	"github.com/kurogetsusai/wl-ignore-mail/internal/tui/app"
	"github.com/kurogetsusai/wl-ignore-mail/internal/tui/state"
	"github.com/kurogetsusai/wl-ignore-mail/internal/version"
)

// defaultClient builds the real dependencies on first use, after the root
// command has loaded the configuration.
type defaultClient struct {
	once    sync.Once
	err     error
	backend storage.Backend
	store   *ignore.Store
	forum   *forum.Client
	hooks   *hooks.Runner
}

var coreClient = &defaultClient{}

func (c *defaultClient) ensure() error {
	c.once.Do(func() {
		c.backend, c.err = storage.NewFromConfig()
		if c.err != nil {
			return
		}
		cmd.RegisterCloser(c.Close)
		c.store = ignore.NewStore(c.backend)
		c.forum, c.err = forum.NewFromConfig()
		if c.err != nil {
			return
		}
		c.hooks = hooks.FromConfig()
		if err := c.hooks.Init(); err != nil {
			c.err = err
		}
	})
	return c.err
}

// Close releases the storage backend.
func (c *defaultClient) Close() error {
	if c.backend == nil {
		return nil
	}
	err := c.backend.Close()
	c.backend = nil
	return err
}

func (c *defaultClient) Version() string { return version.String() }

func (c *defaultClient) BaseURL() string {
	if err := c.ensure(); err != nil {
		return config.Get("base_url", "")
	}
	return c.forum.BaseURL()
}

func (c *defaultClient) LoadDocument(ctx context.Context, path string) (*htmldoc.Document, error) {
	if err := c.ensure(); err != nil {
		return nil, err
	}
	body, err := c.forum.Fetch(ctx, path)
	if err != nil {
		return nil, err
	}
	return htmldoc.Parse(strings.NewReader(body), path)
}

func (c *defaultClient) sinks(withTmux bool) []icon.Sink {
	if !withTmux && !config.GetBool("tmux_enabled", false) {
		return nil
	}
	return []icon.Sink{tmux.NewPublisher(tmux.NewDefaultClient(), c.forum.BaseURL())}
}

func (c *defaultClient) NewBootstrap(p page.Page, withTmux bool) (*bootstrap.Bootstrap, error) {
	if err := c.ensure(); err != nil {
		return nil, err
	}
	controller := icon.NewController(p, c.sinks(withTmux)...)
	return bootstrap.New(p, c.forum, c.store, controller,
		[]bootstrap.Option{bootstrap.WithHooks(c.hooks)},
		renderer.WithToggleHook(c.toggleHook),
	), nil
}

func (c *defaultClient) toggleHook(id int, ignored bool, state icon.State) {
	env := append(toggleEnv(id, ignored),
		"WL_MAIL_MODE="+string(state.Mode),
		"WL_MAIL_COUNT="+strconv.Itoa(state.Count),
	)
	c.runToggleHooks(env)
}

func (c *defaultClient) runToggleHooks(env []string) {
	if err := c.RunHook(context.Background(), hooks.PostToggle, env...); err != nil {
		colors.Error(err.Error())
	}
}

func toggleEnv(id int, ignored bool) []string {
	return []string{
		"WL_MAIL_ID=" + strconv.Itoa(id),
		"WL_MAIL_IGNORED=" + strconv.FormatBool(ignored),
	}
}

func (c *defaultClient) FetchRecords(ctx context.Context) ([]mail.Record, error) {
	if err := c.ensure(); err != nil {
		return nil, err
	}
	body, err := c.forum.FetchListing(ctx)
	if err != nil {
		return nil, err
	}
	return scraper.Scrape(body), nil
}

func (c *defaultClient) IgnoredSet() (ignore.Set, error) {
	if err := c.ensure(); err != nil {
		return ignore.Set{}, err
	}
	return c.store.Read(), nil
}

func (c *defaultClient) Toggle(id int) (bool, error) {
	if err := c.ensure(); err != nil {
		return false, err
	}
	return c.store.Toggle(id)
}

func (c *defaultClient) RunHook(ctx context.Context, hookPoint string, envVars ...string) error {
	if err := c.ensure(); err != nil {
		return err
	}
	return c.hooks.Run(ctx, hookPoint, envVars...)
}

func (c *defaultClient) NewModel(withTmux bool) (tea.Model, error) {
	if err := c.ensure(); err != nil {
		return nil, err
	}
	store := newHookedStore(c.store, c.hooks)
	return state.NewModel(store, c.FetchRecords, c.forum.BaseURL(), c.sinks(withTmux)...), nil
}

func (c *defaultClient) RunProgram(model tea.Model) error {
	return app.Run(app.NewDefaultProgramRunner(), model)
}

// hookedStore runs post-toggle hooks for toggles made in the TUI. Hook
// output is discarded and failures only reach the log file, since the
// program owns the terminal.
type hookedStore struct {
	*ignore.Store
	hooks bootstrap.HookRunner
}

func newHookedStore(store *ignore.Store, runner *hooks.Runner) *hookedStore {
	quiet := *runner
	quiet.Output = io.Discard
	return &hookedStore{Store: store, hooks: &quiet}
}

func (s *hookedStore) Toggle(id int) (bool, error) {
	ignored, err := s.Store.Toggle(id)
	if err != nil {
		return ignored, err
	}
	if err := s.hooks.Run(context.Background(), hooks.PostToggle, toggleEnv(id, ignored)...); err != nil {
		logging.Warn("post-toggle hook failed", "mail_id", id, "error", err)
	}
	return ignored, nil
}
