// Package app wires configuration, logging and the quotebook client for
// the CLI and manages their lifecycle.
package app

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/quotebook"
	"github.com/agentstation/quotebook/internal/appcontext"
	"github.com/agentstation/quotebook/internal/cmd/output"
	"github.com/agentstation/quotebook/internal/config"
	"github.com/agentstation/quotebook/pkg/errors"
	"github.com/agentstation/quotebook/pkg/sources"
	"github.com/agentstation/quotebook/pkg/storage"
)

// App represents the quotebook application with all its dependencies.
type App struct {
	version string
	commit  string
	date    string
	builtBy string

	config *config.Config
	logger *zerolog.Logger

	// out overrides stdout and stderr of commands when set
	out io.Writer

	// client is lazy-initialized on first use
	mu     sync.RWMutex
	client quotebook.Client
	store  storage.Store
}

var _ appcontext.Interface = (*App)(nil)

// New creates an App with configuration loaded from the default locations.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	cfg, err := config.Load("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = cfg

	logger := NewLogger(cfg)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string { return a.version }

// Commit returns the git commit hash.
func (a *App) Commit() string { return a.commit }

// Date returns the build date.
func (a *App) Date() string { return a.date }

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string { return a.builtBy }

// Config returns the application configuration.
func (a *App) Config() *config.Config { return a.config }

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger { return a.logger }

// OutputFormat returns the --format flag value, or a format detected from
// whether stdout is a terminal.
func (a *App) OutputFormat() string {
	return string(output.DetectFormat(a.config.Output))
}

// Client returns the quotebook client, creating it lazily. Periodic syncs
// stay off; long-running commands turn them on.
func (a *App) Client() (quotebook.Client, error) {
	a.mu.RLock()
	if a.client != nil {
		c := a.client
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil {
		return a.client, nil
	}

	ctx := context.Background()
	store, err := storage.Open(ctx, a.config.Storage, a.config.DataPath)
	if err != nil {
		return nil, errors.WrapResource("open", "storage", a.config.DataPath, err)
	}

	c, err := quotebook.New(a.clientOptions(store)...)
	if err != nil {
		_ = store.Close()
		return nil, errors.WrapResource("create", "quotebook", "", err)
	}

	a.client = c
	a.store = store
	return c, nil
}

// Shutdown stops background work, waits for pending pushes and closes
// the storage.
func (a *App) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	c, store := a.client, a.store
	a.client, a.store = nil, nil
	a.mu.Unlock()

	if c == nil {
		return nil
	}

	err := c.Shutdown(ctx)
	if store != nil {
		if closeErr := store.Close(); closeErr != nil {
			a.logger.Error().Err(closeErr).Msg("Failed to close storage")
		}
	}
	return err
}

func (a *App) clientOptions(store storage.Store) []quotebook.Option {
	return []quotebook.Option{
		quotebook.WithStorage(store),
		quotebook.WithGateway(NewGateway(a.config)),
		quotebook.WithAutoUpdates(false),
		quotebook.WithAutoUpdateInterval(a.config.SyncInterval),
		quotebook.WithFetchTimeout(a.config.FetchTimeout),
		quotebook.WithPushTimeout(a.config.PushTimeout),
		quotebook.WithLogger(a.logger),
	}
}

// NewGateway builds the remote gateway described by cfg. A file:// URL
// selects a local file gateway.
func NewGateway(cfg *config.Config) sources.Gateway {
	if path, ok := strings.CutPrefix(cfg.RemoteURL, "file://"); ok {
		return sources.NewFile(storage.ExpandHome(path))
	}

	opts := []sources.HTTPOption{
		sources.WithTextPath(cfg.RemoteTextPath),
		sources.WithCategoryPath(cfg.RemoteCategoryPath),
		sources.WithDefaultCategory(cfg.RemoteDefaultCategory),
		sources.WithLimit(cfg.RemoteLimit),
		sources.WithRequestTimeout(cfg.FetchTimeout),
	}
	if cfg.RemoteItemsPath != "" {
		opts = append(opts, sources.WithItemsPath(cfg.RemoteItemsPath))
	}
	if cfg.RemotePushURL != "" {
		opts = append(opts, sources.WithPushURL(cfg.RemotePushURL))
	}
	if cfg.RemoteToken != "" {
		opts = append(opts, sources.WithAuth(cfg.RemoteAuth, cfg.RemoteToken))
	}
	return sources.NewHTTP(cfg.RemoteURL, opts...)
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(cfg *config.Config) Option {
	return func(a *App) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		a.config = cfg
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithOutput redirects command output to w.
func WithOutput(w io.Writer) Option {
	return func(a *App) error {
		a.out = w
		return nil
	}
}

// WithClient sets a prebuilt client (useful for testing).
func WithClient(c quotebook.Client) Option {
	return func(a *App) error {
		a.client = c
		return nil
	}
}
