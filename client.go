// Package quotebook manages a collection of categorized quotes that is
// periodically reconciled with a remote source.
//
// The client owns the quote store, the remote gateway and the background
// sync schedule. Adapters (the CLI and the HTTP server) call its methods
// and register hooks to re-render when the list changes.
//
// Example usage:
//
//	qb, err := quotebook.New(
//	    quotebook.WithStorage(store),
//	    quotebook.WithGateway(sources.NewHTTP(url)),
//	    quotebook.WithAutoUpdates(true),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer qb.Shutdown(context.Background())
//
//	qb.OnSynced(func(r *reconciler.Report) {
//	    fmt.Println(r.Message())
//	})
//
//	q, err := qb.Random(ctx)
package quotebook

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/agentstation/quotebook/pkg/errors"
	"github.com/agentstation/quotebook/pkg/logging"
	"github.com/agentstation/quotebook/pkg/quotes"
	"github.com/agentstation/quotebook/pkg/sources"
)

// Client manages a quote collection with periodic sync and event hooks.
type Client interface {

	// Quotes provides copy-on-read access to the list
	Quotes

	// Editor mutates the list and filter
	Editor

	// Viewer picks quotes to display
	Viewer

	// Updater reconciles with the remote gateway
	Updater

	// Exporter writes the list in an interchange format
	Exporter

	// AutoUpdater controls periodic syncs
	AutoUpdater

	// Hooks registers change callbacks
	Hooks

	// Shutdown stops periodic syncs and waits for pending pushes
	Shutdown(ctx context.Context) error
}

// client is the internal implementation of the Client interface.
type client struct {
	options *options

	store   *quotes.Store
	gateway sources.Gateway

	randMu sync.Mutex
	rand   *rand.Rand

	// base context for background work, cancelled by Shutdown
	baseCtx    context.Context
	baseCancel context.CancelFunc

	// auto update state
	autoMu    sync.Mutex
	scheduler *cron.Cron
	runCancel context.CancelFunc

	pushes sync.WaitGroup
	hooks  *hooks
}

// New creates a client, loading the persisted list (or the seed quotes).
func New(opts ...Option) (Client, error) {
	o := defaults().apply(opts...)

	c := &client{
		options: o,
		store:   quotes.NewStore(o.storage),
		gateway: o.gateway,
		rand:    rand.New(o.randSource),
		hooks:   newHooks(),
	}
	c.baseCtx, c.baseCancel = context.WithCancel(c.context(context.Background()))

	if err := c.store.Load(c.baseCtx); err != nil {
		c.baseCancel()
		return nil, errors.WrapResource("load", "store", "", err)
	}

	logging.FromContext(c.baseCtx).Debug().
		Int("quotes", c.store.Len()).
		Str("filter", c.store.Filter()).
		Str("gateway", c.gateway.ID()).
		Msg("Quote store loaded")

	if o.autoUpdatesEnabled {
		if err := c.AutoUpdatesOn(); err != nil {
			c.baseCancel()
			return nil, errors.WrapResource("start", "auto-updates", "", err)
		}
	}

	return c, nil
}

// context attaches the configured logger, if any.
func (c *client) context(ctx context.Context) context.Context {
	if c.options.logger != nil {
		return logging.WithLogger(ctx, c.options.logger)
	}
	return ctx
}
