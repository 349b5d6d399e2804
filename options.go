package quotebook

import (
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/quotebook/pkg/constants"
	"github.com/agentstation/quotebook/pkg/sources"
	"github.com/agentstation/quotebook/pkg/storage"
)

// options holds the configuration of a client.
type options struct {
	storage            storage.Store
	session            storage.Store
	gateway            sources.Gateway
	autoUpdatesEnabled bool
	autoUpdateInterval time.Duration
	fetchTimeout       time.Duration
	pushTimeout        time.Duration
	randSource         rand.Source
	logger             *zerolog.Logger
}

// Option configures a client.
type Option func(*options)

func defaults() *options {
	return &options{
		autoUpdatesEnabled: false,
		autoUpdateInterval: constants.DefaultSyncInterval,
		fetchTimeout:       constants.FetchTimeout,
		pushTimeout:        constants.PushTimeout,
	}
}

func (o *options) apply(opts ...Option) *options {
	for _, opt := range opts {
		opt(o)
	}
	if o.storage == nil {
		o.storage = storage.NewMemory()
	}
	if o.session == nil {
		o.session = storage.NewMemory()
	}
	if o.gateway == nil {
		o.gateway = sources.NewHTTP(constants.DefaultRemoteURL)
	}
	if o.randSource == nil {
		o.randSource = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return o
}

// WithStorage sets the durable storage for the quote list and filter.
func WithStorage(s storage.Store) Option {
	return func(o *options) { o.storage = s }
}

// WithSessionStorage sets the storage for session-scoped state such as
// the last viewed quote. It defaults to process memory.
func WithSessionStorage(s storage.Store) Option {
	return func(o *options) { o.session = s }
}

// WithGateway sets the remote gateway used by Sync and PushQuotes.
func WithGateway(gw sources.Gateway) Option {
	return func(o *options) { o.gateway = gw }
}

// WithAutoUpdates configures whether periodic syncs start with the client.
func WithAutoUpdates(enabled bool) Option {
	return func(o *options) { o.autoUpdatesEnabled = enabled }
}

// WithAutoUpdateInterval configures how often periodic syncs run.
func WithAutoUpdateInterval(interval time.Duration) Option {
	return func(o *options) { o.autoUpdateInterval = interval }
}

// WithFetchTimeout bounds each remote fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.fetchTimeout = d
		}
	}
}

// WithPushTimeout bounds each outbound push of the full list.
func WithPushTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.pushTimeout = d
		}
	}
}

// WithRandSource sets the randomness used to pick quotes.
func WithRandSource(src rand.Source) Option {
	return func(o *options) { o.randSource = src }
}

// WithLogger sets the logger used by the client and its background work.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}
