// Package server exposes a quotebook client over HTTP, with WebSocket and
// SSE streams of list changes.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/quotebook"
	"github.com/agentstation/quotebook/internal/server/cache"
	"github.com/agentstation/quotebook/internal/server/events"
	"github.com/agentstation/quotebook/internal/server/events/adapters"
	"github.com/agentstation/quotebook/internal/server/sse"
	ws "github.com/agentstation/quotebook/internal/server/websocket"
	"github.com/agentstation/quotebook/internal/status"
	"github.com/agentstation/quotebook/pkg/quotes"
	"github.com/agentstation/quotebook/pkg/reconciler"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	client         quotebook.Client
	board          *status.Board
	cache          *cache.Cache
	broker         *events.Broker
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	upgrader       websocket.Upgrader
	logger         *zerolog.Logger
	config         Config

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
}

// New creates a server for client and registers its hooks. Background
// services start with Start.
func New(client quotebook.Client, board *status.Board, logger *zerolog.Logger, cfg Config) *Server {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultConfig().CacheTTL
	}
	if board == nil {
		board = status.NewBoard()
	}

	broker := events.NewBroker(logger)
	wsHub := ws.NewHub(logger)
	sseBroadcaster := sse.NewBroadcaster(logger)
	broker.Subscribe(adapters.NewWebSocketSubscriber(wsHub))
	broker.Subscribe(adapters.NewSSESubscriber(sseBroadcaster))

	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		client:         client,
		board:          board,
		cache:          cache.New(cfg.CacheTTL),
		broker:         broker,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger,
		config: cfg,
		ctx:    ctx,
		cancel: cancel,
	}
	s.connectHooks()
	return s
}

// connectHooks publishes client changes, clears cached responses and
// posts sync reports to the status board.
func (s *Server) connectHooks() {
	s.client.OnQuoteAdded(func(q quotes.Quote) {
		s.cache.Invalidate()
		s.broker.Publish(events.Added(q))
	})

	s.client.OnQuoteUpdated(func(old, updated quotes.Quote) {
		s.cache.Invalidate()
		s.broker.Publish(events.Updated(old, updated))
	})

	s.client.OnSynced(func(report *reconciler.Report) {
		s.board.Post(report)
		s.broker.Publish(events.Synced(report))
		s.logger.Debug().
			Str("sync_run", report.RunID).
			Str("status", report.Status.String()).
			Msg("Sync event published")
	})
}

// Start starts the broker, the WebSocket hub and the SSE broadcaster.
func (s *Server) Start() {
	if s.started {
		return
	}
	s.started = true

	for _, run := range []func(context.Context){s.broker.Run, s.wsHub.Run, s.sseBroadcaster.Run} {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			run(s.ctx)
		}()
	}
	s.logger.Debug().Int("subscribers", s.broker.SubscriberCount()).Msg("Background services started")
}

// Handler returns the routed handler with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// HTTPServer builds the http.Server for the configured address.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
}

// Shutdown stops background services and waits for them, or for ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Debug().Msg("Background services shut down")
		return nil
	case <-ctx.Done():
		s.logger.Warn().Msg("Background services shutdown timed out")
		return ctx.Err()
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts down within
// shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, shutdownTimeout time.Duration) error {
	s.Start()
	srv := s.HTTPServer()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", srv.Addr).Msg("Quotebook server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		_ = s.Shutdown(context.Background())
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info().Msg("Shutting down server")

	// Close streams first so long-lived connections don't hold up srv.Shutdown.
	_ = s.Shutdown(shutdownCtx)
	return srv.Shutdown(shutdownCtx)
}
