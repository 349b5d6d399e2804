// Package sse streams quote events to clients that cannot use WebSockets.
package sse

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	clientBuffer = 64

	// HeartbeatInterval is how often an idle stream gets a comment line,
	// which keeps proxies from closing it.
	HeartbeatInterval = 25 * time.Second
)

// Frame is one encoded event. Data must be a single line.
type Frame struct {
	Name string
	ID   string
	Data []byte
}

// WriteTo writes f in text/event-stream framing.
func (f Frame) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	if f.Name != "" {
		buf.WriteString("event: " + f.Name + "\n")
	}
	if f.ID != "" {
		buf.WriteString("id: " + f.ID + "\n")
	}
	buf.WriteString("data: ")
	buf.Write(f.Data)
	buf.WriteString("\n\n")
	return buf.WriteTo(w)
}

// Broadcaster fans frames out to every open stream.
type Broadcaster struct {
	mu      sync.Mutex
	clients map[chan Frame]struct{}
	stopped bool

	frames    chan Frame
	heartbeat time.Duration
	logger    *zerolog.Logger
}

// NewBroadcaster creates a broadcaster. Frames flow once Run is started.
func NewBroadcaster(logger *zerolog.Logger) *Broadcaster {
	return &Broadcaster{
		clients:   make(map[chan Frame]struct{}),
		frames:    make(chan Frame, 256),
		heartbeat: HeartbeatInterval,
		logger:    logger,
	}
}

// Run delivers broadcast frames until ctx is cancelled, then ends every
// stream.
func (b *Broadcaster) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			b.mu.Lock()
			for ch := range b.clients {
				close(ch)
			}
			clear(b.clients)
			b.stopped = true
			b.mu.Unlock()
			b.logger.Debug().Msg("SSE broadcaster shut down")
			return

		case f := <-b.frames:
			b.mu.Lock()
			skipped := 0
			for ch := range b.clients {
				select {
				case ch <- f:
				default:
					skipped++
				}
			}
			b.mu.Unlock()
			if skipped > 0 {
				b.logger.Warn().
					Str("event", f.Name).
					Int("skipped_clients", skipped).
					Msg("SSE client buffer full, event skipped")
			}
		}
	}
}

// Broadcast queues f for every stream. Frames are dropped when the queue
// is full.
func (b *Broadcaster) Broadcast(f Frame) {
	select {
	case b.frames <- f:
	default:
		b.logger.Warn().Str("event", f.Name).Msg("SSE broadcast channel full, event dropped")
	}
}

// ClientCount returns the number of open streams.
func (b *Broadcaster) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

func (b *Broadcaster) attach() (chan Frame, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stopped {
		return nil, 0
	}
	ch := make(chan Frame, clientBuffer)
	b.clients[ch] = struct{}{}
	return ch, len(b.clients)
}

func (b *Broadcaster) detach(ch chan Frame) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.clients[ch]; ok {
		delete(b.clients, ch)
		close(ch)
	}
	return len(b.clients)
}

// ServeHTTP streams broadcast frames without a greeting.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.Serve(w, r)
}

// Serve writes greeting to the new stream, then every broadcast frame,
// until the request ends or the broadcaster stops.
func (b *Broadcaster) Serve(w http.ResponseWriter, r *http.Request, greeting ...Frame) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	ch, n := b.attach()
	if ch == nil {
		http.Error(w, "Server shutting down", http.StatusServiceUnavailable)
		return
	}
	b.logger.Info().Int("total_clients", n).Msg("SSE client connected")
	defer func() {
		n := b.detach(ch)
		b.logger.Info().Int("total_clients", n).Msg("SSE client disconnected")
	}()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	for _, f := range greeting {
		if _, err := f.WriteTo(w); err != nil {
			return
		}
	}
	flusher.Flush()

	ticker := time.NewTicker(b.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case f, ok := <-ch:
			if !ok {
				return
			}
			if _, err := f.WriteTo(w); err != nil {
				return
			}
			flusher.Flush()

		case <-ticker.C:
			if _, err := io.WriteString(w, ": keepalive\n\n"); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
