package events

import (
	"context"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Broker distributes events to every registered subscriber.
type Broker struct {
	subscribers []Subscriber
	events      chan Event
	seq         atomic.Uint64
	mu          sync.RWMutex
	logger      *zerolog.Logger
}

// NewBroker creates a new event broker.
func NewBroker(logger *zerolog.Logger) *Broker {
	return &Broker{
		subscribers: make([]Subscriber, 0),
		events:      make(chan Event, 256),
		logger:      logger,
	}
}

// Run delivers published events until ctx is cancelled, then closes all
// subscribers. Should be called in a goroutine.
func (b *Broker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			b.mu.Lock()
			for _, sub := range b.subscribers {
				_ = sub.Close()
			}
			b.subscribers = nil
			b.mu.Unlock()
			b.logger.Debug().Msg("Event broker shut down")
			return

		case event := <-b.events:
			b.mu.RLock()
			subs := slices.Clone(b.subscribers)
			b.mu.RUnlock()

			for _, sub := range subs {
				if err := sub.Send(event); err != nil {
					b.logger.Warn().
						Err(err).
						Str("event_type", string(event.Type)).
						Msg("Failed to send event to subscriber")
				}
			}

			b.logger.Debug().
				Str("event_type", string(event.Type)).
				Int("subscribers", len(subs)).
				Msg("Event broadcasted")
		}
	}
}

// Publish queues an event for delivery, numbering it when it has no ID.
// Events are dropped when the queue is full.
func (b *Broker) Publish(event Event) {
	if event.ID == "" {
		event.ID = strconv.FormatUint(b.seq.Add(1), 10)
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	select {
	case b.events <- event:
	default:
		b.logger.Warn().
			Str("event_type", string(event.Type)).
			Str("event_id", event.ID).
			Msg("Event channel full, event dropped")
	}
}

// Subscribe registers a subscriber. It may be called before Run.
func (b *Broker) Subscribe(sub Subscriber) {
	b.mu.Lock()
	b.subscribers = append(b.subscribers, sub)
	n := len(b.subscribers)
	b.mu.Unlock()
	b.logger.Debug().Int("total_subscribers", n).Msg("Subscriber registered")
}

// SubscriberCount returns the current number of subscribers.
func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
