package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/quotebook/internal/status"
	"github.com/agentstation/quotebook/pkg/logging"
	"github.com/agentstation/quotebook/pkg/quotes"
	"github.com/agentstation/quotebook/pkg/reconciler"
)

type mockSubscriber struct {
	mu     sync.Mutex
	events []Event
	closed bool
}

func (m *mockSubscriber) Send(event Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *mockSubscriber) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockSubscriber) snapshot() ([]Event, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event(nil), m.events...), m.closed
}

func TestBrokerFanOut(t *testing.T) {
	b := NewBroker(logging.NewNopLogger())
	a, c := &mockSubscriber{}, &mockSubscriber{}
	b.Subscribe(a)
	b.Subscribe(c)
	assert.Equal(t, 2, b.SubscriberCount())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		b.Run(ctx)
		close(done)
	}()

	b.Publish(Added(quotes.Quote{Text: "A", Category: "B"}))
	b.Publish(Synced(reconciler.NewReport("run-1", "static", 1, reconciler.Outcome{})))

	for _, sub := range []*mockSubscriber{a, c} {
		require.Eventually(t, func() bool {
			events, _ := sub.snapshot()
			return len(events) == 2
		}, time.Second, 5*time.Millisecond)
		events, _ := sub.snapshot()
		assert.Equal(t, QuoteAdded, events[0].Type)
		assert.Equal(t, "1", events[0].ID)
		assert.Equal(t, QuotePayload{Quote: quotes.Quote{Text: "A", Category: "B"}}, events[0].Data)
		assert.Equal(t, QuotesSynced, events[1].Type)
		assert.Equal(t, "run-1", events[1].ID)
		assert.Equal(t, "Quotes synced successfully.", events[1].Data.(SyncPayload).Message)
	}

	cancel()
	<-done
	_, closed := a.snapshot()
	assert.True(t, closed)
	assert.Zero(t, b.SubscriberCount())
}

func TestBrokerDropsWhenFull(t *testing.T) {
	tl := logging.NewTestLogger(t)
	b := NewBroker(tl.Logger)
	for range cap(b.events) + 1 {
		b.Publish(Event{Type: QuoteAdded})
	}
	assert.True(t, tl.Contains("Event channel full"))
}

func TestStatusReplayCarriesRun(t *testing.T) {
	e := Status(status.Entry{Message: "Quotes synced successfully.", Status: reconciler.StatusSynced, RunID: "run-9"})
	assert.Equal(t, StatusShown, e.Type)
	assert.Equal(t, "run-9", e.ID)
	assert.False(t, e.Timestamp.IsZero())

	c := Connected("c1", 3, "all")
	assert.Equal(t, ConnectedPayload{ClientID: "c1", Quotes: 3, Filter: "all"}, c.Data)
	assert.Empty(t, c.ID)
}
