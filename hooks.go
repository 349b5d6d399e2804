package quotebook

import (
	"sync"

	"github.com/agentstation/quotebook/pkg/quotes"
	"github.com/agentstation/quotebook/pkg/reconciler"
)

// Compile-time interface check to ensure proper implementation.
var _ Hooks = (*client)(nil)

// Hook function types for quote events
type (
	// QuoteAddedHook is called when a quote is appended by Add, Import or Sync
	QuoteAddedHook func(q quotes.Quote)

	// QuoteUpdatedHook is called when a sync overwrites a quote's category
	QuoteUpdatedHook func(old, new quotes.Quote)

	// SyncedHook is called after every sync, including failed ones
	SyncedHook func(report *reconciler.Report)
)

// Hooks registers callbacks for list changes. Callbacks run synchronously
// on the goroutine that made the change, after it has been persisted.
type Hooks interface {
	OnQuoteAdded(fn QuoteAddedHook)
	OnQuoteUpdated(fn QuoteUpdatedHook)
	OnSynced(fn SyncedHook)
}

// hooks manages event callbacks for quote changes
type hooks struct {
	mu             sync.RWMutex
	onQuoteAdded   []QuoteAddedHook
	onQuoteUpdated []QuoteUpdatedHook
	onSynced       []SyncedHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnQuoteAdded registers a callback for appended quotes.
func (c *client) OnQuoteAdded(fn QuoteAddedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onQuoteAdded = append(c.hooks.onQuoteAdded, fn)
}

// OnQuoteUpdated registers a callback for category overwrites.
func (c *client) OnQuoteUpdated(fn QuoteUpdatedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onQuoteUpdated = append(c.hooks.onQuoteUpdated, fn)
}

// OnSynced registers a callback for sync reports.
func (c *client) OnSynced(fn SyncedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onSynced = append(c.hooks.onSynced, fn)
}

func (h *hooks) triggerAdded(added ...quotes.Quote) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, q := range added {
		for _, fn := range h.onQuoteAdded {
			fn(q)
		}
	}
}

// triggerMerge fires added and updated hooks for a merge outcome.
func (h *hooks) triggerMerge(out reconciler.Outcome) {
	h.triggerAdded(out.Added...)

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, conflict := range out.Conflicts {
		old := quotes.Quote{Text: conflict.Text, Category: conflict.OldCategory}
		updated := quotes.Quote{Text: conflict.Text, Category: conflict.NewCategory}
		for _, fn := range h.onQuoteUpdated {
			fn(old, updated)
		}
	}
}

func (h *hooks) triggerSynced(report *reconciler.Report) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onSynced {
		fn(report)
	}
}
