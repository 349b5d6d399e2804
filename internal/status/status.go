// Package status holds the transient message shown after a sync.
//
// A posted message stays visible for its report's display duration and
// then disappears on its own; posting again replaces it.
package status

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/agentstation/quotebook/pkg/reconciler"
)

const key = "status"

// Entry is the visible status.
type Entry struct {
	Message string            `json:"message" yaml:"message"`
	Status  reconciler.Status `json:"status" yaml:"status"`
	RunID   string            `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Expires time.Time         `json:"expires" yaml:"expires"`
}

// Board keeps at most one status entry.
type Board struct {
	store *gocache.Cache
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{store: gocache.New(gocache.NoExpiration, time.Minute)}
}

// Post shows report's message for report.DisplayFor. A non-positive
// duration keeps the entry until the next post or Clear.
func (b *Board) Post(report *reconciler.Report) {
	if report == nil {
		return
	}
	ttl := report.DisplayFor
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	entry := Entry{
		Message: report.Message(),
		Status:  report.Status,
		RunID:   report.RunID,
	}
	if ttl > 0 {
		entry.Expires = time.Now().Add(ttl)
	}
	b.store.Set(key, entry, ttl)
}

// PostMessage shows an ad hoc message, such as a validation error, for ttl.
func (b *Board) PostMessage(msg string, ttl time.Duration) {
	entry := Entry{Message: msg, Status: reconciler.StatusError}
	if ttl > 0 {
		entry.Expires = time.Now().Add(ttl)
	} else {
		ttl = gocache.NoExpiration
	}
	b.store.Set(key, entry, ttl)
}

// Current returns the visible entry, if any.
func (b *Board) Current() (Entry, bool) {
	v, ok := b.store.Get(key)
	if !ok {
		return Entry{}, false
	}
	return v.(Entry), true
}
