package reconciler_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/quotebook/pkg/quotes"
	"github.com/agentstation/quotebook/pkg/reconciler"
)

func TestReport(t *testing.T) {
	t.Run("synced", func(t *testing.T) {
		out := reconciler.Merge(nil, []quotes.Quote{q("A", "B")})
		r := reconciler.NewReport("run-1", "static", 1, out)

		assert.Equal(t, reconciler.StatusSynced, r.Status)
		assert.Equal(t, "Quotes synced successfully.", r.Message())
		assert.Equal(t, 1, r.Added)
		assert.Equal(t, 1, r.Fetched)
		assert.True(t, r.IsSuccess())
		assert.Equal(t, 3*time.Second, r.DisplayFor)
		assert.False(t, r.SyncedAt.IsZero())
	})

	t.Run("conflicts", func(t *testing.T) {
		out := reconciler.Merge(
			[]quotes.Quote{q("A", "Old"), q("B", "Old")},
			[]quotes.Quote{q("A", "New"), q("B", "New")},
		)
		r := reconciler.NewReport("run-2", "static", 2, out)

		assert.Equal(t, reconciler.StatusConflicts, r.Status)
		assert.Equal(t, 2, r.ConflictCount())
		assert.Equal(t, "Sync complete: 2 conflict(s) resolved, server version kept.", r.Message())
		assert.True(t, r.IsSuccess())
	})

	t.Run("error", func(t *testing.T) {
		r := reconciler.FailedReport("run-3", "http")

		assert.Equal(t, reconciler.StatusError, r.Status)
		assert.Equal(t, "Error syncing quotes with server.", r.Message())
		assert.False(t, r.IsSuccess())
		assert.Equal(t, 3*time.Second, r.DisplayFor)
		assert.Equal(t, "error", r.Status.String())
	})
}
