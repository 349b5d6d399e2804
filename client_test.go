package quotebook_test

import (
	"bytes"
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/quotebook"
	"github.com/agentstation/quotebook/pkg/constants"
	"github.com/agentstation/quotebook/pkg/errors"
	"github.com/agentstation/quotebook/pkg/interchange"
	"github.com/agentstation/quotebook/pkg/logging"
	"github.com/agentstation/quotebook/pkg/quotes"
	"github.com/agentstation/quotebook/pkg/reconciler"
	"github.com/agentstation/quotebook/pkg/sources"
	"github.com/agentstation/quotebook/pkg/storage"
)

func newClient(t *testing.T, opts ...quotebook.Option) quotebook.Client {
	t.Helper()
	logging.DisableLoggingForTest(t)

	base := []quotebook.Option{
		quotebook.WithGateway(sources.NewStatic()),
		quotebook.WithRandSource(rand.NewPCG(1, 2)),
	}
	c, err := quotebook.New(append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Shutdown(context.Background()) })
	return c
}

func TestNewSeedsAndLoads(t *testing.T) {
	ctx := context.Background()

	t.Run("seed", func(t *testing.T) {
		c := newClient(t)
		assert.Equal(t, quotes.Seed(), c.Quotes())
		assert.Equal(t, constants.FilterAll, c.Filter())
		assert.Equal(t, []string{"Motivation", "Life"}, c.Categories())
	})

	t.Run("persisted", func(t *testing.T) {
		backend := storage.NewMemory()
		first := newClient(t, quotebook.WithStorage(backend))
		_, err := first.Add(ctx, "New", "Fresh")
		require.NoError(t, err)
		require.NoError(t, first.SetFilter(ctx, "Fresh"))

		second := newClient(t, quotebook.WithStorage(backend))
		assert.Equal(t, first.Quotes(), second.Quotes())
		assert.Equal(t, "Fresh", second.Filter())
		assert.Equal(t, []quotes.Quote{{Text: "New", Category: "Fresh"}}, second.Filtered())
	})
}

func TestAdd(t *testing.T) {
	ctx := context.Background()
	c := newClient(t)

	var added []quotes.Quote
	c.OnQuoteAdded(func(q quotes.Quote) { added = append(added, q) })

	q, err := c.Add(ctx, " Hello ", " World ")
	require.NoError(t, err)
	assert.Equal(t, quotes.Quote{Text: "Hello", Category: "World"}, q)
	assert.Equal(t, []quotes.Quote{q}, added)

	_, err = c.Add(ctx, "", "World")
	assert.True(t, errors.IsValidationError(err))
	assert.Len(t, c.Quotes(), 4)
	assert.Len(t, added, 1)
}

func TestRandomAndCurrent(t *testing.T) {
	ctx := context.Background()

	t.Run("random stays within filtered view", func(t *testing.T) {
		c := newClient(t)
		require.NoError(t, c.SetFilter(ctx, "Motivation"))
		for range 20 {
			q, err := c.Random(ctx)
			require.NoError(t, err)
			assert.Equal(t, "Motivation", q.Category)
		}
	})

	t.Run("current restores last viewed", func(t *testing.T) {
		c := newClient(t)
		q, err := c.Random(ctx)
		require.NoError(t, err)
		for range 5 {
			got, err := c.Current(ctx)
			require.NoError(t, err)
			assert.Equal(t, q, got)
		}
	})

	t.Run("stale pointer is discarded", func(t *testing.T) {
		session := storage.NewMemory()
		require.NoError(t, session.Set(ctx, constants.KeyLastViewedIndex, []byte("7")))
		c := newClient(t, quotebook.WithSessionStorage(session))

		q, err := c.Current(ctx)
		require.NoError(t, err)
		assert.Contains(t, quotes.Seed(), q)

		raw, err := session.Get(ctx, constants.KeyLastViewedIndex)
		require.NoError(t, err)
		assert.NotEqual(t, "7", string(raw))
	})

	t.Run("pointer within view is used", func(t *testing.T) {
		session := storage.NewMemory()
		require.NoError(t, session.Set(ctx, constants.KeyLastViewedIndex, []byte("2")))
		c := newClient(t, quotebook.WithSessionStorage(session))

		q, err := c.Current(ctx)
		require.NoError(t, err)
		assert.Equal(t, quotes.Seed()[2], q)
	})

	t.Run("empty view", func(t *testing.T) {
		c := newClient(t)
		require.NoError(t, c.SetFilter(ctx, "Nope"))
		_, err := c.Random(ctx)
		assert.ErrorIs(t, err, errors.ErrNoQuotes)
		_, err = c.Current(ctx)
		assert.ErrorIs(t, err, errors.ErrNoQuotes)
	})

	t.Run("random in category ignores filter and session", func(t *testing.T) {
		session := storage.NewMemory()
		c := newClient(t, quotebook.WithSessionStorage(session))
		ref := newClient(t)
		require.NoError(t, c.SetFilter(ctx, "Life"))

		for range 10 {
			q, err := c.RandomIn(ctx, "Motivation")
			require.NoError(t, err)
			want, err := ref.RandomIn(ctx, "Motivation")
			require.NoError(t, err)
			assert.Equal(t, want, q)
			assert.Equal(t, "Motivation", q.Category)
		}

		_, err := session.Get(ctx, constants.KeyLastViewedIndex)
		assert.True(t, errors.IsNotFound(err))
		assert.Equal(t, "Life", c.Filter())

		_, err = c.RandomIn(ctx, "Nope")
		assert.ErrorIs(t, err, errors.ErrNoQuotes)
	})

	t.Run("filter change drops pointer", func(t *testing.T) {
		session := storage.NewMemory()
		c := newClient(t, quotebook.WithSessionStorage(session))
		_, err := c.Random(ctx)
		require.NoError(t, err)
		require.NoError(t, c.SetFilter(ctx, "Life"))
		_, err = session.Get(ctx, constants.KeyLastViewedIndex)
		assert.True(t, errors.IsNotFound(err))
	})
}

func TestImportExport(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip appends duplicates", func(t *testing.T) {
		c := newClient(t)
		before := c.Quotes()

		var buf bytes.Buffer
		require.NoError(t, c.Export(&buf, interchange.FormatJSON))

		res, err := c.Import(ctx, &buf, interchange.FormatJSON)
		require.NoError(t, err)
		assert.Equal(t, &quotebook.ImportResult{Added: 3}, res)
		if diff := cmp.Diff(append(before, before...), c.Quotes()); diff != "" {
			t.Errorf("import mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("non-array leaves store unchanged", func(t *testing.T) {
		c := newClient(t)
		_, err := c.Import(ctx, strings.NewReader(`{"text":"A","category":"B"}`), interchange.FormatJSON)
		assert.True(t, errors.IsImportFormatError(err))
		assert.Equal(t, quotes.Seed(), c.Quotes())
	})

	t.Run("partial success", func(t *testing.T) {
		c := newClient(t)
		var added int
		c.OnQuoteAdded(func(quotes.Quote) { added++ })

		res, err := c.Import(ctx, strings.NewReader("- text: A\n  category: B\n- text: C\n"), interchange.FormatYAML)
		require.NoError(t, err)
		assert.Equal(t, &quotebook.ImportResult{Added: 1, Skipped: 1}, res)
		assert.Equal(t, 1, added)
		assert.Equal(t, quotes.Quote{Text: "A", Category: "B"}, c.Quotes()[3])
	})
}

func TestSync(t *testing.T) {
	ctx := context.Background()

	t.Run("merge with conflicts and additions", func(t *testing.T) {
		gw := sources.NewStatic(
			quotes.Quote{Text: "Do or do not. There is no try.", Category: "Jedi"},
			quotes.Quote{Text: "Life is what happens when you're busy making other plans.", Category: "Life"},
			quotes.Quote{Text: "Stay hungry, stay foolish.", Category: "Server"},
		)
		backend := storage.NewMemory()
		c := newClient(t, quotebook.WithGateway(gw), quotebook.WithStorage(backend))

		var (
			added   []quotes.Quote
			updated [][2]quotes.Quote
			reports []*reconciler.Report
		)
		c.OnQuoteAdded(func(q quotes.Quote) { added = append(added, q) })
		c.OnQuoteUpdated(func(old, new quotes.Quote) { updated = append(updated, [2]quotes.Quote{old, new}) })
		c.OnSynced(func(r *reconciler.Report) { reports = append(reports, r) })

		report, err := c.Sync(ctx)
		require.NoError(t, err)
		assert.Equal(t, reconciler.StatusConflicts, report.Status)
		assert.Equal(t, "Sync complete: 1 conflict(s) resolved, server version kept.", report.Message())
		assert.Equal(t, 1, report.Added)
		assert.Equal(t, 3, report.Fetched)
		assert.Equal(t, "static", report.Gateway)
		assert.NotEmpty(t, report.RunID)

		assert.Equal(t, "Jedi", c.Quotes()[2].Category)
		assert.Equal(t, []string{"Motivation", "Life", "Jedi", "Server"}, c.Categories())
		assert.Equal(t, []quotes.Quote{{Text: "Stay hungry, stay foolish.", Category: "Server"}}, added)
		require.Len(t, updated, 1)
		assert.Equal(t, "Motivation", updated[0][0].Category)
		assert.Equal(t, "Jedi", updated[0][1].Category)
		require.Len(t, reports, 1)

		reloaded := newClient(t, quotebook.WithStorage(backend))
		assert.Equal(t, c.Quotes(), reloaded.Quotes())

		second, err := c.Sync(ctx)
		require.NoError(t, err)
		assert.Equal(t, reconciler.StatusSynced, second.Status)
		assert.Zero(t, second.ConflictCount())
		assert.Zero(t, second.Added)
		assert.Equal(t, "Quotes synced successfully.", second.Message())
		assert.Len(t, reports, 2)
	})

	t.Run("contradictory remote duplicates fire no hooks once stable", func(t *testing.T) {
		gw := sources.NewStatic(
			quotes.Quote{Text: "A", Category: "X"},
			quotes.Quote{Text: "A", Category: "Y"},
		)
		c := newClient(t, quotebook.WithGateway(gw))

		_, err := c.Sync(ctx)
		require.NoError(t, err)

		var updates int
		c.OnQuoteUpdated(func(quotes.Quote, quotes.Quote) { updates++ })
		c.OnQuoteAdded(func(quotes.Quote) { updates++ })

		report, err := c.Sync(ctx)
		require.NoError(t, err)
		assert.Equal(t, reconciler.StatusConflicts, report.Status)
		assert.Equal(t, 2, report.ConflictCount())
		assert.Zero(t, updates)
		assert.Equal(t, "Y", c.Quotes()[len(c.Quotes())-1].Category)
	})

	t.Run("fetch error leaves store untouched", func(t *testing.T) {
		gw := sources.NewStatic(quotes.Quote{Text: "A", Category: "B"})
		gw.SetErrors(errors.New("connection refused"), nil)
		c := newClient(t, quotebook.WithGateway(gw))

		var reports []*reconciler.Report
		c.OnSynced(func(r *reconciler.Report) { reports = append(reports, r) })

		report, err := c.Sync(ctx)
		require.Error(t, err)
		assert.True(t, errors.IsSyncError(err))
		assert.Equal(t, reconciler.StatusError, report.Status)
		assert.Equal(t, "Error syncing quotes with server.", report.Message())
		assert.Equal(t, quotes.Seed(), c.Quotes())
		assert.Len(t, reports, 1)
	})

	t.Run("fetch timeout", func(t *testing.T) {
		c := newClient(t,
			quotebook.WithGateway(blockingGateway{}),
			quotebook.WithFetchTimeout(20*time.Millisecond),
		)
		_, err := c.Sync(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.True(t, errors.IsSyncError(err))
	})
}

func TestPushQuotes(t *testing.T) {
	ctx := context.Background()

	gw := sources.NewStatic()
	c := newClient(t, quotebook.WithGateway(gw))

	reqCtx, cancel := context.WithCancel(ctx)
	c.PushQuotes(reqCtx)
	cancel()

	require.NoError(t, c.Shutdown(ctx))
	assert.Equal(t, quotes.Seed(), gw.Pushed())

	t.Run("failures are swallowed", func(t *testing.T) {
		gw := sources.NewStatic()
		gw.SetErrors(nil, errors.New("rejected"))
		c := newClient(t, quotebook.WithGateway(gw))
		c.PushQuotes(ctx)
		assert.NoError(t, c.Shutdown(ctx))
		assert.Empty(t, gw.Pushed())
	})

	t.Run("shutdown deadline cancels pushes", func(t *testing.T) {
		c := newClient(t, quotebook.WithGateway(blockingGateway{}))
		c.PushQuotes(ctx)

		sctx, scancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer scancel()
		assert.ErrorIs(t, c.Shutdown(sctx), context.DeadlineExceeded)
	})
}

func TestAutoUpdates(t *testing.T) {
	gw := sources.NewStatic(quotes.Quote{Text: "Remote", Category: "Server"})
	c := newClient(t,
		quotebook.WithGateway(gw),
		quotebook.WithAutoUpdates(true),
		quotebook.WithAutoUpdateInterval(time.Second),
	)

	var mu sync.Mutex
	var reports int
	c.OnSynced(func(*reconciler.Report) {
		mu.Lock()
		reports++
		mu.Unlock()
	})

	require.Eventually(t, func() bool { return gw.Fetches() > 0 }, 3*time.Second, 20*time.Millisecond)
	require.Eventually(t, func() bool {
		return quotes.IndexOf(c.Quotes(), "Remote") >= 0
	}, time.Second, 20*time.Millisecond)

	mu.Lock()
	assert.Positive(t, reports)
	mu.Unlock()

	require.NoError(t, c.AutoUpdatesOff())
	n := gw.Fetches()
	time.Sleep(1200 * time.Millisecond)
	assert.Equal(t, n, gw.Fetches(), "no syncs after AutoUpdatesOff")

	require.NoError(t, c.AutoUpdatesOff(), "stopping twice is fine")
}

func TestAutoUpdatesRejectsInvalidInterval(t *testing.T) {
	logging.DisableLoggingForTest(t)
	_, err := quotebook.New(
		quotebook.WithGateway(sources.NewStatic()),
		quotebook.WithAutoUpdates(true),
		quotebook.WithAutoUpdateInterval(0),
	)
	assert.True(t, errors.IsValidationError(err))
}

// blockingGateway never answers until its context ends.
type blockingGateway struct{}

func (blockingGateway) ID() string { return "blocking" }

func (blockingGateway) Fetch(ctx context.Context) ([]quotes.Quote, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingGateway) Push(ctx context.Context, _ quotes.Quote) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestOperationsTagLogs(t *testing.T) {
	ctx := context.Background()
	tl := logging.NewTestLogger(t)
	c := newClient(t, quotebook.WithLogger(tl.Logger))

	_, err := c.Add(ctx, "Ship it.", "Work")
	require.NoError(t, err)
	_, err = c.Import(ctx, strings.NewReader(`[{"text":"A","category":"B"}]`), interchange.FormatJSON)
	require.NoError(t, err)
	_, err = c.Sync(ctx)
	require.NoError(t, err)

	assert.True(t, tl.ContainsAll(`"operation":"add"`, `"operation":"import"`, `"operation":"sync"`))
}
