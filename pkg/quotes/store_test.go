package quotes_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/quotebook/pkg/constants"
	"github.com/agentstation/quotebook/pkg/errors"
	"github.com/agentstation/quotebook/pkg/logging"
	"github.com/agentstation/quotebook/pkg/quotes"
	"github.com/agentstation/quotebook/pkg/storage"
)

// failingStorage accepts reads but rejects every write.
type failingStorage struct {
	*storage.Memory
}

func (failingStorage) Set(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func newStore(t *testing.T) (*quotes.Store, *storage.Memory) {
	t.Helper()
	backend := storage.NewMemory()
	s := quotes.NewStore(backend)
	require.NoError(t, s.Load(context.Background()))
	return s, backend
}

func TestStoreLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("absent uses seed", func(t *testing.T) {
		s, _ := newStore(t)
		assert.Equal(t, quotes.Seed(), s.Quotes())
		assert.Equal(t, constants.FilterAll, s.Filter())
	})

	t.Run("persisted list and filter", func(t *testing.T) {
		backend := storage.NewMemory()
		require.NoError(t, backend.Set(ctx, constants.KeyQuotes, []byte(`[{"text":"A","category":"B"}]`)))
		require.NoError(t, backend.Set(ctx, constants.KeySelectedCategory, []byte("B")))

		s := quotes.NewStore(backend)
		require.NoError(t, s.Load(ctx))
		assert.Equal(t, []quotes.Quote{{Text: "A", Category: "B"}}, s.Quotes())
		assert.Equal(t, "B", s.Filter())
	})

	t.Run("persisted empty list stays empty", func(t *testing.T) {
		backend := storage.NewMemory()
		require.NoError(t, backend.Set(ctx, constants.KeyQuotes, []byte(`[]`)))
		s := quotes.NewStore(backend)
		require.NoError(t, s.Load(ctx))
		assert.Equal(t, 0, s.Len())
	})

	t.Run("corrupt falls back to seed", func(t *testing.T) {
		tl := logging.NewTestLogger(t)
		ctx := logging.WithLogger(ctx, tl.Logger)

		for _, raw := range []string{`{not json`, `{"text":"A"}`, `null`} {
			backend := storage.NewMemory()
			require.NoError(t, backend.Set(ctx, constants.KeyQuotes, []byte(raw)))
			s := quotes.NewStore(backend)
			require.NoError(t, s.Load(ctx), raw)
			assert.Equal(t, quotes.Seed(), s.Quotes(), raw)
		}
		assert.True(t, tl.Contains("using seed quotes"))
	})
}

func TestStoreAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("appends and persists", func(t *testing.T) {
		s, backend := newStore(t)
		q, err := s.Add(ctx, "  Simplicity is prerequisite for reliability. ", " Engineering ")
		require.NoError(t, err)
		assert.Equal(t, quotes.Quote{Text: "Simplicity is prerequisite for reliability.", Category: "Engineering"}, q)

		list := s.Quotes()
		require.Len(t, list, 4)
		assert.Equal(t, q, list[3])

		reloaded := quotes.NewStore(backend)
		require.NoError(t, reloaded.Load(ctx))
		assert.Equal(t, list, reloaded.Quotes())
	})

	t.Run("rejects blank input without mutation", func(t *testing.T) {
		s, backend := newStore(t)
		_, err := s.Add(ctx, "   ", "Life")
		assert.True(t, errors.IsValidationError(err))
		_, err = s.Add(ctx, "Text", "")
		assert.True(t, errors.IsValidationError(err))

		assert.Equal(t, 3, s.Len())
		_, err = backend.Get(ctx, constants.KeyQuotes)
		assert.True(t, errors.IsNotFound(err), "nothing should have been persisted")
	})

	t.Run("failed persist keeps previous list", func(t *testing.T) {
		s := quotes.NewStore(failingStorage{storage.NewMemory()})
		require.NoError(t, s.Load(ctx))

		_, err := s.Add(ctx, "x", "y")
		require.Error(t, err)
		assert.Equal(t, quotes.Seed(), s.Quotes())
	})
}

func TestStoreFilter(t *testing.T) {
	ctx := context.Background()
	s, backend := newStore(t)

	require.NoError(t, s.SetFilter(ctx, "Motivation"))
	assert.Equal(t, "Motivation", s.Filter())
	for _, q := range s.Filtered() {
		assert.Equal(t, "Motivation", q.Category)
	}
	assert.Len(t, s.Filtered(), 2)

	raw, err := backend.Get(ctx, constants.KeySelectedCategory)
	require.NoError(t, err)
	assert.Equal(t, "Motivation", string(raw))

	require.NoError(t, s.SetFilter(ctx, ""))
	assert.Equal(t, constants.FilterAll, s.Filter())
	assert.Equal(t, s.Quotes(), s.Filtered())
}

func TestStoreUpdate(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	err := s.Update(ctx, func(list []quotes.Quote) []quotes.Quote {
		list[0].Category = "Changed"
		return list
	})
	require.NoError(t, err)
	assert.Equal(t, "Changed", s.Quotes()[0].Category)
	assert.Equal(t, []string{"Changed", "Life", "Motivation"}, s.Categories())

	// Quotes returns a copy
	got := s.Quotes()
	got[0].Category = "Mutated"
	assert.Equal(t, "Changed", s.Quotes()[0].Category)
}

func TestStoreAppend(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	require.NoError(t, s.Append(ctx))
	require.NoError(t, s.Append(ctx, quotes.Quote{Text: "a", Category: "b"}, quotes.Quote{Text: "c", Category: "d"}))
	assert.Equal(t, 5, s.Len())
	assert.Equal(t, "c", s.Quotes()[4].Text)
}
