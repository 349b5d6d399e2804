package quotes_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/quotebook/pkg/errors"
	"github.com/agentstation/quotebook/pkg/quotes"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		category string
		want     quotes.Quote
		wantErr  bool
	}{
		{"trims", "  Stay hungry.  ", "\tLife ", quotes.Quote{Text: "Stay hungry.", Category: "Life"}, false},
		{"empty text", "", "Life", quotes.Quote{}, true},
		{"blank text", "   ", "Life", quotes.Quote{}, true},
		{"blank category", "Stay hungry.", " \n", quotes.Quote{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := quotes.New(tt.text, tt.category)
			if tt.wantErr {
				assert.True(t, errors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeed(t *testing.T) {
	seed := quotes.Seed()
	require.Len(t, seed, 3)
	assert.Equal(t, []string{"Motivation", "Life"}, quotes.Categories(seed))
	for _, q := range seed {
		assert.NoError(t, quotes.Validate(q))
	}

	seed[0].Text = "changed"
	assert.NotEqual(t, "changed", quotes.Seed()[0].Text)
}

func TestFilterBy(t *testing.T) {
	list := []quotes.Quote{
		{Text: "a", Category: "X"},
		{Text: "b", Category: "Y"},
		{Text: "c", Category: "X"},
		{Text: "d", Category: "x"},
	}

	t.Run("all returns full list in order", func(t *testing.T) {
		got := quotes.FilterBy(list, "all")
		if diff := cmp.Diff(list, got); diff != "" {
			t.Errorf("FilterBy(all) mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, list, quotes.FilterBy(list, ""))
	})

	t.Run("every category yields only its quotes", func(t *testing.T) {
		for _, c := range quotes.Categories(list) {
			for _, q := range quotes.FilterBy(list, c) {
				assert.Equal(t, c, q.Category)
			}
		}
	})

	t.Run("exact match only", func(t *testing.T) {
		got := quotes.FilterBy(list, "X")
		assert.Equal(t, []quotes.Quote{{Text: "a", Category: "X"}, {Text: "c", Category: "X"}}, got)
	})

	t.Run("unknown category is empty", func(t *testing.T) {
		assert.Empty(t, quotes.FilterBy(list, "Z"))
	})

	t.Run("result does not alias input", func(t *testing.T) {
		got := quotes.FilterBy(list, "all")
		got[0].Category = "changed"
		assert.Equal(t, "X", list[0].Category)
	})
}

func TestIndexOf(t *testing.T) {
	list := []quotes.Quote{
		{Text: "dup", Category: "A"},
		{Text: "other", Category: "B"},
		{Text: "dup", Category: "C"},
	}
	assert.Equal(t, 0, quotes.IndexOf(list, "dup"))
	assert.Equal(t, 1, quotes.IndexOf(list, "other"))
	assert.Equal(t, -1, quotes.IndexOf(list, "Dup"))
	assert.Equal(t, -1, quotes.IndexOf(nil, "dup"))
}

func TestClone(t *testing.T) {
	assert.Nil(t, quotes.Clone(nil))
	list := []quotes.Quote{{Text: "a", Category: "b"}}
	c := quotes.Clone(list)
	c[0].Text = "z"
	assert.Equal(t, "a", list[0].Text)
}
