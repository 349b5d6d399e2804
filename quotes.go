package quotebook

import (
	"context"
	"io"
	"strconv"

	"github.com/agentstation/quotebook/pkg/constants"
	"github.com/agentstation/quotebook/pkg/errors"
	"github.com/agentstation/quotebook/pkg/interchange"
	"github.com/agentstation/quotebook/pkg/logging"
	"github.com/agentstation/quotebook/pkg/quotes"
)

// Compile-time interface checks to ensure proper implementation.
var (
	_ Quotes = (*client)(nil)
	_ Editor = (*client)(nil)
	_ Viewer = (*client)(nil)
)

// Quotes provides copy-on-read access to the list.
type Quotes interface {
	// Quotes returns the full list in insertion order
	Quotes() []quotes.Quote

	// Filtered returns the quotes matching the active filter
	Filtered() []quotes.Quote

	// Filter returns the active category, "all" by default
	Filter() string

	// Categories returns the distinct categories in first-appearance order
	Categories() []string
}

// Editor mutates the list and the filter.
type Editor interface {
	// Add validates, appends and persists a new quote
	Add(ctx context.Context, text, category string) (quotes.Quote, error)

	// SetFilter persists the active category ("" or "all" for every quote)
	SetFilter(ctx context.Context, category string) error

	// Import appends the valid quotes of a JSON or YAML list
	Import(ctx context.Context, r io.Reader, format interchange.Format) (*ImportResult, error)
}

// Viewer picks quotes to display.
type Viewer interface {
	// Random picks a quote from the filtered view and remembers it for the session
	Random(ctx context.Context) (quotes.Quote, error)

	// Current returns the remembered quote when still valid, otherwise a random one
	Current(ctx context.Context) (quotes.Quote, error)

	// RandomIn picks a quote from category without touching the filter or the session
	RandomIn(ctx context.Context, category string) (quotes.Quote, error)
}

// ImportResult summarizes an import.
type ImportResult struct {
	Added   int `json:"added" yaml:"added"`
	Skipped int `json:"skipped" yaml:"skipped"`
}

// Quotes returns a copy of the full list.
func (c *client) Quotes() []quotes.Quote {
	return c.store.Quotes()
}

// Filtered returns the quotes matching the active filter.
func (c *client) Filtered() []quotes.Quote {
	return c.store.Filtered()
}

// Filter returns the active category.
func (c *client) Filter() string {
	return c.store.Filter()
}

// Categories returns the distinct categories.
func (c *client) Categories() []string {
	return c.store.Categories()
}

// Add validates, appends and persists a new quote.
func (c *client) Add(ctx context.Context, text, category string) (quotes.Quote, error) {
	ctx = logging.WithOperation(c.context(ctx), "add")
	q, err := c.store.Add(ctx, text, category)
	if err != nil {
		return quotes.Quote{}, err
	}
	logging.FromContext(ctx).Info().Str("category", q.Category).Msg("Quote added")
	c.hooks.triggerAdded(q)
	return q, nil
}

// SetFilter persists the active category. The session's last viewed
// pointer indexes the filtered view, so it is dropped as well.
func (c *client) SetFilter(ctx context.Context, category string) error {
	ctx = logging.WithOperation(c.context(ctx), "filter")
	if err := c.store.SetFilter(ctx, category); err != nil {
		return err
	}
	if err := c.options.session.Delete(ctx, constants.KeyLastViewedIndex); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("Failed to clear last viewed quote")
	}
	return nil
}

// Import decodes r and appends its valid elements. A payload that is not
// a list leaves the store untouched and returns an ImportFormatError.
func (c *client) Import(ctx context.Context, r io.Reader, format interchange.Format) (*ImportResult, error) {
	ctx = logging.WithOperation(c.context(ctx), "import")
	list, skipped, err := interchange.Decode(r, format)
	if err != nil {
		return nil, err
	}
	if err := c.store.Append(ctx, list...); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info().
		Int("added", len(list)).
		Int("skipped", skipped).
		Str("format", format.String()).
		Msg("Quotes imported")
	c.hooks.triggerAdded(list...)
	return &ImportResult{Added: len(list), Skipped: skipped}, nil
}

// Random picks a quote from the filtered view and stores its index in
// session storage.
func (c *client) Random(ctx context.Context) (quotes.Quote, error) {
	ctx = c.context(ctx)
	view := c.store.Filtered()
	i, ok := c.pick(len(view))
	if !ok {
		return quotes.Quote{}, errors.ErrNoQuotes
	}

	if err := c.options.session.Set(ctx, constants.KeyLastViewedIndex, []byte(strconv.Itoa(i))); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("Failed to remember last viewed quote")
	}
	return view[i], nil
}

// Current restores the last viewed quote when its index still fits the
// filtered view; otherwise it falls back to Random.
func (c *client) Current(ctx context.Context) (quotes.Quote, error) {
	ctx = c.context(ctx)
	view := c.store.Filtered()

	raw, err := c.options.session.Get(ctx, constants.KeyLastViewedIndex)
	if err == nil {
		if i, convErr := strconv.Atoi(string(raw)); convErr == nil && i >= 0 && i < len(view) {
			return view[i], nil
		}
	}
	return c.Random(ctx)
}

// RandomIn picks a quote from category, "all" meaning every quote.
func (c *client) RandomIn(_ context.Context, category string) (quotes.Quote, error) {
	view := c.store.Quotes()
	if !quotes.IsAll(category) {
		view = quotes.FilterBy(view, category)
	}
	i, ok := c.pick(len(view))
	if !ok {
		return quotes.Quote{}, errors.ErrNoQuotes
	}
	return view[i], nil
}

func (c *client) pick(n int) (int, bool) {
	if n == 0 {
		return 0, false
	}
	c.randMu.Lock()
	defer c.randMu.Unlock()
	return c.rand.IntN(n), true
}
