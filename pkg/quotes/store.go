package quotes

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/agentstation/quotebook/pkg/constants"
	"github.com/agentstation/quotebook/pkg/errors"
	"github.com/agentstation/quotebook/pkg/logging"
	"github.com/agentstation/quotebook/pkg/storage"
)

// Store owns the ordered quote list and the active category filter.
// Every mutation is persisted before the lock is released.
type Store struct {
	mu      sync.RWMutex
	backend storage.Store
	list    []Quote
	filter  string
}

// NewStore returns a store seeded with the built-in quotes. Call Load to
// read persisted state from backend.
func NewStore(backend storage.Store) *Store {
	return &Store{
		backend: backend,
		list:    Seed(),
		filter:  constants.FilterAll,
	}
}

// Load reads the quote list and filter from durable storage. A missing
// list yields the seed quotes; a corrupt one is logged and replaced by the
// seed quotes as well.
func (s *Store) Load(ctx context.Context) error {
	list, err := s.loadList(ctx)
	if err != nil {
		return err
	}
	filter, err := s.loadFilter(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.list = list
	s.filter = filter
	s.mu.Unlock()
	return nil
}

func (s *Store) loadList(ctx context.Context) ([]Quote, error) {
	raw, err := s.backend.Get(ctx, constants.KeyQuotes)
	if errors.IsNotFound(err) {
		return Seed(), nil
	}
	if err != nil {
		return nil, errors.WrapResource("load", "store", constants.KeyQuotes, err)
	}

	var list []Quote
	if err := json.Unmarshal(raw, &list); err != nil || list == nil {
		logging.FromContext(ctx).Warn().
			Err(err).
			Str("key", constants.KeyQuotes).
			Msg("Persisted quotes are unreadable, using seed quotes")
		return Seed(), nil
	}
	return list, nil
}

func (s *Store) loadFilter(ctx context.Context) (string, error) {
	raw, err := s.backend.Get(ctx, constants.KeySelectedCategory)
	if errors.IsNotFound(err) {
		return constants.FilterAll, nil
	}
	if err != nil {
		return "", errors.WrapResource("load", "store", constants.KeySelectedCategory, err)
	}
	return normalizeFilter(string(raw)), nil
}

// Save overwrites the persisted list with the current one.
func (s *Store) Save(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.save(ctx, s.list)
}

func (s *Store) save(ctx context.Context, list []Quote) error {
	if list == nil {
		list = []Quote{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return errors.WrapResource("save", "store", constants.KeyQuotes, err)
	}
	return errors.WrapResource("save", "store", constants.KeyQuotes, s.backend.Set(ctx, constants.KeyQuotes, raw))
}

// Add trims text and category, appends the quote and persists the list.
// Blank input yields a ValidationError and leaves the store untouched.
func (s *Store) Add(ctx context.Context, text, category string) (Quote, error) {
	q, err := New(text, category)
	if err != nil {
		return Quote{}, err
	}
	if err := s.Append(ctx, q); err != nil {
		return Quote{}, err
	}
	return q, nil
}

// Append adds already validated quotes in order and persists the list.
func (s *Store) Append(ctx context.Context, qs ...Quote) error {
	if len(qs) == 0 {
		return nil
	}
	return s.Update(ctx, func(list []Quote) []Quote {
		return append(list, qs...)
	})
}

// Update replaces the list with fn's result and persists it. fn receives a
// private copy of the list and runs under the store lock. If persisting
// fails the previous list is kept.
func (s *Store) Update(ctx context.Context, fn func([]Quote) []Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := fn(Clone(s.list))
	if err := s.save(ctx, next); err != nil {
		return err
	}
	s.list = next
	return nil
}

// SetFilter persists the active category. An empty category means "all".
func (s *Store) SetFilter(ctx context.Context, category string) error {
	category = normalizeFilter(category)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.backend.Set(ctx, constants.KeySelectedCategory, []byte(category)); err != nil {
		return errors.WrapResource("save", "store", constants.KeySelectedCategory, err)
	}
	s.filter = category
	return nil
}

// Filter returns the active category, "all" by default.
func (s *Store) Filter() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// Quotes returns a copy of the full list in insertion order.
func (s *Store) Quotes() []Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Clone(s.list)
}

// Filtered returns the quotes matching the active filter.
func (s *Store) Filtered() []Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return FilterBy(s.list, s.filter)
}

// Categories returns the distinct categories in first-appearance order.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Categories(s.list)
}

// Len returns the number of quotes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.list)
}

func normalizeFilter(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return constants.FilterAll
	}
	return category
}
