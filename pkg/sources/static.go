package sources

import (
	"context"
	"sync"

	"github.com/agentstation/quotebook/pkg/quotes"
)

// StaticGateway serves a fixed in-memory list and records pushes.
type StaticGateway struct {
	mu       sync.Mutex
	remote   []quotes.Quote
	pushed   []quotes.Quote
	fetchErr error
	pushErr  error
	fetches  int
}

// NewStatic creates a gateway that returns remote on every fetch.
func NewStatic(remote ...quotes.Quote) *StaticGateway {
	return &StaticGateway{remote: quotes.Clone(remote)}
}

// ID returns "static".
func (g *StaticGateway) ID() string { return "static" }

// Fetch returns a copy of the configured list, or the configured error.
func (g *StaticGateway) Fetch(ctx context.Context) ([]quotes.Quote, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fetches++
	if g.fetchErr != nil {
		return nil, g.fetchErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return quotes.Clone(g.remote), nil
}

// Push records q, or returns the configured error.
func (g *StaticGateway) Push(ctx context.Context, q quotes.Quote) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pushErr != nil {
		return g.pushErr
	}
	g.pushed = append(g.pushed, q)
	return nil
}

// SetRemote replaces the list returned by Fetch.
func (g *StaticGateway) SetRemote(remote ...quotes.Quote) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.remote = quotes.Clone(remote)
}

// SetErrors makes subsequent fetches and pushes fail. Nil clears.
func (g *StaticGateway) SetErrors(fetchErr, pushErr error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fetchErr = fetchErr
	g.pushErr = pushErr
}

// Pushed returns the quotes pushed so far.
func (g *StaticGateway) Pushed() []quotes.Quote {
	g.mu.Lock()
	defer g.mu.Unlock()
	return quotes.Clone(g.pushed)
}

// Fetches returns the number of Fetch calls.
func (g *StaticGateway) Fetches() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fetches
}
