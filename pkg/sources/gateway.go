// Package sources provides the remote gateways quotebook reconciles with.
//
// A Gateway fetches a list of candidate quotes and accepts single quotes
// pushed outward. Pushes are best effort: PushAll logs failures and never
// returns them.
package sources

import (
	"context"

	"github.com/agentstation/quotebook/pkg/logging"
	"github.com/agentstation/quotebook/pkg/quotes"
)

// Gateway is a remote quote source.
type Gateway interface {
	// ID identifies the gateway in logs and reports.
	ID() string

	// Fetch returns the remote list. Any error leaves the caller's state untouched.
	Fetch(ctx context.Context) ([]quotes.Quote, error)

	// Push sends one quote outward. No response contract is enforced.
	Push(ctx context.Context, q quotes.Quote) error
}

// PushAll pushes every quote in order and returns how many succeeded.
// Failures are logged and never returned.
func PushAll(ctx context.Context, gw Gateway, list []quotes.Quote) int {
	ctx = logging.WithGateway(ctx, gw.ID())
	logger := logging.FromContext(ctx)

	pushed := 0
	for _, q := range list {
		if err := ctx.Err(); err != nil {
			logger.Warn().Err(err).Int("remaining", len(list)-pushed).Msg("Push cancelled")
			break
		}
		if err := gw.Push(ctx, q); err != nil {
			logger.Warn().Err(err).Str("text", q.Text).Msg("Failed to push quote")
			continue
		}
		pushed++
	}

	logger.Debug().Int("pushed", pushed).Int("total", len(list)).Msg("Push finished")
	return pushed
}
