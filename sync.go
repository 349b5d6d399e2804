package quotebook

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agentstation/quotebook/pkg/errors"
	"github.com/agentstation/quotebook/pkg/logging"
	"github.com/agentstation/quotebook/pkg/quotes"
	"github.com/agentstation/quotebook/pkg/reconciler"
	"github.com/agentstation/quotebook/pkg/sources"
)

// Compile-time interface check to ensure proper implementation.
var _ Updater = (*client)(nil)

// Updater reconciles the list with the remote gateway.
type Updater interface {
	// Sync fetches the remote list and merges it, remote wins on category.
	// On a failed fetch the store is untouched and the returned report has
	// StatusError alongside a SyncError.
	Sync(ctx context.Context) (*reconciler.Report, error)

	// PushQuotes sends every local quote to the gateway in the background.
	// Failures are logged, never returned.
	PushQuotes(ctx context.Context)
}

// Sync runs one reconciliation against the gateway.
func (c *client) Sync(ctx context.Context) (*reconciler.Report, error) {
	runID := uuid.NewString()
	gatewayID := c.gateway.ID()
	ctx = logging.WithSyncRun(logging.WithGateway(logging.WithOperation(c.context(ctx), "sync"), gatewayID), runID)
	logger := logging.FromContext(ctx)
	start := time.Now()

	fetchCtx, cancel := context.WithTimeout(ctx, c.options.fetchTimeout)
	remote, err := c.gateway.Fetch(fetchCtx)
	cancel()
	if err != nil {
		logger.Warn().Err(err).Dur("elapsed", time.Since(start)).Msg("Remote fetch failed, store unchanged")
		report := reconciler.FailedReport(runID, gatewayID)
		report.Duration = time.Since(start)
		c.hooks.triggerSynced(report)
		return report, errors.NewSyncError(gatewayID, runID, err)
	}

	var out reconciler.Outcome
	err = c.store.Update(ctx, func(local []quotes.Quote) []quotes.Quote {
		out = reconciler.Merge(local, remote)
		return out.Quotes
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to persist merged quotes")
		report := reconciler.FailedReport(runID, gatewayID)
		report.Fetched = len(remote)
		report.Duration = time.Since(start)
		c.hooks.triggerSynced(report)
		return report, err
	}

	report := reconciler.NewReport(runID, gatewayID, len(remote), out)
	report.Duration = time.Since(start)

	logger.Info().
		Int("fetched", len(remote)).
		Int("added", report.Added).
		Int("conflicts", report.ConflictCount()).
		Dur("duration", report.Duration).
		Msg(report.Message())

	if out.Changed() {
		c.hooks.triggerMerge(out)
	}
	c.hooks.triggerSynced(report)
	return report, nil
}

// PushQuotes snapshots the list and pushes it on a background goroutine.
// The push outlives ctx's cancellation but not Shutdown.
func (c *client) PushQuotes(ctx context.Context) {
	list := c.store.Quotes()
	values := context.WithoutCancel(logging.WithOperation(c.context(ctx), "push"))

	c.pushes.Add(1)
	go func() {
		defer c.pushes.Done()

		pushCtx, cancel := context.WithTimeout(values, c.options.pushTimeout)
		defer cancel()
		stop := context.AfterFunc(c.baseCtx, cancel)
		defer stop()

		sources.PushAll(pushCtx, c.gateway, list)
	}()
}
