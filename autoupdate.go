package quotebook

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/agentstation/quotebook/pkg/constants"
	"github.com/agentstation/quotebook/pkg/errors"
	"github.com/agentstation/quotebook/pkg/logging"
)

// Compile-time interface check to ensure proper implementation.
var _ AutoUpdater = (*client)(nil)

// AutoUpdater provides controls for periodic syncs.
type AutoUpdater interface {
	// AutoUpdatesOn starts syncing on the configured interval
	AutoUpdatesOn() error

	// AutoUpdatesOff stops periodic syncs
	AutoUpdatesOff() error
}

// AutoUpdatesOn schedules Sync every interval. A run still in progress
// when the next one is due causes that tick to be skipped.
func (c *client) AutoUpdatesOn() error {
	interval := c.options.autoUpdateInterval
	if interval <= 0 {
		return &errors.ValidationError{
			Field:   "autoUpdateInterval",
			Value:   interval,
			Message: "update interval must be positive",
		}
	}

	c.autoMu.Lock()
	defer c.autoMu.Unlock()
	c.stopLocked()

	ctx, cancel := context.WithCancel(c.baseCtx)
	logger := cronLogger{logging.FromContext(ctx)}

	scheduler := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	_, err := scheduler.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		runCtx, runCancel := context.WithTimeout(ctx, constants.SyncContextTimeout)
		defer runCancel()

		if _, err := c.Sync(runCtx); err != nil && ctx.Err() == nil {
			logging.FromContext(ctx).Warn().Err(err).Msg("Scheduled sync failed")
		}
	})
	if err != nil {
		cancel()
		return errors.WrapValidation("autoUpdateInterval", err)
	}

	scheduler.Start()
	c.scheduler = scheduler
	c.runCancel = cancel

	logging.FromContext(ctx).Debug().Dur("interval", interval).Msg("Auto-updates started")
	return nil
}

// AutoUpdatesOff stops periodic syncs and cancels a run in progress.
func (c *client) AutoUpdatesOff() error {
	c.autoMu.Lock()
	defer c.autoMu.Unlock()
	c.stopLocked()
	return nil
}

func (c *client) stopLocked() {
	if c.runCancel != nil {
		c.runCancel()
		c.runCancel = nil
	}
	if c.scheduler != nil {
		<-c.scheduler.Stop().Done()
		c.scheduler = nil
	}
}

// cronLogger routes scheduler messages through zerolog.
type cronLogger struct {
	logger *zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Trace().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
