package quotebook

import (
	"context"

	"github.com/agentstation/quotebook/pkg/logging"
)

// Shutdown stops periodic syncs and waits for in-flight pushes. When ctx
// expires first, pending pushes are cancelled and ctx's error is returned.
func (c *client) Shutdown(ctx context.Context) error {
	if err := c.AutoUpdatesOff(); err != nil {
		return err
	}

	done := make(chan struct{})
	go func() {
		c.pushes.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.baseCancel()
		return nil
	case <-ctx.Done():
		c.baseCancel()
		logging.FromContext(c.context(ctx)).Warn().Msg("Shutdown deadline reached, cancelling pending pushes")
		<-done
		return ctx.Err()
	}
}
