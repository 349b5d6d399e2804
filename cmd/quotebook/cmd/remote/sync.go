// Package remote provides the commands that talk to the remote gateway.
package remote

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/agentstation/quotebook/internal/appcontext"
	"github.com/agentstation/quotebook/internal/cmd/alerts"
	"github.com/agentstation/quotebook/internal/cmd/cmdutil"
	"github.com/agentstation/quotebook/internal/cmd/output"
	"github.com/agentstation/quotebook/pkg/reconciler"
)

// NewSyncCommand creates the sync command.
func NewSyncCommand(app appcontext.Interface) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:     "sync",
		GroupID: "remote",
		Short:   "Merge the remote quote list into the collection",
		Long: `Sync fetches the remote list and merges it by quote text. Remote quotes
that are missing locally are appended; when both sides have the same text
with different categories, the remote category wins.

With --watch, sync repeats every sync_interval until interrupted.`,
		Example: `  quotebook sync
  quotebook sync -o json
  quotebook sync --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			out := cmdutil.NewIO(cmd, app)

			if watch {
				return runWatch(cmd, app, out)
			}

			report, syncErr := c.Sync(cmd.Context())
			if err := writeReport(out, report); err != nil {
				return err
			}
			return syncErr
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep syncing on the configured interval")
	return cmd
}

func runWatch(cmd *cobra.Command, app appcontext.Interface, out *cmdutil.IO) error {
	c, err := app.Client()
	if err != nil {
		return err
	}

	// Hooks run on the scheduler goroutine.
	var mu sync.Mutex
	c.OnSynced(func(r *reconciler.Report) {
		mu.Lock()
		defer mu.Unlock()
		if err := writeReport(out, r); err != nil {
			app.Logger().Warn().Err(err).Msg("Failed to write sync report")
		}
	})

	if err := c.AutoUpdatesOn(); err != nil {
		return err
	}
	app.Logger().Info().Dur("interval", app.Config().SyncInterval).Msg("Watching remote, press Ctrl+C to stop")

	<-cmd.Context().Done()
	return c.AutoUpdatesOff()
}

func writeReport(out *cmdutil.IO, r *reconciler.Report) error {
	if r == nil {
		return nil
	}
	if out.Structured() {
		return out.Write(r)
	}

	var alert *alerts.Alert
	switch r.Status {
	case reconciler.StatusError:
		alert = alerts.NewError(r.Message())
	case reconciler.StatusConflicts:
		alert = alerts.NewWarning(r.Message())
		for _, cf := range r.Conflicts {
			alert.WithDetails(fmt.Sprintf("%q: %s -> %s", cf.Text, cf.OldCategory, cf.NewCategory))
		}
	default:
		alert = alerts.NewSuccess(r.Message())
	}
	if r.IsSuccess() {
		alert.WithDetails(output.Count(r.Fetched) + " fetched, " + output.Count(r.Added) + " added")
	}
	return out.Alert(alert)
}
