package remote

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/quotebook/internal/appcontext"
	"github.com/agentstation/quotebook/internal/cmd/alerts"
	"github.com/agentstation/quotebook/internal/cmd/cmdutil"
)

// NewPushCommand creates the push command. Delivery is best effort:
// failures are logged and the command still succeeds.
func NewPushCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "push",
		GroupID: "remote",
		Short:   "Send every local quote to the remote",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}

			n := len(c.Quotes())
			c.PushQuotes(cmd.Context())

			return cmdutil.NewIO(cmd, app).Alert(alerts.NewInfo(fmt.Sprintf("Pushing %d quote(s)", n)))
		},
	}
}
