package quotes

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/quotebook/internal/appcontext"
	"github.com/agentstation/quotebook/internal/cmd/alerts"
	"github.com/agentstation/quotebook/internal/cmd/cmdutil"
	"github.com/agentstation/quotebook/pkg/constants"
	"github.com/agentstation/quotebook/pkg/errors"
)

// NewAddCommand creates the add command.
func NewAddCommand(app appcontext.Interface) *cobra.Command {
	var category string
	var push bool

	cmd := &cobra.Command{
		Use:     "add <text>",
		GroupID: "core",
		Short:   "Add a quote to the collection",
		Example: `  quotebook add "Simplicity is prerequisite for reliability." -c Engineering
  quotebook add "Do or do not. There is no try." --category Motivation --push`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			out := cmdutil.NewIO(cmd, app)

			q, err := c.Add(cmd.Context(), strings.Join(args, " "), category)
			var verr *errors.ValidationError
			if errors.As(err, &verr) {
				_ = out.Alert(alerts.NewError(constants.MsgMissingFields))
				return err
			}
			if err != nil {
				return err
			}

			if push {
				c.PushQuotes(cmd.Context())
			}

			if out.Structured() {
				return out.Write(q)
			}
			return out.Alert(alerts.NewSuccess(constants.MsgQuoteAdded).
				WithDetails(q.Text + " (" + q.Category + ")"))
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "quote category (required)")
	cmd.Flags().BoolVar(&push, "push", false, "push the collection to the remote after adding")

	return cmd
}
