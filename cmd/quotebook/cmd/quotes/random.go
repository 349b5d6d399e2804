// Package quotes provides the commands that view and edit the quote list.
package quotes

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/quotebook/internal/appcontext"
	"github.com/agentstation/quotebook/internal/cmd/alerts"
	"github.com/agentstation/quotebook/internal/cmd/cmdutil"
	"github.com/agentstation/quotebook/pkg/constants"
	"github.com/agentstation/quotebook/pkg/errors"
	"github.com/agentstation/quotebook/pkg/quotes"
)

// NewRandomCommand creates the random command.
func NewRandomCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "random",
		GroupID: "core",
		Short:   "Show a random quote from the active filter",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			out := cmdutil.NewIO(cmd, app)

			q, err := c.Random(cmd.Context())
			if errors.Is(err, errors.ErrNoQuotes) {
				return out.Alert(alerts.NewWarning(constants.MsgNoQuotes))
			}
			if err != nil {
				return err
			}
			return printQuote(out, q)
		},
	}
}

// NewCurrentCommand creates the current command.
func NewCurrentCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "current",
		GroupID: "core",
		Short:   "Show the last displayed quote, or a random one",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			out := cmdutil.NewIO(cmd, app)

			q, err := c.Current(cmd.Context())
			if errors.Is(err, errors.ErrNoQuotes) {
				return out.Alert(alerts.NewWarning(constants.MsgNoQuotes))
			}
			if err != nil {
				return err
			}
			return printQuote(out, q)
		},
	}
}

func printQuote(out *cmdutil.IO, q quotes.Quote) error {
	if out.Structured() {
		return out.Write(q)
	}
	_, err := fmt.Fprintf(out.Out, "%q\n  (%s)\n", q.Text, q.Category)
	return err
}
