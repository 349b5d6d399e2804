package quotes

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentstation/quotebook/internal/appcontext"
	"github.com/agentstation/quotebook/internal/cmd/alerts"
	"github.com/agentstation/quotebook/internal/cmd/cmdutil"
	"github.com/agentstation/quotebook/pkg/quotes"
)

type filterState struct {
	Filter  string `json:"filter" yaml:"filter"`
	Visible int    `json:"visible" yaml:"visible"`
}

// NewFilterCommand creates the filter command. Without an argument it
// shows the active filter.
func NewFilterCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "filter [category|all]",
		GroupID: "core",
		Short:   "Show or set the category filter",
		Example: `  quotebook filter
  quotebook filter Motivation
  quotebook filter all`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			out := cmdutil.NewIO(cmd, app)

			if len(args) == 1 {
				if err := c.SetFilter(cmd.Context(), args[0]); err != nil {
					return err
				}
			}

			state := filterState{Filter: c.Filter(), Visible: len(c.Filtered())}
			if out.Structured() {
				return out.Write(state)
			}

			label := state.Filter
			if quotes.IsAll(label) {
				label = "all categories"
			}
			return out.Alert(alerts.NewInfo("Filter: " + label).
				WithDetails(pluralQuotes(state.Visible) + " visible"))
		},
	}
}

func pluralQuotes(n int) string {
	if n == 1 {
		return "1 quote"
	}
	return strconv.Itoa(n) + " quotes"
}
