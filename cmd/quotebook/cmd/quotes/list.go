package quotes

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/quotebook/internal/appcontext"
	"github.com/agentstation/quotebook/internal/cmd/cmdutil"
	"github.com/agentstation/quotebook/internal/cmd/output"
	"github.com/agentstation/quotebook/pkg/quotes"
)

// NewListCommand creates the list command.
func NewListCommand(app appcontext.Interface) *cobra.Command {
	var all bool
	var category string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		GroupID: "core",
		Short:   "List quotes in the active filter",
		Example: `  quotebook list
  quotebook list --all
  quotebook list -c Life -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			out := cmdutil.NewIO(cmd, app)

			var list []quotes.Quote
			switch {
			case category != "":
				list = quotes.FilterBy(c.Quotes(), category)
			case all:
				list = c.Quotes()
			default:
				list = c.Filtered()
			}
			return output.FormatQuotes(out.Out, list, out.Format)
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "ignore the active filter")
	cmd.Flags().StringVarP(&category, "category", "c", "", "list one category without changing the filter")

	return cmd
}

// NewCategoriesCommand creates the categories command.
func NewCategoriesCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "categories",
		GroupID: "core",
		Short:   "List categories with their quote counts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			out := cmdutil.NewIO(cmd, app)
			counts := output.CountCategories(c.Quotes())
			return output.FormatCategories(out.Out, counts, c.Filter(), out.Format)
		},
	}
}
