package transfer

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/quotebook/internal/appcontext"
	"github.com/agentstation/quotebook/internal/cmd/alerts"
	"github.com/agentstation/quotebook/internal/cmd/cmdutil"
	"github.com/agentstation/quotebook/pkg/errors"
)

// NewImportCommand creates the import command.
func NewImportCommand(app appcontext.Interface) *cobra.Command {
	var flags *cmdutil.InterchangeFlags
	var push bool

	cmd := &cobra.Command{
		Use:     "import <file>",
		GroupID: "core",
		Short:   "Append quotes from a JSON or YAML file",
		Long: `Import appends every valid element of a quote array. Elements without
text or category are skipped; a document that is not an array is rejected
and nothing is imported. Use "-" to read standard input.`,
		Example: `  quotebook import quotes.json
  cat quotes.yaml | quotebook import - --as yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}

			path := args[0]
			format, err := flags.Resolve(path)
			if err != nil {
				return err
			}
			if !format.Importable() {
				return errors.NewValidationError("format", format, "import accepts json or yaml")
			}

			var r io.Reader = cmd.InOrStdin()
			if path != stdio {
				f, err := os.Open(path)
				if err != nil {
					return errors.NewIOError("open", path, err)
				}
				defer func() { _ = f.Close() }()
				r = f
			}

			result, err := c.Import(cmd.Context(), r, format)
			if err != nil {
				return err
			}
			if push && result.Added > 0 {
				c.PushQuotes(cmd.Context())
			}

			out := cmdutil.NewIO(cmd, app)
			if out.Structured() {
				return out.Write(result)
			}
			alert := alerts.NewSuccess(fmt.Sprintf("Imported %d quote(s)", result.Added))
			if result.Skipped > 0 {
				alert = alerts.NewWarning(fmt.Sprintf("Imported %d quote(s)", result.Added)).
					WithDetails(fmt.Sprintf("%d invalid element(s) skipped", result.Skipped))
			}
			return out.Alert(alert)
		},
	}

	flags = cmdutil.AddInterchangeFlags(cmd, "file format: json, yaml (default from extension)")
	cmd.Flags().BoolVar(&push, "push", false, "push the collection to the remote after importing")
	return cmd
}
