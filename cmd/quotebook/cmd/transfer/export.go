// Package transfer provides the import and export commands.
package transfer

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/quotebook/internal/appcontext"
	"github.com/agentstation/quotebook/internal/cmd/alerts"
	"github.com/agentstation/quotebook/internal/cmd/cmdutil"
	"github.com/agentstation/quotebook/pkg/constants"
	"github.com/agentstation/quotebook/pkg/errors"
)

// stdio names standard input or output in place of a file.
const stdio = "-"

// NewExportCommand creates the export command.
func NewExportCommand(app appcontext.Interface) *cobra.Command {
	var flags *cmdutil.InterchangeFlags

	cmd := &cobra.Command{
		Use:     "export [file]",
		GroupID: "core",
		Short:   "Export the full collection to a file",
		Long: `Export writes every quote, ignoring the filter. The file defaults to
` + constants.ExportFileName + ` and its extension picks the format unless --as is given.
Use "-" to write to standard output.`,
		Example: `  quotebook export
  quotebook export quotes.yaml
  quotebook export - --as markdown`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}

			path := constants.ExportFileName
			if len(args) == 1 {
				path = args[0]
			}
			format, err := flags.Resolve(path)
			if err != nil {
				return err
			}

			if path == stdio {
				return c.Export(cmd.OutOrStdout(), format)
			}

			f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, constants.FilePermissions)
			if err != nil {
				return errors.NewIOError("create", path, err)
			}
			if err := writeClose(f, func(w io.Writer) error { return c.Export(w, format) }); err != nil {
				return err
			}

			app.Logger().Debug().Str("path", path).Str("format", format.String()).Msg("Exported quotes")
			return cmdutil.NewIO(cmd, app).Alert(alerts.NewSuccess(
				fmt.Sprintf("Exported %d quote(s) to %s", len(c.Quotes()), path)))
		},
	}

	flags = cmdutil.AddInterchangeFlags(cmd, "file format: json, yaml, markdown (default from extension)")
	return cmd
}

func writeClose(f *os.File, write func(io.Writer) error) error {
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.NewIOError("close", f.Name(), err)
	}
	return nil
}
