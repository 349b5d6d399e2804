package cmdutil

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/quotebook/pkg/interchange"
)

// InterchangeFlags holds the file format flag of import and export.
type InterchangeFlags struct {
	As string
}

// AddInterchangeFlags adds --as to a command.
func AddInterchangeFlags(cmd *cobra.Command, usage string) *InterchangeFlags {
	flags := &InterchangeFlags{}
	cmd.Flags().StringVar(&flags.As, "as", "", usage)
	return flags
}

// Resolve returns the --as format, or the one implied by path.
func (f *InterchangeFlags) Resolve(path string) (interchange.Format, error) {
	if f.As != "" {
		return interchange.ParseFormat(f.As)
	}
	return interchange.FormatFromPath(path), nil
}
