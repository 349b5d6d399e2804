// Package cmdutil provides helpers shared by quotebook commands.
package cmdutil

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/quotebook/internal/appcontext"
	"github.com/agentstation/quotebook/internal/cmd/alerts"
	"github.com/agentstation/quotebook/internal/cmd/output"
)

// IO bundles where and how a command writes its results.
type IO struct {
	Out    io.Writer
	Format output.Format
	Alerts *alerts.Writer
}

// NewIO builds the command IO from the app's output settings.
func NewIO(cmd *cobra.Command, app appcontext.Interface) *IO {
	cfg := app.Config()
	format := output.Format(app.OutputFormat())
	out := cmd.OutOrStdout()
	return &IO{
		Out:    out,
		Format: format,
		Alerts: alerts.NewWriter(out, format, cfg.NoColor).Quiet(cfg.Quiet),
	}
}

// Structured reports whether results should be machine-readable.
func (o *IO) Structured() bool {
	return o.Format == output.FormatJSON || o.Format == output.FormatYAML
}

// Write formats data in the command's output format.
func (o *IO) Write(data any) error {
	return output.Write(o.Out, o.Format, data)
}

// Alert writes a status notice.
func (o *IO) Alert(a *alerts.Alert) error {
	return o.Alerts.WriteAlert(a)
}
