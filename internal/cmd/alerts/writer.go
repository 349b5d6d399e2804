package alerts

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/agentstation/quotebook/internal/cmd/output"
)

// Writer writes alerts in the command's output format.
type Writer struct {
	w        io.Writer
	format   output.Format
	useColor bool
	quiet    bool
}

// NewWriter creates a writer. Color is used only for terminals.
func NewWriter(w io.Writer, format output.Format, noColor bool) *Writer {
	return &Writer{w: w, format: format, useColor: !noColor && isTerminal(w)}
}

// Quiet suppresses info and success alerts in table output.
func (aw *Writer) Quiet(quiet bool) *Writer {
	aw.quiet = quiet
	return aw
}

type alertData struct {
	Level   string   `json:"level" yaml:"level"`
	Message string   `json:"message" yaml:"message"`
	Details []string `json:"details,omitempty" yaml:"details,omitempty"`
	Error   string   `json:"error,omitempty" yaml:"error,omitempty"`
}

func toData(a *Alert) alertData {
	d := alertData{Level: a.Level.String(), Message: a.Message, Details: a.Details}
	if a.Err != nil {
		d.Error = a.Err.Error()
	}
	return d
}

// WriteAlert writes a single alert.
func (aw *Writer) WriteAlert(a *Alert) error {
	switch aw.format {
	case output.FormatJSON, output.FormatYAML:
		return output.Write(aw.w, aw.format, toData(a))
	default:
		return aw.writePlain(a)
	}
}

func (aw *Writer) writePlain(a *Alert) error {
	if aw.quiet && (a.Level == LevelInfo || a.Level == LevelSuccess) {
		return nil
	}
	line := a.String()
	if aw.useColor {
		line = a.Level.color().Sprint(line)
	}
	if _, err := fmt.Fprintln(aw.w, line); err != nil {
		return err
	}
	for _, detail := range a.Details {
		if _, err := fmt.Fprintf(aw.w, "   %s\n", detail); err != nil {
			return err
		}
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
