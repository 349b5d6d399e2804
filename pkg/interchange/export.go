package interchange

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	md "github.com/nao1215/markdown"

	"github.com/agentstation/quotebook/pkg/errors"
	"github.com/agentstation/quotebook/pkg/quotes"
)

// Export writes list to w in the given format.
func Export(w io.Writer, list []quotes.Quote, format Format) error {
	if list == nil {
		list = []quotes.Quote{}
	}

	switch format {
	case FormatJSON, "":
		data, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return errors.WrapParse("json", "", err)
		}
		return write(w, append(data, '\n'))
	case FormatYAML:
		data, err := yaml.MarshalWithOptions(list, yaml.Indent(2), yaml.IndentSequence(false))
		if err != nil {
			return errors.WrapParse("yaml", "", err)
		}
		return write(w, data)
	case FormatMarkdown:
		return exportMarkdown(w, list)
	default:
		return errors.NewValidationError("format", format, "unsupported export format")
	}
}

func write(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return errors.WrapIO("write", "export", err)
	}
	return nil
}

func exportMarkdown(w io.Writer, list []quotes.Quote) error {
	categories := quotes.Categories(list)

	doc := md.NewMarkdown(w).
		H1("Quotes").
		PlainTextf("%d quotes in %d categories.", len(list), len(categories)).
		LF()

	rows := make([][]string, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, []string{c, fmt.Sprintf("%d", len(quotes.FilterBy(list, c)))})
	}
	if len(rows) > 0 {
		doc.Table(md.TableSet{
			Header: []string{"Category", "Quotes"},
			Rows:   rows,
		})
	}

	for _, c := range categories {
		doc.H2(c)
		for _, q := range quotes.FilterBy(list, c) {
			doc.Blockquote(q.Text)
		}
	}

	if err := doc.Build(); err != nil {
		return errors.WrapIO("write", "markdown export", err)
	}
	return nil
}
