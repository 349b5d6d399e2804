package output

import (
	"io"
	"strconv"

	"github.com/agentstation/quotebook/internal/cmd/emoji"
	"github.com/agentstation/quotebook/pkg/quotes"
)

// QuotesToTableData renders quotes with a 1-based index column.
func QuotesToTableData(list []quotes.Quote) Data {
	rows := make([][]string, 0, len(list))
	for i, q := range list {
		rows = append(rows, []string{strconv.Itoa(i + 1), q.Text, q.Category})
	}
	return Data{
		Headers:         []string{"#", "Quote", "Category"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft},
	}
}

// CategoryCount is a category with its number of quotes.
type CategoryCount struct {
	Category string `json:"category" yaml:"category"`
	Quotes   int    `json:"quotes" yaml:"quotes"`
}

// CountCategories counts quotes per category in first-appearance order.
func CountCategories(list []quotes.Quote) []CategoryCount {
	counts := make([]CategoryCount, 0)
	for _, cat := range quotes.Categories(list) {
		counts = append(counts, CategoryCount{Category: cat, Quotes: len(quotes.FilterBy(list, cat))})
	}
	return counts
}

// CategoriesToTableData renders category counts, marking the active filter.
func CategoriesToTableData(counts []CategoryCount, active string) Data {
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		marker := ""
		if c.Category == active {
			marker = emoji.Current
		}
		rows = append(rows, []string{marker, c.Category, Count(c.Quotes)})
	}
	return Data{
		Headers:         []string{"", "Category", "Quotes"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignCenter, AlignLeft, AlignRight},
	}
}

// FormatQuotes writes list in format. Table output gets the indexed view.
func FormatQuotes(w io.Writer, list []quotes.Quote, format Format) error {
	if format == FormatJSON || format == FormatYAML {
		return Write(w, format, list)
	}
	return Write(w, FormatTable, QuotesToTableData(list))
}

// FormatCategories writes the category counts in format.
func FormatCategories(w io.Writer, counts []CategoryCount, active string, format Format) error {
	if format == FormatJSON || format == FormatYAML {
		return Write(w, format, counts)
	}
	return Write(w, FormatTable, CategoriesToTableData(counts, active))
}
