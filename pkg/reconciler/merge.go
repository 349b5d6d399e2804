// Package reconciler folds a remote quote list into a local one.
//
// Quotes are matched by exact text. A remote quote with no local match is
// appended; a match with a different category is overwritten in place with
// the remote category and counted as a conflict. The merge is pure and
// idempotent: merging the same remote list twice changes nothing the
// second time.
package reconciler

import (
	"github.com/agentstation/quotebook/pkg/quotes"
)

// Conflict records a category overwritten by the remote side.
type Conflict struct {
	Text        string `json:"text" yaml:"text"`
	OldCategory string `json:"old_category" yaml:"old_category"`
	NewCategory string `json:"new_category" yaml:"new_category"`
}

// Outcome is the result of a merge.
type Outcome struct {
	// Quotes is the merged list. The local input is never modified.
	Quotes []quotes.Quote

	// Added holds remote quotes appended because no local text matched.
	Added []quotes.Quote

	// Conflicts holds in-place category overwrites, in remote order.
	// Remote duplicates with different categories overwrite each other, so
	// conflicts can be reported for a merge that leaves the list as it was.
	Conflicts []Conflict

	changed bool
}

// ConflictCount returns the number of categories overwritten.
func (o Outcome) ConflictCount() int {
	return len(o.Conflicts)
}

// Changed reports whether the merged list differs from the local input.
func (o Outcome) Changed() bool {
	return o.changed
}

// Merge reconciles remote into local, remote wins on category.
//
// For each remote quote, in order, the first local quote with the same text
// is the merge target. A quote appended earlier in the same merge is a
// valid target for later remote duplicates.
func Merge(local, remote []quotes.Quote) Outcome {
	out := Outcome{Quotes: quotes.Clone(local)}
	if out.Quotes == nil {
		out.Quotes = []quotes.Quote{}
	}

	for _, r := range remote {
		i := quotes.IndexOf(out.Quotes, r.Text)
		switch {
		case i < 0:
			out.Quotes = append(out.Quotes, r)
			out.Added = append(out.Added, r)
		case out.Quotes[i].Category != r.Category:
			out.Conflicts = append(out.Conflicts, Conflict{
				Text:        r.Text,
				OldCategory: out.Quotes[i].Category,
				NewCategory: r.Category,
			})
			out.Quotes[i].Category = r.Category
		}
	}
	out.changed = len(out.Added) > 0 || !sameCategories(local, out.Quotes)
	return out
}

// sameCategories compares the categories of local with the matching prefix
// of merged. Merge only appends, so texts never move.
func sameCategories(local, merged []quotes.Quote) bool {
	for i := range local {
		if local[i].Category != merged[i].Category {
			return false
		}
	}
	return true
}
