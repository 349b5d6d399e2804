// Package quotes defines the Quote type, the pure list helpers used across
// quotebook, and the Store that owns the persisted quote list and filter.
package quotes

import (
	"strings"

	"github.com/agentstation/quotebook/pkg/constants"
	"github.com/agentstation/quotebook/pkg/errors"
)

// Quote is a text with the category it belongs to. Text is the identity
// used when reconciling with a remote list.
type Quote struct {
	Text     string `json:"text" yaml:"text"`
	Category string `json:"category" yaml:"category"`
}

// New trims both fields and validates the result.
func New(text, category string) (Quote, error) {
	q := Quote{Text: strings.TrimSpace(text), Category: strings.TrimSpace(category)}
	if err := Validate(q); err != nil {
		return Quote{}, err
	}
	return q, nil
}

// Validate reports a ValidationError when either field is blank.
func Validate(q Quote) error {
	if strings.TrimSpace(q.Text) == "" {
		return errors.NewValidationError("text", q.Text, "cannot be empty")
	}
	if strings.TrimSpace(q.Category) == "" {
		return errors.NewValidationError("category", q.Category, "cannot be empty")
	}
	return nil
}

// Seed returns the built-in quotes used when nothing has been persisted.
func Seed() []Quote {
	return []Quote{
		{Text: "The best way to get started is to quit talking and begin doing.", Category: "Motivation"},
		{Text: "Life is what happens when you're busy making other plans.", Category: "Life"},
		{Text: "Do or do not. There is no try.", Category: "Motivation"},
	}
}

// Clone returns a copy of list that shares no backing array with it.
func Clone(list []Quote) []Quote {
	if list == nil {
		return nil
	}
	out := make([]Quote, len(list))
	copy(out, list)
	return out
}

// IsAll reports whether category selects every quote.
func IsAll(category string) bool {
	return category == "" || category == constants.FilterAll
}

// FilterBy returns the quotes whose category equals category, in list order.
// "all" (or an empty category) returns a copy of the whole list.
func FilterBy(list []Quote, category string) []Quote {
	if IsAll(category) {
		return Clone(list)
	}
	out := make([]Quote, 0, len(list))
	for _, q := range list {
		if q.Category == category {
			out = append(out, q)
		}
	}
	return out
}

// Categories returns the distinct categories of list in first-appearance order.
func Categories(list []Quote) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0)
	for _, q := range list {
		if _, ok := seen[q.Category]; ok {
			continue
		}
		seen[q.Category] = struct{}{}
		out = append(out, q.Category)
	}
	return out
}

// IndexOf returns the index of the first quote whose text equals text, or -1.
func IndexOf(list []Quote, text string) int {
	for i, q := range list {
		if q.Text == text {
			return i
		}
	}
	return -1
}
