package interchange

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/quotebook/pkg/errors"
	"github.com/agentstation/quotebook/pkg/quotes"
)

// Decode parses an imported payload. The payload must be a list; any other
// shape, or an unparsable payload, yields an ImportFormatError. Elements
// are kept only when both "text" and "category" are non-blank strings;
// the rest are counted in skipped.
func Decode(r io.Reader, format Format) (list []quotes.Quote, skipped int, err error) {
	if !format.Importable() {
		return nil, 0, errors.NewImportFormatError(format.String(), "format cannot be imported", nil)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, errors.WrapIO("read", "import", err)
	}

	var payload any
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &payload)
	default:
		err = json.Unmarshal(data, &payload)
	}
	if err != nil {
		return nil, 0, errors.NewImportFormatError(format.String(), "payload is not parsable", err)
	}

	items, ok := payload.([]any)
	if !ok {
		return nil, 0, errors.NewImportFormatError(format.String(), "expected a list of quotes", nil)
	}

	list = make([]quotes.Quote, 0, len(items))
	for _, item := range items {
		q, ok := element(item)
		if !ok {
			skipped++
			continue
		}
		list = append(list, q)
	}
	return list, skipped, nil
}

func element(item any) (quotes.Quote, bool) {
	m, ok := item.(map[string]any)
	if !ok {
		return quotes.Quote{}, false
	}
	text, ok := m["text"].(string)
	if !ok {
		return quotes.Quote{}, false
	}
	category, ok := m["category"].(string)
	if !ok {
		return quotes.Quote{}, false
	}
	q := quotes.Quote{Text: strings.TrimSpace(text), Category: strings.TrimSpace(category)}
	if quotes.Validate(q) != nil {
		return quotes.Quote{}, false
	}
	return q, true
}
