package interchange_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/quotebook/pkg/errors"
	"github.com/agentstation/quotebook/pkg/interchange"
	"github.com/agentstation/quotebook/pkg/quotes"
)

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, interchange.Export(&buf, []quotes.Quote{{Text: "A", Category: "B"}}, interchange.FormatJSON))

	want := "[\n  {\n    \"text\": \"A\",\n    \"category\": \"B\"\n  }\n]\n"
	assert.Equal(t, want, buf.String())

	buf.Reset()
	require.NoError(t, interchange.Export(&buf, nil, interchange.FormatJSON))
	assert.Equal(t, "[]\n", buf.String())
}

func TestRoundTrip(t *testing.T) {
	list := append(quotes.Seed(), quotes.Quote{Text: `She said: "yes: no" # maybe`, Category: "Edge: cases"})

	for _, format := range []interchange.Format{interchange.FormatJSON, interchange.FormatYAML} {
		t.Run(format.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, interchange.Export(&buf, list, format))

			got, skipped, err := interchange.Decode(&buf, format)
			require.NoError(t, err)
			assert.Zero(t, skipped)
			if diff := cmp.Diff(list, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	tests := []struct {
		name    string
		format  interchange.Format
		payload string
	}{
		{"json object", interchange.FormatJSON, `{"text":"A","category":"B"}`},
		{"json string", interchange.FormatJSON, `"quotes"`},
		{"json null", interchange.FormatJSON, `null`},
		{"json garbage", interchange.FormatJSON, `[{"text":`},
		{"empty", interchange.FormatJSON, ``},
		{"yaml mapping", interchange.FormatYAML, "text: A\ncategory: B\n"},
		{"yaml scalar", interchange.FormatYAML, "hello\n"},
		{"markdown", interchange.FormatMarkdown, "# Quotes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, skipped, err := interchange.Decode(strings.NewReader(tt.payload), tt.format)
			assert.True(t, errors.IsImportFormatError(err), "got %v", err)
			assert.Nil(t, list)
			assert.Zero(t, skipped)
		})
	}
}

func TestDecodeSkipsInvalidElements(t *testing.T) {
	payload := `[
		{"text": "Keep me", "category": "Good"},
		{"text": "", "category": "Empty text"},
		{"text": "No category"},
		{"text": "   ", "category": "Blank"},
		{"text": 42, "category": "Number"},
		"just a string",
		null,
		{"text": "  Trimmed  ", "category": " Spaced ", "extra": true}
	]`

	list, skipped, err := interchange.Decode(strings.NewReader(payload), interchange.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 6, skipped)
	assert.Equal(t, []quotes.Quote{
		{Text: "Keep me", Category: "Good"},
		{Text: "Trimmed", Category: "Spaced"},
	}, list)
}

func TestDecodeEmptyList(t *testing.T) {
	list, skipped, err := interchange.Decode(strings.NewReader(`[]`), interchange.FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Zero(t, skipped)
}

func TestExportMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, interchange.Export(&buf, quotes.Seed(), interchange.FormatMarkdown))

	out := buf.String()
	assert.Contains(t, out, "# Quotes")
	assert.Contains(t, out, "3 quotes in 2 categories.")
	assert.Contains(t, out, "## Motivation")
	assert.Contains(t, out, "## Life")
	assert.Contains(t, out, "> Do or do not. There is no try.")
	assert.Less(t, strings.Index(out, "## Motivation"), strings.Index(out, "## Life"))
}

func TestParseFormat(t *testing.T) {
	tests := map[string]interchange.Format{
		"":         interchange.FormatJSON,
		"JSON":     interchange.FormatJSON,
		"yml":      interchange.FormatYAML,
		"yaml":     interchange.FormatYAML,
		"md":       interchange.FormatMarkdown,
		"markdown": interchange.FormatMarkdown,
	}
	for in, want := range tests {
		got, err := interchange.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := interchange.ParseFormat("csv")
	assert.True(t, errors.IsValidationError(err))
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, interchange.FormatJSON, interchange.FormatFromPath("quotes.json"))
	assert.Equal(t, interchange.FormatYAML, interchange.FormatFromPath("/tmp/Quotes.YML"))
	assert.Equal(t, interchange.FormatMarkdown, interchange.FormatFromPath("quotes.md"))
	assert.Equal(t, interchange.FormatJSON, interchange.FormatFromPath("quotes"))
	assert.Equal(t, ".yaml", interchange.FormatYAML.Extension())
	assert.True(t, interchange.FormatYAML.Importable())
	assert.False(t, interchange.FormatMarkdown.Importable())
}
