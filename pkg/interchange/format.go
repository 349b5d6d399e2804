// Package interchange reads and writes quote lists in the file formats
// quotebook exchanges with users: JSON, YAML and (export only) Markdown.
package interchange

import (
	"path/filepath"
	"strings"

	"github.com/agentstation/quotebook/pkg/errors"
)

// Format represents an interchange format.
type Format string

const (
	// FormatJSON is a pretty-printed JSON array of quotes.
	FormatJSON Format = "json"
	// FormatYAML is a YAML sequence of quotes.
	FormatYAML Format = "yaml"
	// FormatMarkdown is a human-readable document grouped by category.
	FormatMarkdown Format = "markdown"
)

// String returns the string representation of a format.
func (f Format) String() string {
	return string(f)
}

// IsValid checks if the format is supported.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatMarkdown:
		return true
	}
	return false
}

// Importable reports whether Decode accepts the format.
func (f Format) Importable() bool {
	return f == FormatJSON || f == FormatYAML
}

// Extension returns the file extension used for the format.
func (f Format) Extension() string {
	switch f {
	case FormatYAML:
		return ".yaml"
	case FormatMarkdown:
		return ".md"
	default:
		return ".json"
	}
}

// ParseFormat parses a format name. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", errors.NewValidationError("format", s, "must be json, yaml or markdown")
}

// FormatFromPath infers the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatJSON
	}
}
