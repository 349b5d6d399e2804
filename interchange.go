package quotebook

import (
	"io"

	"github.com/agentstation/quotebook/pkg/interchange"
)

// Compile-time interface check to ensure proper implementation.
var _ Exporter = (*client)(nil)

// Exporter writes the full list in an interchange format.
type Exporter interface {
	Export(w io.Writer, format interchange.Format) error
}

// Export writes every quote, in insertion order, to w.
func (c *client) Export(w io.Writer, format interchange.Format) error {
	return interchange.Export(w, c.store.Quotes(), format)
}
