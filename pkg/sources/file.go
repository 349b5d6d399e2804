package sources

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/agentstation/quotebook/pkg/constants"
	"github.com/agentstation/quotebook/pkg/errors"
	"github.com/agentstation/quotebook/pkg/interchange"
	"github.com/agentstation/quotebook/pkg/quotes"
)

// FileGateway treats a JSON or YAML quote file as the remote side. It is
// useful for offline sync and for sharing a list through a synced folder.
type FileGateway struct {
	mu     sync.Mutex
	path   string
	format interchange.Format
}

// NewFile creates a gateway for path. The format follows the extension.
func NewFile(path string) *FileGateway {
	format := interchange.FormatFromPath(path)
	if !format.Importable() {
		format = interchange.FormatJSON
	}
	return &FileGateway{path: path, format: format}
}

// ID returns "file".
func (g *FileGateway) ID() string { return "file" }

// Path returns the file location.
func (g *FileGateway) Path() string { return g.path }

// Fetch reads the file. A missing file is an error so that a misconfigured
// path surfaces as a sync error rather than an empty remote.
func (g *FileGateway) Fetch(ctx context.Context) ([]quotes.Quote, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.read()
}

func (g *FileGateway) read() ([]quotes.Quote, error) {
	data, err := os.ReadFile(g.path)
	if err != nil {
		return nil, errors.WrapIO("read", g.path, err)
	}
	list, _, err := interchange.Decode(bytes.NewReader(data), g.format)
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Push appends q to the file, creating it when absent.
func (g *FileGateway) Push(ctx context.Context, q quotes.Quote) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	list, err := g.read()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	list = append(list, q)

	var buf bytes.Buffer
	if err := interchange.Export(&buf, list, g.format); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(g.path), constants.DirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(g.path), err)
	}
	return errors.WrapIO("write", g.path, os.WriteFile(g.path, buf.Bytes(), constants.FilePermissions))
}
