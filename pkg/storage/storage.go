// Package storage provides the key-value backends quotebook persists its
// state to. The quote list, the category filter and the session pointer
// are each stored as a single value under a fixed key.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/quotebook/pkg/errors"
	"github.com/agentstation/quotebook/pkg/logging"
)

// Store is a minimal key-value store. Get returns an error matching
// errors.ErrNotFound when the key is absent.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend names a storage implementation.
type Backend string

// Supported backends.
const (
	BackendMemory Backend = "memory"
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
)

// String returns the backend name.
func (b Backend) String() string { return string(b) }

// IsValid reports whether b is a known backend.
func (b Backend) IsValid() bool {
	switch b {
	case BackendMemory, BackendFile, BackendSQLite:
		return true
	}
	return false
}

// ParseBackend parses a backend name. An empty name selects the file backend.
func ParseBackend(s string) (Backend, error) {
	if s == "" {
		return BackendFile, nil
	}
	b := Backend(strings.ToLower(strings.TrimSpace(s)))
	if !b.IsValid() {
		return "", errors.NewValidationError("storage", s, fmt.Sprintf("unknown backend %q (want memory, file or sqlite)", s))
	}
	return b, nil
}

// File names used under the data directory.
const (
	fileName   = "quotebook.json"
	sqliteName = "quotebook.db"
)

// Open opens the backend rooted at dir. An SQLite backend that fails to open
// falls back to an in-memory store with a warning.
func Open(ctx context.Context, backend Backend, dir string) (Store, error) {
	dir = ExpandHome(dir)
	switch backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile, "":
		return NewFile(filepath.Join(dir, fileName))
	case BackendSQLite:
		s, err := NewSQLite(ctx, filepath.Join(dir, sqliteName))
		if err != nil {
			logging.FromContext(ctx).Warn().
				Err(err).
				Str("path", dir).
				Msg("SQLite storage unavailable, falling back to memory")
			return NewMemory(), nil
		}
		return s, nil
	default:
		return nil, errors.NewValidationError("storage", backend, "unknown backend")
	}
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

func notFound(key string) error {
	return errors.NewNotFoundError("key", key)
}
