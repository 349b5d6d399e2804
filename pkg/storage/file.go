package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/agentstation/quotebook/pkg/constants"
	"github.com/agentstation/quotebook/pkg/errors"
)

// File keeps every key in a single JSON document on disk. Each write
// replaces the document atomically through a temp file and rename.
type File struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

// NewFile opens (or prepares) the document at path.
func NewFile(path string) (*File, error) {
	f := &File{path: path, data: make(map[string]string)}

	raw, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		return f, nil
	case err != nil:
		return nil, errors.WrapIO("read", path, err)
	}
	if len(raw) == 0 {
		return f, nil
	}
	if err := json.Unmarshal(raw, &f.data); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	return f, nil
}

// Path returns the document location.
func (f *File) Path() string { return f.path }

// Get returns the value stored under key.
func (f *File) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return nil, notFound(key)
	}
	return []byte(v), nil
}

// Set stores value under key and rewrites the document.
func (f *File) Set(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	prev, had := f.data[key]
	f.data[key] = string(value)
	if err := f.flush(); err != nil {
		if had {
			f.data[key] = prev
		} else {
			delete(f.data, key)
		}
		return err
	}
	return nil
}

// Delete removes key and rewrites the document.
func (f *File) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.data[key]; !ok {
		return nil
	}
	delete(f.data, key)
	return f.flush()
}

// Close is a no-op; every write is already on disk.
func (f *File) Close() error { return nil }

func (f *File) flush() error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	raw, err := json.MarshalIndent(f.data, "", "  ")
	if err != nil {
		return errors.WrapParse("json", f.path, err)
	}

	tmp, err := os.CreateTemp(dir, ".quotebook-*.tmp")
	if err != nil {
		return errors.WrapIO("create", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return errors.WrapIO("write", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapIO("close", tmpName, err)
	}
	if err := os.Chmod(tmpName, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", tmpName, err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return errors.WrapIO("write", f.path, err)
	}
	return nil
}
