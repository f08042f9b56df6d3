package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileKV stores one JSON document per key under a data directory. It mirrors
// the synchronous, whole-value write semantics of the browser storage the
// original storefront ran on: a single logical writer, last write wins.
type FileKV struct {
	dir string
}

// NewFileKV creates the data directory if needed and returns a file-backed KV.
func NewFileKV(dir string) (*FileKV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create storage directory %s: %w", dir, err)
	}
	return &FileKV{dir: dir}, nil
}

func (f *FileKV) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Get reads the document for key. A missing file is not an error.
func (f *FileKV) Get(key string) ([]byte, bool, error) {
	raw, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

// Set replaces the document for key. The value is written to a temp file and
// renamed into place so readers never observe a partial write.
func (f *FileKV) Set(key string, value []byte) error {
	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	return os.Rename(name, f.path(key))
}

// Ping verifies the data directory is still accessible.
func (f *FileKV) Ping() error {
	_, err := os.Stat(f.dir)
	return err
}

// Close is a no-op for the file backend.
func (f *FileKV) Close() error {
	return nil
}
