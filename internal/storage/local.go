package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore writes uploaded assets under a served directory and returns
// the bare stored filename as the asset reference.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the upload directory if needed and returns a store
// writing into it.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Dir returns the directory assets are written to, for static serving.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Save validates the extension, generates a fresh stored name and writes
// the file. The returned reference is the bare filename.
func (s *LocalStore) Save(_ context.Context, originalFilename string, data []byte) (string, error) {
	name, err := storedName(originalFilename)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write uploaded file: %w", err)
	}
	return name, nil
}

// Remove deletes a previously stored asset. The reference must be a bare
// filename; anything containing a path is rejected.
func (s *LocalStore) Remove(_ context.Context, ref string) error {
	if ref == "" || ref != filepath.Base(ref) {
		return fmt.Errorf("invalid asset reference: %q", ref)
	}
	if err := os.Remove(filepath.Join(s.dir, ref)); err != nil {
		return fmt.Errorf("failed to remove uploaded file: %w", err)
	}
	return nil
}
