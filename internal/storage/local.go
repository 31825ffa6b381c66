package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalStore keeps uploads as files in a directory on disk
type LocalStore struct {
	dir string
}

// NewLocalStore creates dir if needed and returns a store rooted there.
func NewLocalStore(dir string) (*LocalStore, error) {
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Dir returns the root directory of the store.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Put writes data to <dir>/<key> and returns the file path.
func (s *LocalStore) Put(ctx context.Context, key string, data []byte, _ string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, key)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", &BackendError{Backend: "local", Op: "put", Key: key, Cause: err}
	}
	return path, nil
}

// Get reads <dir>/<key>.
func (s *LocalStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.dir, key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &NotFoundError{Key: key}
	}
	if err != nil {
		return nil, &BackendError{Backend: "local", Op: "get", Key: key, Cause: err}
	}
	return data, nil
}

// Delete removes <dir>/<key>.
func (s *LocalStore) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(s.dir, key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &BackendError{Backend: "local", Op: "delete", Key: key, Cause: err}
	}
	return nil
}
