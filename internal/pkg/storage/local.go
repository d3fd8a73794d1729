package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore writes artifacts below a directory that the HTTP server exposes
// under PublicPrefix
type LocalStore struct {
	dir          string
	publicPrefix string
}

// NewLocalStore creates dir if needed
func NewLocalStore(dir, publicPrefix string) (*LocalStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("local storage directory is not set")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	if publicPrefix == "" {
		publicPrefix = "/uploads"
	}
	return &LocalStore{dir: dir, publicPrefix: publicPrefix}, nil
}

// Dir returns the root directory served as static files
func (s *LocalStore) Dir() string {
	return s.dir
}

// PublicPrefix returns the URL prefix artifacts are served under
func (s *LocalStore) PublicPrefix() string {
	return s.publicPrefix
}

func (s *LocalStore) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create artifact directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}

	return joinURL(s.publicPrefix, key), nil
}
