package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// URLPrefix is the route prefix the HTTP layer serves uploaded files under.
const URLPrefix = "/uploads/"

// FileStore saves uploaded images to disk under a base directory and hands
// back relative /uploads URLs.
type FileStore struct {
	basePath string
}

// NewFileStore creates the base directory if missing.
func NewFileStore(basePath string) (*FileStore, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, fmt.Errorf("upload base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &FileStore{basePath: basePath}, nil
}

// Dir returns the directory static file serving should expose.
func (f *FileStore) Dir() string {
	return f.basePath
}

// Save writes one uploaded image and returns its relative URL.
func (f *FileStore) Save(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	key = safeKey(key)
	target := filepath.Join(f.basePath, key)
	out, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, r); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return URLPrefix + key, nil
}

func safeKey(key string) string {
	key = path.Base(strings.ReplaceAll(key, "\\", "/"))
	key = strings.TrimSpace(key)
	if key == "" || key == "." {
		return "image"
	}
	return key
}
