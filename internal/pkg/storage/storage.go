package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vendorvault/VendorVault/internal/pkg/env"
)

// FileStore persists uploaded document blobs and returns a stable reference
// under which the blob can be retrieved later. The compliance core only ever
// sees the reference.
type FileStore interface {
	Save(ctx context.Context, key string, r io.Reader, size int64) (string, error)
	Delete(ctx context.Context, ref string) error
}

// NewFromEnv selects the configured storage backend. STORAGE_BACKEND=s3 picks
// the S3 store, anything else the local disk store.
func NewFromEnv() (FileStore, error) {
	if strings.EqualFold(env.GetEnv("STORAGE_BACKEND", "local"), "s3") {
		return NewS3Store(S3ConfigFromEnv())
	}
	return NewLocalStore(env.GetEnv("STORAGE_LOCAL_DIR", "uploads")), nil
}

// LocalStore writes blobs to a directory on disk.
type LocalStore struct {
	baseDir string
}

// NewLocalStore creates a disk-backed file store rooted at baseDir.
func NewLocalStore(baseDir string) *LocalStore {
	return &LocalStore{baseDir: baseDir}
}

func (s *LocalStore) Save(ctx context.Context, key string, r io.Reader, size int64) (string, error) {
	_ = ctx
	path := filepath.Join(s.baseDir, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return path, nil
}

func (s *LocalStore) Delete(ctx context.Context, ref string) error {
	_ = ctx
	// Refuse anything that escapes the base directory.
	cleaned := filepath.Clean(ref)
	if !strings.HasPrefix(cleaned, filepath.Clean(s.baseDir)+string(os.PathSeparator)) {
		return fmt.Errorf("reference %q outside storage root", ref)
	}
	return os.Remove(cleaned)
}
