package kvstore

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// fileBackend stores one JSON document per key under a directory.
// Suits the single-node deployment where favorites and inquiries live
// on local disk.
type fileBackend struct {
	dir string
}

// NewFileBackend creates a file-backed backend rooted at dir,
// creating the directory if needed
func NewFileBackend(dir string) (Backend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &fileBackend{dir: dir}, nil
}

// path maps a key onto a file name. Keys are fixed constants
// ("user_favorites", "car_inquiries"), but slashes are stripped anyway
// so a bad key can't escape the directory.
func (b *fileBackend) path(key string) string {
	safe := strings.ReplaceAll(key, string(os.PathSeparator), "_")
	return filepath.Join(b.dir, safe+".json")
}

func (b *fileBackend) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(b.path(key))
	if os.IsNotExist(err) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

func (b *fileBackend) Write(ctx context.Context, key string, data []byte) error {
	// Write to a temp file first so a crash mid-write can't leave a
	// truncated document behind
	tmp := b.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmp, b.path(key)); err != nil {
		return fmt.Errorf("failed to commit %s: %w", key, err)
	}
	return nil
}

// CompareAndSwap serializes the read-compare-write through an flock on a
// sidecar lock file, so the API and worker processes sharing the same
// directory cannot overwrite each other's updates
func (b *fileBackend) CompareAndSwap(ctx context.Context, key string, old, data []byte) (bool, error) {
	lock, err := os.OpenFile(b.path(key)+".lock", os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return false, fmt.Errorf("failed to open lock for %s: %w", key, err)
	}
	defer lock.Close()

	if err := syscall.Flock(int(lock.Fd()), syscall.LOCK_EX); err != nil {
		return false, fmt.Errorf("failed to lock %s: %w", key, err)
	}
	defer syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)

	current, err := b.Read(ctx, key)
	switch {
	case err == ErrKeyNotFound:
		if old != nil {
			return false, nil
		}
	case err != nil:
		return false, err
	case !bytes.Equal(current, old):
		return false, nil
	}

	if err := b.Write(ctx, key, data); err != nil {
		return false, err
	}
	return true, nil
}

func (b *fileBackend) Delete(ctx context.Context, key string) error {
	err := os.Remove(b.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (b *fileBackend) Reset(ctx context.Context) error {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		return fmt.Errorf("failed to list storage directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if err := os.Remove(filepath.Join(b.dir, entry.Name())); err != nil {
			return fmt.Errorf("failed to delete %s: %w", entry.Name(), err)
		}
	}
	return nil
}
