// store/file_store.go
package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps one file per cache entry under <root>/<namespace>/.
type FileStore struct {
	root string
}

// NewFileStore creates the cache root if needed and returns the store.
func NewFileStore(root string) (*FileStore, error) {
	if root == "" {
		return nil, fmt.Errorf("cache directory is not configured")
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", root, err)
	}
	return &FileStore{root: root}, nil
}

func (s *FileStore) entryPath(namespace, key string) string {
	return filepath.Join(s.root, namespace, key)
}

func (s *FileStore) Has(namespace, key string) (bool, error) {
	info, err := os.Stat(s.entryPath(namespace, key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat cache entry %s/%s: %w", namespace, key, err)
	}
	return !info.IsDir(), nil
}

func (s *FileStore) Get(namespace, key string) ([]byte, error) {
	blob, err := os.ReadFile(s.entryPath(namespace, key))
	if err != nil {
		return nil, fmt.Errorf("failed to read cache entry %s/%s: %w", namespace, key, err)
	}
	return blob, nil
}

func (s *FileStore) Put(namespace, key string, blob []byte) error {
	dir := filepath.Join(s.root, namespace)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache namespace directory %s: %w", dir, err)
	}
	if err := os.WriteFile(s.entryPath(namespace, key), blob, 0644); err != nil {
		return fmt.Errorf("failed to write cache entry %s/%s: %w", namespace, key, err)
	}
	return nil
}
