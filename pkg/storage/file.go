package storage

import (
	"context"
	"os"
	"path/filepath"
)

// FileStore persists each key as a JSON file inside a directory. Writes go
// through a temp file + rename so a crash mid-write never corrupts the slot.
type FileStore struct {
	dir string
}

func NewFileStore(path string) (*FileStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.pathFor(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *FileStore) Set(ctx context.Context, key string, value []byte) error {
	target := s.pathFor(key)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, value, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}

func (s *FileStore) pathFor(key string) string {
	return filepath.Join(s.dir, key+".json")
}
