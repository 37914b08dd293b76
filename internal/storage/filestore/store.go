// Package filestore keeps the watch-record set in a JSON file.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/afero"

	"feed_player/internal/domain"
	"feed_player/internal/storage"
)

type Store struct {
	fs   afero.Fs
	path string
	mu   sync.Mutex
}

func New(fs afero.Fs, path string) *Store {
	return &Store{fs: fs, path: path}
}

// Load returns the stored set. A missing file is an empty set.
func (s *Store) Load(_ context.Context) ([]domain.WatchRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.WatchRecord{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return storage.Decode(data)
}

// Save writes records atomically via a temp file and rename.
func (s *Store) Save(_ context.Context, records []domain.WatchRecord) error {
	data, err := storage.Encode(records, time.Now())
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o600); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("write tmp: %w", err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("rename tmp: %w", err)
	}
	return nil
}
