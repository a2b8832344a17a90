package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileStore keeps scores in a JSON file. It is used when no database is configured.
// A missing or unreadable file reads as an empty history.
type FileStore struct {
	path string
	now  func() time.Time

	mu sync.Mutex
}

// NewFileStore returns a store backed by path. The file is created on the first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

// Close is a no-op; every save is flushed immediately.
func (s *FileStore) Close() {}

// SaveScore appends rec to the history and rewrites the file.
func (s *FileStore) SaveScore(_ context.Context, rec ScoreRecord) (ScoreRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec = prepare(rec, s.now())
	records := append(s.load(), rec)
	if err := s.write(records); err != nil {
		return rec, fmt.Errorf("saving score to %s: %w", s.path, err)
	}
	return rec, nil
}

// TopScores returns the best scores matching filter, highest first.
func (s *FileStore) TopScores(_ context.Context, filter ScoreFilter) ([]ScoreRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return topScores(s.load(), filter), nil
}

// Statistics aggregates the whole history.
func (s *FileStore) Statistics(_ context.Context) (Statistics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return computeStatistics(s.load()), nil
}

func (s *FileStore) load() []ScoreRecord {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("reading scores file", "tag", "storage", "path", s.path, "err", err)
		}
		return nil
	}
	var records []ScoreRecord
	if err := json.Unmarshal(data, &records); err != nil {
		slog.Warn("scores file is corrupt, starting empty", "tag", "storage", "path", s.path, "err", err)
		return nil
	}
	return records
}

// write replaces the file atomically through a temp file in the same directory.
func (s *FileStore) write(records []ScoreRecord) error {
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".scores-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
