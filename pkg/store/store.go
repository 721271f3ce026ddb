package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

const (
	// DataFileName is the journal document inside the data directory.
	DataFileName = "data.json"

	// ArchiveFileName is the SQLite archive inside the data directory.
	ArchiveFileName = "archive.db"
)

// Store manages the data directory holding the journal document.
type Store struct {
	Root string // e.g., ~/.local/share/bujo

	// Now becomes the clock of every loaded Journal when set.
	Now func() time.Time
}

// NewStore creates a Store rooted at the given directory. Unlike Init it
// touches nothing on disk.
func NewStore(root string) *Store {
	return &Store{Root: root}
}

// DataPath returns the path to data.json.
func (s *Store) DataPath() string {
	return filepath.Join(s.Root, DataFileName)
}

// ArchivePath returns the path to archive.db.
func (s *Store) ArchivePath() string {
	return filepath.Join(s.Root, ArchiveFileName)
}

// Exists reports whether the data file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.DataPath())
	return err == nil
}

// Init creates the data directory and an empty data file. Existing files are
// left alone; created reports whether a new data file was written.
func (s *Store) Init() (created bool, err error) {
	if err := os.MkdirAll(s.Root, 0755); err != nil {
		return false, fmt.Errorf("creating data directory: %w", err)
	}
	if s.Exists() {
		return false, nil
	}
	if err := s.Save(New()); err != nil {
		return false, err
	}
	return true, nil
}

// Load reads the journal and recomputes the daily ids before returning it.
func (s *Store) Load() (*Journal, error) {
	data, err := os.ReadFile(s.DataPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", s.DataPath(), ErrStorageMissing)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.DataPath(), err)
	}

	j, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.DataPath(), err)
	}
	if s.Now != nil {
		j.Now = s.Now
	}
	j.Recompute()
	return j, nil
}

// Save overwrites the data file with j as it is. The write is not atomic: a
// crash mid-write can leave a truncated file behind.
func (s *Store) Save(j *Journal) error {
	data, err := Marshal(j)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.DataPath(), data, 0644); err != nil {
		return fmt.Errorf("%w %s: %v", ErrIO, s.DataPath(), err)
	}
	return nil
}
