// Package store persists the candidate list as a single JSON file. The
// whole list is small enough that read-modify-write of the full document
// is simpler and safer than an embedded database; writes go through a
// temp file and rename so a crash never leaves a half-written store.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"talentsift/internal/errors"
	"talentsift/internal/types"

	"github.com/spf13/afero"
)

// Store is a mutex-guarded JSON file store for candidates. All methods
// are safe for concurrent use.
type Store struct {
	fs     afero.Fs
	path   string
	logger *errors.Logger
	mu     sync.Mutex
}

// New creates a store backed by the given filesystem and file path. The
// file is created lazily on first write.
func New(fs afero.Fs, path string, logger *errors.Logger) *Store {
	return &Store{fs: fs, path: path, logger: logger}
}

// NewOS creates a store on the real filesystem.
func NewOS(path string, logger *errors.Logger) *Store {
	return New(afero.NewOsFs(), path, logger)
}

// Path returns the store file location.
func (s *Store) Path() string {
	return s.path
}

// GetAll returns every stored candidate. A missing file is an empty
// store; a corrupt file is logged and treated as empty rather than
// blocking the tool.
func (s *Store) GetAll() ([]types.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked()
}

// Get returns the candidate with the given ID.
func (s *Store) Get(id string) (types.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidates, err := s.readLocked()
	if err != nil {
		return types.Candidate{}, err
	}
	for _, c := range candidates {
		if c.ID == id {
			return c, nil
		}
	}
	return types.Candidate{}, errors.NewStoreError(errors.ErrCodeNotFound,
		fmt.Sprintf("No candidate with ID %s", id), nil)
}

// Append adds candidates to the store.
func (s *Store) Append(candidates ...types.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.readLocked()
	if err != nil {
		return err
	}
	return s.writeLocked(append(existing, candidates...))
}

// ReplaceAll overwrites the store with the given list.
func (s *Store) ReplaceAll(candidates []types.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(candidates)
}

// Delete removes the candidate with the given ID.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidates, err := s.readLocked()
	if err != nil {
		return err
	}
	kept := candidates[:0]
	for _, c := range candidates {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(candidates) {
		return errors.NewStoreError(errors.ErrCodeNotFound,
			fmt.Sprintf("No candidate with ID %s", id), nil)
	}
	return s.writeLocked(kept)
}

// Clear removes every candidate.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked([]types.Candidate{})
}

// Update applies fn to the full list under the lock and persists the
// result. fn may modify the slice in place or return a new one.
func (s *Store) Update(fn func([]types.Candidate) []types.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidates, err := s.readLocked()
	if err != nil {
		return err
	}
	return s.writeLocked(fn(candidates))
}

func (s *Store) readLocked() ([]types.Candidate, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []types.Candidate{}, nil
		}
		return nil, errors.NewStoreError(errors.ErrCodeStoreReadFailed,
			fmt.Sprintf("Failed to read store file: %s", s.path), err)
	}
	if len(data) == 0 {
		return []types.Candidate{}, nil
	}

	var candidates []types.Candidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		// A corrupt store must not brick the tool: start over empty and
		// leave the bad file in place until the next successful write.
		if s.logger != nil {
			s.logger.Warn("Store file is corrupt, treating as empty",
				"path", s.path, "error", err.Error())
		}
		return []types.Candidate{}, nil
	}
	return candidates, nil
}

func (s *Store) writeLocked(candidates []types.Candidate) error {
	if candidates == nil {
		candidates = []types.Candidate{}
	}
	data, err := json.MarshalIndent(candidates, "", "  ")
	if err != nil {
		return errors.NewStoreError(errors.ErrCodeStoreWriteFailed,
			"Failed to encode candidates", err)
	}

	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return errors.NewStoreError(errors.ErrCodeStoreWriteFailed,
				fmt.Sprintf("Failed to create store directory: %s", dir), err)
		}
	}

	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return errors.NewStoreError(errors.ErrCodeStoreWriteFailed,
			fmt.Sprintf("Failed to write store file: %s", tmp), err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		return errors.NewStoreError(errors.ErrCodeStoreWriteFailed,
			fmt.Sprintf("Failed to replace store file: %s", s.path), err)
	}
	return nil
}
