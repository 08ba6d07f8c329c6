// Package journal persists the removal queue as a flat JSON file.
package journal

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"go.trai.ch/fsguard/internal/core/domain"
	"go.trai.ch/fsguard/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.RemovalJournal = (*Store)(nil)

// Record is the persisted state of one queued path.
type Record struct {
	Status   domain.RemovalStatus `json:"status"`
	Queued   time.Time            `json:"queued"`
	Attempts int                  `json:"attempts"`
}

// Store implements ports.RemovalJournal using a flat JSON file.
type Store struct {
	path    string
	mu      sync.RWMutex
	records map[string]Record
}

// NewStore opens the journal backed by the file at path.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:    filepath.Clean(path),
		records: make(map[string]Record),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Open is NewStore as a ports.JournalOpener.
func Open(path string) (ports.RemovalJournal, error) {
	return NewStore(path)
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to read removal journal"), "path", s.path)
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.records); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to unmarshal removal journal"), "path", s.path)
	}
	for p, r := range s.records {
		r.Status = domain.NormalizeRemovalStatus(string(r.Status))
		s.records[p] = r
	}
	return nil
}

// save writes the journal atomically. The caller holds the write lock.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal removal journal")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for removal journal")
	}

	tmp := s.path + ".tmp"
	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write removal journal")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return zerr.Wrap(err, "failed to replace removal journal")
	}
	return nil
}

// Add queues path as pending.
func (s *Store) Add(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[path]
	if !ok {
		r.Queued = time.Now()
	}
	r.Status = domain.RemovalPending
	s.records[path] = r
	return s.save()
}

// SetStatus records the outcome of an attempt. Entering RemovalRunning counts an attempt.
func (s *Store) SetStatus(path string, status domain.RemovalStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[path]
	if !ok {
		return zerr.With(zerr.New("path is not queued"), "path", path)
	}
	if status == domain.RemovalRunning {
		r.Attempts++
	}
	r.Status = status
	s.records[path] = r
	return s.save()
}

// Remove drops path from the journal.
func (s *Store) Remove(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[path]; !ok {
		return nil
	}
	delete(s.records, path)
	return s.save()
}

// Pending returns the queued paths that still need work, sorted.
func (s *Store) Pending() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []string
	for p, r := range s.records {
		if !r.Status.IsTerminal() {
			out = append(out, p)
		}
	}
	slices.Sort(out)
	return out
}

// Entries returns every queued path with its status.
func (s *Store) Entries() map[string]domain.RemovalStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]domain.RemovalStatus, len(s.records))
	for p, r := range s.records {
		out[p] = r.Status
	}
	return out
}

// Get returns the record of path.
func (s *Store) Get(path string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[path]
	return r, ok
}
