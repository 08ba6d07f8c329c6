package ports

import "go.trai.ch/fsguard/internal/core/domain"

// RemovalJournal persists paths queued for deletion.
//
//go:generate mockgen -source=journal.go -destination=mocks/mock_journal.go -package=mocks
type RemovalJournal interface {
	// Add queues path. Adding a queued path resets it to pending.
	Add(path string) error
	// SetStatus records the outcome of an attempt.
	SetStatus(path string, status domain.RemovalStatus) error
	// Remove drops path from the journal.
	Remove(path string) error
	// Pending returns the queued paths that still need work, sorted.
	Pending() []string
	// Entries returns every queued path with its status.
	Entries() map[string]domain.RemovalStatus
}

// JournalOpener opens the removal journal stored at path, creating it on first write.
type JournalOpener func(path string) (RemovalJournal, error)
