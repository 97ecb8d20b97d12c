package repositories

import (
	"context"

	"github.com/zenledger/ledger_backend/internal/core/domain"
)

// JournalReader defines read operations for journal entries
type JournalReader interface {
	// FindEntryByID retrieves a journal entry with its lines.
	FindEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error)

	// ListEntries retrieves all journal entries with their lines, newest first.
	ListEntries(ctx context.Context) ([]domain.JournalEntry, error)
}

// JournalWriter defines write operations for journal entries
type JournalWriter interface {
	// SaveEntry persists a new entry and its lines atomically (all lines or
	// none) and assigns the entry ID. Entries are append-only: there are no
	// update or delete operations.
	SaveEntry(ctx context.Context, entry *domain.JournalEntry) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
