package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zenledger/ledger_backend/internal/apperrors"
	"github.com/zenledger/ledger_backend/internal/core/domain"
	portsrepo "github.com/zenledger/ledger_backend/internal/core/ports/repositories"
)

type PgxJournalRepository struct {
	BaseRepository
}

// NewPgxJournalRepository creates a new repository for journal entries.
func NewPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// SaveEntry inserts the entry row and all its lines inside one database
// transaction, then assigns the generated entry ID. Line order is preserved
// through the line_no column.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry *domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	entryQuery := `
		INSERT INTO journal_entries (entry_date, description, attachment)
		VALUES ($1, $2, $3)
		RETURNING entry_id;
	`
	if err := tx.QueryRow(ctx, entryQuery,
		entry.Date,
		entry.Description,
		entry.Attachment,
	).Scan(&entry.ID); err != nil {
		return fmt.Errorf("failed to insert journal entry: %w", err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (entry_id, line_no, account_id, debit, credit)
		VALUES ($1, $2, $3, $4, $5);
	`
	for i, line := range entry.Lines {
		batch.Queue(lineQuery, entry.ID, i, line.AccountID, line.Debit, line.Credit)
	}

	results := tx.SendBatch(ctx, batch)
	for range entry.Lines {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("failed to insert journal line for entry %d: %w", entry.ID, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to close line batch for entry %d: %w", entry.ID, err)
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves a journal entry with its lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	entryQuery := `
		SELECT entry_id, entry_date, description, attachment
		FROM journal_entries
		WHERE entry_id = $1;
	`
	var entry domain.JournalEntry
	err := r.Pool.QueryRow(ctx, entryQuery, entryID).Scan(
		&entry.ID,
		&entry.Date,
		&entry.Description,
		&entry.Attachment,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry %d: %w", entryID, err)
	}

	lineQuery := `
		SELECT account_id, debit, credit
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY line_no;
	`
	rows, err := r.Pool.Query(ctx, lineQuery, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %d: %w", entryID, err)
	}
	defer rows.Close()

	entry.Lines, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.JournalLine, error) {
		var line domain.JournalLine
		err := row.Scan(&line.AccountID, &line.Debit, &line.Credit)
		return line, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan lines for entry %d: %w", entryID, err)
	}
	return &entry, nil
}

// ListEntries retrieves all journal entries with their lines, newest first.
// Lines are fetched in a second query and stitched in, which keeps both
// queries simple and avoids duplicating entry columns per line.
func (r *PgxJournalRepository) ListEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	entryQuery := `
		SELECT entry_id, entry_date, description, attachment
		FROM journal_entries
		ORDER BY entry_date DESC, entry_id DESC;
	`
	rows, err := r.Pool.Query(ctx, entryQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.JournalEntry, error) {
		var entry domain.JournalEntry
		err := row.Scan(&entry.ID, &entry.Date, &entry.Description, &entry.Attachment)
		return entry, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan journal entries: %w", err)
	}
	if len(entries) == 0 {
		return entries, nil
	}

	index := make(map[int64]*domain.JournalEntry, len(entries))
	for i := range entries {
		index[entries[i].ID] = &entries[i]
	}

	lineQuery := `
		SELECT entry_id, account_id, debit, credit
		FROM journal_lines
		ORDER BY entry_id, line_no;
	`
	lineRows, err := r.Pool.Query(ctx, lineQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal lines: %w", err)
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var entryID int64
		var line domain.JournalLine
		if err := lineRows.Scan(&entryID, &line.AccountID, &line.Debit, &line.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan journal line: %w", err)
		}
		if entry, ok := index[entryID]; ok {
			entry.Lines = append(entry.Lines, line)
		}
	}
	if err := lineRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journal lines: %w", err)
	}
	return entries, nil
}
