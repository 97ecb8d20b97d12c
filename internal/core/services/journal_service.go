package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zenledger/ledger_backend/internal/apperrors"
	"github.com/zenledger/ledger_backend/internal/core/domain"
	portsrepo "github.com/zenledger/ledger_backend/internal/core/ports/repositories"
	"github.com/zenledger/ledger_backend/internal/dto"
	"github.com/zenledger/ledger_backend/internal/middleware"
	"github.com/zenledger/ledger_backend/internal/utils/accounting"
)

type JournalService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountReader
}

func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountReader) *JournalService {
	return &JournalService{journalRepo: journalRepo, accountRepo: accountRepo}
}

// PostEntry validates a candidate entry and appends it to the journal.
// Every line must reference a known account and carry exactly one nonzero
// side; total debits and credits must agree within the rounding tolerance
// and be strictly positive. The entry and all its lines land atomically.
func (s *JournalService) PostEntry(ctx context.Context, req dto.CreateEntryRequest) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	date, err := dto.ParseEntryDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, req.Date)
	}
	if len(req.Lines) < 2 {
		return nil, fmt.Errorf("%w: an entry needs at least two lines", apperrors.ErrValidation)
	}

	lines := make([]domain.JournalLine, len(req.Lines))
	totalDebits := decimal.Zero
	totalCredits := decimal.Zero
	for i, line := range req.Lines {
		if _, err := s.accountRepo.FindAccountByID(ctx, line.AccountID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: line %d references unknown account %d", apperrors.ErrValidation, i+1, line.AccountID)
			}
			return nil, err
		}
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return nil, fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, i+1)
		}
		debitSet := line.Debit.IsPositive()
		creditSet := line.Credit.IsPositive()
		if debitSet == creditSet {
			return nil, fmt.Errorf("%w: line %d must have exactly one of debit or credit set", apperrors.ErrValidation, i+1)
		}
		totalDebits = totalDebits.Add(line.Debit)
		totalCredits = totalCredits.Add(line.Credit)
		lines[i] = domain.JournalLine{
			AccountID: line.AccountID,
			Debit:     line.Debit,
			Credit:    line.Credit,
		}
	}

	if !accounting.WithinTolerance(totalDebits, totalCredits) {
		return nil, fmt.Errorf("%w: debits %s do not match credits %s",
			apperrors.ErrUnbalancedEntry, totalDebits.String(), totalCredits.String())
	}
	if !totalDebits.IsPositive() {
		return nil, fmt.Errorf("%w: entry total must be positive", apperrors.ErrValidation)
	}

	entry := domain.JournalEntry{
		Date:        date,
		Description: req.Description,
		Lines:       lines,
		Attachment:  req.Attachment,
	}
	if err := s.journalRepo.SaveEntry(ctx, &entry); err != nil {
		logger.Error("Failed to save journal entry in repository", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Journal entry posted",
		slog.Int64("entry_id", entry.ID),
		slog.Int("lines", len(entry.Lines)),
		slog.String("total", totalDebits.String()))
	return &entry, nil
}

// RevertEntry posts a new entry that mirrors an existing one with debits and
// credits swapped. The original stays in the journal untouched; the reversal
// is dated now and carries no attachment.
func (s *JournalService) RevertEntry(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find journal entry in repository", slog.String("error", err.Error()), slog.Int64("entry_id", entryID))
		}
		return nil, err
	}

	lines := make([]domain.JournalLine, len(original.Lines))
	for i, line := range original.Lines {
		lines[i] = domain.JournalLine{
			AccountID: line.AccountID,
			Debit:     line.Credit,
			Credit:    line.Debit,
		}
	}

	reversal := domain.JournalEntry{
		Date:        time.Now().UTC().Truncate(24 * time.Hour),
		Description: "Reversal of: " + original.Description,
		Lines:       lines,
	}
	if err := s.journalRepo.SaveEntry(ctx, &reversal); err != nil {
		logger.Error("Failed to save reversal entry in repository", slog.String("error", err.Error()), slog.Int64("original_entry_id", entryID))
		return nil, err
	}

	logger.Info("Journal entry reverted", slog.Int64("entry_id", entryID), slog.Int64("reversal_id", reversal.ID))
	return &reversal, nil
}

func (s *JournalService) GetEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find journal entry in repository", slog.String("error", err.Error()), slog.Int64("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

func (s *JournalService) ListEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	entries, err := s.journalRepo.ListEntries(ctx)
	if err != nil {
		logger.Error("Failed to list journal entries from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	if entries == nil {
		return []domain.JournalEntry{}, nil
	}
	return entries, nil
}
