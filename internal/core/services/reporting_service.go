package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/zenledger/ledger_backend/internal/apperrors"
	"github.com/zenledger/ledger_backend/internal/core/domain"
	portsrepo "github.com/zenledger/ledger_backend/internal/core/ports/repositories"
	"github.com/zenledger/ledger_backend/internal/middleware"
	"github.com/zenledger/ledger_backend/internal/utils/accounting"
)

type ReportingService struct {
	accountRepo portsrepo.AccountReader
	journalRepo portsrepo.JournalReader
}

func NewReportingService(accountRepo portsrepo.AccountReader, journalRepo portsrepo.JournalReader) *ReportingService {
	return &ReportingService{accountRepo: accountRepo, journalRepo: journalRepo}
}

// AccountBalance folds the full journal into a single signed balance for one
// account. Credit-natural account types are negated so that "more of what
// the type measures" reads as a positive number.
func (s *ReportingService) AccountBalance(ctx context.Context, accountID int64) (*domain.AccountBalance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by ID in repository", slog.String("error", err.Error()), slog.Int64("account_id", accountID))
		}
		return nil, err
	}
	entries, err := s.journalRepo.ListEntries(ctx)
	if err != nil {
		logger.Error("Failed to list journal entries from repository", slog.String("error", err.Error()))
		return nil, err
	}

	natural := accounting.NaturalBalance(accountID, entries)
	return &domain.AccountBalance{
		Account: *account,
		Balance: accounting.SignedBalance(account.Type, natural),
	}, nil
}

// TrialBalance lists every account with activity in its natural debit or
// credit column. The two totals must agree; when they do not the report is
// still returned, flagged unbalanced, and a warning is logged because it
// means the posting invariant has been violated somewhere.
func (s *ReportingService) TrialBalance(ctx context.Context) (*domain.TrialBalance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, entries, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	tb := accounting.BuildTrialBalance(accounts, entries)
	if !tb.Balanced {
		logger.Warn("Trial balance does not balance",
			slog.String("total_debits", tb.TotalDebits.String()),
			slog.String("total_credits", tb.TotalCredits.String()))
	}
	return &tb, nil
}

// FinancialSummary aggregates signed balances by account type and derives
// net income as revenue minus expenses.
func (s *ReportingService) FinancialSummary(ctx context.Context) (*domain.FinancialSummary, error) {
	accounts, entries, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	summary := accounting.Summarize(accounts, entries)
	return &summary, nil
}

// AllBalances returns the signed balance of every account in one pass over
// the journal. Accounts with no activity report zero.
func (s *ReportingService) AllBalances(ctx context.Context) ([]domain.AccountBalance, error) {
	accounts, entries, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return accounting.AccountBalances(accounts, entries), nil
}

func (s *ReportingService) load(ctx context.Context) ([]domain.Account, []domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		logger.Error("Failed to list accounts from repository", slog.String("error", err.Error()))
		return nil, nil, err
	}
	entries, err := s.journalRepo.ListEntries(ctx)
	if err != nil {
		logger.Error("Failed to list journal entries from repository", slog.String("error", err.Error()))
		return nil, nil, err
	}
	return accounts, entries, nil
}
