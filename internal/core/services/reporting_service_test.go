package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/zenledger/ledger_backend/internal/core/domain"
	"github.com/zenledger/ledger_backend/internal/core/services"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockJournalRepo *MockJournalRepository
	service         *services.ReportingService
	accounts        []domain.Account
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.service = services.NewReportingService(suite.mockAccountRepo, suite.mockJournalRepo)

	suite.accounts = []domain.Account{
		{ID: 1, Name: "Cash", Type: domain.Asset},
		{ID: 2, Name: "Utilities Expense", Type: domain.Expense},
		{ID: 3, Name: "Loans Payable", Type: domain.Liability},
		{ID: 4, Name: "Product Sales", Type: domain.Revenue},
	}
}

func entryOn(day int, lines ...domain.JournalLine) domain.JournalEntry {
	return domain.JournalEntry{
		Date:  time.Date(2026, 5, day, 0, 0, 0, 0, time.UTC),
		Lines: lines,
	}
}

// Paying a 100 utility bill from cash: cash drops by 100, expenses rise by
// 100, and with no revenue net income is -100.
func (suite *ReportingServiceTestSuite) TestUtilityBillScenario() {
	ctx := context.Background()
	entries := []domain.JournalEntry{
		entryOn(1,
			domain.JournalLine{AccountID: 2, Debit: decimal.NewFromInt(100)},
			domain.JournalLine{AccountID: 1, Credit: decimal.NewFromInt(100)},
		),
	}
	suite.mockAccountRepo.On("ListAccounts", mock.Anything).Return(suite.accounts, nil)
	suite.mockJournalRepo.On("ListEntries", mock.Anything).Return(entries, nil)
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, int64(1)).Return(&suite.accounts[0], nil)

	cash, err := suite.service.AccountBalance(ctx, 1)
	suite.Require().NoError(err)
	suite.True(cash.Balance.Equal(decimal.NewFromInt(-100)), "got %s", cash.Balance)

	summary, err := suite.service.FinancialSummary(ctx)
	suite.Require().NoError(err)
	suite.True(summary.Expenses.Equal(decimal.NewFromInt(100)))
	suite.True(summary.NetIncome.Equal(decimal.NewFromInt(-100)))
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_Balanced() {
	ctx := context.Background()
	entries := []domain.JournalEntry{
		entryOn(1,
			domain.JournalLine{AccountID: 1, Debit: decimal.NewFromInt(500)},
			domain.JournalLine{AccountID: 4, Credit: decimal.NewFromInt(500)},
		),
		entryOn(2,
			domain.JournalLine{AccountID: 2, Debit: decimal.NewFromInt(120)},
			domain.JournalLine{AccountID: 1, Credit: decimal.NewFromInt(120)},
		),
	}
	suite.mockAccountRepo.On("ListAccounts", mock.Anything).Return(suite.accounts, nil)
	suite.mockJournalRepo.On("ListEntries", mock.Anything).Return(entries, nil)

	tb, err := suite.service.TrialBalance(ctx)

	suite.Require().NoError(err)
	suite.True(tb.Balanced)
	suite.True(tb.TotalDebits.Equal(tb.TotalCredits))
	suite.True(tb.TotalDebits.Equal(decimal.NewFromInt(500)), "got %s", tb.TotalDebits)
	suite.Len(tb.Rows, 3)
}

// A line injected behind the posting engine's back breaks the invariant; the
// report must still come back, flagged unbalanced.
func (suite *ReportingServiceTestSuite) TestTrialBalance_FlagsImbalance() {
	ctx := context.Background()
	entries := []domain.JournalEntry{
		entryOn(1,
			domain.JournalLine{AccountID: 1, Debit: decimal.NewFromInt(500)},
		),
	}
	suite.mockAccountRepo.On("ListAccounts", mock.Anything).Return(suite.accounts, nil)
	suite.mockJournalRepo.On("ListEntries", mock.Anything).Return(entries, nil)

	tb, err := suite.service.TrialBalance(ctx)

	suite.Require().NoError(err)
	suite.False(tb.Balanced)
	suite.True(tb.TotalDebits.Equal(decimal.NewFromInt(500)))
	suite.True(tb.TotalCredits.IsZero())
}

// Posting an entry and then its mirror image must cancel out exactly.
func (suite *ReportingServiceTestSuite) TestPostThenRevertRestoresBalances() {
	ctx := context.Background()
	original := entryOn(1,
		domain.JournalLine{AccountID: 2, Debit: decimal.NewFromInt(75)},
		domain.JournalLine{AccountID: 1, Credit: decimal.NewFromInt(75)},
	)
	reversal := entryOn(2,
		domain.JournalLine{AccountID: 2, Credit: decimal.NewFromInt(75)},
		domain.JournalLine{AccountID: 1, Debit: decimal.NewFromInt(75)},
	)
	suite.mockAccountRepo.On("ListAccounts", mock.Anything).Return(suite.accounts, nil)
	suite.mockJournalRepo.On("ListEntries", mock.Anything).Return([]domain.JournalEntry{original, reversal}, nil)

	balances, err := suite.service.AllBalances(ctx)

	suite.Require().NoError(err)
	for _, ab := range balances {
		suite.True(ab.Balance.IsZero(), "account %s should be back to zero, got %s", ab.Name, ab.Balance)
	}
}

func (suite *ReportingServiceTestSuite) TestAllBalances_InactiveAccountsReportZero() {
	ctx := context.Background()
	suite.mockAccountRepo.On("ListAccounts", mock.Anything).Return(suite.accounts, nil)
	suite.mockJournalRepo.On("ListEntries", mock.Anything).Return([]domain.JournalEntry{}, nil)

	balances, err := suite.service.AllBalances(ctx)

	suite.Require().NoError(err)
	suite.Len(balances, len(suite.accounts))
	for _, ab := range balances {
		suite.True(ab.Balance.IsZero())
	}
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
