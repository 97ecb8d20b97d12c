package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/zenledger/ledger_backend/internal/core/domain"
)

// BalanceTolerance absorbs floating-point drift in amounts that originated
// from currency conversion. Two sums closer than this are considered equal.
var BalanceTolerance = decimal.NewFromFloat(0.001)

// WithinTolerance reports whether a and b differ by at most BalanceTolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(BalanceTolerance)
}

// NaturalBalance folds all lines of all entries touching accountID into a
// debit-positive balance. It is a pure function of the entry set.
func NaturalBalance(accountID int64, entries []domain.JournalEntry) decimal.Decimal {
	balance := decimal.Zero
	for _, entry := range entries {
		for _, line := range entry.Lines {
			if line.AccountID == accountID {
				balance = balance.Add(line.Debit).Sub(line.Credit)
			}
		}
	}
	return balance
}

// SignedBalance converts a debit-positive natural balance into a displayed
// balance where positive means "grown in the account's natural direction".
// Credit-natural types (Liability, Equity, Revenue) are negated.
func SignedBalance(accountType domain.AccountType, natural decimal.Decimal) decimal.Decimal {
	if accountType.IsDebitNatural() {
		return natural
	}
	return natural.Neg()
}

// AccountBalances computes the sign-normalized balance of every account in a
// single pass over the entry set.
func AccountBalances(accounts []domain.Account, entries []domain.JournalEntry) []domain.AccountBalance {
	natural := make(map[int64]decimal.Decimal, len(accounts))
	for _, entry := range entries {
		for _, line := range entry.Lines {
			natural[line.AccountID] = natural[line.AccountID].Add(line.Debit).Sub(line.Credit)
		}
	}

	balances := make([]domain.AccountBalance, len(accounts))
	for i, acc := range accounts {
		balances[i] = domain.AccountBalance{
			Account: acc,
			Balance: SignedBalance(acc.Type, natural[acc.ID]),
		}
	}
	return balances
}

// BuildTrialBalance lists every nonzero account balance under its natural
// debit or credit column. The two totals must agree within tolerance for any
// entry set that went through the journal engine; when they do not (lines
// injected behind the engine's back, corrupted imports), Balanced is false
// and the caller surfaces a warning rather than hiding the report.
func BuildTrialBalance(accounts []domain.Account, entries []domain.JournalEntry) domain.TrialBalance {
	tb := domain.TrialBalance{
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
	}

	for _, ab := range AccountBalances(accounts, entries) {
		if ab.Balance.IsZero() {
			continue
		}
		row := domain.TrialBalanceRow{
			AccountID:   ab.ID,
			AccountName: ab.Name,
			AccountType: ab.Type,
		}
		if ab.Type.IsDebitNatural() {
			row.Debit = ab.Balance
			tb.TotalDebits = tb.TotalDebits.Add(ab.Balance)
		} else {
			row.Credit = ab.Balance
			tb.TotalCredits = tb.TotalCredits.Add(ab.Balance)
		}
		tb.Rows = append(tb.Rows, row)
	}

	tb.Balanced = WithinTolerance(tb.TotalDebits, tb.TotalCredits)
	return tb
}

// Summarize aggregates sign-normalized balances by account type and derives
// net income as revenue minus expenses.
func Summarize(accounts []domain.Account, entries []domain.JournalEntry) domain.FinancialSummary {
	summary := domain.FinancialSummary{
		Assets:      decimal.Zero,
		Liabilities: decimal.Zero,
		Equity:      decimal.Zero,
		Revenue:     decimal.Zero,
		Expenses:    decimal.Zero,
	}

	for _, ab := range AccountBalances(accounts, entries) {
		switch ab.Type {
		case domain.Asset:
			summary.Assets = summary.Assets.Add(ab.Balance)
		case domain.Liability:
			summary.Liabilities = summary.Liabilities.Add(ab.Balance)
		case domain.Equity:
			summary.Equity = summary.Equity.Add(ab.Balance)
		case domain.Revenue:
			summary.Revenue = summary.Revenue.Add(ab.Balance)
		case domain.Expense:
			summary.Expenses = summary.Expenses.Add(ab.Balance)
		}
	}

	summary.NetIncome = summary.Revenue.Sub(summary.Expenses)
	return summary
}
