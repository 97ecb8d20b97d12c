package domain

import "github.com/shopspring/decimal"

// AccountBalance pairs an account with its sign-normalized balance: positive
// always means the account has grown in its natural direction.
type AccountBalance struct {
	Account
	Balance decimal.Decimal `json:"balance"`
}

// TrialBalanceRow shows one account's nonzero balance under its natural
// column. Exactly one of Debit/Credit carries the amount.
type TrialBalanceRow struct {
	AccountID   int64           `json:"accountId"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalance lists every account with a nonzero balance and the column
// totals. Balanced is false when the totals disagree beyond tolerance; the
// report is still produced so the discrepancy stays visible.
type TrialBalance struct {
	Rows         []TrialBalanceRow `json:"rows"`
	TotalDebits  decimal.Decimal   `json:"totalDebits"`
	TotalCredits decimal.Decimal   `json:"totalCredits"`
	Balanced     bool              `json:"balanced"`
}

// FinancialSummary aggregates sign-normalized balances by account type.
type FinancialSummary struct {
	Assets      decimal.Decimal `json:"assets"`
	Liabilities decimal.Decimal `json:"liabilities"`
	Equity      decimal.Decimal `json:"equity"`
	Revenue     decimal.Decimal `json:"revenue"`
	Expenses    decimal.Decimal `json:"expenses"`
	NetIncome   decimal.Decimal `json:"netIncome"`
}
