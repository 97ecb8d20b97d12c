package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset      AccountType = "Asset"
	Liability  AccountType = "Liability"
	Equity     AccountType = "Equity"
	Revenue    AccountType = "Revenue"
	Expense    AccountType = "Expense"
	Investment AccountType = "Investment"
)

// ValidAccountType reports whether t is one of the known account types.
func ValidAccountType(t AccountType) bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense, Investment:
		return true
	}
	return false
}

// IsDebitNatural reports whether the account type grows on its debit side.
// Investment accounts behave like assets.
func (t AccountType) IsDebitNatural() bool {
	switch t {
	case Asset, Expense, Investment:
		return true
	}
	return false
}

// Account represents a single account in the chart of accounts.
// This is the primary representation used by services.
type Account struct {
	ID       int64       `json:"id"`       // Primary Key (registry-assigned)
	Name     string      `json:"name"`     // Globally unique, case-insensitive
	Type     AccountType `json:"type"`     // Asset, Liability, etc.
	ParentID *int64      `json:"parentId"` // Nullable self reference for sub-accounts
}

// AccountNode is an account together with its sub-accounts, ordered by
// insertion. Used for the chart-of-accounts tree view.
type AccountNode struct {
	Account
	Children []*AccountNode `json:"children"`
}
