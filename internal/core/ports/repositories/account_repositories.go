package repositories

import (
	"context"

	"github.com/zenledger/ledger_backend/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves an account by its ID.
	FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)

	// FindAccountByName retrieves an account by name, case-insensitively.
	FindAccountByName(ctx context.Context, name string) (*domain.Account, error)

	// ListAccounts retrieves all accounts in insertion order.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account and assigns its ID.
	SaveAccount(ctx context.Context, account *domain.Account) error

	// UpdateAccount persists changes to an existing account.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account. The children / journal-usage /
	// favorite-usage guards and the delete itself run in one database
	// transaction; guard failures surface as apperrors.ErrHasChildren or
	// apperrors.ErrInUse.
	DeleteAccount(ctx context.Context, accountID int64) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
