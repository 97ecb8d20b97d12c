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

type PgxAccountRepository struct {
	BaseRepository
}

// NewPgxAccountRepository creates a new repository for account data.
func NewPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// SaveAccount inserts a new account and assigns its generated ID.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (name, account_type, parent_id)
		VALUES ($1, $2, $3)
		RETURNING account_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		account.Name,
		account.Type,
		account.ParentID,
	).Scan(&account.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicateName, account.Name)
		}
		return fmt.Errorf("failed to save account %q: %w", account.Name, err)
	}
	return nil
}

// UpdateAccount persists changes to an existing account.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $2, account_type = $3, parent_id = $4
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		account.ID,
		account.Name,
		account.Type,
		account.ParentID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicateName, account.Name)
		}
		return fmt.Errorf("failed to update account %d: %w", account.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAccount removes an account after checking, inside one transaction,
// that nothing still references it: no child accounts, no journal lines and
// no favorite templates.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var childCount int
	if err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM accounts WHERE parent_id = $1;`, accountID,
	).Scan(&childCount); err != nil {
		return fmt.Errorf("failed to count child accounts of %d: %w", accountID, err)
	}
	if childCount > 0 {
		return fmt.Errorf("%w: account %d has %d sub-accounts", apperrors.ErrHasChildren, accountID, childCount)
	}

	var lineCount int
	if err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM journal_lines WHERE account_id = $1;`, accountID,
	).Scan(&lineCount); err != nil {
		return fmt.Errorf("failed to count journal lines for account %d: %w", accountID, err)
	}
	if lineCount > 0 {
		return fmt.Errorf("%w: account %d appears on %d journal lines", apperrors.ErrInUse, accountID, lineCount)
	}

	var favCount int
	if err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM favorite_templates
		 WHERE category_account_id = $1 OR from_account_id = $1 OR to_account_id = $1;`, accountID,
	).Scan(&favCount); err != nil {
		return fmt.Errorf("failed to count favorite references for account %d: %w", accountID, err)
	}
	if favCount > 0 {
		return fmt.Errorf("%w: account %d is referenced by %d favorites", apperrors.ErrInUse, accountID, favCount)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account %d: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	query := `
		SELECT account_id, name, account_type, parent_id
		FROM accounts
		WHERE account_id = $1;
	`
	var account domain.Account
	err := r.Pool.QueryRow(ctx, query, accountID).Scan(
		&account.ID,
		&account.Name,
		&account.Type,
		&account.ParentID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %d: %w", accountID, err)
	}
	return &account, nil
}

// FindAccountByName retrieves an account by name, case-insensitively.
func (r *PgxAccountRepository) FindAccountByName(ctx context.Context, name string) (*domain.Account, error) {
	query := `
		SELECT account_id, name, account_type, parent_id
		FROM accounts
		WHERE LOWER(name) = LOWER($1);
	`
	var account domain.Account
	err := r.Pool.QueryRow(ctx, query, name).Scan(
		&account.ID,
		&account.Name,
		&account.Type,
		&account.ParentID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by name %q: %w", name, err)
	}
	return &account, nil
}

// ListAccounts retrieves all accounts in insertion order.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `
		SELECT account_id, name, account_type, parent_id
		FROM accounts
		ORDER BY account_id;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Account, error) {
		var account domain.Account
		err := row.Scan(&account.ID, &account.Name, &account.Type, &account.ParentID)
		return account, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts: %w", err)
	}
	return accounts, nil
}
