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

type PgxCurrencyRepository struct {
	BaseRepository
}

// NewPgxCurrencyRepository creates a new repository for currency data.
func NewPgxCurrencyRepository(pool *pgxpool.Pool) portsrepo.CurrencyRepositoryFacade {
	return &PgxCurrencyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CurrencyRepositoryFacade = (*PgxCurrencyRepository)(nil)

// SaveCurrency inserts a new currency and assigns its generated ID.
func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency *domain.Currency) error {
	query := `
		INSERT INTO currencies (name, code, symbol, exchange_rate)
		VALUES ($1, $2, $3, $4)
		RETURNING currency_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		currency.Name,
		currency.Code,
		currency.Symbol,
		currency.ExchangeRate,
	).Scan(&currency.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicateCode, currency.Code)
		}
		return fmt.Errorf("failed to save currency %s: %w", currency.Code, err)
	}
	return nil
}

// UpdateCurrency persists changes to an existing currency.
func (r *PgxCurrencyRepository) UpdateCurrency(ctx context.Context, currency domain.Currency) error {
	query := `
		UPDATE currencies
		SET name = $2, code = $3, symbol = $4, exchange_rate = $5
		WHERE currency_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		currency.ID,
		currency.Name,
		currency.Code,
		currency.Symbol,
		currency.ExchangeRate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicateCode, currency.Code)
		}
		return fmt.Errorf("failed to update currency %d: %w", currency.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteCurrency removes a currency.
func (r *PgxCurrencyRepository) DeleteCurrency(ctx context.Context, currencyID int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM currencies WHERE currency_id = $1;`, currencyID)
	if err != nil {
		return fmt.Errorf("failed to delete currency %d: %w", currencyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindCurrencyByID retrieves a currency by its ID.
func (r *PgxCurrencyRepository) FindCurrencyByID(ctx context.Context, currencyID int64) (*domain.Currency, error) {
	query := `
		SELECT currency_id, name, code, symbol, exchange_rate
		FROM currencies
		WHERE currency_id = $1;
	`
	var currency domain.Currency
	err := r.Pool.QueryRow(ctx, query, currencyID).Scan(
		&currency.ID,
		&currency.Name,
		&currency.Code,
		&currency.Symbol,
		&currency.ExchangeRate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find currency by ID %d: %w", currencyID, err)
	}
	return &currency, nil
}

// FindCurrencyByCode retrieves a currency by code, case-insensitively.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	query := `
		SELECT currency_id, name, code, symbol, exchange_rate
		FROM currencies
		WHERE UPPER(code) = UPPER($1);
	`
	var currency domain.Currency
	err := r.Pool.QueryRow(ctx, query, code).Scan(
		&currency.ID,
		&currency.Name,
		&currency.Code,
		&currency.Symbol,
		&currency.ExchangeRate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find currency by code %s: %w", code, err)
	}
	return &currency, nil
}

// ListCurrencies retrieves all currencies ordered by ID.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	query := `
		SELECT currency_id, name, code, symbol, exchange_rate
		FROM currencies
		ORDER BY currency_id;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	currencies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Currency, error) {
		var currency domain.Currency
		err := row.Scan(&currency.ID, &currency.Name, &currency.Code, &currency.Symbol, &currency.ExchangeRate)
		return currency, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan currencies: %w", err)
	}
	return currencies, nil
}
