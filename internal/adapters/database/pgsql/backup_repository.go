package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zenledger/ledger_backend/internal/core/domain"
	portsrepo "github.com/zenledger/ledger_backend/internal/core/ports/repositories"
)

type PgxBackupRepository struct {
	BaseRepository
	accountRepo  portsrepo.AccountReader
	currencyRepo portsrepo.CurrencyReader
	journalRepo  portsrepo.JournalReader
	favoriteRepo portsrepo.FavoriteReader
	settingRepo  portsrepo.SettingRepository
}

// NewPgxBackupRepository creates the repository backing export and import.
func NewPgxBackupRepository(
	pool *pgxpool.Pool,
	accountRepo portsrepo.AccountReader,
	currencyRepo portsrepo.CurrencyReader,
	journalRepo portsrepo.JournalReader,
	favoriteRepo portsrepo.FavoriteReader,
	settingRepo portsrepo.SettingRepository,
) portsrepo.BackupRepository {
	return &PgxBackupRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
		currencyRepo:   currencyRepo,
		journalRepo:    journalRepo,
		favoriteRepo:   favoriteRepo,
		settingRepo:    settingRepo,
	}
}

// Ensure implementation matches interface
var _ portsrepo.BackupRepository = (*PgxBackupRepository)(nil)

// ExportAll reads the five collections through the per-collection readers.
func (r *PgxBackupRepository) ExportAll(ctx context.Context) (*domain.BackupData, error) {
	data := &domain.BackupData{}
	var err error

	if data.Accounts, err = r.accountRepo.ListAccounts(ctx); err != nil {
		return nil, fmt.Errorf("failed to export accounts: %w", err)
	}
	if data.Transactions, err = r.journalRepo.ListEntries(ctx); err != nil {
		return nil, fmt.Errorf("failed to export journal entries: %w", err)
	}
	if data.FavoriteTransactions, err = r.favoriteRepo.ListFavorites(ctx); err != nil {
		return nil, fmt.Errorf("failed to export favorites: %w", err)
	}
	if data.Currencies, err = r.currencyRepo.ListCurrencies(ctx); err != nil {
		return nil, fmt.Errorf("failed to export currencies: %w", err)
	}
	if data.Settings, err = r.settingRepo.ListSettings(ctx); err != nil {
		return nil, fmt.Errorf("failed to export settings: %w", err)
	}
	return data, nil
}

// ReplaceAll clears every collection and bulk-inserts the payload inside one
// database transaction, preserving the payload's record IDs. Accounts land
// in two passes (rows first, parent links second) so parent order in the
// payload does not matter. ID sequences are bumped past the highest imported
// ID at the end.
func (r *PgxBackupRepository) ReplaceAll(ctx context.Context, data *domain.BackupData) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	clearStatements := []string{
		`DELETE FROM journal_lines;`,
		`DELETE FROM journal_entries;`,
		`DELETE FROM favorite_templates;`,
		`DELETE FROM accounts;`,
		`DELETE FROM currencies;`,
		`DELETE FROM settings;`,
	}
	for _, stmt := range clearStatements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to clear table: %w", err)
		}
	}

	for _, currency := range data.Currencies {
		if _, err := tx.Exec(ctx,
			`INSERT INTO currencies (currency_id, name, code, symbol, exchange_rate) VALUES ($1, $2, $3, $4, $5);`,
			currency.ID, currency.Name, currency.Code, currency.Symbol, currency.ExchangeRate,
		); err != nil {
			return fmt.Errorf("failed to import currency %s: %w", currency.Code, err)
		}
	}

	for _, account := range data.Accounts {
		if _, err := tx.Exec(ctx,
			`INSERT INTO accounts (account_id, name, account_type) VALUES ($1, $2, $3);`,
			account.ID, account.Name, account.Type,
		); err != nil {
			return fmt.Errorf("failed to import account %q: %w", account.Name, err)
		}
	}
	for _, account := range data.Accounts {
		if account.ParentID == nil {
			continue
		}
		if _, err := tx.Exec(ctx,
			`UPDATE accounts SET parent_id = $2 WHERE account_id = $1;`,
			account.ID, account.ParentID,
		); err != nil {
			return fmt.Errorf("failed to link account %d to its parent: %w", account.ID, err)
		}
	}

	lineBatch := &pgx.Batch{}
	lineCount := 0
	for _, entry := range data.Transactions {
		if _, err := tx.Exec(ctx,
			`INSERT INTO journal_entries (entry_id, entry_date, description, attachment) VALUES ($1, $2, $3, $4);`,
			entry.ID, entry.Date, entry.Description, entry.Attachment,
		); err != nil {
			return fmt.Errorf("failed to import journal entry %d: %w", entry.ID, err)
		}
		for i, line := range entry.Lines {
			lineBatch.Queue(
				`INSERT INTO journal_lines (entry_id, line_no, account_id, debit, credit) VALUES ($1, $2, $3, $4, $5);`,
				entry.ID, i, line.AccountID, line.Debit, line.Credit,
			)
			lineCount++
		}
	}
	results := tx.SendBatch(ctx, lineBatch)
	for i := 0; i < lineCount; i++ {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("failed to import journal line: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to close import batch: %w", err)
	}

	for _, favorite := range data.FavoriteTransactions {
		if _, err := tx.Exec(ctx,
			`INSERT INTO favorite_templates (favorite_id, name, favorite_type, from_account_id, to_account_id, category_account_id, default_description)
			 VALUES ($1, $2, $3, $4, $5, $6, $7);`,
			favorite.ID, favorite.Name, favorite.Type, favorite.FromAccountID, favorite.ToAccountID, favorite.CategoryAccountID, favorite.DefaultDescription,
		); err != nil {
			return fmt.Errorf("failed to import favorite %q: %w", favorite.Name, err)
		}
	}

	for _, setting := range data.Settings {
		if _, err := tx.Exec(ctx,
			`INSERT INTO settings (setting_key, setting_value) VALUES ($1, $2);`,
			setting.Key, setting.Value,
		); err != nil {
			return fmt.Errorf("failed to import setting %s: %w", setting.Key, err)
		}
	}

	sequenceResets := []string{
		`SELECT setval(pg_get_serial_sequence('accounts', 'account_id'), COALESCE(MAX(account_id), 0) + 1, false) FROM accounts;`,
		`SELECT setval(pg_get_serial_sequence('currencies', 'currency_id'), COALESCE(MAX(currency_id), 0) + 1, false) FROM currencies;`,
		`SELECT setval(pg_get_serial_sequence('journal_entries', 'entry_id'), COALESCE(MAX(entry_id), 0) + 1, false) FROM journal_entries;`,
		`SELECT setval(pg_get_serial_sequence('favorite_templates', 'favorite_id'), COALESCE(MAX(favorite_id), 0) + 1, false) FROM favorite_templates;`,
	}
	for _, stmt := range sequenceResets {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to reset ID sequence: %w", err)
		}
	}

	return r.Commit(ctx, tx)
}
