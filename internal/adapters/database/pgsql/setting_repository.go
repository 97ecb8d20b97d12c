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

type PgxSettingRepository struct {
	BaseRepository
}

// NewPgxSettingRepository creates a new repository for the settings store.
func NewPgxSettingRepository(pool *pgxpool.Pool) portsrepo.SettingRepository {
	return &PgxSettingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.SettingRepository = (*PgxSettingRepository)(nil)

// GetSetting retrieves one setting value by key.
func (r *PgxSettingRepository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.Pool.QueryRow(ctx,
		`SELECT setting_value FROM settings WHERE setting_key = $1;`, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("%w: setting %s", apperrors.ErrNotFound, key)
		}
		return "", fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value, nil
}

// PutSetting inserts or overwrites one setting.
func (r *PgxSettingRepository) PutSetting(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO settings (setting_key, setting_value)
		VALUES ($1, $2)
		ON CONFLICT (setting_key) DO UPDATE SET setting_value = EXCLUDED.setting_value;
	`
	if _, err := r.Pool.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to put setting %s: %w", key, err)
	}
	return nil
}

// ListSettings retrieves all settings.
func (r *PgxSettingRepository) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT setting_key, setting_value FROM settings ORDER BY setting_key;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	settings, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Setting, error) {
		var setting domain.Setting
		err := row.Scan(&setting.Key, &setting.Value)
		return setting, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan settings: %w", err)
	}
	return settings, nil
}
