package repositories

import (
	"context"

	"github.com/zenledger/ledger_backend/internal/core/domain"
)

// SettingRepository defines operations for the key-value settings store.
// GetSetting returns apperrors.ErrNotFound for a missing key; PutSetting
// inserts or overwrites.
type SettingRepository interface {
	GetSetting(ctx context.Context, key string) (string, error)
	PutSetting(ctx context.Context, key, value string) error
	ListSettings(ctx context.Context) ([]domain.Setting, error)
}
