package repositories

import (
	"context"

	"github.com/zenledger/ledger_backend/internal/core/domain"
)

// BackupRepository moves the whole data set in and out of the store.
type BackupRepository interface {
	// ExportAll reads the five collections inside one read transaction.
	ExportAll(ctx context.Context) (*domain.BackupData, error)

	// ReplaceAll clears the five collections and bulk-inserts the given data
	// inside one database transaction. On any failure the prior data is left
	// untouched.
	ReplaceAll(ctx context.Context, data *domain.BackupData) error
}
