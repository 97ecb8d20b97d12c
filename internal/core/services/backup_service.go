package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/zenledger/ledger_backend/internal/apperrors"
	"github.com/zenledger/ledger_backend/internal/core/domain"
	portsrepo "github.com/zenledger/ledger_backend/internal/core/ports/repositories"
	"github.com/zenledger/ledger_backend/internal/middleware"
)

type BackupService struct {
	backupRepo portsrepo.BackupRepository
}

func NewBackupService(backupRepo portsrepo.BackupRepository) *BackupService {
	return &BackupService{backupRepo: backupRepo}
}

// Export reads the entire ledger in one consistent snapshot.
func (s *BackupService) Export(ctx context.Context) (*domain.BackupData, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	data, err := s.backupRepo.ExportAll(ctx)
	if err != nil {
		logger.Error("Failed to export ledger data", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Ledger exported",
		slog.Int("accounts", len(data.Accounts)),
		slog.Int("transactions", len(data.Transactions)))
	return data, nil
}

// Import replaces the whole ledger with the payload. The payload must carry
// at least "accounts" and "transactions" arrays or it is rejected before any
// data is touched; the replacement itself is all-or-nothing, so a failure
// partway through leaves the previous ledger intact.
func (s *BackupService) Import(ctx context.Context, payload []byte) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(payload, &probe); err != nil {
		return fmt.Errorf("%w: payload is not a JSON object", apperrors.ErrImportFormat)
	}
	for _, key := range []string{"accounts", "transactions"} {
		raw, ok := probe[key]
		if !ok || !isJSONArray(raw) {
			return fmt.Errorf("%w: missing %q array", apperrors.ErrImportFormat, key)
		}
	}

	var data domain.BackupData
	if err := json.Unmarshal(payload, &data); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrImportFormat, err)
	}

	if err := s.backupRepo.ReplaceAll(ctx, &data); err != nil {
		logger.Error("Failed to import ledger data", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Ledger imported",
		slog.Int("accounts", len(data.Accounts)),
		slog.Int("transactions", len(data.Transactions)))
	return nil
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}
