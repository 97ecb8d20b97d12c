package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/zenledger/ledger_backend/internal/apperrors"
	"github.com/zenledger/ledger_backend/internal/core/domain"
	portsrepo "github.com/zenledger/ledger_backend/internal/core/ports/repositories"
	"github.com/zenledger/ledger_backend/internal/middleware"
)

type SettingService struct {
	settingRepo portsrepo.SettingRepository
}

func NewSettingService(settingRepo portsrepo.SettingRepository) *SettingService {
	return &SettingService{settingRepo: settingRepo}
}

func (s *SettingService) GetSetting(ctx context.Context, key string) (*domain.Setting, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	value, err := s.settingRepo.GetSetting(ctx, key)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to get setting from repository", slog.String("error", err.Error()), slog.String("key", key))
		}
		return nil, err
	}
	return &domain.Setting{Key: key, Value: value}, nil
}

func (s *SettingService) PutSetting(ctx context.Context, key, value string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.settingRepo.PutSetting(ctx, key, value); err != nil {
		logger.Error("Failed to put setting in repository", slog.String("error", err.Error()), slog.String("key", key))
		return err
	}
	logger.Info("Setting stored", slog.String("key", key))
	return nil
}

func (s *SettingService) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	settings, err := s.settingRepo.ListSettings(ctx)
	if err != nil {
		logger.Error("Failed to list settings from repository", slog.String("error", err.Error()))
		return nil, err
	}
	if settings == nil {
		return []domain.Setting{}, nil
	}
	return settings, nil
}
