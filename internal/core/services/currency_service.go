package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/zenledger/ledger_backend/internal/apperrors"
	"github.com/zenledger/ledger_backend/internal/core/domain"
	portsrepo "github.com/zenledger/ledger_backend/internal/core/ports/repositories"
	"github.com/zenledger/ledger_backend/internal/dto"
	"github.com/zenledger/ledger_backend/internal/middleware"
)

type CurrencyService struct {
	currencyRepo portsrepo.CurrencyRepositoryFacade
	settingRepo  portsrepo.SettingRepository
}

func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade, settingRepo portsrepo.SettingRepository) *CurrencyService {
	return &CurrencyService{currencyRepo: currencyRepo, settingRepo: settingRepo}
}

func (s *CurrencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest) (*domain.Currency, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if err := s.checkCodeAvailable(ctx, code, 0); err != nil {
		return nil, err
	}

	currency := domain.Currency{
		Name:         strings.TrimSpace(req.Name),
		Code:         code,
		Symbol:       req.Symbol,
		ExchangeRate: req.ExchangeRate,
	}
	if err := s.currencyRepo.SaveCurrency(ctx, &currency); err != nil {
		logger.Error("Failed to save currency in repository", slog.String("error", err.Error()), slog.String("code", code))
		return nil, err
	}

	logger.Info("Currency created", slog.Int64("currency_id", currency.ID), slog.String("code", currency.Code))
	return &currency, nil
}

// UpdateCurrency applies the non-nil fields of req. The default currency is
// the unit of account, so its exchange rate is pinned to 1 no matter what
// rate the request carries.
func (s *CurrencyService) UpdateCurrency(ctx context.Context, currencyID int64, req dto.UpdateCurrencyRequest) (*domain.Currency, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	currency, err := s.currencyRepo.FindCurrencyByID(ctx, currencyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find currency by ID in repository", slog.String("error", err.Error()), slog.Int64("currency_id", currencyID))
		}
		return nil, err
	}

	if req.Name != nil {
		currency.Name = strings.TrimSpace(*req.Name)
	}
	if req.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*req.Code))
		if !strings.EqualFold(code, currency.Code) {
			if err := s.checkCodeAvailable(ctx, code, currencyID); err != nil {
				return nil, err
			}
		}
		currency.Code = code
	}
	if req.Symbol != nil {
		currency.Symbol = *req.Symbol
	}
	if req.ExchangeRate != nil {
		currency.ExchangeRate = *req.ExchangeRate
	}

	defaultCurrency, err := s.DefaultCurrency(ctx)
	if err == nil && defaultCurrency.ID == currencyID && !currency.ExchangeRate.Equal(decimal.NewFromInt(1)) {
		logger.Warn("Ignoring exchange rate change for default currency", slog.Int64("currency_id", currencyID))
		currency.ExchangeRate = decimal.NewFromInt(1)
	}

	if err := s.currencyRepo.UpdateCurrency(ctx, *currency); err != nil {
		logger.Error("Failed to update currency in repository", slog.String("error", err.Error()), slog.Int64("currency_id", currencyID))
		return nil, err
	}

	logger.Info("Currency updated", slog.Int64("currency_id", currency.ID))
	return currency, nil
}

func (s *CurrencyService) DeleteCurrency(ctx context.Context, currencyID int64) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	defaultCurrency, err := s.DefaultCurrency(ctx)
	if err == nil && defaultCurrency.ID == currencyID {
		return fmt.Errorf("%w: currency %d is the default currency", apperrors.ErrCannotDeleteDefault, currencyID)
	}

	if err := s.currencyRepo.DeleteCurrency(ctx, currencyID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete currency in repository", slog.String("error", err.Error()), slog.Int64("currency_id", currencyID))
		}
		return err
	}

	logger.Info("Currency deleted", slog.Int64("currency_id", currencyID))
	return nil
}

func (s *CurrencyService) GetCurrencyByID(ctx context.Context, currencyID int64) (*domain.Currency, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	currency, err := s.currencyRepo.FindCurrencyByID(ctx, currencyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find currency by ID in repository", slog.String("error", err.Error()), slog.Int64("currency_id", currencyID))
		}
		return nil, err
	}
	return currency, nil
}

func (s *CurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		logger.Error("Failed to list currencies from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}

// DefaultCurrency resolves the configured default currency. When the setting
// is missing or points at a currency that no longer exists, the first
// currency in the table takes over and the setting is rewritten to match.
func (s *CurrencyService) DefaultCurrency(ctx context.Context) (*domain.Currency, error) {
	return s.resolveConfiguredCurrency(ctx, domain.SettingDefaultCurrencyID)
}

// DisplayCurrency resolves the currency amounts are rendered in. Falls back
// the same way DefaultCurrency does.
func (s *CurrencyService) DisplayCurrency(ctx context.Context) (*domain.Currency, error) {
	return s.resolveConfiguredCurrency(ctx, domain.SettingDisplayCurrencyID)
}

// SetDefaultCurrency switches the unit of account and pins the chosen
// currency's rate to 1. Stored amounts are not restated.
func (s *CurrencyService) SetDefaultCurrency(ctx context.Context, currencyID int64) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	currency, err := s.currencyRepo.FindCurrencyByID(ctx, currencyID)
	if err != nil {
		return err
	}
	if !currency.ExchangeRate.Equal(decimal.NewFromInt(1)) {
		currency.ExchangeRate = decimal.NewFromInt(1)
		if err := s.currencyRepo.UpdateCurrency(ctx, *currency); err != nil {
			return err
		}
	}
	if err := s.settingRepo.PutSetting(ctx, domain.SettingDefaultCurrencyID, strconv.FormatInt(currencyID, 10)); err != nil {
		return err
	}

	logger.Info("Default currency changed", slog.Int64("currency_id", currencyID), slog.String("code", currency.Code))
	return nil
}

// Convert translates amount from one currency to another through the default
// currency: first into the unit of account at the source rate, then out at
// the target rate. Converting a currency to itself is the identity.
func (s *CurrencyService) Convert(ctx context.Context, amount decimal.Decimal, fromID, toID int64) (decimal.Decimal, error) {
	if fromID == toID {
		return amount, nil
	}

	from, err := s.currencyRepo.FindCurrencyByID(ctx, fromID)
	if err != nil {
		return decimal.Zero, err
	}
	to, err := s.currencyRepo.FindCurrencyByID(ctx, toID)
	if err != nil {
		return decimal.Zero, err
	}
	if to.ExchangeRate.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: currency %s has a zero exchange rate", apperrors.ErrValidation, to.Code)
	}

	inDefault := amount.Mul(from.ExchangeRate)
	return inDefault.Div(to.ExchangeRate), nil
}

// FormatDisplay renders an amount held in the default currency for display.
// The amount is converted to the display currency (or the override, when
// given) and formatted with that currency's locale rules. Formatting never
// fails: with no usable currency the bare amount is returned with two
// decimals.
func (s *CurrencyService) FormatDisplay(ctx context.Context, amount decimal.Decimal, currencyID *int64) string {
	logger := middleware.GetLoggerFromCtx(ctx)

	target, err := s.displayTarget(ctx, currencyID)
	if err != nil {
		logger.Warn("No display currency available, formatting bare amount", slog.String("error", err.Error()))
		return amount.StringFixed(2)
	}

	display := amount
	defaultCurrency, err := s.DefaultCurrency(ctx)
	if err == nil && defaultCurrency.ID != target.ID && !target.ExchangeRate.IsZero() {
		display = amount.Div(target.ExchangeRate)
	}

	if def := money.GetCurrency(target.Code); def != nil {
		minor := display.Shift(int32(def.Fraction)).Round(0)
		return money.New(minor.IntPart(), target.Code).Display()
	}
	return target.Symbol + display.StringFixed(2)
}

func (s *CurrencyService) displayTarget(ctx context.Context, currencyID *int64) (*domain.Currency, error) {
	if currencyID != nil {
		currency, err := s.currencyRepo.FindCurrencyByID(ctx, *currencyID)
		if err == nil {
			return currency, nil
		}
	}
	return s.DisplayCurrency(ctx)
}

func (s *CurrencyService) resolveConfiguredCurrency(ctx context.Context, settingKey string) (*domain.Currency, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	value, err := s.settingRepo.GetSetting(ctx, settingKey)
	if err == nil {
		if id, perr := strconv.ParseInt(value, 10, 64); perr == nil {
			currency, ferr := s.currencyRepo.FindCurrencyByID(ctx, id)
			if ferr == nil {
				return currency, nil
			}
			if !errors.Is(ferr, apperrors.ErrNotFound) {
				return nil, ferr
			}
		}
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve currency for %s: %w", settingKey, err)
	}
	if len(currencies) == 0 {
		return nil, fmt.Errorf("%w: no currencies defined", apperrors.ErrNotFound)
	}

	fallback := currencies[0]
	logger.Warn("Configured currency missing, falling back to first currency",
		slog.String("setting", settingKey), slog.Int64("currency_id", fallback.ID))
	if err := s.settingRepo.PutSetting(ctx, settingKey, strconv.FormatInt(fallback.ID, 10)); err != nil {
		logger.Error("Failed to heal currency setting", slog.String("error", err.Error()), slog.String("setting", settingKey))
	}
	return &fallback, nil
}

func (s *CurrencyService) checkCodeAvailable(ctx context.Context, code string, selfID int64) error {
	existing, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return fmt.Errorf("%w: a currency with code %s already exists", apperrors.ErrDuplicateCode, code)
	}
	return nil
}
