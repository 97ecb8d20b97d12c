package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zenledger/ledger_backend/internal/apperrors"
	"github.com/zenledger/ledger_backend/internal/core/domain"
	portsrepo "github.com/zenledger/ledger_backend/internal/core/ports/repositories"
	"github.com/zenledger/ledger_backend/internal/dto"
	"github.com/zenledger/ledger_backend/internal/middleware"
)

type FavoriteService struct {
	favoriteRepo portsrepo.FavoriteRepositoryFacade
	accountRepo  portsrepo.AccountReader
	settingRepo  portsrepo.SettingRepository
	currencySvc  *CurrencyService
}

func NewFavoriteService(
	favoriteRepo portsrepo.FavoriteRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	settingRepo portsrepo.SettingRepository,
	currencySvc *CurrencyService,
) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		accountRepo:  accountRepo,
		settingRepo:  settingRepo,
		currencySvc:  currencySvc,
	}
}

func (s *FavoriteService) CreateFavorite(ctx context.Context, req dto.CreateFavoriteRequest) (*domain.FavoriteTemplate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	favType := domain.FavoriteType(req.Type)
	if !domain.ValidFavoriteType(favType) {
		return nil, fmt.Errorf("%w: unknown favorite type %q", apperrors.ErrValidation, req.Type)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: favorite name cannot be empty", apperrors.ErrValidation)
	}
	if existing, err := s.favoriteRepo.FindFavoriteByName(ctx, name); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	} else {
		return nil, fmt.Errorf("%w: a favorite named %q already exists", apperrors.ErrDuplicateFavoriteName, existing.Name)
	}

	fav := domain.FavoriteTemplate{
		Name:               name,
		Type:               favType,
		FromAccountID:      req.FromAccountID,
		ToAccountID:        req.ToAccountID,
		CategoryAccountID:  req.CategoryAccountID,
		DefaultDescription: req.DefaultDescription,
	}
	for _, id := range fav.ReferencedAccountIDs() {
		if _, err := s.accountRepo.FindAccountByID(ctx, id); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: referenced account %d does not exist", apperrors.ErrValidation, id)
			}
			return nil, err
		}
	}

	if err := s.favoriteRepo.SaveFavorite(ctx, &fav); err != nil {
		logger.Error("Failed to save favorite in repository", slog.String("error", err.Error()), slog.String("name", fav.Name))
		return nil, err
	}

	logger.Info("Favorite created", slog.Int64("favorite_id", fav.ID), slog.String("type", string(fav.Type)))
	return &fav, nil
}

func (s *FavoriteService) DeleteFavorite(ctx context.Context, favoriteID int64) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.favoriteRepo.DeleteFavorite(ctx, favoriteID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete favorite in repository", slog.String("error", err.Error()), slog.Int64("favorite_id", favoriteID))
		}
		return err
	}

	logger.Info("Favorite deleted", slog.Int64("favorite_id", favoriteID))
	return nil
}

func (s *FavoriteService) GetFavoriteByID(ctx context.Context, favoriteID int64) (*domain.FavoriteTemplate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	fav, err := s.favoriteRepo.FindFavoriteByID(ctx, favoriteID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find favorite in repository", slog.String("error", err.Error()), slog.Int64("favorite_id", favoriteID))
		}
		return nil, err
	}
	return fav, nil
}

func (s *FavoriteService) ListFavorites(ctx context.Context) ([]domain.FavoriteTemplate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	favs, err := s.favoriteRepo.ListFavorites(ctx)
	if err != nil {
		logger.Error("Failed to list favorites from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	if favs == nil {
		return []domain.FavoriteTemplate{}, nil
	}
	return favs, nil
}

// ExpandFavorite turns a template plus an amount into an unposted two-line
// entry. The amount may arrive in any currency; it is converted into the
// unit of account before the lines are built. Each favorite type maps to a
// fixed debit/credit pattern:
//
//	expense: debit the category, credit the paying account
//	revenue: debit the receiving account, credit the category
//	borrow:  debit the receiving account, credit the liability category
//	lend:    debit the receivable category, credit the paying account
//
// A template missing the account its type requires yields
// apperrors.ErrIncompleteTemplate.
func (s *FavoriteService) ExpandFavorite(ctx context.Context, favoriteID int64, req dto.ExpandFavoriteRequest) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	fav, err := s.GetFavoriteByID(ctx, favoriteID)
	if err != nil {
		return nil, err
	}

	amount, err := s.amountInDefaultCurrency(ctx, req.Amount, req.CurrencyID)
	if err != nil {
		return nil, err
	}

	var debitAccount, creditAccount int64
	switch fav.Type {
	case domain.FavoriteExpense:
		if fav.FromAccountID == nil {
			return nil, fmt.Errorf("%w: expense favorite %d has no source account", apperrors.ErrIncompleteTemplate, fav.ID)
		}
		debitAccount, creditAccount = fav.CategoryAccountID, *fav.FromAccountID
	case domain.FavoriteRevenue:
		if fav.ToAccountID == nil {
			return nil, fmt.Errorf("%w: revenue favorite %d has no destination account", apperrors.ErrIncompleteTemplate, fav.ID)
		}
		debitAccount, creditAccount = *fav.ToAccountID, fav.CategoryAccountID
	case domain.FavoriteBorrow:
		if fav.ToAccountID == nil {
			return nil, fmt.Errorf("%w: borrow favorite %d has no destination account", apperrors.ErrIncompleteTemplate, fav.ID)
		}
		debitAccount, creditAccount = *fav.ToAccountID, fav.CategoryAccountID
	case domain.FavoriteLend:
		if fav.FromAccountID == nil {
			return nil, fmt.Errorf("%w: lend favorite %d has no source account", apperrors.ErrIncompleteTemplate, fav.ID)
		}
		debitAccount, creditAccount = fav.CategoryAccountID, *fav.FromAccountID
	default:
		return nil, fmt.Errorf("%w: unknown favorite type %q", apperrors.ErrValidation, fav.Type)
	}

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if req.Date != "" {
		if date, err = dto.ParseEntryDate(req.Date); err != nil {
			return nil, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, req.Date)
		}
	}
	description := req.Description
	if description == "" {
		description = fav.DefaultDescription
	}
	if description == "" {
		description = fav.Name
	}

	logger.Debug("Favorite expanded", slog.Int64("favorite_id", fav.ID), slog.String("amount", amount.String()))
	return &domain.JournalEntry{
		Date:        date,
		Description: description,
		Lines: []domain.JournalLine{
			{AccountID: debitAccount, Debit: amount},
			{AccountID: creditAccount, Credit: amount},
		},
	}, nil
}

// amountInDefaultCurrency converts the requested amount into the unit of
// account. With no explicit currency the configured default entry currency
// applies; when that setting is absent the amount is taken as already being
// in the default currency.
func (s *FavoriteService) amountInDefaultCurrency(ctx context.Context, amount decimal.Decimal, currencyID *int64) (decimal.Decimal, error) {
	fromID := currencyID
	if fromID == nil {
		value, err := s.settingRepo.GetSetting(ctx, domain.SettingDefaultEntryCurrencyID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return amount, nil
			}
			return decimal.Zero, err
		}
		id, perr := strconv.ParseInt(value, 10, 64)
		if perr != nil {
			return amount, nil
		}
		fromID = &id
	}

	defaultCurrency, err := s.currencySvc.DefaultCurrency(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return s.currencySvc.Convert(ctx, amount, *fromID, defaultCurrency.ID)
}
