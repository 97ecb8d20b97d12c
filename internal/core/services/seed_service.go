package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/zenledger/ledger_backend/internal/core/domain"
	portsrepo "github.com/zenledger/ledger_backend/internal/core/ports/repositories"
	"github.com/zenledger/ledger_backend/internal/middleware"
)

// initialAccounts is the starter chart of accounts installed on first run.
var initialAccounts = []struct {
	Name string
	Type domain.AccountType
}{
	{"Cash", domain.Asset},
	{"Customer Invoices", domain.Asset},
	{"Loans Receivable", domain.Asset},
	{"Office Supplies", domain.Asset},
	{"Equipment", domain.Asset},
	{"Bills to Pay", domain.Liability},
	{"Loans Payable", domain.Liability},
	{"Unearned Revenue", domain.Liability},
	{"Owner Investment", domain.Equity},
	{"Owner Withdrawal", domain.Equity},
	{"Product Sales", domain.Revenue},
	{"Service Income", domain.Revenue},
	{"Rent Expense", domain.Expense},
	{"Utilities Expense", domain.Expense},
	{"Wages & Salaries", domain.Expense},
	{"Stock Portfolio", domain.Investment},
}

type SeedService struct {
	accountRepo  portsrepo.AccountRepositoryFacade
	currencyRepo portsrepo.CurrencyRepositoryFacade
	settingRepo  portsrepo.SettingRepository
}

func NewSeedService(
	accountRepo portsrepo.AccountRepositoryFacade,
	currencyRepo portsrepo.CurrencyRepositoryFacade,
	settingRepo portsrepo.SettingRepository,
) *SeedService {
	return &SeedService{
		accountRepo:  accountRepo,
		currencyRepo: currencyRepo,
		settingRepo:  settingRepo,
	}
}

// EnsureDefaults installs the starter chart of accounts, a USD base currency
// and the currency settings on an empty database. It is a no-op when any
// accounts or currencies already exist, so running it on every startup is
// safe.
func (s *SeedService) EnsureDefaults(ctx context.Context) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing accounts: %w", err)
	}
	if len(accounts) == 0 {
		for _, seed := range initialAccounts {
			account := domain.Account{Name: seed.Name, Type: seed.Type}
			if err := s.accountRepo.SaveAccount(ctx, &account); err != nil {
				return fmt.Errorf("failed to seed account %q: %w", seed.Name, err)
			}
		}
		logger.Info("Seeded initial chart of accounts", slog.Int("count", len(initialAccounts)))
	}

	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing currencies: %w", err)
	}
	if len(currencies) == 0 {
		usd := domain.Currency{
			Name:         "US Dollar",
			Code:         "USD",
			Symbol:       "$",
			ExchangeRate: decimal.NewFromInt(1),
		}
		if err := s.currencyRepo.SaveCurrency(ctx, &usd); err != nil {
			return fmt.Errorf("failed to seed base currency: %w", err)
		}

		id := strconv.FormatInt(usd.ID, 10)
		for _, key := range []string{
			domain.SettingDefaultCurrencyID,
			domain.SettingDisplayCurrencyID,
			domain.SettingDefaultEntryCurrencyID,
		} {
			if err := s.settingRepo.PutSetting(ctx, key, id); err != nil {
				return fmt.Errorf("failed to seed setting %s: %w", key, err)
			}
		}
		logger.Info("Seeded base currency", slog.String("code", usd.Code), slog.Int64("currency_id", usd.ID))
	}

	return nil
}
