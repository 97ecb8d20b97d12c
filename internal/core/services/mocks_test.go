package services_test

import (
	"context"
	"fmt"

	"github.com/stretchr/testify/mock"

	"github.com/zenledger/ledger_backend/internal/apperrors"
	"github.com/zenledger/ledger_backend/internal/core/domain"
	portsrepo "github.com/zenledger/ledger_backend/internal/core/ports/repositories"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

// Ensure MockAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByName(ctx context.Context, name string) (*domain.Account, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID int64) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

var _ portsrepo.CurrencyRepositoryFacade = (*MockCurrencyRepository)(nil)

func (m *MockCurrencyRepository) FindCurrencyByID(ctx context.Context, currencyID int64) (*domain.Currency, error) {
	args := m.Called(ctx, currencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency *domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) UpdateCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) DeleteCurrency(ctx context.Context, currencyID int64) error {
	args := m.Called(ctx, currencyID)
	return args.Error(0)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry *domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// --- Mock FavoriteRepository ---
type MockFavoriteRepository struct {
	mock.Mock
}

var _ portsrepo.FavoriteRepositoryFacade = (*MockFavoriteRepository)(nil)

func (m *MockFavoriteRepository) FindFavoriteByID(ctx context.Context, favoriteID int64) (*domain.FavoriteTemplate, error) {
	args := m.Called(ctx, favoriteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FavoriteTemplate), args.Error(1)
}

func (m *MockFavoriteRepository) FindFavoriteByName(ctx context.Context, name string) (*domain.FavoriteTemplate, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FavoriteTemplate), args.Error(1)
}

func (m *MockFavoriteRepository) ListFavorites(ctx context.Context) ([]domain.FavoriteTemplate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FavoriteTemplate), args.Error(1)
}

func (m *MockFavoriteRepository) SaveFavorite(ctx context.Context, favorite *domain.FavoriteTemplate) error {
	args := m.Called(ctx, favorite)
	return args.Error(0)
}

func (m *MockFavoriteRepository) DeleteFavorite(ctx context.Context, favoriteID int64) error {
	args := m.Called(ctx, favoriteID)
	return args.Error(0)
}

// --- Mock BackupRepository ---
type MockBackupRepository struct {
	mock.Mock
}

var _ portsrepo.BackupRepository = (*MockBackupRepository)(nil)

func (m *MockBackupRepository) ExportAll(ctx context.Context) (*domain.BackupData, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BackupData), args.Error(1)
}

func (m *MockBackupRepository) ReplaceAll(ctx context.Context, data *domain.BackupData) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}

// --- In-memory SettingRepository ---
//
// The currency and favorite services read and rewrite settings as part of
// their fallback behavior, which makes call-by-call mock expectations
// awkward. A map-backed fake keeps those tests focused on the behavior.
type fakeSettingStore struct {
	values map[string]string
}

var _ portsrepo.SettingRepository = (*fakeSettingStore)(nil)

func newFakeSettingStore() *fakeSettingStore {
	return &fakeSettingStore{values: make(map[string]string)}
}

func (f *fakeSettingStore) GetSetting(ctx context.Context, key string) (string, error) {
	value, ok := f.values[key]
	if !ok {
		return "", fmt.Errorf("%w: setting %s", apperrors.ErrNotFound, key)
	}
	return value, nil
}

func (f *fakeSettingStore) PutSetting(ctx context.Context, key, value string) error {
	f.values[key] = value
	return nil
}

func (f *fakeSettingStore) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	settings := make([]domain.Setting, 0, len(f.values))
	for k, v := range f.values {
		settings = append(settings, domain.Setting{Key: k, Value: v})
	}
	return settings, nil
}
