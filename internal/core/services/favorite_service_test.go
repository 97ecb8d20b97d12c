package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/zenledger/ledger_backend/internal/apperrors"
	"github.com/zenledger/ledger_backend/internal/core/domain"
	"github.com/zenledger/ledger_backend/internal/core/services"
	"github.com/zenledger/ledger_backend/internal/dto"
)

type FavoriteServiceTestSuite struct {
	suite.Suite
	mockFavoriteRepo *MockFavoriteRepository
	mockAccountRepo  *MockAccountRepository
	mockCurrencyRepo *MockCurrencyRepository
	settings         *fakeSettingStore
	service          *services.FavoriteService

	cashID     int64
	expenseID  int64
	revenueID  int64
	usd        domain.Currency
	eur        domain.Currency
}

func (suite *FavoriteServiceTestSuite) SetupTest() {
	suite.mockFavoriteRepo = new(MockFavoriteRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.settings = newFakeSettingStore()
	currencySvc := services.NewCurrencyService(suite.mockCurrencyRepo, suite.settings)
	suite.service = services.NewFavoriteService(suite.mockFavoriteRepo, suite.mockAccountRepo, suite.settings, currencySvc)

	suite.cashID = 1
	suite.expenseID = 2
	suite.revenueID = 3
	suite.usd = domain.Currency{ID: 1, Code: "USD", Symbol: "$", ExchangeRate: decimal.NewFromInt(1)}
	suite.eur = domain.Currency{ID: 2, Code: "EUR", Symbol: "€", ExchangeRate: decimal.NewFromFloat(1.1)}

	suite.settings.values[domain.SettingDefaultCurrencyID] = "1"
	suite.mockCurrencyRepo.On("FindCurrencyByID", mock.Anything, suite.usd.ID).Return(&suite.usd, nil).Maybe()
	suite.mockCurrencyRepo.On("FindCurrencyByID", mock.Anything, suite.eur.ID).Return(&suite.eur, nil).Maybe()
}

func (suite *FavoriteServiceTestSuite) TestExpandFavorite_Expense() {
	ctx := context.Background()
	fav := &domain.FavoriteTemplate{
		ID:                 10,
		Name:               "Coffee",
		Type:               domain.FavoriteExpense,
		FromAccountID:      &suite.cashID,
		CategoryAccountID:  suite.expenseID,
		DefaultDescription: "Morning coffee",
	}
	suite.mockFavoriteRepo.On("FindFavoriteByID", ctx, int64(10)).Return(fav, nil).Once()

	entry, err := suite.service.ExpandFavorite(ctx, 10, dto.ExpandFavoriteRequest{Amount: decimal.NewFromInt(5)})

	suite.Require().NoError(err)
	suite.Equal("Morning coffee", entry.Description)
	suite.Require().Len(entry.Lines, 2)
	suite.Equal(suite.expenseID, entry.Lines[0].AccountID)
	suite.True(entry.Lines[0].Debit.Equal(decimal.NewFromInt(5)))
	suite.Equal(suite.cashID, entry.Lines[1].AccountID)
	suite.True(entry.Lines[1].Credit.Equal(decimal.NewFromInt(5)))
}

func (suite *FavoriteServiceTestSuite) TestExpandFavorite_Revenue() {
	ctx := context.Background()
	fav := &domain.FavoriteTemplate{
		ID:                11,
		Name:              "Consulting",
		Type:              domain.FavoriteRevenue,
		ToAccountID:       &suite.cashID,
		CategoryAccountID: suite.revenueID,
	}
	suite.mockFavoriteRepo.On("FindFavoriteByID", ctx, int64(11)).Return(fav, nil).Once()

	entry, err := suite.service.ExpandFavorite(ctx, 11, dto.ExpandFavoriteRequest{Amount: decimal.NewFromInt(200)})

	suite.Require().NoError(err)
	suite.Equal(suite.cashID, entry.Lines[0].AccountID)
	suite.True(entry.Lines[0].Debit.Equal(decimal.NewFromInt(200)))
	suite.Equal(suite.revenueID, entry.Lines[1].AccountID)
	suite.True(entry.Lines[1].Credit.Equal(decimal.NewFromInt(200)))
	suite.Equal("Consulting", entry.Description, "falls back to the template name")
}

func (suite *FavoriteServiceTestSuite) TestExpandFavorite_ConvertsCurrency() {
	ctx := context.Background()
	fav := &domain.FavoriteTemplate{
		ID:                12,
		Name:              "EU client",
		Type:              domain.FavoriteRevenue,
		ToAccountID:       &suite.cashID,
		CategoryAccountID: suite.revenueID,
	}
	suite.mockFavoriteRepo.On("FindFavoriteByID", ctx, int64(12)).Return(fav, nil).Once()

	// 10 EUR at rate 1.1 lands as 11 in the unit of account.
	entry, err := suite.service.ExpandFavorite(ctx, 12, dto.ExpandFavoriteRequest{
		Amount:     decimal.NewFromInt(10),
		CurrencyID: &suite.eur.ID,
	})

	suite.Require().NoError(err)
	suite.True(entry.Lines[0].Debit.Equal(decimal.NewFromInt(11)), "got %s", entry.Lines[0].Debit)
}

func (suite *FavoriteServiceTestSuite) TestExpandFavorite_IncompleteTemplate() {
	ctx := context.Background()
	fav := &domain.FavoriteTemplate{
		ID:                13,
		Name:              "Broken",
		Type:              domain.FavoriteExpense,
		CategoryAccountID: suite.expenseID,
	}
	suite.mockFavoriteRepo.On("FindFavoriteByID", ctx, int64(13)).Return(fav, nil).Once()

	_, err := suite.service.ExpandFavorite(ctx, 13, dto.ExpandFavoriteRequest{Amount: decimal.NewFromInt(5)})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrIncompleteTemplate)
}

func (suite *FavoriteServiceTestSuite) TestCreateFavorite_ValidatesAccounts() {
	ctx := context.Background()
	suite.mockFavoriteRepo.On("FindFavoriteByName", mock.Anything, "Coffee").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.expenseID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateFavorite(ctx, dto.CreateFavoriteRequest{
		Name:              "Coffee",
		Type:              "expense",
		CategoryAccountID: suite.expenseID,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockFavoriteRepo.AssertNotCalled(suite.T(), "SaveFavorite", mock.Anything, mock.Anything)
}

func (suite *FavoriteServiceTestSuite) TestCreateFavorite_DuplicateName() {
	ctx := context.Background()
	existing := &domain.FavoriteTemplate{ID: 21, Name: "Rent", Type: domain.FavoriteExpense, CategoryAccountID: suite.expenseID}
	suite.mockFavoriteRepo.On("FindFavoriteByName", mock.Anything, "rent").Return(existing, nil).Once()

	_, err := suite.service.CreateFavorite(ctx, dto.CreateFavoriteRequest{
		Name:              "rent",
		Type:              "expense",
		CategoryAccountID: suite.expenseID,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicateFavoriteName)
	suite.mockFavoriteRepo.AssertNotCalled(suite.T(), "SaveFavorite", mock.Anything, mock.Anything)
}

func (suite *FavoriteServiceTestSuite) TestCreateFavorite_Success() {
	ctx := context.Background()
	category := domain.Account{ID: suite.expenseID, Name: "Rent Expense", Type: domain.Expense}
	cash := domain.Account{ID: suite.cashID, Name: "Cash", Type: domain.Asset}
	suite.mockFavoriteRepo.On("FindFavoriteByName", mock.Anything, "Rent").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.expenseID).Return(&category, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.cashID).Return(&cash, nil).Once()
	suite.mockFavoriteRepo.On("SaveFavorite", mock.Anything, mock.AnythingOfType("*domain.FavoriteTemplate")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.FavoriteTemplate).ID = 30
		}).Return(nil).Once()

	fav, err := suite.service.CreateFavorite(ctx, dto.CreateFavoriteRequest{
		Name:              "Rent",
		Type:              "expense",
		FromAccountID:     &suite.cashID,
		CategoryAccountID: suite.expenseID,
	})

	suite.Require().NoError(err)
	suite.Equal(int64(30), fav.ID)
	suite.mockFavoriteRepo.AssertExpectations(suite.T())
}

func TestFavoriteServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FavoriteServiceTestSuite))
}
