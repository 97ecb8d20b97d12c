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

type CurrencyServiceTestSuite struct {
	suite.Suite
	mockCurrencyRepo *MockCurrencyRepository
	settings         *fakeSettingStore
	service          *services.CurrencyService
	usd              domain.Currency
	eur              domain.Currency
}

func (suite *CurrencyServiceTestSuite) SetupTest() {
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.settings = newFakeSettingStore()
	suite.service = services.NewCurrencyService(suite.mockCurrencyRepo, suite.settings)

	suite.usd = domain.Currency{ID: 1, Name: "US Dollar", Code: "USD", Symbol: "$", ExchangeRate: decimal.NewFromInt(1)}
	suite.eur = domain.Currency{ID: 2, Name: "Euro", Code: "EUR", Symbol: "€", ExchangeRate: decimal.NewFromFloat(1.1)}

	suite.settings.values[domain.SettingDefaultCurrencyID] = "1"
	suite.settings.values[domain.SettingDisplayCurrencyID] = "1"
}

func (suite *CurrencyServiceTestSuite) expectCurrencies() {
	suite.mockCurrencyRepo.On("FindCurrencyByID", mock.Anything, suite.usd.ID).Return(&suite.usd, nil).Maybe()
	suite.mockCurrencyRepo.On("FindCurrencyByID", mock.Anything, suite.eur.ID).Return(&suite.eur, nil).Maybe()
}

func (suite *CurrencyServiceTestSuite) TestConvert_Identity() {
	ctx := context.Background()

	amount, err := suite.service.Convert(ctx, decimal.NewFromInt(250), suite.eur.ID, suite.eur.ID)

	suite.Require().NoError(err)
	suite.True(amount.Equal(decimal.NewFromInt(250)))
	suite.mockCurrencyRepo.AssertNotCalled(suite.T(), "FindCurrencyByID", mock.Anything, mock.Anything)
}

func (suite *CurrencyServiceTestSuite) TestConvert_ThroughDefault() {
	ctx := context.Background()
	suite.expectCurrencies()

	// 10 EUR at rate 1.1 is 11 USD.
	toUSD, err := suite.service.Convert(ctx, decimal.NewFromInt(10), suite.eur.ID, suite.usd.ID)
	suite.Require().NoError(err)
	suite.True(toUSD.Equal(decimal.NewFromInt(11)), "got %s", toUSD)

	// And 11 USD back into EUR is 10 EUR again.
	toEUR, err := suite.service.Convert(ctx, toUSD, suite.usd.ID, suite.eur.ID)
	suite.Require().NoError(err)
	suite.True(toEUR.Equal(decimal.NewFromInt(10)), "got %s", toEUR)
}

func (suite *CurrencyServiceTestSuite) TestConvert_UnknownCurrency() {
	ctx := context.Background()
	suite.mockCurrencyRepo.On("FindCurrencyByID", mock.Anything, int64(99)).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Convert(ctx, decimal.NewFromInt(10), 99, suite.usd.ID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CurrencyServiceTestSuite) TestUpdateCurrency_DefaultRateStaysPinned() {
	ctx := context.Background()
	suite.expectCurrencies()

	var updated domain.Currency
	suite.mockCurrencyRepo.On("UpdateCurrency", mock.Anything, mock.AnythingOfType("domain.Currency")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.Currency)
		}).Return(nil).Once()

	rate := decimal.NewFromFloat(2.5)
	_, err := suite.service.UpdateCurrency(ctx, suite.usd.ID, dto.UpdateCurrencyRequest{ExchangeRate: &rate})

	suite.Require().NoError(err)
	suite.True(updated.ExchangeRate.Equal(decimal.NewFromInt(1)), "default currency rate must stay 1, got %s", updated.ExchangeRate)
}

func (suite *CurrencyServiceTestSuite) TestUpdateCurrency_NonDefaultRateChanges() {
	ctx := context.Background()
	suite.expectCurrencies()

	var updated domain.Currency
	suite.mockCurrencyRepo.On("UpdateCurrency", mock.Anything, mock.AnythingOfType("domain.Currency")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.Currency)
		}).Return(nil).Once()

	rate := decimal.NewFromFloat(1.25)
	_, err := suite.service.UpdateCurrency(ctx, suite.eur.ID, dto.UpdateCurrencyRequest{ExchangeRate: &rate})

	suite.Require().NoError(err)
	suite.True(updated.ExchangeRate.Equal(rate))
}

func (suite *CurrencyServiceTestSuite) TestDeleteCurrency_DefaultRejected() {
	ctx := context.Background()
	suite.expectCurrencies()

	err := suite.service.DeleteCurrency(ctx, suite.usd.ID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrCannotDeleteDefault)
	suite.mockCurrencyRepo.AssertNotCalled(suite.T(), "DeleteCurrency", mock.Anything, mock.Anything)
}

func (suite *CurrencyServiceTestSuite) TestDeleteCurrency_NonDefault() {
	ctx := context.Background()
	suite.expectCurrencies()
	suite.mockCurrencyRepo.On("DeleteCurrency", ctx, suite.eur.ID).Return(nil).Once()

	err := suite.service.DeleteCurrency(ctx, suite.eur.ID)

	suite.Require().NoError(err)
	suite.mockCurrencyRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestDefaultCurrency_HealsDanglingSetting() {
	ctx := context.Background()
	suite.settings.values[domain.SettingDefaultCurrencyID] = "77"
	suite.mockCurrencyRepo.On("FindCurrencyByID", mock.Anything, int64(77)).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCurrencyRepo.On("ListCurrencies", mock.Anything).Return([]domain.Currency{suite.usd, suite.eur}, nil).Once()

	currency, err := suite.service.DefaultCurrency(ctx)

	suite.Require().NoError(err)
	suite.Equal(suite.usd.ID, currency.ID)
	suite.Equal("1", suite.settings.values[domain.SettingDefaultCurrencyID], "setting should be rewritten to the fallback")
}

func (suite *CurrencyServiceTestSuite) TestDefaultCurrency_NoCurrencies() {
	ctx := context.Background()
	suite.settings.values = map[string]string{}
	suite.mockCurrencyRepo.On("ListCurrencies", mock.Anything).Return([]domain.Currency{}, nil).Once()

	_, err := suite.service.DefaultCurrency(ctx)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CurrencyServiceTestSuite) TestFormatDisplay_KnownCode() {
	ctx := context.Background()
	suite.expectCurrencies()

	formatted := suite.service.FormatDisplay(ctx, decimal.NewFromFloat(1234.5), nil)

	suite.Equal("$1,234.50", formatted)
}

func (suite *CurrencyServiceTestSuite) TestFormatDisplay_ConvertsToDisplayCurrency() {
	ctx := context.Background()
	suite.expectCurrencies()
	suite.settings.values[domain.SettingDisplayCurrencyID] = "2"

	// 11 in the unit of account at rate 1.1 is 10 EUR.
	formatted := suite.service.FormatDisplay(ctx, decimal.NewFromInt(11), nil)

	suite.Equal("€10.00", formatted)
}

func (suite *CurrencyServiceTestSuite) TestFormatDisplay_UnknownCodeFallsBackToSymbol() {
	ctx := context.Background()
	suite.expectCurrencies()
	fake := domain.Currency{ID: 3, Name: "Gold Grams", Code: "XGG", Symbol: "g", ExchangeRate: decimal.NewFromInt(1)}
	suite.mockCurrencyRepo.On("FindCurrencyByID", mock.Anything, fake.ID).Return(&fake, nil).Maybe()

	formatted := suite.service.FormatDisplay(ctx, decimal.NewFromFloat(5.25), &fake.ID)

	suite.Equal("g5.25", formatted)
}

func (suite *CurrencyServiceTestSuite) TestFormatDisplay_NoCurrenciesAtAll() {
	ctx := context.Background()
	suite.settings.values = map[string]string{}
	suite.mockCurrencyRepo.On("ListCurrencies", mock.Anything).Return([]domain.Currency{}, nil)

	formatted := suite.service.FormatDisplay(ctx, decimal.NewFromFloat(9.999), nil)

	suite.Equal("10.00", formatted)
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_DuplicateCode() {
	ctx := context.Background()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", mock.Anything, "EUR").Return(&suite.eur, nil).Once()

	_, err := suite.service.CreateCurrency(ctx, dto.CreateCurrencyRequest{
		Name:         "Euro again",
		Code:         "eur",
		Symbol:       "€",
		ExchangeRate: decimal.NewFromInt(1),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicateCode)
	suite.mockCurrencyRepo.AssertNotCalled(suite.T(), "SaveCurrency", mock.Anything, mock.Anything)
}

func TestCurrencyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CurrencyServiceTestSuite))
}
