package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/zenledger/ledger_backend/internal/apperrors"
	"github.com/zenledger/ledger_backend/internal/core/domain"
	"github.com/zenledger/ledger_backend/internal/core/services"
	"github.com/zenledger/ledger_backend/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         *services.AccountService
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByName", mock.Anything, "Petty Cash").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("SaveAccount", mock.Anything, mock.AnythingOfType("*domain.Account")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Account).ID = 17
		}).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{Name: "Petty Cash", Type: "Asset"})

	suite.Require().NoError(err)
	suite.Equal(int64(17), account.ID)
	suite.Equal(domain.Asset, account.Type)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateNameCaseInsensitive() {
	ctx := context.Background()
	existing := domain.Account{ID: 1, Name: "Cash", Type: domain.Asset}
	suite.mockAccountRepo.On("FindAccountByName", mock.Anything, "CASH").Return(&existing, nil).Once()

	_, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{Name: "CASH", Type: "Asset"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicateName)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_MissingParent() {
	ctx := context.Background()
	parentID := int64(99)
	suite.mockAccountRepo.On("FindAccountByName", mock.Anything, "Petty Cash").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, parentID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{Name: "Petty Cash", Type: "Asset", ParentID: &parentID})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidParent)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_RejectsSelfParent() {
	ctx := context.Background()
	account := domain.Account{ID: 5, Name: "Equipment", Type: domain.Asset}
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, int64(5)).Return(&account, nil).Once()

	selfID := int64(5)
	_, err := suite.service.UpdateAccount(ctx, 5, dto.UpdateAccountRequest{ParentID: &selfID})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidParent)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_RejectsCycle() {
	ctx := context.Background()
	// 5 is the parent of 6; moving 5 under 6 would close a loop.
	parent := domain.Account{ID: 5, Name: "Equipment", Type: domain.Asset}
	child := domain.Account{ID: 6, Name: "Laptops", Type: domain.Asset, ParentID: &parent.ID}
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, int64(5)).Return(&parent, nil)
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, int64(6)).Return(&child, nil)

	_, err := suite.service.UpdateAccount(ctx, 5, dto.UpdateAccountRequest{ParentID: &child.ID})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidParent)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_GuardErrorsPropagate() {
	ctx := context.Background()
	suite.mockAccountRepo.On("DeleteAccount", ctx, int64(3)).Return(apperrors.ErrHasChildren).Once()
	suite.mockAccountRepo.On("DeleteAccount", ctx, int64(4)).Return(apperrors.ErrInUse).Once()

	suite.ErrorIs(suite.service.DeleteAccount(ctx, 3), apperrors.ErrHasChildren)
	suite.ErrorIs(suite.service.DeleteAccount(ctx, 4), apperrors.ErrInUse)
}

func (suite *AccountServiceTestSuite) TestBuildAccountTree() {
	ctx := context.Background()
	rootID := int64(1)
	orphanParent := int64(999)
	accounts := []domain.Account{
		{ID: 1, Name: "Cash", Type: domain.Asset},
		{ID: 2, Name: "Petty Cash", Type: domain.Asset, ParentID: &rootID},
		{ID: 3, Name: "Register Float", Type: domain.Asset, ParentID: &rootID},
		{ID: 4, Name: "Stranded", Type: domain.Asset, ParentID: &orphanParent},
	}
	suite.mockAccountRepo.On("ListAccounts", mock.Anything).Return(accounts, nil).Once()

	roots, err := suite.service.BuildAccountTree(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(roots, 2, "orphaned account should be promoted to a root")
	suite.Equal("Cash", roots[0].Name)
	suite.Len(roots[0].Children, 2)
	suite.Equal("Stranded", roots[1].Name)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
