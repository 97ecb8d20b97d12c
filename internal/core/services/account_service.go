package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/zenledger/ledger_backend/internal/apperrors"
	"github.com/zenledger/ledger_backend/internal/core/domain"
	portsrepo "github.com/zenledger/ledger_backend/internal/core/ports/repositories"
	"github.com/zenledger/ledger_backend/internal/dto"
	"github.com/zenledger/ledger_backend/internal/middleware"
)

type AccountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

func NewAccountService(repo portsrepo.AccountRepositoryFacade) *AccountService {
	return &AccountService{accountRepo: repo}
}

// CreateAccount validates and persists a new account. Names must be unique
// across the whole registry, compared case-insensitively.
func (s *AccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: account name must not be empty", apperrors.ErrValidation)
	}
	if !domain.ValidAccountType(domain.AccountType(req.Type)) {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.Type)
	}

	if err := s.checkNameAvailable(ctx, name, 0); err != nil {
		return nil, err
	}
	if req.ParentID != nil {
		if _, err := s.resolveParent(ctx, *req.ParentID); err != nil {
			return nil, err
		}
	}

	account := domain.Account{
		Name:     name,
		Type:     domain.AccountType(req.Type),
		ParentID: req.ParentID,
	}
	if err := s.accountRepo.SaveAccount(ctx, &account); err != nil {
		logger.Error("Failed to save account in repository", slog.String("error", err.Error()), slog.String("name", name))
		return nil, err
	}

	logger.Info("Account created", slog.Int64("account_id", account.ID), slog.String("name", account.Name))
	return &account, nil
}

// UpdateAccount applies the non-nil fields of req to an existing account.
// A ParentID of 0 detaches the account from its parent. Reparenting is
// rejected when it would introduce a cycle.
func (s *AccountService) UpdateAccount(ctx context.Context, accountID int64, req dto.UpdateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by ID in repository", slog.String("error", err.Error()), slog.Int64("account_id", accountID))
		}
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: account name must not be empty", apperrors.ErrValidation)
		}
		if !strings.EqualFold(name, account.Name) {
			if err := s.checkNameAvailable(ctx, name, accountID); err != nil {
				return nil, err
			}
		}
		account.Name = name
	}
	if req.Type != nil {
		if !domain.ValidAccountType(domain.AccountType(*req.Type)) {
			return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, *req.Type)
		}
		account.Type = domain.AccountType(*req.Type)
	}
	if req.ParentID != nil {
		if *req.ParentID == 0 {
			account.ParentID = nil
		} else {
			if *req.ParentID == accountID {
				return nil, fmt.Errorf("%w: account cannot be its own parent", apperrors.ErrInvalidParent)
			}
			if _, err := s.resolveParent(ctx, *req.ParentID); err != nil {
				return nil, err
			}
			if err := s.checkNoCycle(ctx, accountID, *req.ParentID); err != nil {
				return nil, err
			}
			account.ParentID = req.ParentID
		}
	}

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account in repository", slog.String("error", err.Error()), slog.Int64("account_id", accountID))
		return nil, err
	}

	logger.Info("Account updated", slog.Int64("account_id", account.ID))
	return account, nil
}

// DeleteAccount removes an account. The repository rejects the removal when
// the account still has children or appears on any journal line.
func (s *AccountService) DeleteAccount(ctx context.Context, accountID int64) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) &&
			!errors.Is(err, apperrors.ErrHasChildren) &&
			!errors.Is(err, apperrors.ErrInUse) {
			logger.Error("Failed to delete account in repository", slog.String("error", err.Error()), slog.Int64("account_id", accountID))
		}
		return err
	}

	logger.Info("Account deleted", slog.Int64("account_id", accountID))
	return nil
}

func (s *AccountService) GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by ID in repository", slog.String("error", err.Error()), slog.Int64("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *AccountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		logger.Error("Failed to list accounts from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// BuildAccountTree returns the registry as a forest of root nodes. Accounts
// whose parent no longer resolves are promoted to roots rather than dropped.
func (s *AccountService) BuildAccountTree(ctx context.Context) ([]*domain.AccountNode, error) {
	accounts, err := s.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	nodes := make(map[int64]*domain.AccountNode, len(accounts))
	for i := range accounts {
		nodes[accounts[i].ID] = &domain.AccountNode{Account: accounts[i]}
	}

	roots := make([]*domain.AccountNode, 0, len(accounts))
	for i := range accounts {
		node := nodes[accounts[i].ID]
		if accounts[i].ParentID != nil {
			if parent, ok := nodes[*accounts[i].ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots, nil
}

func (s *AccountService) checkNameAvailable(ctx context.Context, name string, selfID int64) error {
	existing, err := s.accountRepo.FindAccountByName(ctx, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return fmt.Errorf("%w: an account named %q already exists", apperrors.ErrDuplicateName, existing.Name)
	}
	return nil
}

func (s *AccountService) resolveParent(ctx context.Context, parentID int64) (*domain.Account, error) {
	parent, err := s.accountRepo.FindAccountByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: parent account %d does not exist", apperrors.ErrInvalidParent, parentID)
		}
		return nil, err
	}
	return parent, nil
}

// checkNoCycle walks up from the candidate parent; finding accountID on the
// ancestor chain means the reparenting would close a loop.
func (s *AccountService) checkNoCycle(ctx context.Context, accountID, parentID int64) error {
	current := parentID
	for {
		ancestor, err := s.accountRepo.FindAccountByID(ctx, current)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil
			}
			return err
		}
		if ancestor.ParentID == nil {
			return nil
		}
		if *ancestor.ParentID == accountID {
			return fmt.Errorf("%w: account %d is an ancestor of the requested parent", apperrors.ErrInvalidParent, accountID)
		}
		current = *ancestor.ParentID
	}
}
