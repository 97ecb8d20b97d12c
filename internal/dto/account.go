package dto

import (
	"github.com/zenledger/ledger_backend/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name     string `json:"name" binding:"required"`
	Type     string `json:"type" binding:"required,oneof=Asset Liability Equity Revenue Expense Investment"`
	ParentID *int64 `json:"parentId"`
}

// UpdateAccountRequest defines the updatable account fields. Nil means "leave
// unchanged"; a ParentID of 0 detaches the account from its parent.
type UpdateAccountRequest struct {
	Name     *string `json:"name"`
	Type     *string `json:"type" binding:"omitempty,oneof=Asset Liability Equity Revenue Expense Investment"`
	ParentID *int64  `json:"parentId"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	ParentID *int64 `json:"parentId,omitempty"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		ID:       acc.ID,
		Name:     acc.Name,
		Type:     string(acc.Type),
		ParentID: acc.ParentID,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}
