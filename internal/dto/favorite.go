package dto

import (
	"github.com/shopspring/decimal"

	"github.com/zenledger/ledger_backend/internal/core/domain"
)

// CreateFavoriteRequest defines the data needed to create a favorite
// template. Which account reference is required depends on the type; the
// service enforces that.
type CreateFavoriteRequest struct {
	Name               string `json:"name" binding:"required"`
	Type               string `json:"type" binding:"required,oneof=expense revenue borrow lend"`
	FromAccountID      *int64 `json:"fromAccountId"`
	ToAccountID        *int64 `json:"toAccountId"`
	CategoryAccountID  int64  `json:"categoryAccountId" binding:"required"`
	DefaultDescription string `json:"defaultDescription"`
}

// FavoriteResponse defines the data returned for a favorite template.
type FavoriteResponse struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	Type               string `json:"type"`
	FromAccountID      *int64 `json:"fromAccountId,omitempty"`
	ToAccountID        *int64 `json:"toAccountId,omitempty"`
	CategoryAccountID  int64  `json:"categoryAccountId"`
	DefaultDescription string `json:"defaultDescription,omitempty"`
}

// ToFavoriteResponse converts a domain.FavoriteTemplate to FavoriteResponse DTO
func ToFavoriteResponse(fav *domain.FavoriteTemplate) FavoriteResponse {
	return FavoriteResponse{
		ID:                 fav.ID,
		Name:               fav.Name,
		Type:               string(fav.Type),
		FromAccountID:      fav.FromAccountID,
		ToAccountID:        fav.ToAccountID,
		CategoryAccountID:  fav.CategoryAccountID,
		DefaultDescription: fav.DefaultDescription,
	}
}

// ExpandFavoriteRequest asks a favorite template to be expanded into journal
// lines. Amount is given in the currency identified by CurrencyID (default
// entry currency when nil) and converted to the default currency before the
// lines are built.
type ExpandFavoriteRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required,gt=0"`
	CurrencyID  *int64          `json:"currencyId"`
	Description string          `json:"description"`
	Date        string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

// ExpandFavoriteResponse is a ready-to-post entry skeleton.
type ExpandFavoriteResponse struct {
	Date        string              `json:"date"`
	Description string              `json:"description"`
	Lines       []EntryLineResponse `json:"lines"`
}
