package dto

import (
	"github.com/shopspring/decimal"

	"github.com/zenledger/ledger_backend/internal/core/domain"
)

// CreateCurrencyRequest defines the data needed to create a new currency.
// The code is normalized to uppercase by the service.
type CreateCurrencyRequest struct {
	Name         string          `json:"name" binding:"required"`
	Code         string          `json:"code" binding:"required,len=3,alpha"`
	Symbol       string          `json:"symbol" binding:"required"`
	ExchangeRate decimal.Decimal `json:"exchangeRate" binding:"required,gt=0"`
}

// UpdateCurrencyRequest defines the updatable currency fields. Nil means
// "leave unchanged".
type UpdateCurrencyRequest struct {
	Name         *string          `json:"name"`
	Code         *string          `json:"code" binding:"omitempty,len=3,alpha"`
	Symbol       *string          `json:"symbol"`
	ExchangeRate *decimal.Decimal `json:"exchangeRate" binding:"omitempty,gt=0"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Code         string          `json:"code"`
	Symbol       string          `json:"symbol"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	IsDefault    bool            `json:"isDefault"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(curr *domain.Currency, defaultID int64) CurrencyResponse {
	return CurrencyResponse{
		ID:           curr.ID,
		Name:         curr.Name,
		Code:         curr.Code,
		Symbol:       curr.Symbol,
		ExchangeRate: curr.ExchangeRate,
		IsDefault:    curr.ID == defaultID,
	}
}

// ConvertRequest asks for a conversion between two currencies. The two-hop
// path through the default currency is applied by the service.
type ConvertRequest struct {
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	FromCurrencyID int64           `json:"fromCurrencyId" binding:"required"`
	ToCurrencyID   int64           `json:"toCurrencyId" binding:"required"`
}

// ConvertResponse carries the converted amount.
type ConvertResponse struct {
	Amount decimal.Decimal `json:"amount"`
}

// FormatRequest asks for a display rendering of an amount held in the
// default currency. CurrencyID overrides the configured display currency.
type FormatRequest struct {
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	CurrencyID *int64          `json:"currencyId"`
}

// FormatResponse carries the rendered amount.
type FormatResponse struct {
	Formatted string `json:"formatted"`
}
