package domain

import "github.com/shopspring/decimal"

// Currency represents a supported currency. ExchangeRate is the number of
// units of the default currency equal to one unit of this currency; the
// default currency itself always carries a rate of exactly 1.
type Currency struct {
	ID           int64           `json:"id"`   // Primary Key
	Name         string          `json:"name"` // e.g., "US Dollar"
	Code         string          `json:"code"` // Unique, canonical uppercase, e.g., "USD"
	Symbol       string          `json:"symbol"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
}
