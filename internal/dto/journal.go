package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zenledger/ledger_backend/internal/core/domain"
)

// EntryDateFormat is the calendar-date format used on the wire.
const EntryDateFormat = "2006-01-02"

// CreateEntryLineRequest is one debit or credit line of a candidate entry.
// Amounts are in the default currency; exactly one side must be nonzero.
type CreateEntryLineRequest struct {
	AccountID int64           `json:"accountId" binding:"required"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// CreateEntryRequest defines the data needed to post a journal entry.
type CreateEntryRequest struct {
	Date        string                   `json:"date" binding:"required,datetime=2006-01-02"`
	Description string                   `json:"description"`
	Lines       []CreateEntryLineRequest `json:"lines" binding:"required,min=2,dive"`
	Attachment  string                   `json:"attachment"`
}

// EntryLineResponse mirrors a stored journal line.
type EntryLineResponse struct {
	AccountID int64           `json:"accountId"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	ID          int64               `json:"id"`
	Date        string              `json:"date"`
	Description string              `json:"description"`
	Lines       []EntryLineResponse `json:"lines"`
	Attachment  string              `json:"attachment,omitempty"`
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse DTO
func ToEntryResponse(entry *domain.JournalEntry) EntryResponse {
	lines := make([]EntryLineResponse, len(entry.Lines))
	for i, line := range entry.Lines {
		lines[i] = EntryLineResponse{
			AccountID: line.AccountID,
			Debit:     line.Debit,
			Credit:    line.Credit,
		}
	}
	return EntryResponse{
		ID:          entry.ID,
		Date:        entry.Date.Format(EntryDateFormat),
		Description: entry.Description,
		Lines:       lines,
		Attachment:  entry.Attachment,
	}
}

// ToListEntryResponse converts a slice of domain.JournalEntry to EntryResponse DTOs
func ToListEntryResponse(entries []domain.JournalEntry) []EntryResponse {
	res := make([]EntryResponse, len(entries))
	for i, entry := range entries {
		res[i] = ToEntryResponse(&entry)
	}
	return res
}

// ParseEntryDate parses a wire-format calendar date in UTC.
func ParseEntryDate(value string) (time.Time, error) {
	return time.ParseInLocation(EntryDateFormat, value, time.UTC)
}
