package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalLine is a single debit or credit against one account. Amounts are
// always expressed in the default currency; exactly one of Debit/Credit is
// nonzero.
type JournalLine struct {
	AccountID int64           `json:"accountId"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// JournalEntry is a balanced financial event composed of two or more lines.
// Entries are append-only: once posted they are never edited or removed, and
// corrections happen through reversal entries.
type JournalEntry struct {
	ID          int64         `json:"id"` // Primary Key (engine-assigned)
	Date        time.Time     `json:"date"`
	Description string        `json:"description"`
	Lines       []JournalLine `json:"lines"`
	Attachment  string        `json:"attachment,omitempty"` // Optional base64 image
}
