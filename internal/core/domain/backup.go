package domain

// BackupData is the portable interchange form for backup and import: a JSON
// serialization of the five record collections. Field names match the
// on-disk backup format.
type BackupData struct {
	Accounts             []Account          `json:"accounts"`
	Transactions         []JournalEntry     `json:"transactions"`
	FavoriteTransactions []FavoriteTemplate `json:"favoriteTransactions"`
	Currencies           []Currency         `json:"currencies"`
	Settings             []Setting          `json:"settings"`
}
