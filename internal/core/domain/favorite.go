package domain

// FavoriteType determines the fixed two-line debit/credit pattern a favorite
// template expands into.
type FavoriteType string

const (
	FavoriteExpense FavoriteType = "expense"
	FavoriteRevenue FavoriteType = "revenue"
	FavoriteBorrow  FavoriteType = "borrow"
	FavoriteLend    FavoriteType = "lend"
)

// ValidFavoriteType reports whether t is one of the known favorite types.
func ValidFavoriteType(t FavoriteType) bool {
	switch t {
	case FavoriteExpense, FavoriteRevenue, FavoriteBorrow, FavoriteLend:
		return true
	}
	return false
}

// FavoriteTemplate is a named shortcut that expands into a two-line journal
// entry. Which of FromAccountID/ToAccountID is required depends on Type:
// expense and lend credit the "from" account, revenue and borrow debit the
// "to" account; the counter side is always the category account.
type FavoriteTemplate struct {
	ID                 int64        `json:"id"` // Primary Key
	Name               string       `json:"name"`
	Type               FavoriteType `json:"type"`
	FromAccountID      *int64       `json:"fromAccountId"` // expense, lend
	ToAccountID        *int64       `json:"toAccountId"`   // revenue, borrow
	CategoryAccountID  int64        `json:"categoryAccountId"`
	DefaultDescription string       `json:"defaultDescription"`
}

// ReferencedAccountIDs returns every account the template points at,
// including the optional from/to references when set.
func (f *FavoriteTemplate) ReferencedAccountIDs() []int64 {
	ids := []int64{f.CategoryAccountID}
	if f.FromAccountID != nil {
		ids = append(ids, *f.FromAccountID)
	}
	if f.ToAccountID != nil {
		ids = append(ids, *f.ToAccountID)
	}
	return ids
}
