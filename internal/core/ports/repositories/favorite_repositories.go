package repositories

import (
	"context"

	"github.com/zenledger/ledger_backend/internal/core/domain"
)

// FavoriteReader defines read operations for favorite templates
type FavoriteReader interface {
	// FindFavoriteByID retrieves a favorite template by its ID.
	FindFavoriteByID(ctx context.Context, favoriteID int64) (*domain.FavoriteTemplate, error)

	// FindFavoriteByName retrieves a favorite template by name, case-insensitively.
	FindFavoriteByName(ctx context.Context, name string) (*domain.FavoriteTemplate, error)

	// ListFavorites retrieves all favorite templates in insertion order.
	ListFavorites(ctx context.Context) ([]domain.FavoriteTemplate, error)
}

// FavoriteWriter defines write operations for favorite templates
type FavoriteWriter interface {
	// SaveFavorite persists a new favorite template and assigns its ID.
	SaveFavorite(ctx context.Context, favorite *domain.FavoriteTemplate) error

	// DeleteFavorite removes a favorite template.
	DeleteFavorite(ctx context.Context, favoriteID int64) error
}

// FavoriteRepositoryFacade combines all favorite-related repository interfaces
type FavoriteRepositoryFacade interface {
	FavoriteReader
	FavoriteWriter
}
