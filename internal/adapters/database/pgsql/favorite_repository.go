package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zenledger/ledger_backend/internal/apperrors"
	"github.com/zenledger/ledger_backend/internal/core/domain"
	portsrepo "github.com/zenledger/ledger_backend/internal/core/ports/repositories"
)

type PgxFavoriteRepository struct {
	BaseRepository
}

// NewPgxFavoriteRepository creates a new repository for favorite templates.
func NewPgxFavoriteRepository(pool *pgxpool.Pool) portsrepo.FavoriteRepositoryFacade {
	return &PgxFavoriteRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.FavoriteRepositoryFacade = (*PgxFavoriteRepository)(nil)

// SaveFavorite inserts a new favorite template and assigns its generated ID.
func (r *PgxFavoriteRepository) SaveFavorite(ctx context.Context, favorite *domain.FavoriteTemplate) error {
	query := `
		INSERT INTO favorite_templates (name, favorite_type, from_account_id, to_account_id, category_account_id, default_description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING favorite_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		favorite.Name,
		favorite.Type,
		favorite.FromAccountID,
		favorite.ToAccountID,
		favorite.CategoryAccountID,
		favorite.DefaultDescription,
	).Scan(&favorite.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %q", apperrors.ErrDuplicateFavoriteName, favorite.Name)
		}
		return fmt.Errorf("failed to save favorite %q: %w", favorite.Name, err)
	}
	return nil
}

// FindFavoriteByName retrieves a favorite template by name, case-insensitively.
func (r *PgxFavoriteRepository) FindFavoriteByName(ctx context.Context, name string) (*domain.FavoriteTemplate, error) {
	query := `
		SELECT favorite_id, name, favorite_type, from_account_id, to_account_id, category_account_id, default_description
		FROM favorite_templates
		WHERE LOWER(name) = LOWER($1);
	`
	var favorite domain.FavoriteTemplate
	err := r.Pool.QueryRow(ctx, query, name).Scan(
		&favorite.ID,
		&favorite.Name,
		&favorite.Type,
		&favorite.FromAccountID,
		&favorite.ToAccountID,
		&favorite.CategoryAccountID,
		&favorite.DefaultDescription,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find favorite %q: %w", name, err)
	}
	return &favorite, nil
}

// DeleteFavorite removes a favorite template.
func (r *PgxFavoriteRepository) DeleteFavorite(ctx context.Context, favoriteID int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM favorite_templates WHERE favorite_id = $1;`, favoriteID)
	if err != nil {
		return fmt.Errorf("failed to delete favorite %d: %w", favoriteID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindFavoriteByID retrieves a favorite template by its ID.
func (r *PgxFavoriteRepository) FindFavoriteByID(ctx context.Context, favoriteID int64) (*domain.FavoriteTemplate, error) {
	query := `
		SELECT favorite_id, name, favorite_type, from_account_id, to_account_id, category_account_id, default_description
		FROM favorite_templates
		WHERE favorite_id = $1;
	`
	var favorite domain.FavoriteTemplate
	err := r.Pool.QueryRow(ctx, query, favoriteID).Scan(
		&favorite.ID,
		&favorite.Name,
		&favorite.Type,
		&favorite.FromAccountID,
		&favorite.ToAccountID,
		&favorite.CategoryAccountID,
		&favorite.DefaultDescription,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find favorite %d: %w", favoriteID, err)
	}
	return &favorite, nil
}

// ListFavorites retrieves all favorite templates in insertion order.
func (r *PgxFavoriteRepository) ListFavorites(ctx context.Context) ([]domain.FavoriteTemplate, error) {
	query := `
		SELECT favorite_id, name, favorite_type, from_account_id, to_account_id, category_account_id, default_description
		FROM favorite_templates
		ORDER BY favorite_id;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	favorites, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.FavoriteTemplate, error) {
		var favorite domain.FavoriteTemplate
		err := row.Scan(
			&favorite.ID,
			&favorite.Name,
			&favorite.Type,
			&favorite.FromAccountID,
			&favorite.ToAccountID,
			&favorite.CategoryAccountID,
			&favorite.DefaultDescription,
		)
		return favorite, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan favorites: %w", err)
	}
	return favorites, nil
}
