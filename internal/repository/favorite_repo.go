package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"pasarumkm/internal/domain"
)

type postgresFavoriteRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresFavoriteRepository(db *sql.DB, logger *logrus.Logger) domain.FavoriteRepository {
	return &postgresFavoriteRepository{
		db:  db,
		log: logger,
	}
}

// AddFavorite is idempotent: favoriting an already-favorited merchant is
// a no-op.
func (r *postgresFavoriteRepository) AddFavorite(ctx context.Context, userID int64, merchantID string) error {
	query := `
        INSERT INTO favorites (user_id, merchant_id)
        VALUES ($1, $2)
        ON CONFLICT (user_id, merchant_id) DO NOTHING
    `
	_, err := r.db.ExecContext(ctx, query, userID, merchantID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return fmt.Errorf("merchant with id %s does not exist", merchantID)
		}
		r.log.Errorf("Failed to add favorite (user %d, merchant %s): %v", userID, merchantID, err)
		return fmt.Errorf("could not add favorite: %w", err)
	}
	return nil
}

func (r *postgresFavoriteRepository) RemoveFavorite(ctx context.Context, userID int64, merchantID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE user_id = $1 AND merchant_id = $2`, userID, merchantID)
	if err != nil {
		r.log.Errorf("Failed to remove favorite (user %d, merchant %s): %v", userID, merchantID, err)
		return fmt.Errorf("could not remove favorite: %w", err)
	}
	return nil
}

func (r *postgresFavoriteRepository) ListFavoriteMerchants(ctx context.Context, userID int64) ([]domain.Merchant, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM merchants m
        JOIN favorites f ON f.merchant_id = m.id
        WHERE f.user_id = $1
        ORDER BY f.created_at DESC
    `, prefixedMerchantColumns("m"))

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.log.Errorf("Failed to list favorites for user %d: %v", userID, err)
		return nil, fmt.Errorf("could not retrieve favorites: %w", err)
	}
	defer rows.Close()

	merchants := []domain.Merchant{}
	for rows.Next() {
		var m domain.Merchant
		if err := scanMerchant(rows, &m); err != nil {
			return nil, fmt.Errorf("error scanning favorite merchant: %w", err)
		}
		merchants = append(merchants, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating favorites: %w", err)
	}
	return merchants, nil
}

func (r *postgresFavoriteRepository) IsFavorite(ctx context.Context, userID int64, merchantID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = $1 AND merchant_id = $2)`,
		userID, merchantID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("could not check favorite: %w", err)
	}
	return exists, nil
}

func prefixedMerchantColumns(alias string) string {
	return fmt.Sprintf(`%[1]s.id, %[1]s.owner_id, %[1]s.name, %[1]s.slug, %[1]s.category, %[1]s.description,
	%[1]s.address, %[1]s.city, %[1]s.phone, %[1]s.open_hours, %[1]s.price_range, %[1]s.photos, %[1]s.tags,
	%[1]s.gmaps_embed_url, %[1]s.accepts_delivery, %[1]s.created_at, %[1]s.updated_at`, alias)
}
