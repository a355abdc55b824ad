package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"pasarumkm/internal/domain"
)

type postgresMerchantRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresMerchantRepository(db *sql.DB, logger *logrus.Logger) domain.MerchantRepository {
	return &postgresMerchantRepository{
		db:  db,
		log: logger,
	}
}

const merchantColumns = `id, owner_id, name, slug, category, description, address, city, phone,
	open_hours, price_range, photos, tags, gmaps_embed_url, accepts_delivery, created_at, updated_at`

func scanMerchant(row interface{ Scan(dest ...interface{}) error }, m *domain.Merchant) error {
	return row.Scan(
		&m.ID,
		&m.OwnerID,
		&m.Name,
		&m.Slug,
		&m.Category,
		&m.Description,
		&m.Address,
		&m.City,
		&m.Phone,
		&m.OpenHours,
		&m.PriceRange,
		pq.Array(&m.Photos),
		pq.Array(&m.Tags),
		&m.GmapsEmbedURL,
		&m.AcceptsDelivery,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
}

func (r *postgresMerchantRepository) CreateMerchant(ctx context.Context, merchant *domain.Merchant) (*domain.Merchant, error) {
	query := `
        INSERT INTO merchants (id, owner_id, name, slug, category, description, address, city, phone,
            open_hours, price_range, photos, tags, gmaps_embed_url, accepts_delivery)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
        RETURNING created_at, updated_at
    `
	err := r.db.QueryRowContext(ctx, query,
		merchant.ID,
		merchant.OwnerID,
		merchant.Name,
		merchant.Slug,
		merchant.Category,
		merchant.Description,
		merchant.Address,
		merchant.City,
		merchant.Phone,
		merchant.OpenHours,
		merchant.PriceRange,
		pq.Array(merchant.Photos),
		pq.Array(merchant.Tags),
		merchant.GmapsEmbedURL,
		merchant.AcceptsDelivery,
	).Scan(&merchant.CreatedAt, &merchant.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			if strings.Contains(pqErr.Constraint, "slug") {
				r.log.Warnf("Attempted to create merchant with duplicate slug: %s", merchant.Slug)
				return nil, fmt.Errorf("merchant with slug '%s' already exists", merchant.Slug)
			}
			r.log.Warnf("User %d already owns a merchant", merchant.OwnerID)
			return nil, fmt.Errorf("merchant for this account already exists")
		}
		r.log.Errorf("Failed to create merchant '%s': %v", merchant.Name, err)
		return nil, fmt.Errorf("could not create merchant: %w", err)
	}

	r.log.Infof("Merchant created successfully: %s (slug: %s)", merchant.Name, merchant.Slug)
	return merchant, nil
}

func (r *postgresMerchantRepository) GetMerchantByID(ctx context.Context, id string) (*domain.Merchant, error) {
	query := fmt.Sprintf(`SELECT %s FROM merchants WHERE id = $1`, merchantColumns)
	merchant := &domain.Merchant{}
	if err := scanMerchant(r.db.QueryRowContext(ctx, query, id), merchant); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("merchant with id %s not found", id)
		}
		r.log.Errorf("Failed to get merchant by ID %s: %v", id, err)
		return nil, fmt.Errorf("could not retrieve merchant: %w", err)
	}
	return merchant, nil
}

func (r *postgresMerchantRepository) GetMerchantBySlug(ctx context.Context, slug string) (*domain.Merchant, error) {
	query := fmt.Sprintf(`SELECT %s FROM merchants WHERE slug = $1`, merchantColumns)
	merchant := &domain.Merchant{}
	if err := scanMerchant(r.db.QueryRowContext(ctx, query, slug), merchant); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("merchant with slug '%s' not found", slug)
		}
		r.log.Errorf("Failed to get merchant by slug %s: %v", slug, err)
		return nil, fmt.Errorf("could not retrieve merchant: %w", err)
	}
	return merchant, nil
}

func (r *postgresMerchantRepository) GetMerchantByOwnerID(ctx context.Context, ownerID int64) (*domain.Merchant, error) {
	query := fmt.Sprintf(`SELECT %s FROM merchants WHERE owner_id = $1`, merchantColumns)
	merchant := &domain.Merchant{}
	if err := scanMerchant(r.db.QueryRowContext(ctx, query, ownerID), merchant); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("merchant for user %d not found", ownerID)
		}
		r.log.Errorf("Failed to get merchant by owner %d: %v", ownerID, err)
		return nil, fmt.Errorf("could not retrieve merchant: %w", err)
	}
	return merchant, nil
}

func (r *postgresMerchantRepository) UpdateMerchant(ctx context.Context, id string, updates map[string]interface{}) (*domain.Merchant, error) {
	if len(updates) == 0 {
		return r.GetMerchantByID(ctx, id)
	}

	setClauses := []string{}
	args := []interface{}{}
	argCounter := 1

	for key, value := range updates {
		switch key {
		case "description", "address", "city", "phone", "open_hours", "price_range", "accepts_delivery", "gmaps_embed_url":
			setClauses = append(setClauses, fmt.Sprintf("%s = $%d", key, argCounter))
			args = append(args, value)
			argCounter++
		case "photos", "tags":
			setClauses = append(setClauses, fmt.Sprintf("%s = $%d", key, argCounter))
			args = append(args, pq.Array(value))
			argCounter++
		default:
			r.log.Warnf("Repository: Ignoring unknown merchant update field '%s'", key)
		}
	}
	if len(setClauses) == 0 {
		return r.GetMerchantByID(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	query := fmt.Sprintf(`
        UPDATE merchants SET %s
        WHERE id = $%d
        RETURNING %s
    `, strings.Join(setClauses, ", "), argCounter, merchantColumns)
	args = append(args, id)

	merchant := &domain.Merchant{}
	if err := scanMerchant(r.db.QueryRowContext(ctx, query, args...), merchant); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("merchant with id %s not found", id)
		}
		r.log.Errorf("Failed to update merchant %s: %v", id, err)
		return nil, fmt.Errorf("could not update merchant: %w", err)
	}

	r.log.Infof("Merchant %s updated successfully", id)
	return merchant, nil
}

func (r *postgresMerchantRepository) ListMerchants(ctx context.Context) ([]domain.Merchant, error) {
	query := fmt.Sprintf(`SELECT %s FROM merchants ORDER BY created_at DESC`, merchantColumns)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.log.Errorf("Failed to list merchants: %v", err)
		return nil, fmt.Errorf("could not retrieve merchants: %w", err)
	}
	defer rows.Close()

	var merchants []domain.Merchant
	for rows.Next() {
		var m domain.Merchant
		if err := scanMerchant(rows, &m); err != nil {
			r.log.Errorf("Failed to scan merchant row: %v", err)
			return nil, fmt.Errorf("error scanning merchant: %w", err)
		}
		merchants = append(merchants, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating merchants: %w", err)
	}
	return merchants, nil
}
