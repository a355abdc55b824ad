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

type postgresProductRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresProductRepository(db *sql.DB, logger *logrus.Logger) domain.ProductRepository {
	return &postgresProductRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresProductRepository) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
        INSERT INTO products (id, merchant_id, name, description, price, image, category, available)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING created_at, updated_at
    `
	err := r.db.QueryRowContext(ctx, query,
		product.ID,
		product.MerchantID,
		product.Name,
		product.Description,
		product.Price,
		product.Image,
		product.Category,
		product.Available,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			r.log.Warnf("Attempted to create product for non-existent merchant: %s", product.MerchantID)
			return nil, fmt.Errorf("merchant with id %s does not exist", product.MerchantID)
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" {
			r.log.Warnf("Check constraint violation for product '%s': %s", product.Name, pqErr.Message)
			return nil, fmt.Errorf("product data constraint violation: %s", pqErr.Message)
		}
		r.log.Errorf("Failed to create product '%s': %v", product.Name, err)
		return nil, fmt.Errorf("could not create product: %w", err)
	}

	r.log.Infof("Product created successfully with ID: %s, Name: %s", product.ID, product.Name)
	return product, nil
}

func (r *postgresProductRepository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `
        SELECT id, merchant_id, name, description, price, image, category, available, created_at, updated_at
        FROM products
        WHERE id = $1
    `
	product := &domain.Product{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.MerchantID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Image,
		&product.Category,
		&product.Available,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Product with ID %s not found", id)
			return nil, fmt.Errorf("product with id %s not found", id)
		}
		r.log.Errorf("Failed to get product by ID %s: %v", id, err)
		return nil, fmt.Errorf("could not retrieve product: %w", err)
	}
	return product, nil
}

func (r *postgresProductRepository) UpdateProduct(ctx context.Context, id string, updates map[string]interface{}) (*domain.Product, error) {
	if len(updates) == 0 {
		r.log.Infof("Repository: No fields provided for product update %s. Returning current product.", id)
		return r.GetProductByID(ctx, id)
	}

	setClauses := []string{}
	args := []interface{}{}
	argCounter := 1

	for key, value := range updates {
		switch key {
		case "name", "description", "price", "image", "category", "available":
			setClauses = append(setClauses, fmt.Sprintf("%s = $%d", key, argCounter))
			args = append(args, value)
			argCounter++
		default:
			r.log.Warnf("Repository: Ignoring unknown product update field '%s'", key)
		}
	}
	if len(setClauses) == 0 {
		return r.GetProductByID(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	query := fmt.Sprintf(`
        UPDATE products SET %s
        WHERE id = $%d
        RETURNING id, merchant_id, name, description, price, image, category, available, created_at, updated_at
    `, strings.Join(setClauses, ", "), argCounter)
	args = append(args, id)

	product := &domain.Product{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&product.ID,
		&product.MerchantID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Image,
		&product.Category,
		&product.Available,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product with id %s not found", id)
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" {
			return nil, fmt.Errorf("product data constraint violation: %s", pqErr.Message)
		}
		r.log.Errorf("Failed to update product %s: %v", id, err)
		return nil, fmt.Errorf("could not update product: %w", err)
	}

	r.log.Infof("Product %s updated successfully", id)
	return product, nil
}

func (r *postgresProductRepository) DeleteProduct(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.log.Errorf("Failed to delete product %s: %v", id, err)
		return fmt.Errorf("could not delete product: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("product with id %s not found", id)
	}
	r.log.Infof("Product %s deleted successfully", id)
	return nil
}

func (r *postgresProductRepository) ListProductsByMerchantID(ctx context.Context, merchantID string) ([]domain.Product, error) {
	query := `
        SELECT id, merchant_id, name, description, price, image, category, available, created_at, updated_at
        FROM products
        WHERE merchant_id = $1
        ORDER BY created_at ASC
    `
	rows, err := r.db.QueryContext(ctx, query, merchantID)
	if err != nil {
		r.log.Errorf("Failed to list products for merchant %s: %v", merchantID, err)
		return nil, fmt.Errorf("could not retrieve products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID,
			&p.MerchantID,
			&p.Name,
			&p.Description,
			&p.Price,
			&p.Image,
			&p.Category,
			&p.Available,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			r.log.Errorf("Failed to scan product row for merchant %s: %v", merchantID, err)
			return nil, fmt.Errorf("error scanning product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	r.log.Debugf("Retrieved %d products for merchant %s", len(products), merchantID)
	return products, nil
}
