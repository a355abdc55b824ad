package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"pasarumkm/internal/domain"
)

type postgresAddressRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresAddressRepository(db *sql.DB, logger *logrus.Logger) domain.AddressRepository {
	return &postgresAddressRepository{
		db:  db,
		log: logger,
	}
}

const addressColumns = `id, user_id, label, recipient, phone, street, city, postal_code, is_primary, created_at, updated_at`

func scanAddress(row interface{ Scan(dest ...interface{}) error }, a *domain.Address) error {
	return row.Scan(
		&a.ID,
		&a.UserID,
		&a.Label,
		&a.Recipient,
		&a.Phone,
		&a.Street,
		&a.City,
		&a.PostalCode,
		&a.IsPrimary,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
}

func (r *postgresAddressRepository) CreateAddress(ctx context.Context, address *domain.Address) (*domain.Address, error) {
	query := `
        INSERT INTO addresses (user_id, label, recipient, phone, street, city, postal_code, is_primary)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at, updated_at
    `
	err := r.db.QueryRowContext(ctx, query,
		address.UserID,
		address.Label,
		address.Recipient,
		address.Phone,
		address.Street,
		address.City,
		address.PostalCode,
		address.IsPrimary,
	).Scan(&address.ID, &address.CreatedAt, &address.UpdatedAt)
	if err != nil {
		r.log.Errorf("Failed to create address for user %d: %v", address.UserID, err)
		return nil, fmt.Errorf("could not create address: %w", err)
	}

	r.log.Infof("Address %d created for user %d", address.ID, address.UserID)
	return address, nil
}

func (r *postgresAddressRepository) GetAddressByID(ctx context.Context, id int64) (*domain.Address, error) {
	query := fmt.Sprintf(`SELECT %s FROM addresses WHERE id = $1`, addressColumns)
	address := &domain.Address{}
	if err := scanAddress(r.db.QueryRowContext(ctx, query, id), address); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("address with id %d not found", id)
		}
		r.log.Errorf("Failed to get address %d: %v", id, err)
		return nil, fmt.Errorf("could not retrieve address: %w", err)
	}
	return address, nil
}

func (r *postgresAddressRepository) ListAddressesByUserID(ctx context.Context, userID int64) ([]domain.Address, error) {
	query := fmt.Sprintf(`SELECT %s FROM addresses WHERE user_id = $1 ORDER BY is_primary DESC, created_at ASC`, addressColumns)
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.log.Errorf("Failed to list addresses for user %d: %v", userID, err)
		return nil, fmt.Errorf("could not retrieve addresses: %w", err)
	}
	defer rows.Close()

	addresses := []domain.Address{}
	for rows.Next() {
		var a domain.Address
		if err := scanAddress(rows, &a); err != nil {
			return nil, fmt.Errorf("error scanning address: %w", err)
		}
		addresses = append(addresses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating addresses: %w", err)
	}
	return addresses, nil
}

func (r *postgresAddressRepository) UpdateAddress(ctx context.Context, id int64, updates map[string]interface{}) (*domain.Address, error) {
	if len(updates) == 0 {
		return r.GetAddressByID(ctx, id)
	}

	setClauses := []string{}
	args := []interface{}{}
	argCounter := 1

	for key, value := range updates {
		switch key {
		case "label", "recipient", "phone", "street", "city", "postal_code":
			setClauses = append(setClauses, fmt.Sprintf("%s = $%d", key, argCounter))
			args = append(args, value)
			argCounter++
		default:
			r.log.Warnf("Repository: Ignoring unknown address update field '%s'", key)
		}
	}
	if len(setClauses) == 0 {
		return r.GetAddressByID(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	query := fmt.Sprintf(`
        UPDATE addresses SET %s
        WHERE id = $%d
        RETURNING %s
    `, strings.Join(setClauses, ", "), argCounter, addressColumns)
	args = append(args, id)

	address := &domain.Address{}
	if err := scanAddress(r.db.QueryRowContext(ctx, query, args...), address); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("address with id %d not found", id)
		}
		r.log.Errorf("Failed to update address %d: %v", id, err)
		return nil, fmt.Errorf("could not update address: %w", err)
	}
	return address, nil
}

func (r *postgresAddressRepository) DeleteAddress(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		r.log.Errorf("Failed to delete address %d: %v", id, err)
		return fmt.Errorf("could not delete address: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("address with id %d not found", id)
	}
	return nil
}

// SetPrimaryAddress flips the primary flag inside a transaction so a user
// never ends up with two primary addresses.
func (r *postgresAddressRepository) SetPrimaryAddress(ctx context.Context, userID, addressID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not start transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `UPDATE addresses SET is_primary = FALSE, updated_at = NOW() WHERE user_id = $1 AND is_primary`, userID); err != nil {
		r.log.Errorf("Failed to clear primary addresses for user %d: %v", userID, err)
		return fmt.Errorf("could not update addresses: %w", err)
	}

	var result sql.Result
	result, err = tx.ExecContext(ctx, `UPDATE addresses SET is_primary = TRUE, updated_at = NOW() WHERE id = $1 AND user_id = $2`, addressID, userID)
	if err != nil {
		r.log.Errorf("Failed to set primary address %d for user %d: %v", addressID, userID, err)
		return fmt.Errorf("could not update address: %w", err)
	}
	affected, raErr := result.RowsAffected()
	if raErr == nil && affected == 0 {
		err = fmt.Errorf("address with id %d not found", addressID)
		return err
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("failed to commit primary address update: %w", err)
	}
	return nil
}
