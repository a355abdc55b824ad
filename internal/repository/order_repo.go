package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"pasarumkm/internal/domain"
)

type postgresOrderRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresOrderRepository(db *sql.DB, logger *logrus.Logger) domain.OrderRepository {
	return &postgresOrderRepository{
		db:  db,
		log: logger,
	}
}

// CreateOrder writes the order row and all line items in one transaction,
// so a failed item insert never leaves an orphaned order behind.
func (r *postgresOrderRepository) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.log.Errorf("Failed to begin transaction: %v", err)
		return nil, fmt.Errorf("could not start transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			r.log.Error("Recovered from panic, rolling back transaction")
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			r.log.Warnf("Rolling back order transaction due to error: %v", err)
			if rbErr := tx.Rollback(); rbErr != nil {
				r.log.Errorf("Failed to rollback transaction: %v", rbErr)
			}
		} else {
			if cErr := tx.Commit(); cErr != nil {
				r.log.Errorf("Failed to commit order transaction: %v", cErr)
				err = fmt.Errorf("failed to commit transaction: %w", cErr)
			}
		}
	}()

	var merchantID sql.NullString
	if order.MerchantID != "" {
		merchantID = sql.NullString{String: order.MerchantID, Valid: true}
	}

	orderQuery := `
        INSERT INTO orders (id, user_id, merchant_id, merchant_name, total, customer_name, customer_phone,
            delivery_method, delivery_address, note, payment_method, status, payment_status, expected_ready_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
        RETURNING status, payment_status, created_at, updated_at
    `
	err = tx.QueryRowContext(ctx, orderQuery,
		order.ID,
		order.UserID,
		merchantID,
		order.MerchantName,
		order.Total,
		order.CustomerName,
		order.CustomerPhone,
		order.DeliveryMethod,
		order.DeliveryAddress,
		order.Note,
		order.PaymentMethod,
		order.Status,
		order.PaymentStatus,
		order.ExpectedReadyAt,
	).Scan(&order.Status, &order.PaymentStatus, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		r.log.Errorf("Failed to insert order for user %d: %v", order.UserID, err)
		return nil, fmt.Errorf("could not create order entry: %w", err)
	}

	itemQuery := `
        INSERT INTO order_items (order_id, product_id, name, price, image, quantity)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	stmt, err := tx.PrepareContext(ctx, itemQuery)
	if err != nil {
		r.log.Errorf("Failed to prepare order item statement: %v", err)
		return nil, fmt.Errorf("could not prepare item statement: %w", err)
	}
	defer stmt.Close()

	for i := range order.Items {
		item := &order.Items[i]
		_, err = stmt.ExecContext(ctx, order.ID, item.ProductID, item.Name, item.Price, item.Image, item.Quantity)
		if err != nil {
			r.log.Errorf("Failed to insert order item (product: %s) for order %s: %v", item.ProductID, order.ID, err)
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" {
				return nil, fmt.Errorf("invalid item data (product: %s): %s", item.ProductID, pqErr.Message)
			}
			return nil, fmt.Errorf("could not create order item (product: %s): %w", item.ProductID, err)
		}
	}

	r.log.Infof("Order %s created successfully with %d items for user %d", order.ID, len(order.Items), order.UserID)
	return order, nil
}

func scanOrderRow(row interface{ Scan(dest ...interface{}) error }, order *domain.Order) error {
	var merchantID sql.NullString
	err := row.Scan(
		&order.ID,
		&order.UserID,
		&merchantID,
		&order.MerchantName,
		&order.Total,
		&order.CustomerName,
		&order.CustomerPhone,
		&order.DeliveryMethod,
		&order.DeliveryAddress,
		&order.Note,
		&order.PaymentMethod,
		&order.Status,
		&order.PaymentStatus,
		&order.ExpectedReadyAt,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if merchantID.Valid {
		order.MerchantID = merchantID.String
	}
	return err
}

const orderColumns = `id, user_id, merchant_id, merchant_name, total, customer_name, customer_phone,
	delivery_method, delivery_address, note, payment_method, status, payment_status, expected_ready_at,
	created_at, updated_at`

func (r *postgresOrderRepository) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1`, orderColumns)
	order := &domain.Order{}
	if err := scanOrderRow(r.db.QueryRowContext(ctx, query, id), order); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Order with ID %s not found", id)
			return nil, fmt.Errorf("order with id %s not found", id)
		}
		r.log.Errorf("Failed to get order by ID %s: %v", id, err)
		return nil, fmt.Errorf("could not retrieve order: %w", err)
	}

	items, err := r.getOrderItems(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (r *postgresOrderRepository) getOrderItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	query := `
        SELECT product_id, name, price, image, quantity
        FROM order_items
        WHERE order_id = $1
        ORDER BY id ASC
    `
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		r.log.Errorf("Failed to query order items for order %s: %v", orderID, err)
		return nil, fmt.Errorf("could not retrieve order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Price, &item.Image, &item.Quantity); err != nil {
			r.log.Errorf("Failed to scan order item row for order %s: %v", orderID, err)
			return nil, fmt.Errorf("error scanning order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}
	return items, nil
}

func (r *postgresOrderRepository) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	query := fmt.Sprintf(`
        UPDATE orders
        SET status = $1, updated_at = NOW()
        WHERE id = $2
        RETURNING %s
    `, orderColumns)

	order := &domain.Order{}
	if err := scanOrderRow(r.db.QueryRowContext(ctx, query, status, id), order); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Order with ID %s not found for status update", id)
			return nil, fmt.Errorf("order with id %s not found", id)
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" {
			r.log.Warnf("Invalid status value '%s' for order %s: %v", status, id, err)
			return nil, fmt.Errorf("invalid order status provided: %s", status)
		}
		r.log.Errorf("Failed to update status for order %s: %v", id, err)
		return nil, fmt.Errorf("could not update order status: %w", err)
	}

	items, err := r.getOrderItems(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("order status updated, but failed to retrieve items: %w", err)
	}
	order.Items = items

	r.log.Infof("Order %s status updated to '%s'", order.ID, order.Status)
	return order, nil
}

func (r *postgresOrderRepository) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) (*domain.Order, error) {
	query := fmt.Sprintf(`
        UPDATE orders
        SET payment_status = $1, updated_at = NOW()
        WHERE id = $2
        RETURNING %s
    `, orderColumns)

	order := &domain.Order{}
	if err := scanOrderRow(r.db.QueryRowContext(ctx, query, status, id), order); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("order with id %s not found", id)
		}
		r.log.Errorf("Failed to update payment status for order %s: %v", id, err)
		return nil, fmt.Errorf("could not update payment status: %w", err)
	}

	items, err := r.getOrderItems(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("payment status updated, but failed to retrieve items: %w", err)
	}
	order.Items = items

	r.log.Infof("Order %s payment status updated to '%s'", order.ID, order.PaymentStatus)
	return order, nil
}

func (r *postgresOrderRepository) ListOrdersByUserID(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM orders
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3
    `, orderColumns)
	return r.listOrders(ctx, query, userID, limit, offset)
}

func (r *postgresOrderRepository) ListOrdersByMerchantID(ctx context.Context, merchantID string, limit, offset int) ([]domain.Order, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM orders
        WHERE merchant_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3
    `, orderColumns)
	return r.listOrders(ctx, query, merchantID, limit, offset)
}

func (r *postgresOrderRepository) listOrders(ctx context.Context, query string, key interface{}, limit, offset int) ([]domain.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.QueryContext(ctx, query, key, limit, offset)
	if err != nil {
		r.log.Errorf("Failed to list orders for %v: %v", key, err)
		return nil, fmt.Errorf("could not retrieve orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	orderIDs := []string{}
	for rows.Next() {
		var order domain.Order
		if err := scanOrderRow(rows, &order); err != nil {
			r.log.Errorf("Failed to scan order row: %v", err)
			return nil, fmt.Errorf("error scanning order data: %w", err)
		}
		orders = append(orders, order)
		orderIDs = append(orderIDs, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	if len(orders) == 0 {
		return []domain.Order{}, nil
	}

	itemsQuery := `
        SELECT order_id, product_id, name, price, image, quantity
        FROM order_items
        WHERE order_id = ANY($1::uuid[])
        ORDER BY order_id, id
    `
	itemRows, err := r.db.QueryContext(ctx, itemsQuery, pq.Array(orderIDs))
	if err != nil {
		r.log.Errorf("Failed to query items for orders %v: %v", orderIDs, err)
		return nil, fmt.Errorf("could not retrieve order items for list: %w", err)
	}
	defer itemRows.Close()

	itemsMap := make(map[string][]domain.OrderItem)
	for itemRows.Next() {
		var item domain.OrderItem
		var orderID string
		if err := itemRows.Scan(&orderID, &item.ProductID, &item.Name, &item.Price, &item.Image, &item.Quantity); err != nil {
			return nil, fmt.Errorf("error scanning order item data for list: %w", err)
		}
		itemsMap[orderID] = append(itemsMap[orderID], item)
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order items for list: %w", err)
	}

	for i := range orders {
		if items, ok := itemsMap[orders[i].ID]; ok {
			orders[i].Items = items
		} else {
			orders[i].Items = []domain.OrderItem{}
		}
	}

	r.log.Debugf("Retrieved %d orders", len(orders))
	return orders, nil
}
