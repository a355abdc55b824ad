package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"pasarumkm/internal/domain"
)

const (
	OrderCreatedQueue       = "order.created"
	OrderStatusChangedQueue = "order.status_changed"
)

// OrderCreated is emitted once when checkout succeeds.
type OrderCreated struct {
	EventType    string             `json:"eventType"`
	OrderID      string             `json:"orderId"`
	UserID       int64              `json:"userId"`
	MerchantName string             `json:"merchantName"`
	Total        int64              `json:"totalAmount"`
	Items        []domain.OrderItem `json:"items"`
	Timestamp    time.Time          `json:"timestamp"`
}

// OrderStatusChanged is emitted on every merchant- or payment-driven
// transition.
type OrderStatusChanged struct {
	EventType     string               `json:"eventType"`
	OrderID       string               `json:"orderId"`
	Status        domain.OrderStatus   `json:"status"`
	PaymentStatus domain.PaymentStatus `json:"paymentStatus"`
	Timestamp     time.Time            `json:"timestamp"`
}

// Publisher pushes order lifecycle events to RabbitMQ. A nil *Publisher
// is valid and publishes nothing, so the broker stays optional.
type Publisher struct {
	ch *amqp.Channel
}

func NewPublisher(conn *amqp.Connection) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	// Declare queues so publish never fails due to missing infra
	for _, queue := range []string{OrderCreatedQueue, OrderStatusChangedQueue} {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			return nil, fmt.Errorf("declare %s: %w", queue, err)
		}
	}

	return &Publisher{ch: ch}, nil
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.ch.Close()
}

func (p *Publisher) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	if p == nil {
		return nil
	}

	ev := OrderCreated{
		EventType:    "OrderCreated",
		OrderID:      order.ID,
		UserID:       order.UserID,
		MerchantName: order.MerchantName,
		Total:        order.Total,
		Items:        order.Items,
		Timestamp:    time.Now().UTC(),
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal OrderCreated: %w", err)
	}
	return p.publishJSON(ctx, OrderCreatedQueue, body)
}

func (p *Publisher) PublishStatusChanged(ctx context.Context, orderID string, status domain.OrderStatus, paymentStatus domain.PaymentStatus) error {
	if p == nil {
		return nil
	}

	ev := OrderStatusChanged{
		EventType:     "OrderStatusChanged",
		OrderID:       orderID,
		Status:        status,
		PaymentStatus: paymentStatus,
		Timestamp:     time.Now().UTC(),
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal OrderStatusChanged: %w", err)
	}
	return p.publishJSON(ctx, OrderStatusChangedQueue, body)
}

func (p *Publisher) publishJSON(ctx context.Context, routingKey string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		"",         // default exchange
		routingKey, // queue name as routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}
