package domain

import (
	"context"
	"time"
)

type OrderStatus string

const (
	StatusNew        OrderStatus = "new"
	StatusProcessing OrderStatus = "processing"
	StatusReady      OrderStatus = "ready"
	StatusCompleted  OrderStatus = "completed"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentQRIS     PaymentMethod = "qris"
)

type DeliveryMethod string

const (
	DeliveryPickup  DeliveryMethod = "pickup"
	DeliveryCourier DeliveryMethod = "delivery"
)

func IsValidStatus(status OrderStatus) bool {
	switch status {
	case StatusNew, StatusProcessing, StatusReady, StatusCompleted:
		return true
	default:
		return false
	}
}

func IsValidPaymentMethod(method PaymentMethod) bool {
	switch method {
	case PaymentCash, PaymentTransfer, PaymentQRIS:
		return true
	default:
		return false
	}
}

func IsValidDeliveryMethod(method DeliveryMethod) bool {
	switch method {
	case DeliveryPickup, DeliveryCourier:
		return true
	default:
		return false
	}
}

// StatusRank orders the lifecycle new -> processing -> ready -> completed.
// Unknown statuses rank below everything.
func StatusRank(status OrderStatus) int {
	switch status {
	case StatusNew:
		return 0
	case StatusProcessing:
		return 1
	case StatusReady:
		return 2
	case StatusCompleted:
		return 3
	default:
		return -1
	}
}

// CanTransition permits only forward movement through the lifecycle.
// Status never regresses.
func CanTransition(from, to OrderStatus) bool {
	fromRank := StatusRank(from)
	toRank := StatusRank(to)
	return fromRank >= 0 && toRank > fromRank
}

// OrderItem is the denormalized snapshot of a product at checkout time.
type OrderItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Image     string `json:"image,omitempty"`
	Quantity  int    `json:"quantity"`
}

type Order struct {
	ID              string         `json:"id"`
	UserID          int64          `json:"user_id"`
	MerchantID      string         `json:"merchant_id,omitempty"`
	MerchantName    string         `json:"merchant_name"`
	Items           []OrderItem    `json:"items"`
	Total           int64          `json:"total"`
	CustomerName    string         `json:"customer_name"`
	CustomerPhone   string         `json:"customer_phone"`
	DeliveryMethod  DeliveryMethod `json:"delivery_method"`
	DeliveryAddress string         `json:"delivery_address,omitempty"`
	Note            string         `json:"note,omitempty"`
	PaymentMethod   PaymentMethod  `json:"payment_method"`
	Status          OrderStatus    `json:"status"`
	PaymentStatus   PaymentStatus  `json:"payment_status"`
	ExpectedReadyAt time.Time      `json:"expected_ready_at"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *Order) (*Order, error)
	GetOrderByID(ctx context.Context, id string) (*Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status OrderStatus) (*Order, error)
	UpdatePaymentStatus(ctx context.Context, id string, status PaymentStatus) (*Order, error)
	ListOrdersByUserID(ctx context.Context, userID int64, limit, offset int) ([]Order, error)
	ListOrdersByMerchantID(ctx context.Context, merchantID string, limit, offset int) ([]Order, error)
}

// CheckoutInput carries everything the customer submits at checkout
// besides the cart itself.
type CheckoutInput struct {
	CustomerName   string         `json:"customer_name"`
	CustomerPhone  string         `json:"customer_phone"`
	DeliveryMethod DeliveryMethod `json:"delivery_method"`
	AddressID      int64          `json:"address_id,omitempty"`
	DeliveryAddr   string         `json:"delivery_address,omitempty"`
	Note           string         `json:"note,omitempty"`
	PaymentMethod  PaymentMethod  `json:"payment_method"`
}

type CheckoutUseCase interface {
	Checkout(ctx context.Context, userID int64, cart CartState, input CheckoutInput) (*Order, error)
	ConfirmPayment(ctx context.Context, userID int64, orderID string) (*Order, error)
}

type OrderUseCase interface {
	GetOrderByID(ctx context.Context, id string) (*Order, error)
	ListOrdersByUserID(ctx context.Context, userID int64, limit, offset int) ([]Order, error)
	ListOrdersByMerchantID(ctx context.Context, merchantID string, limit, offset int) ([]Order, error)
	UpdateOrderStatus(ctx context.Context, merchantID, orderID string, status OrderStatus) (*Order, error)
	MarkPaymentReceived(ctx context.Context, merchantID, orderID string) (*Order, error)
}
