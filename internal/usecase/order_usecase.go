package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"pasarumkm/internal/domain"
	"pasarumkm/internal/events"
	"pasarumkm/internal/tracker"
)

const defaultOrderPageSize = 20

type orderUseCase struct {
	orderRepo domain.OrderRepository
	publisher *events.Publisher
	hub       *tracker.Hub
	log       *logrus.Logger
	now       func() time.Time
}

func NewOrderUseCase(orderRepo domain.OrderRepository, publisher *events.Publisher, hub *tracker.Hub, logger *logrus.Logger) domain.OrderUseCase {
	return &orderUseCase{
		orderRepo: orderRepo,
		publisher: publisher,
		hub:       hub,
		log:       logger,
		now:       time.Now,
	}
}

func (uc *orderUseCase) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	if id == "" {
		return nil, errors.New("invalid order ID")
	}
	return uc.orderRepo.GetOrderByID(ctx, id)
}

func (uc *orderUseCase) ListOrdersByUserID(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, error) {
	if userID <= 0 {
		return nil, errors.New("invalid user ID")
	}
	limit, offset = normalizePage(limit, offset)
	return uc.orderRepo.ListOrdersByUserID(ctx, userID, limit, offset)
}

func (uc *orderUseCase) ListOrdersByMerchantID(ctx context.Context, merchantID string, limit, offset int) ([]domain.Order, error) {
	if merchantID == "" {
		return nil, errors.New("invalid merchant ID")
	}
	limit, offset = normalizePage(limit, offset)
	return uc.orderRepo.ListOrdersByMerchantID(ctx, merchantID, limit, offset)
}

// UpdateOrderStatus advances an order through its lifecycle on behalf of
// the owning merchant. The lifecycle only moves forward; attempts to
// regress or repeat a status are rejected.
func (uc *orderUseCase) UpdateOrderStatus(ctx context.Context, merchantID, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	if orderID == "" {
		return nil, errors.New("invalid order ID")
	}
	if !domain.IsValidStatus(status) {
		return nil, fmt.Errorf("invalid order status: %s", status)
	}

	order, err := uc.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.MerchantID == "" || order.MerchantID != merchantID {
		uc.log.Warnf("Use Case: Merchant %s attempted to update order %s it does not own", merchantID, orderID)
		return nil, errors.New("you are not authorized to update this order")
	}
	if !domain.CanTransition(order.Status, status) {
		uc.log.Warnf("Use Case: Rejected status transition %s -> %s for order %s", order.Status, status, orderID)
		return nil, fmt.Errorf("cannot change order status from %s to %s", order.Status, status)
	}

	updatedOrder, err := uc.orderRepo.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to update status of order %s: %v", orderID, err)
		return nil, err
	}

	uc.notifyStatusChange(ctx, updatedOrder)
	uc.log.Infof("Use Case: Order %s moved to status %s", orderID, status)
	return updatedOrder, nil
}

// MarkPaymentReceived lets the merchant record an offline payment (cash
// at pickup, manual transfer confirmation).
func (uc *orderUseCase) MarkPaymentReceived(ctx context.Context, merchantID, orderID string) (*domain.Order, error) {
	if orderID == "" {
		return nil, errors.New("invalid order ID")
	}

	order, err := uc.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.MerchantID == "" || order.MerchantID != merchantID {
		return nil, errors.New("you are not authorized to update this order")
	}
	if order.PaymentStatus == domain.PaymentPaid {
		return order, nil
	}

	updatedOrder, err := uc.orderRepo.UpdatePaymentStatus(ctx, orderID, domain.PaymentPaid)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to mark payment received for order %s: %v", orderID, err)
		return nil, err
	}

	uc.notifyStatusChange(ctx, updatedOrder)
	uc.log.Infof("Use Case: Payment recorded for order %s by merchant %s", orderID, merchantID)
	return updatedOrder, nil
}

func (uc *orderUseCase) notifyStatusChange(ctx context.Context, order *domain.Order) {
	uc.hub.Publish(tracker.Update{
		OrderID:       order.ID,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		At:            uc.now(),
	})
	if err := uc.publisher.PublishStatusChanged(ctx, order.ID, order.Status, order.PaymentStatus); err != nil {
		uc.log.Warnf("Use Case: Failed to publish status change for %s: %v", order.ID, err)
	}
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = defaultOrderPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
