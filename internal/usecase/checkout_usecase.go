package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"pasarumkm/internal/domain"
	"pasarumkm/internal/events"
	"pasarumkm/internal/tracker"
)

const (
	prepBaseTime    = 10 * time.Minute
	prepTimePerItem = 2 * time.Minute
	prepTimeCap     = 45 * time.Minute
)

type checkoutUseCase struct {
	orderRepo    domain.OrderRepository
	merchantRepo domain.MerchantRepository
	addressRepo  domain.AddressRepository
	publisher    *events.Publisher
	hub          *tracker.Hub
	log          *logrus.Logger
	now          func() time.Time
}

func NewCheckoutUseCase(
	orderRepo domain.OrderRepository,
	merchantRepo domain.MerchantRepository,
	addressRepo domain.AddressRepository,
	publisher *events.Publisher,
	hub *tracker.Hub,
	logger *logrus.Logger,
) domain.CheckoutUseCase {
	return &checkoutUseCase{
		orderRepo:    orderRepo,
		merchantRepo: merchantRepo,
		addressRepo:  addressRepo,
		publisher:    publisher,
		hub:          hub,
		log:          logger,
		now:          time.Now,
	}
}

// Checkout turns the current cart into an order. The order row and its
// line items land in a single repository transaction; there is no
// partially-created order to clean up when the item insert fails.
func (uc *checkoutUseCase) Checkout(ctx context.Context, userID int64, cart domain.CartState, input domain.CheckoutInput) (*domain.Order, error) {
	if userID <= 0 {
		return nil, errors.New("invalid user ID")
	}
	if len(cart.Items) == 0 {
		return nil, errors.New("cart is empty")
	}
	if strings.TrimSpace(input.CustomerName) == "" {
		return nil, errors.New("customer name cannot be empty")
	}
	if strings.TrimSpace(input.CustomerPhone) == "" {
		return nil, errors.New("customer phone cannot be empty")
	}
	if !domain.IsValidDeliveryMethod(input.DeliveryMethod) {
		return nil, fmt.Errorf("invalid delivery method: %s", input.DeliveryMethod)
	}
	if !domain.IsValidPaymentMethod(input.PaymentMethod) {
		return nil, fmt.Errorf("invalid payment method: %s", input.PaymentMethod)
	}

	merchantName := cart.Items[0].UMKM
	for _, item := range cart.Items {
		if item.UMKM != merchantName {
			return nil, errors.New("cart contains items from more than one merchant")
		}
		if item.Quantity < 1 {
			return nil, fmt.Errorf("item %s has invalid quantity", item.ID)
		}
	}

	deliveryAddress, err := uc.resolveDeliveryAddress(ctx, userID, input)
	if err != nil {
		return nil, err
	}

	// Registered merchants get linked by id; directory-only merchants are
	// referenced by name alone.
	merchantID := ""
	if merchant, mErr := uc.merchantRepo.GetMerchantBySlug(ctx, domain.Slugify(merchantName)); mErr == nil {
		merchantID = merchant.ID
	}

	items := make([]domain.OrderItem, 0, len(cart.Items))
	for _, ci := range cart.Items {
		items = append(items, domain.OrderItem{
			ProductID: ci.ID,
			Name:      ci.Name,
			Price:     ci.Price,
			Image:     ci.Image,
			Quantity:  ci.Quantity,
		})
	}

	now := uc.now()
	order := &domain.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		MerchantID:      merchantID,
		MerchantName:    merchantName,
		Items:           items,
		Total:           cart.Subtotal(),
		CustomerName:    strings.TrimSpace(input.CustomerName),
		CustomerPhone:   strings.TrimSpace(input.CustomerPhone),
		DeliveryMethod:  input.DeliveryMethod,
		DeliveryAddress: deliveryAddress,
		Note:            strings.TrimSpace(input.Note),
		PaymentMethod:   input.PaymentMethod,
		Status:          domain.StatusNew,
		PaymentStatus:   domain.PaymentPending,
		ExpectedReadyAt: now.Add(estimatePrepTime(cart.TotalItemCount)),
	}

	uc.log.Infof("Use Case: Creating order %s for user %d at %s (%d items, total %d)",
		order.ID, userID, merchantName, cart.TotalItemCount, order.Total)

	createdOrder, err := uc.orderRepo.CreateOrder(ctx, order)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create order for user %d: %v", userID, err)
		return nil, err
	}

	if pubErr := uc.publisher.PublishOrderCreated(ctx, createdOrder); pubErr != nil {
		// The order exists either way; event consumers catch up later.
		uc.log.Warnf("Use Case: Failed to publish OrderCreated for %s: %v", createdOrder.ID, pubErr)
	}

	uc.log.Infof("Use Case: Order %s created successfully for user %d", createdOrder.ID, userID)
	return createdOrder, nil
}

// ConfirmPayment is the one order mutation a customer may perform.
func (uc *checkoutUseCase) ConfirmPayment(ctx context.Context, userID int64, orderID string) (*domain.Order, error) {
	if orderID == "" {
		return nil, errors.New("invalid order ID")
	}

	order, err := uc.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		uc.log.Warnf("Use Case: User %d attempted to pay order %s owned by user %d", userID, orderID, order.UserID)
		return nil, errors.New("you are not authorized to pay this order")
	}
	if order.PaymentStatus == domain.PaymentPaid {
		uc.log.Infof("Use Case: Order %s already paid, nothing to do", orderID)
		return order, nil
	}

	updatedOrder, err := uc.orderRepo.UpdatePaymentStatus(ctx, orderID, domain.PaymentPaid)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to mark order %s as paid: %v", orderID, err)
		return nil, err
	}

	uc.notifyStatusChange(ctx, updatedOrder)
	uc.log.Infof("Use Case: Payment confirmed for order %s", orderID)
	return updatedOrder, nil
}

func (uc *checkoutUseCase) notifyStatusChange(ctx context.Context, order *domain.Order) {
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

func (uc *checkoutUseCase) resolveDeliveryAddress(ctx context.Context, userID int64, input domain.CheckoutInput) (string, error) {
	if input.DeliveryMethod != domain.DeliveryCourier {
		return "", nil
	}

	if input.AddressID > 0 {
		address, err := uc.addressRepo.GetAddressByID(ctx, input.AddressID)
		if err != nil {
			return "", err
		}
		if address.UserID != userID {
			return "", errors.New("you are not authorized to use this address")
		}
		return formatAddress(address), nil
	}

	if strings.TrimSpace(input.DeliveryAddr) == "" {
		return "", errors.New("delivery orders require an address")
	}
	return strings.TrimSpace(input.DeliveryAddr), nil
}

func formatAddress(a *domain.Address) string {
	parts := []string{a.Street, a.City}
	if a.PostalCode != "" {
		parts = append(parts, a.PostalCode)
	}
	return strings.Join(parts, ", ")
}

func estimatePrepTime(itemCount int) time.Duration {
	estimate := prepBaseTime + time.Duration(itemCount)*prepTimePerItem
	if estimate > prepTimeCap {
		return prepTimeCap
	}
	return estimate
}
