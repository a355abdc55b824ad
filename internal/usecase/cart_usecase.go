package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"pasarumkm/internal/cartstore"
	"pasarumkm/internal/domain"
)

type cartUseCase struct {
	store cartstore.Store
	log   *logrus.Logger
}

func NewCartUseCase(store cartstore.Store, logger *logrus.Logger) domain.CartUseCase {
	return &cartUseCase{
		store: store,
		log:   logger,
	}
}

// load returns the stored cart or a fresh empty one. A missing cart is
// never an error, matching the reducer's total-function semantics.
func (uc *cartUseCase) load(ctx context.Context, token string) (domain.CartState, error) {
	cart, err := uc.store.Get(ctx, token)
	if err != nil {
		if errors.Is(err, cartstore.ErrCartNotFound) {
			return domain.NewCartState(), nil
		}
		return domain.CartState{}, fmt.Errorf("failed to load cart: %w", err)
	}
	return *cart, nil
}

func (uc *cartUseCase) save(ctx context.Context, token string, cart domain.CartState) (*domain.CartState, error) {
	if err := uc.store.Set(ctx, token, &cart); err != nil {
		uc.log.Errorf("Use Case: Failed to save cart for session: %v", err)
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return &cart, nil
}

func (uc *cartUseCase) GetCart(ctx context.Context, token string) (*domain.CartState, error) {
	if token == "" {
		return nil, errors.New("cart session token cannot be empty")
	}
	cart, err := uc.load(ctx, token)
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (uc *cartUseCase) AddItem(ctx context.Context, token string, item domain.CartItem) (*domain.CartState, error) {
	if token == "" {
		return nil, errors.New("cart session token cannot be empty")
	}
	if item.ID == "" {
		return nil, errors.New("item id cannot be empty")
	}
	if item.Name == "" {
		return nil, errors.New("item name cannot be empty")
	}
	if item.Price < 0 {
		return nil, errors.New("item price cannot be negative")
	}

	cart, err := uc.load(ctx, token)
	if err != nil {
		return nil, err
	}

	cart = cart.AddItem(item)
	uc.log.Infof("Use Case: Added item %s to cart (count now %d)", item.ID, cart.TotalItemCount)
	return uc.save(ctx, token, cart)
}

func (uc *cartUseCase) SetQuantity(ctx context.Context, token, itemID string, quantity int) (*domain.CartState, error) {
	if token == "" {
		return nil, errors.New("cart session token cannot be empty")
	}
	if itemID == "" {
		return nil, errors.New("item id cannot be empty")
	}
	if quantity < 0 {
		return nil, errors.New("quantity cannot be negative")
	}

	cart, err := uc.load(ctx, token)
	if err != nil {
		return nil, err
	}

	cart = cart.SetQuantity(itemID, quantity)
	uc.log.Infof("Use Case: Set quantity of %s to %d (count now %d)", itemID, quantity, cart.TotalItemCount)
	return uc.save(ctx, token, cart)
}

func (uc *cartUseCase) RemoveItem(ctx context.Context, token, itemID string) (*domain.CartState, error) {
	if token == "" {
		return nil, errors.New("cart session token cannot be empty")
	}
	if itemID == "" {
		return nil, errors.New("item id cannot be empty")
	}

	cart, err := uc.load(ctx, token)
	if err != nil {
		return nil, err
	}

	cart = cart.RemoveItem(itemID)
	uc.log.Infof("Use Case: Removed item %s from cart (count now %d)", itemID, cart.TotalItemCount)
	return uc.save(ctx, token, cart)
}

func (uc *cartUseCase) ClearCart(ctx context.Context, token string) (*domain.CartState, error) {
	if token == "" {
		return nil, errors.New("cart session token cannot be empty")
	}
	if err := uc.store.Delete(ctx, token); err != nil {
		uc.log.Errorf("Use Case: Failed to clear cart: %v", err)
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}
	cart := domain.NewCartState()
	uc.log.Info("Use Case: Cart cleared")
	return &cart, nil
}

func (uc *cartUseCase) StartOrder(ctx context.Context, token string, ref domain.OrderRef) (*domain.CartState, error) {
	if token == "" {
		return nil, errors.New("cart session token cannot be empty")
	}

	cart, err := uc.load(ctx, token)
	if err != nil {
		return nil, err
	}

	cart = cart.StartOrder(ref)
	uc.log.Infof("Use Case: Order %s referenced on cart", ref.OrderID)
	return uc.save(ctx, token, cart)
}
