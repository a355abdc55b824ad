package domain

import "context"

// CartItem is a single line in a customer's cart. Price is in the
// smallest currency unit (rupiah has no subunit, so just rupiah).
type CartItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Image    string `json:"image,omitempty"`
	UMKM     string `json:"umkm"`
	Quantity int    `json:"quantity"`
}

// OrderRef is the snapshot kept on the cart while an order is being
// placed, so the confirmation page can still render it after the cart
// itself has been cleared.
type OrderRef struct {
	OrderID      string `json:"order_id"`
	MerchantName string `json:"merchant_name"`
	Total        int64  `json:"total"`
}

// CartState holds the items in insertion order plus an incrementally
// maintained count of all quantities. Every item present has quantity >= 1.
type CartState struct {
	Items          []CartItem `json:"items"`
	TotalItemCount int        `json:"total_item_count"`
	PendingOrder   *OrderRef  `json:"pending_order,omitempty"`
}

// NewCartState returns an empty cart.
func NewCartState() CartState {
	return CartState{Items: []CartItem{}}
}

func (s CartState) cloneItems() []CartItem {
	items := make([]CartItem, len(s.Items))
	copy(items, s.Items)
	return items
}

// AddItem merges by product id: an existing line gets its quantity bumped
// by one, otherwise a new line with quantity 1 is appended. Always succeeds.
func (s CartState) AddItem(item CartItem) CartState {
	items := s.cloneItems()
	for i := range items {
		if items[i].ID == item.ID {
			items[i].Quantity++
			return CartState{Items: items, TotalItemCount: s.TotalItemCount + 1, PendingOrder: s.PendingOrder}
		}
	}
	item.Quantity = 1
	items = append(items, item)
	return CartState{Items: items, TotalItemCount: s.TotalItemCount + 1, PendingOrder: s.PendingOrder}
}

// RemoveItem deletes the matching line. Unknown ids are a no-op, not an error.
func (s CartState) RemoveItem(id string) CartState {
	items := s.cloneItems()
	for i := range items {
		if items[i].ID == id {
			removed := items[i].Quantity
			items = append(items[:i], items[i+1:]...)
			return CartState{Items: items, TotalItemCount: s.TotalItemCount - removed, PendingOrder: s.PendingOrder}
		}
	}
	return CartState{Items: items, TotalItemCount: s.TotalItemCount, PendingOrder: s.PendingOrder}
}

// SetQuantity replaces a line's quantity. Zero (or below) behaves as
// remove; no zero-quantity line is ever stored.
func (s CartState) SetQuantity(id string, quantity int) CartState {
	if quantity <= 0 {
		return s.RemoveItem(id)
	}
	items := s.cloneItems()
	for i := range items {
		if items[i].ID == id {
			delta := quantity - items[i].Quantity
			items[i].Quantity = quantity
			return CartState{Items: items, TotalItemCount: s.TotalItemCount + delta, PendingOrder: s.PendingOrder}
		}
	}
	return CartState{Items: items, TotalItemCount: s.TotalItemCount, PendingOrder: s.PendingOrder}
}

// Clear resets to the empty state.
func (s CartState) Clear() CartState {
	return NewCartState()
}

// StartOrder records the order reference without touching the items.
// Clearing the cart after the order is created is the caller's job.
func (s CartState) StartOrder(ref OrderRef) CartState {
	return CartState{Items: s.cloneItems(), TotalItemCount: s.TotalItemCount, PendingOrder: &ref}
}

// CartUseCase applies reducer actions to the cart stored under a session
// token. Every method returns the resulting state.
type CartUseCase interface {
	GetCart(ctx context.Context, token string) (*CartState, error)
	AddItem(ctx context.Context, token string, item CartItem) (*CartState, error)
	SetQuantity(ctx context.Context, token, itemID string, quantity int) (*CartState, error)
	RemoveItem(ctx context.Context, token, itemID string) (*CartState, error)
	ClearCart(ctx context.Context, token string) (*CartState, error)
	StartOrder(ctx context.Context, token string, ref OrderRef) (*CartState, error)
}

// Subtotal sums price * quantity over all lines.
func (s CartState) Subtotal() int64 {
	var total int64
	for _, item := range s.Items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}
