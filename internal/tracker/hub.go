package tracker

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"pasarumkm/internal/domain"
)

// Update is one authoritative change pushed to subscribers of an order.
type Update struct {
	OrderID       string               `json:"order_id"`
	Status        domain.OrderStatus   `json:"status"`
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
	At            time.Time            `json:"at"`
}

// Hub fans order status changes out to per-order subscribers. A slow or
// gone subscriber never blocks a publish; its update is dropped, which is
// acceptable because the client also runs a time-based estimate.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[chan Update]struct{}
	log  *logrus.Logger
}

func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		subs: make(map[string]map[chan Update]struct{}),
		log:  logger,
	}
}

// Subscribe registers interest in one order id. The returned cancel func
// must be called when the subscriber goes away; it closes the channel.
func (h *Hub) Subscribe(orderID string) (<-chan Update, func()) {
	ch := make(chan Update, 8)

	h.mu.Lock()
	if h.subs[orderID] == nil {
		h.subs[orderID] = make(map[chan Update]struct{})
	}
	h.subs[orderID][ch] = struct{}{}
	h.mu.Unlock()

	h.log.Debugf("Tracker: new subscriber for order %s", orderID)

	cancel := func() {
		h.mu.Lock()
		if set, ok := h.subs[orderID]; ok {
			if _, ok := set[ch]; ok {
				delete(set, ch)
				close(ch)
			}
			if len(set) == 0 {
				delete(h.subs, orderID)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers an update to every current subscriber of the order.
func (h *Hub) Publish(update Update) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs[update.OrderID] {
		select {
		case ch <- update:
		default:
			h.log.Warnf("Tracker: dropping update for order %s, subscriber buffer full", update.OrderID)
		}
	}
}

// SubscriberCount reports how many clients follow an order.
func (h *Hub) SubscriberCount(orderID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[orderID])
}
