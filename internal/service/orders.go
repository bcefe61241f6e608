package service

import (
	"context"
	"sync"

	"github.com/Sule971/luxe-vogue-boutique/internal/domain"
	"github.com/Sule971/luxe-vogue-boutique/internal/storage"
)

// OrderHistory is the persisted list of orders placed from this session,
// newest first.
type OrderHistory struct {
	mu     sync.RWMutex
	orders []domain.Order
	store  storage.Store
}

// NewOrderHistory creates an order history and loads any persisted orders.
func NewOrderHistory(ctx context.Context, store storage.Store) *OrderHistory {
	h := &OrderHistory{orders: []domain.Order{}, store: store}

	var saved []domain.Order
	if store.Load(ctx, storage.KeyOrders, &saved) {
		for _, o := range saved {
			if o.ID != "" {
				h.orders = append(h.orders, o)
			}
		}
	}
	return h
}

// Record prepends order to the history. An order with an id already present
// replaces the earlier entry.
func (h *OrderHistory) Record(ctx context.Context, order domain.Order) {
	h.mu.Lock()
	defer h.mu.Unlock()

	kept := make([]domain.Order, 0, len(h.orders)+1)
	kept = append(kept, order)
	for _, o := range h.orders {
		if o.ID != order.ID {
			kept = append(kept, o)
		}
	}
	h.orders = kept
	h.store.Save(ctx, storage.KeyOrders, h.orders)
}

// List returns all orders, newest first.
func (h *OrderHistory) List() []domain.Order {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]domain.Order, len(h.orders))
	copy(out, h.orders)
	return out
}

// Get returns the order with id.
func (h *OrderHistory) Get(id string) (domain.Order, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, o := range h.orders {
		if o.ID == id {
			return o, true
		}
	}
	return domain.Order{}, false
}
