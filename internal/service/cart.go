package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Sule971/luxe-vogue-boutique/internal/domain"
	"github.com/Sule971/luxe-vogue-boutique/internal/event"
	"github.com/Sule971/luxe-vogue-boutique/internal/storage"
	"github.com/Sule971/luxe-vogue-boutique/pkg/logger"
)

// CartService holds the session cart. Every mutation is written through to
// the store before it returns.
type CartService struct {
	mu       sync.RWMutex
	lines    domain.Lines
	store    storage.Store
	producer event.Publisher
	logger   *slog.Logger
}

// NewCartService creates a cart service and loads any persisted cart.
func NewCartService(ctx context.Context, store storage.Store, producer event.Publisher, logger *slog.Logger) *CartService {
	s := &CartService{
		lines:    domain.Lines{},
		store:    store,
		producer: producer,
		logger:   logger,
	}

	var saved domain.Lines
	if store.Load(ctx, storage.KeyCart, &saved) {
		s.lines = sanitizeLines(saved)
	}
	return s
}

// sanitizeLines drops lines without a product id or with a quantity below 1,
// merges duplicate products and caps quantities, so a hand-edited value
// cannot break the one-line-per-product rule.
func sanitizeLines(in domain.Lines) domain.Lines {
	out := make(domain.Lines, 0, len(in))
	for _, l := range in {
		if l.Product.ID == "" || l.Quantity < 1 {
			continue
		}
		if i := out.Index(l.Product.ID); i >= 0 {
			out[i].Quantity = addQuantity(out[i].Quantity, l.Quantity)
			continue
		}
		l.Quantity = domain.ClampQuantity(l.Quantity)
		out = append(out, l)
	}
	return out
}

// addQuantity merges two positive quantities without passing
// domain.MaxLineQuantity. Both inputs are clamped first so the sum cannot
// overflow.
func addQuantity(have, extra int) int {
	return domain.ClampQuantity(domain.ClampQuantity(have) + domain.ClampQuantity(extra))
}

// AddToCart adds quantity of product, merging into an existing line for the
// same product id. Quantities below 1 are treated as 1 and a line never holds
// more than domain.MaxLineQuantity.
func (s *CartService) AddToCart(ctx context.Context, product domain.Product, quantity int) domain.Lines {
	quantity = domain.ClampQuantity(quantity)

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.lines.Index(product.ID); i >= 0 {
		s.lines[i].Quantity = addQuantity(s.lines[i].Quantity, quantity)
	} else {
		s.lines = append(s.lines, domain.CartLine{Product: product, Quantity: quantity})
	}

	s.commit(ctx)
	return s.lines.Clone()
}

// RemoveFromCart removes the line for productID. Unknown ids are a no-op.
func (s *CartService) RemoveFromCart(ctx context.Context, productID string) domain.Lines {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.lines.Index(productID)
	if i < 0 {
		return s.lines.Clone()
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)

	s.commit(ctx)
	return s.lines.Clone()
}

// UpdateQuantity sets the quantity of the line for productID. A quantity
// below 1 removes the line and one above domain.MaxLineQuantity is capped.
// Unknown ids are a no-op.
func (s *CartService) UpdateQuantity(ctx context.Context, productID string, quantity int) domain.Lines {
	if quantity < 1 {
		return s.RemoveFromCart(ctx, productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.lines.Index(productID)
	if i < 0 {
		return s.lines.Clone()
	}
	s.lines[i].Quantity = domain.ClampQuantity(quantity)

	s.commit(ctx)
	return s.lines.Clone()
}

// ClearCart empties the cart.
func (s *CartService) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = domain.Lines{}
	s.store.Save(ctx, storage.KeyCart, s.lines)

	if err := s.producer.PublishCartCleared(ctx); err != nil {
		logger.WithContext(ctx, s.logger).ErrorContext(ctx, "failed to publish cart cleared event",
			slog.String("error", err.Error()),
		)
	}
}

// RemoveOrdered takes the ordered lines out of the cart. Each ordered
// quantity is subtracted from the matching line, so units added after the
// order was priced stay in the cart. An order covering the whole cart
// clears it.
func (s *CartService) RemoveOrdered(ctx context.Context, ordered domain.Lines) domain.Lines {
	s.mu.Lock()
	remaining := make(domain.Lines, 0, len(s.lines))
	for _, l := range s.lines {
		if i := ordered.Index(l.Product.ID); i >= 0 {
			l.Quantity -= ordered[i].Quantity
		}
		if l.Quantity >= 1 {
			remaining = append(remaining, l)
		}
	}
	if len(remaining) > 0 {
		s.lines = remaining
		s.commit(ctx)
		out := s.lines.Clone()
		s.mu.Unlock()
		return out
	}
	s.mu.Unlock()

	s.ClearCart(ctx)
	return domain.Lines{}
}

// commit persists the current lines and publishes a cart.updated event.
// Callers hold s.mu.
func (s *CartService) commit(ctx context.Context) {
	s.store.Save(ctx, storage.KeyCart, s.lines)

	if err := s.producer.PublishCartUpdated(ctx, s.lines.Clone()); err != nil {
		logger.WithContext(ctx, s.logger).ErrorContext(ctx, "failed to publish cart updated event",
			slog.String("error", err.Error()),
		)
	}
}

// Items returns a copy of the cart lines in insertion order.
func (s *CartService) Items() domain.Lines {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lines.Clone()
}

// Subtotal returns the cart total in cents, without shipping.
func (s *CartService) Subtotal() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lines.Subtotal()
}

// TotalItems returns the sum of quantities.
func (s *CartService) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lines.TotalItems()
}

// IsEmpty reports whether the cart has no lines.
func (s *CartService) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines) == 0
}
