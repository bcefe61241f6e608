package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Sule971/luxe-vogue-boutique/internal/domain"
	"github.com/Sule971/luxe-vogue-boutique/internal/notify"
	"github.com/Sule971/luxe-vogue-boutique/internal/storage"
	apperrors "github.com/Sule971/luxe-vogue-boutique/pkg/errors"
	"github.com/Sule971/luxe-vogue-boutique/pkg/logger"
)

// WishlistAPI is the remote wishlist endpoint used by Sync.
type WishlistAPI interface {
	AddToWishlist(ctx context.Context, userID, productID string) error
}

// SyncResult reports how many local entries a Sync pushed.
type SyncResult struct {
	Pushed int `json:"pushed"`
	Failed int `json:"failed"`
}

// WishlistService holds the saved products of the session.
type WishlistService struct {
	mu       sync.RWMutex
	items    []domain.Product
	store    storage.Store
	notifier notify.Notifier
	remote   WishlistAPI
	logger   *slog.Logger
}

// NewWishlistService creates a wishlist service and loads any persisted
// wishlist. remote may be nil, in which case Sync is unavailable.
func NewWishlistService(ctx context.Context, store storage.Store, notifier notify.Notifier, remote WishlistAPI, logger *slog.Logger) *WishlistService {
	s := &WishlistService{
		items:    []domain.Product{},
		store:    store,
		notifier: notifier,
		remote:   remote,
		logger:   logger,
	}

	var saved []domain.Product
	if store.Load(ctx, storage.KeyWishlist, &saved) {
		seen := make(map[string]bool, len(saved))
		for _, p := range saved {
			if p.ID == "" || seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			s.items = append(s.items, p)
		}
	}
	return s
}

func (s *WishlistService) index(productID string) int {
	for i := range s.items {
		if s.items[i].ID == productID {
			return i
		}
	}
	return -1
}

// IsInWishlist reports whether productID is saved.
func (s *WishlistService) IsInWishlist(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index(productID) >= 0
}

// AddToWishlist saves product. Saving a product twice keeps one entry and
// notifies only the first time.
func (s *WishlistService) AddToWishlist(ctx context.Context, product domain.Product) []domain.Product {
	s.mu.Lock()
	if s.index(product.ID) >= 0 {
		items := s.snapshot()
		s.mu.Unlock()
		return items
	}
	s.items = append(s.items, product)
	s.store.Save(ctx, storage.KeyWishlist, s.items)
	items := s.snapshot()
	s.mu.Unlock()

	s.notifier.Notify(ctx, notify.Success("Added to wishlist",
		fmt.Sprintf("%s has been added to your wishlist", product.Name)))
	return items
}

// RemoveFromWishlist removes productID. Unknown ids are a no-op.
func (s *WishlistService) RemoveFromWishlist(ctx context.Context, productID string) []domain.Product {
	s.mu.Lock()
	i := s.index(productID)
	if i < 0 {
		items := s.snapshot()
		s.mu.Unlock()
		return items
	}
	removed := s.items[i]
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.store.Save(ctx, storage.KeyWishlist, s.items)
	items := s.snapshot()
	s.mu.Unlock()

	s.notifier.Notify(ctx, notify.Info("Removed from wishlist",
		fmt.Sprintf("%s has been removed from your wishlist", removed.Name)))
	return items
}

// Items returns the saved products in insertion order.
func (s *WishlistService) Items() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// TotalItems returns the number of saved products.
func (s *WishlistService) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *WishlistService) snapshot() []domain.Product {
	out := make([]domain.Product, len(s.items))
	copy(out, s.items)
	return out
}

// Sync pushes every local entry to the remote wishlist of userID. Local
// state is never changed. The first remote error is returned after all
// entries have been tried.
func (s *WishlistService) Sync(ctx context.Context, userID string) (SyncResult, error) {
	if userID == "" {
		return SyncResult{}, apperrors.Unauthorized("sign in to sync your wishlist")
	}
	if s.remote == nil {
		return SyncResult{}, apperrors.ServiceUnavailable("wishlist sync is not configured")
	}

	log := logger.WithContext(ctx, s.logger)
	var (
		result   SyncResult
		firstErr error
	)
	for _, p := range s.Items() {
		if err := s.remote.AddToWishlist(ctx, userID, p.ID); err != nil {
			result.Failed++
			log.WarnContext(ctx, "failed to sync wishlist entry",
				slog.String("product_id", p.ID),
				slog.String("error", err.Error()),
			)
			if firstErr == nil {
				firstErr = err
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				break
			}
			continue
		}
		result.Pushed++
	}

	if firstErr != nil {
		s.notifier.Notify(ctx, notify.Error("Wishlist sync failed",
			apperrors.UserMessage(firstErr, "Some items could not be saved to your account")))
		return result, fmt.Errorf("sync wishlist: %w", firstErr)
	}

	log.InfoContext(ctx, "wishlist synced", slog.Int("pushed", result.Pushed))
	return result, nil
}
