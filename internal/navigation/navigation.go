// Package navigation tracks the page the UI should show.
package navigation

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Sule971/luxe-vogue-boutique/pkg/logger"
)

// Paths the session navigates to.
const (
	PathHome = "/"
	PathCart = "/cart"
)

// OrderConfirmationPath returns the confirmation page path for orderID.
func OrderConfirmationPath(orderID string) string {
	return "/order-confirmation/" + orderID
}

// Navigator moves the UI to another page. Navigate never fails.
type Navigator interface {
	Navigate(ctx context.Context, path string)
}

// Location records the current path for the UI to poll.
type Location struct {
	mu     sync.RWMutex
	path   string
	logger *slog.Logger
}

// NewLocation creates a Location starting at the home page.
func NewLocation(l *slog.Logger) *Location {
	return &Location{path: PathHome, logger: l}
}

// Navigate sets the current path.
func (loc *Location) Navigate(ctx context.Context, path string) {
	loc.mu.Lock()
	from := loc.path
	loc.path = path
	loc.mu.Unlock()

	logger.WithContext(ctx, loc.logger).DebugContext(ctx, "navigate",
		slog.String("from", from),
		slog.String("to", path),
	)
}

// Current returns the current path.
func (loc *Location) Current() string {
	loc.mu.RLock()
	defer loc.mu.RUnlock()
	return loc.path
}
