// Package http exposes the storefront session over JSON.
package http

import (
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/Sule971/luxe-vogue-boutique/internal/catalog"
	"github.com/Sule971/luxe-vogue-boutique/internal/navigation"
	"github.com/Sule971/luxe-vogue-boutique/internal/notify"
	"github.com/Sule971/luxe-vogue-boutique/internal/service"
	apperrors "github.com/Sule971/luxe-vogue-boutique/pkg/errors"
	"github.com/Sule971/luxe-vogue-boutique/pkg/httputil"
)

// Services are the session components the handlers serve.
type Services struct {
	Catalog  *catalog.Catalog
	Cart     *service.CartService
	Wishlist *service.WishlistService
	Auth     *service.AuthService
	Checkout *service.CheckoutService
	Orders   *service.OrderHistory
	Feed     *notify.Feed
	Location *navigation.Location
}

// Handler handles HTTP requests for the storefront session.
type Handler struct {
	svc    Services
	logger *slog.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewHandler creates a new storefront HTTP handler.
func NewHandler(svc Services, logger *slog.Logger) *Handler {
	seed := uint64(time.Now().UnixNano())
	return &Handler{
		svc:    svc,
		logger: logger,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	httputil.WriteError(w, r, err, h.logger)
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 0, apperrors.InvalidInput(name + " must be a non-negative integer")
	}
	return n, nil
}
