package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Sule971/luxe-vogue-boutique/internal/domain"
	apperrors "github.com/Sule971/luxe-vogue-boutique/pkg/errors"
	"github.com/Sule971/luxe-vogue-boutique/pkg/httputil"
	"github.com/Sule971/luxe-vogue-boutique/pkg/validator"
)

// WishlistItemRequest is the JSON request body for saving a product.
type WishlistItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type wishlistView struct {
	Items      []domain.Product `json:"items"`
	TotalItems int              `json:"total_items"`
}

func newWishlistView(items []domain.Product) wishlistView {
	return wishlistView{Items: items, TotalItems: len(items)}
}

// GetWishlist handles GET /api/v1/wishlist
func (h *Handler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, newWishlistView(h.svc.Wishlist.Items()))
}

// AddWishlistItem handles POST /api/v1/wishlist
func (h *Handler) AddWishlistItem(w http.ResponseWriter, r *http.Request) {
	var req WishlistItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	product, ok := h.svc.Catalog.Product(req.ProductID)
	if !ok {
		h.writeError(w, r, apperrors.NotFound("product", req.ProductID))
		return
	}

	httputil.WriteData(w, http.StatusOK, newWishlistView(h.svc.Wishlist.AddToWishlist(r.Context(), product)))
}

// RemoveWishlistItem handles DELETE /api/v1/wishlist/{productId}
func (h *Handler) RemoveWishlistItem(w http.ResponseWriter, r *http.Request) {
	items := h.svc.Wishlist.RemoveFromWishlist(r.Context(), chi.URLParam(r, "productId"))
	httputil.WriteData(w, http.StatusOK, newWishlistView(items))
}

// SyncWishlist handles POST /api/v1/wishlist/sync
func (h *Handler) SyncWishlist(w http.ResponseWriter, r *http.Request) {
	user, _ := h.svc.Auth.CurrentUser()
	result, err := h.svc.Wishlist.Sync(r.Context(), user.ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, result)
}
