package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Sule971/luxe-vogue-boutique/internal/domain"
	apperrors "github.com/Sule971/luxe-vogue-boutique/pkg/errors"
	"github.com/Sule971/luxe-vogue-boutique/pkg/httputil"
	"github.com/Sule971/luxe-vogue-boutique/pkg/validator"
)

// --- Request DTOs ---

// AddCartItemRequest is the JSON request body for adding a product to the cart.
// A missing or non-positive quantity adds one.
type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartItemRequest is the JSON request body for setting a line quantity.
// A quantity below 1 removes the line.
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// cartView is the cart as the cart page shows it. Amounts are in cents.
type cartView struct {
	Items      domain.Lines `json:"items"`
	Subtotal   int64        `json:"subtotal"`
	TotalItems int          `json:"total_items"`
}

func newCartView(lines domain.Lines) cartView {
	return cartView{Items: lines, Subtotal: lines.Subtotal(), TotalItems: lines.TotalItems()}
}

// --- Handlers ---

// GetCart handles GET /api/v1/cart
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, newCartView(h.svc.Cart.Items()))
}

// ClearCart handles DELETE /api/v1/cart
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.svc.Cart.ClearCart(r.Context())
	httputil.WriteData(w, http.StatusOK, newCartView(domain.Lines{}))
}

// AddCartItem handles POST /api/v1/cart/items
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req AddCartItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	product, ok := h.svc.Catalog.Product(req.ProductID)
	if !ok {
		h.writeError(w, r, apperrors.NotFound("product", req.ProductID))
		return
	}

	lines := h.svc.Cart.AddToCart(r.Context(), product, req.Quantity)
	httputil.WriteData(w, http.StatusOK, newCartView(lines))
}

// UpdateCartItem handles PUT /api/v1/cart/items/{productId}
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateCartItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	lines := h.svc.Cart.UpdateQuantity(r.Context(), chi.URLParam(r, "productId"), *req.Quantity)
	httputil.WriteData(w, http.StatusOK, newCartView(lines))
}

// RemoveCartItem handles DELETE /api/v1/cart/items/{productId}
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	lines := h.svc.Cart.RemoveFromCart(r.Context(), chi.URLParam(r, "productId"))
	httputil.WriteData(w, http.StatusOK, newCartView(lines))
}
