package http

import (
	"net/http"

	"github.com/Sule971/luxe-vogue-boutique/internal/domain"
	"github.com/Sule971/luxe-vogue-boutique/internal/navigation"
	"github.com/Sule971/luxe-vogue-boutique/internal/service"
	"github.com/Sule971/luxe-vogue-boutique/pkg/httputil"
)

type checkoutView struct {
	service.CheckoutSnapshot
	Entered  bool           `json:"entered"`
	Redirect string         `json:"redirect,omitempty"`
	Summary  domain.Summary `json:"summary"`
}

// EnterCheckout handles GET /api/v1/checkout
func (h *Handler) EnterCheckout(w http.ResponseWriter, r *http.Request) {
	entered := h.svc.Checkout.Enter(r.Context())
	view := checkoutView{
		CheckoutSnapshot: h.svc.Checkout.Snapshot(),
		Entered:          entered,
		Summary:          h.svc.Checkout.Summary(r.URL.Query().Get("promo")),
	}
	if !entered {
		view.Redirect = navigation.PathCart
	}
	httputil.WriteData(w, http.StatusOK, view)
}

// CheckoutSummary handles GET /api/v1/checkout/summary
func (h *Handler) CheckoutSummary(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.svc.Checkout.Summary(r.URL.Query().Get("promo")))
}

// SubmitCheckout handles POST /api/v1/checkout
func (h *Handler) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	var form domain.CheckoutForm
	if err := decodeJSON(r, &form); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	snap, err := h.svc.Checkout.Submit(r.Context(), form)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	order, _ := h.svc.Orders.Get(snap.LastOrderID)
	httputil.WriteData(w, http.StatusCreated, map[string]any{
		"checkout": snap,
		"order":    order,
		"redirect": navigation.OrderConfirmationPath(order.ID),
	})
}
