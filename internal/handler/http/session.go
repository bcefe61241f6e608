package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Sule971/luxe-vogue-boutique/internal/domain"
	apperrors "github.com/Sule971/luxe-vogue-boutique/pkg/errors"
	"github.com/Sule971/luxe-vogue-boutique/pkg/httputil"
)

type orderView struct {
	domain.Order
	Steps []domain.Step `json:"steps"`
}

// ListOrders handles GET /api/v1/orders
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.svc.Orders.List())
}

// GetOrder handles GET /api/v1/orders/{id}
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	order, ok := h.svc.Orders.Get(id)
	if !ok {
		h.writeError(w, r, apperrors.NotFound("order", id))
		return
	}
	httputil.WriteData(w, http.StatusOK, orderView{Order: order, Steps: domain.Steps(order.Status)})
}

// DrainNotifications handles GET /api/v1/notifications
func (h *Handler) DrainNotifications(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.svc.Feed.Drain())
}

// CurrentLocation handles GET /api/v1/location
func (h *Handler) CurrentLocation(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, map[string]string{"path": h.svc.Location.Current()})
}

// decodeJSON decodes the request body without validating it.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}
