package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Sule971/luxe-vogue-boutique/internal/catalog"
	"github.com/Sule971/luxe-vogue-boutique/internal/domain"
	apperrors "github.com/Sule971/luxe-vogue-boutique/pkg/errors"
	"github.com/Sule971/luxe-vogue-boutique/pkg/httputil"
)

// ListProducts handles GET /api/v1/products
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	minPrice, err := queryInt(r, "min_price")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	maxPrice, err := queryInt(r, "max_price")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	gender := domain.Gender(q.Get("gender"))
	if gender != "" && gender != "all" && !gender.Valid() {
		h.writeError(w, r, apperrors.InvalidInput("gender must be one of: men, women, unisex, all"))
		return
	}

	products := h.svc.Catalog.Filter(catalog.Filter{
		Category:     q.Get("category"),
		Gender:       gender,
		Collection:   q.Get("collection"),
		Search:       q.Get("search"),
		FeaturedOnly: q.Get("featured") == "true",
		MinPrice:     minPrice,
		MaxPrice:     maxPrice,
		Sort:         q.Get("sort"),
	})
	httputil.WriteData(w, http.StatusOK, nonNil(products))
}

// FeaturedProducts handles GET /api/v1/products/featured
func (h *Handler) FeaturedProducts(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.svc.Catalog.Featured())
}

// GetProduct handles GET /api/v1/products/{id}
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, ok := h.svc.Catalog.Product(id)
	if !ok {
		h.writeError(w, r, apperrors.NotFound("product", id))
		return
	}

	httputil.WriteData(w, http.StatusOK, productView{
		Product:      p,
		InWishlist:   h.svc.Wishlist.IsInWishlist(p.ID),
		DisplayPrice: domain.FormatAmount(p.Price),
	})
}

type productView struct {
	domain.Product
	InWishlist   bool   `json:"in_wishlist"`
	DisplayPrice string `json:"display_price"`
}

// RelatedProducts handles GET /api/v1/products/{id}/related
func (h *Handler) RelatedProducts(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.svc.Catalog.Product(id); !ok {
		h.writeError(w, r, apperrors.NotFound("product", id))
		return
	}

	limit, err := queryInt(r, "limit")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, nonNil(h.svc.Catalog.Related(id, int(limit))))
}

// ListCollections handles GET /api/v1/collections
func (h *Handler) ListCollections(w http.ResponseWriter, r *http.Request) {
	gender := domain.Gender(r.URL.Query().Get("gender"))
	if gender == "" {
		httputil.WriteData(w, http.StatusOK, h.svc.Catalog.Collections())
		return
	}

	col, ok := h.svc.Catalog.CollectionForGender(gender)
	if !ok {
		h.writeError(w, r, apperrors.NotFound("collection for gender", string(gender)))
		return
	}
	httputil.WriteData(w, http.StatusOK, []domain.Collection{col})
}

// ListCategories handles GET /api/v1/categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories := h.svc.Catalog.Categories(domain.Gender(r.URL.Query().Get("gender")))
	if categories == nil {
		categories = []string{}
	}
	httputil.WriteData(w, http.StatusOK, categories)
}

// Search handles GET /api/v1/search
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, nonNil(h.svc.Catalog.Suggestions(r.URL.Query().Get("q"))))
}

func nonNil(products []domain.Product) []domain.Product {
	if products == nil {
		return []domain.Product{}
	}
	return products
}
