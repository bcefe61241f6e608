package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Sule971/luxe-vogue-boutique/pkg/health"
	"github.com/Sule971/luxe-vogue-boutique/pkg/middleware"
)

// RouterConfig holds the router settings that come from configuration.
type RouterConfig struct {
	ServiceName    string
	SessionID      string
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter creates a chi router with all storefront session routes registered.
func NewRouter(svc Services, healthHandler *health.Handler, cfg RouterConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger, "/health/live", "/health/ready", "/metrics"))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))
	r.Use(middleware.Tracing(cfg.ServiceName))
	r.Use(middleware.Session(sessionIdentity(cfg.SessionID, svc)))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	h := NewHandler(svc, logger)

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimitRPS > 0 {
			r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, logger))
		}
		r.Use(ContentTypeJSON)

		r.Get("/products", h.ListProducts)
		r.Get("/products/featured", h.FeaturedProducts)
		r.Get("/products/{id}", h.GetProduct)
		r.Get("/products/{id}/related", h.RelatedProducts)
		r.Get("/collections", h.ListCollections)
		r.Get("/categories", h.ListCategories)
		r.Get("/search", h.Search)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Delete("/", h.ClearCart)
			r.Post("/items", h.AddCartItem)
			r.Put("/items/{productId}", h.UpdateCartItem)
			r.Delete("/items/{productId}", h.RemoveCartItem)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", h.GetWishlist)
			r.Post("/", h.AddWishlistItem)
			r.Delete("/{productId}", h.RemoveWishlistItem)
			r.Post("/sync", h.SyncWishlist)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Login)
			r.Post("/register", h.Register)
			r.Post("/logout", h.Logout)
			r.Get("/me", h.Me)
			r.Post("/password/strength", h.PasswordStrength)
			r.Get("/password/generate", h.GeneratePassword)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", h.EnterCheckout)
			r.Get("/summary", h.CheckoutSummary)
			r.Post("/", h.SubmitCheckout)
		})

		r.Get("/orders", h.ListOrders)
		r.Get("/orders/{id}", h.GetOrder)
		r.Get("/notifications", h.DrainNotifications)
		r.Get("/location", h.CurrentLocation)
	})

	return r
}

func sessionIdentity(sessionID string, svc Services) middleware.Identity {
	return func(context.Context) (string, string) {
		if svc.Auth == nil {
			return sessionID, ""
		}
		user, _ := svc.Auth.CurrentUser()
		return sessionID, user.ID
	}
}
