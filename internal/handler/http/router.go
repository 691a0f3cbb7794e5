package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/debounce"
	"github.com/utafrali/storefront/pkg/health"
	"github.com/utafrali/storefront/pkg/middleware"
)

// RouterConfig holds transport settings for NewRouter.
type RouterConfig struct {
	RequestTimeout time.Duration
	AllowedOrigins []string
	CORSMaxAge     int
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	cat *catalog.Catalog,
	cartService *service.CartService,
	wishlistService *service.WishlistService,
	languageService *service.LanguageService,
	searchDebounce *debounce.Debouncer,
	healthHandler *health.Handler,
	logger *slog.Logger,
	cfg RouterConfig,
) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins, cfg.CORSMaxAge))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(cfg.RequestTimeout))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Tracing)
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	catalogHandler := NewCatalogHandler(cat, searchDebounce, logger)
	cartHandler := NewCartHandler(cartService, cat, logger)
	wishlistHandler := NewWishlistHandler(wishlistService, cartService, cat, logger)
	localeHandler := NewLocaleHandler(languageService, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		// Catalog
		r.Get("/categories", catalogHandler.ListCategories)
		r.Get("/categories/{categoryId}", catalogHandler.GetCategory)
		r.Get("/categories/{categoryId}/products", catalogHandler.ListProducts)
		r.Get("/categories/{categoryId}/products/{productId}", catalogHandler.GetProduct)
		r.Get("/search", catalogHandler.Search)
		r.Get("/filters", catalogHandler.Filters)

		// Cart
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)

			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{categoryId}/{productId}", cartHandler.UpdateItemQuantity)
			r.Delete("/items/{categoryId}/{productId}", cartHandler.RemoveItem)
			r.Post("/merge", cartHandler.Merge)
		})

		// Wishlist
		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", wishlistHandler.GetWishlist)
			r.Delete("/", wishlistHandler.ClearWishlist)

			r.Post("/items", wishlistHandler.AddItem)
			r.Get("/items/{categoryId}/{productId}", wishlistHandler.GetItem)
			r.Delete("/items/{categoryId}/{productId}", wishlistHandler.RemoveItem)
			r.Post("/items/{categoryId}/{productId}/cart", wishlistHandler.MoveToCart)
		})

		// Locale
		r.Get("/locale", localeHandler.GetLocale)
		r.Put("/locale", localeHandler.ChangeLanguage)
	})

	return r
}
