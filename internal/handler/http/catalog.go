package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/debounce"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/httputil"
)

// CatalogHandler serves categories, products, search and filter metadata.
type CatalogHandler struct {
	catalog *catalog.Catalog
	search  *debounce.Debouncer
	logger  *slog.Logger
}

// NewCatalogHandler creates a catalog handler. search may be nil, in which
// case settled search queries are not logged.
func NewCatalogHandler(c *catalog.Catalog, search *debounce.Debouncer, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: c, search: search, logger: logger}
}

// --- Response DTOs ---

type productListResponse struct {
	Products []domain.Product  `json:"products"`
	Total    int               `json:"total"`
	Filter   domain.FilterSpec `json:"filter"`
}

type productDetailResponse struct {
	Product domain.Product   `json:"product"`
	Related []domain.Product `json:"related"`
}

type searchResponse struct {
	Query   string           `json:"query"`
	Results []domain.Product `json:"results"`
	Total   int              `json:"total"`
}

// --- Handlers ---

// ListCategories handles GET /api/v1/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.catalog.Categories())
}

// GetCategory handles GET /api/v1/categories/{categoryId}
func (h *CatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	cat, err := h.catalog.GetCategoryByID(chi.URLParam(r, "categoryId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, cat)
}

// ListProducts handles GET /api/v1/categories/{categoryId}/products
//
// Query parameters: min_price, max_price, ratings (comma separated, 1-5)
// and categories (comma separated labels).
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	spec, err := parseFilter(r, h.catalog.MaxPrice())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	products := domain.ApplyFilter(h.catalog.GetProductsByCategory(chi.URLParam(r, "categoryId")), spec)
	httputil.WriteData(w, http.StatusOK, productListResponse{
		Products: products,
		Total:    len(products),
		Filter:   spec,
	})
}

// GetProduct handles GET /api/v1/categories/{categoryId}/products/{productId}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryId")
	productID := chi.URLParam(r, "productId")

	p, err := h.catalog.GetProduct(categoryID, productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, productDetailResponse{
		Product: p,
		Related: h.catalog.RelatedProducts(categoryID, productID, catalog.RelatedLimit),
	})
}

// Search handles GET /api/v1/search?q=
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	results := h.catalog.SearchProducts(query)

	if h.search != nil && query != "" {
		count := len(results)
		h.search.Trigger(func() {
			h.logger.Info("search settled",
				slog.String("query", query),
				slog.Int("results", count),
			)
		})
	}

	httputil.WriteData(w, http.StatusOK, searchResponse{
		Query:   query,
		Results: results,
		Total:   len(results),
	})
}

// Filters handles GET /api/v1/filters
func (h *CatalogHandler) Filters(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, domain.NewFilterOptions(h.catalog.MaxPrice()))
}

// --- Helpers ---

func parseFilter(r *http.Request, maxPrice decimal.Decimal) (domain.FilterSpec, error) {
	spec := domain.DefaultFilterSpec(maxPrice)
	q := r.URL.Query()

	if v := q.Get("min_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return spec, apperrors.InvalidInput("min_price must be a number")
		}
		spec.PriceRange.Min = d
	}
	if v := q.Get("max_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return spec, apperrors.InvalidInput("max_price must be a number")
		}
		spec.PriceRange.Max = d
	}

	for _, part := range splitList(q.Get("ratings")) {
		n, err := strconv.Atoi(part)
		if err != nil {
			return spec, apperrors.InvalidInput(fmt.Sprintf("rating %q must be an integer", part))
		}
		if !slices.Contains(spec.Ratings, n) {
			spec.Ratings = append(spec.Ratings, n)
		}
	}
	for _, label := range splitList(q.Get("categories")) {
		if !slices.Contains(spec.Categories, label) {
			spec.Categories = append(spec.Categories, label)
		}
	}

	if err := spec.Validate(maxPrice); err != nil {
		return spec, err
	}
	return spec, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
