package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/service"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/validator"
)

// CartHandler handles HTTP requests for cart endpoints.
type CartHandler struct {
	cart    *service.CartService
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(cart *service.CartService, c *catalog.Catalog, logger *slog.Logger) *CartHandler {
	return &CartHandler{cart: cart, catalog: c, logger: logger}
}

// --- Request DTOs ---

// AddItemRequest is the JSON request body for adding a product to the cart.
// A missing quantity adds one unit.
type AddItemRequest struct {
	ProductID  string `json:"productId" validate:"required,slug"`
	CategoryID string `json:"categoryId" validate:"required,slug"`
	Quantity   *int   `json:"quantity"`
}

// UpdateQuantityRequest is the JSON request body for replacing a quantity.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// MergeRequest is the JSON request body for merging cart lines.
type MergeRequest struct {
	Items []domain.CartItem `json:"items" validate:"required"`
}

// --- Response DTOs ---

type cartResponse struct {
	Items          []domain.CartItem       `json:"items"`
	Count          int                     `json:"count"`
	Total          decimal.Decimal         `json:"total"`
	FormattedTotal string                  `json:"formattedTotal"`
	Initialized    bool                    `json:"initialized"`
	StoreError     *httputil.ErrorResponse `json:"storeError,omitempty"`
}

// --- Handlers ---

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.writeCart(w, http.StatusOK)
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	p, err := h.catalog.GetProduct(req.CategoryID, req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if err := h.cart.AddToCart(r.Context(), p, quantity); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.writeCart(w, http.StatusOK)
}

// UpdateItemQuantity handles PUT /api/v1/cart/items/{categoryId}/{productId}
func (h *CartHandler) UpdateItemQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	err := h.cart.UpdateQuantity(r.Context(), chi.URLParam(r, "productId"), chi.URLParam(r, "categoryId"), *req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.writeCart(w, http.StatusOK)
}

// RemoveItem handles DELETE /api/v1/cart/items/{categoryId}/{productId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.cart.RemoveFromCart(r.Context(), chi.URLParam(r, "productId"), chi.URLParam(r, "categoryId"))
	h.writeCart(w, http.StatusOK)
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.cart.ClearCart(r.Context())
	h.writeCart(w, http.StatusOK)
}

// Merge handles POST /api/v1/cart/merge
func (h *CartHandler) Merge(w http.ResponseWriter, r *http.Request) {
	var req MergeRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	h.cart.MergeCarts(r.Context(), req.Items)
	h.writeCart(w, http.StatusOK)
}

// --- Helpers ---

func (h *CartHandler) writeCart(w http.ResponseWriter, status int) {
	httputil.WriteData(w, status, newCartResponse(h.cart))
}

func newCartResponse(cart *service.CartService) cartResponse {
	summary := cart.GetCartSummary()
	return cartResponse{
		Items:          cart.Items(),
		Count:          summary.Count,
		Total:          summary.Total,
		FormattedTotal: summary.FormattedTotal,
		Initialized:    cart.Initialized(),
		StoreError:     storeErrorView(cart.LastError()),
	}
}

// storeErrorView exposes a store's recorded error to the UI without
// failing the request that observed it.
func storeErrorView(err error) *httputil.ErrorResponse {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return &httputil.ErrorResponse{Code: appErr.Code, Message: appErr.Message}
	}
	return &httputil.ErrorResponse{Code: "INTERNAL_ERROR", Message: "an internal error occurred"}
}
