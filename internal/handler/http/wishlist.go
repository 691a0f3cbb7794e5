package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/service"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/validator"
)

// WishlistHandler handles HTTP requests for wishlist endpoints.
type WishlistHandler struct {
	wishlist *service.WishlistService
	cart     *service.CartService
	catalog  *catalog.Catalog
	logger   *slog.Logger
}

// NewWishlistHandler creates a new wishlist HTTP handler.
func NewWishlistHandler(
	wishlist *service.WishlistService,
	cart *service.CartService,
	c *catalog.Catalog,
	logger *slog.Logger,
) *WishlistHandler {
	return &WishlistHandler{wishlist: wishlist, cart: cart, catalog: c, logger: logger}
}

// AddWishlistItemRequest is the JSON request body for saving a product.
type AddWishlistItemRequest struct {
	ProductID  string `json:"productId" validate:"required,slug"`
	CategoryID string `json:"categoryId" validate:"required,slug"`
}

type wishlistResponse struct {
	Items      []domain.WishlistItem   `json:"items"`
	Count      int                     `json:"count"`
	Loading    bool                    `json:"loading"`
	Added      *bool                   `json:"added,omitempty"`
	StoreError *httputil.ErrorResponse `json:"storeError,omitempty"`
}

// GetWishlist handles GET /api/v1/wishlist
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	h.writeWishlist(w, http.StatusOK, nil)
}

// AddItem handles POST /api/v1/wishlist/items. It answers 201 when the
// product was saved and 200 when it was already present.
func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddWishlistItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	p, err := h.catalog.GetProduct(req.CategoryID, req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	added := h.wishlist.AddToWishlist(r.Context(), p)
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	h.writeWishlist(w, status, &added)
}

// GetItem handles GET /api/v1/wishlist/items/{categoryId}/{productId}
func (h *WishlistHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryId")
	productID := chi.URLParam(r, "productId")

	item, ok := h.wishlist.GetItem(productID, categoryID)
	if !ok {
		httputil.WriteError(w, r, apperrors.NotFound("wishlist item", domain.WishlistKey(productID, categoryID)), h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, item)
}

// RemoveItem handles DELETE /api/v1/wishlist/items/{categoryId}/{productId}
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.wishlist.RemoveFromWishlist(r.Context(), chi.URLParam(r, "productId"), chi.URLParam(r, "categoryId"))
	h.writeWishlist(w, http.StatusOK, nil)
}

// ClearWishlist handles DELETE /api/v1/wishlist
func (h *WishlistHandler) ClearWishlist(w http.ResponseWriter, r *http.Request) {
	h.wishlist.ClearWishlist(r.Context())
	h.writeWishlist(w, http.StatusOK, nil)
}

// MoveToCart handles POST /api/v1/wishlist/items/{categoryId}/{productId}/cart
//
// One unit of the saved product is added to the cart; the wishlist entry is
// kept.
func (h *WishlistHandler) MoveToCart(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryId")
	productID := chi.URLParam(r, "productId")

	if !h.wishlist.IsInWishlist(productID, categoryID) {
		httputil.WriteError(w, r, apperrors.NotFound("wishlist item", domain.WishlistKey(productID, categoryID)), h.logger)
		return
	}

	p, err := h.catalog.GetProduct(categoryID, productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if err := h.cart.AddToCart(r.Context(), p, 1); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, newCartResponse(h.cart))
}

func (h *WishlistHandler) writeWishlist(w http.ResponseWriter, status int, added *bool) {
	httputil.WriteData(w, status, wishlistResponse{
		Items:      h.wishlist.Items(),
		Count:      h.wishlist.Count(),
		Loading:    h.wishlist.Loading(),
		Added:      added,
		StoreError: storeErrorView(h.wishlist.LastError()),
	})
}
