package domain

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// MaxQuantity is the largest quantity a single cart line may hold.
const MaxQuantity = 10

var (
	ErrInvalidQuantity  = errors.New("invalid quantity")
	ErrQuantityExceeded = errors.New("quantity exceeded")
	ErrPersistence      = errors.New("persistence failure")
	ErrMalformedState   = errors.New("malformed persisted state")
	ErrUndecodable      = errors.New("undecodable persisted state")
)

// User-facing store error messages.
const (
	MsgInvalidQuantity   = "Quantity must be at least 1"
	MsgCartLoadFailed    = "Failed to load your cart. Please refresh the page."
	MsgCartSaveFailed    = "Failed to update your cart. Please try again."
	MsgWishlistLoad      = "Failed to load your wishlist."
	MsgWishlistSave      = "Failed to update your wishlist."
	MsgLanguageLoadError = "Failed to load your language preference."
	MsgLanguageSaveError = "Failed to save your language preference."
)

// InvalidQuantity is returned when a quantity below 1 is requested.
func InvalidQuantity() *apperrors.AppError {
	return apperrors.New("INVALID_QUANTITY", MsgInvalidQuantity, http.StatusBadRequest, ErrInvalidQuantity)
}

// QuantityExceeded is returned when a line would exceed max units.
func QuantityExceeded(max int) *apperrors.AppError {
	return apperrors.New("QUANTITY_EXCEEDED",
		fmt.Sprintf("Maximum quantity of %d per product exceeded", max),
		http.StatusUnprocessableEntity, ErrQuantityExceeded)
}

// PersistenceFailure wraps a storage error. Both ErrPersistence and cause
// satisfy errors.Is on the result.
func PersistenceFailure(message string, cause error) *apperrors.AppError {
	return apperrors.New("PERSISTENCE_FAILURE", message, http.StatusInternalServerError,
		fmt.Errorf("%w: %w", ErrPersistence, cause))
}
