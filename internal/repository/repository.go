package repository

import (
	"context"

	"github.com/utafrali/storefront/internal/domain"
)

// CartRepository persists the cart as a whole.
type CartRepository interface {
	// Load returns an empty cart when nothing is stored. A stored value that
	// is valid JSON but not an array yields domain.ErrMalformedState.
	Load(ctx context.Context) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Clear(ctx context.Context) error
}

// WishlistRepository persists the wishlist as a whole.
type WishlistRepository interface {
	Load(ctx context.Context) (*domain.Wishlist, error)
	Save(ctx context.Context, wishlist *domain.Wishlist) error
	Clear(ctx context.Context) error
}

// PreferenceRepository persists user preferences stored as raw strings.
type PreferenceRepository interface {
	// Language returns "" when no preference has been saved.
	Language(ctx context.Context) (string, error)
	SetLanguage(ctx context.Context, lang string) error
}
