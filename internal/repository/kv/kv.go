// Package kv implements the repositories over a storage.Storage backend.
package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/storage"
)

// Keys under which state is persisted.
const (
	CartKey     = "cart"
	WishlistKey = "wishlist"
	LanguageKey = "userLanguage"
)

// CartRepository stores the cart lines as a JSON array under CartKey.
type CartRepository struct {
	store storage.Storage
}

// NewCartRepository creates a cart repository over store.
func NewCartRepository(store storage.Storage) *CartRepository {
	return &CartRepository{store: store}
}

func (r *CartRepository) Load(ctx context.Context) (*domain.Cart, error) {
	items, err := loadArray[domain.CartItem](ctx, r.store, CartKey)
	if err != nil {
		return &domain.Cart{Items: []domain.CartItem{}}, err
	}
	return &domain.Cart{Items: items}, nil
}

func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	return saveArray(ctx, r.store, CartKey, cart.Items)
}

func (r *CartRepository) Clear(ctx context.Context) error {
	if err := r.store.Delete(ctx, CartKey); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}

// WishlistRepository stores saved products as a JSON array under WishlistKey.
type WishlistRepository struct {
	store storage.Storage
}

// NewWishlistRepository creates a wishlist repository over store.
func NewWishlistRepository(store storage.Storage) *WishlistRepository {
	return &WishlistRepository{store: store}
}

func (r *WishlistRepository) Load(ctx context.Context) (*domain.Wishlist, error) {
	items, err := loadArray[domain.WishlistItem](ctx, r.store, WishlistKey)
	if err != nil {
		return &domain.Wishlist{Items: []domain.WishlistItem{}}, err
	}
	return &domain.Wishlist{Items: items}, nil
}

func (r *WishlistRepository) Save(ctx context.Context, wishlist *domain.Wishlist) error {
	return saveArray(ctx, r.store, WishlistKey, wishlist.Items)
}

func (r *WishlistRepository) Clear(ctx context.Context) error {
	if err := r.store.Delete(ctx, WishlistKey); err != nil {
		return fmt.Errorf("delete wishlist: %w", err)
	}
	return nil
}

// PreferenceRepository stores preferences as raw strings, not JSON.
type PreferenceRepository struct {
	store storage.Storage
}

// NewPreferenceRepository creates a preference repository over store.
func NewPreferenceRepository(store storage.Storage) *PreferenceRepository {
	return &PreferenceRepository{store: store}
}

func (r *PreferenceRepository) Language(ctx context.Context) (string, error) {
	data, err := r.store.Get(ctx, LanguageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("get %s: %w", LanguageKey, err)
	}
	return string(data), nil
}

func (r *PreferenceRepository) SetLanguage(ctx context.Context, lang string) error {
	if err := r.store.Set(ctx, LanguageKey, []byte(lang)); err != nil {
		return fmt.Errorf("set %s: %w", LanguageKey, err)
	}
	return nil
}

func loadArray[T any](ctx context.Context, store storage.Storage, key string) ([]T, error) {
	data, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("get %s: %w", key, err)
	}

	items, err := decodeArray[T](data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return items, nil
}

func saveArray[T any](ctx context.Context, store storage.Storage, key string, items []T) error {
	data, err := encodeArray(items)
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	if err := store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
