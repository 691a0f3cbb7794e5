package service

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/utafrali/storefront/internal/domain"
)

// --- Mock Repositories ---

type mockCartRepository struct {
	mock.Mock
}

func (m *mockCartRepository) Load(ctx context.Context) (*domain.Cart, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *mockCartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *mockCartRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type mockWishlistRepository struct {
	mock.Mock
}

func (m *mockWishlistRepository) Load(ctx context.Context) (*domain.Wishlist, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wishlist), args.Error(1)
}

func (m *mockWishlistRepository) Save(ctx context.Context, wishlist *domain.Wishlist) error {
	args := m.Called(ctx, wishlist)
	return args.Error(0)
}

func (m *mockWishlistRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type mockPreferenceRepository struct {
	mock.Mock
}

func (m *mockPreferenceRepository) Language(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockPreferenceRepository) SetLanguage(ctx context.Context, lang string) error {
	args := m.Called(ctx, lang)
	return args.Error(0)
}

// --- Test Helpers ---

var fixedNow = time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func sofa() domain.Product {
	sale := decimal.RequireFromString("999.99")
	rating := 4.8
	return domain.Product{
		ID:          "l1",
		CategoryID:  domain.CategoryLiving,
		Category:    "Living Room",
		Name:        "Modern Sofa Set",
		Description: "Contemporary 3-piece sofa set",
		Image:       "/images/sofa.jpg",
		Price:       decimal.RequireFromString("1299.99"),
		SalePrice:   &sale,
		Rating:      &rating,
		IsNew:       true,
	}
}

func diningTable() domain.Product {
	return domain.Product{
		ID:         "d1",
		CategoryID: domain.CategoryDining,
		Name:       "Oak Dining Table",
		Price:      decimal.RequireFromString("899.99"),
	}
}
