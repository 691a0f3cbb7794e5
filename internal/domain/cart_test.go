package domain

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ============================================================================
// NewCartItem Tests
// ============================================================================

func TestNewCartItem_UsesSalePrice(t *testing.T) {
	sale := dec("999.99")
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	p := Product{ID: "l1", CategoryID: CategoryLiving, Name: "Modern Sofa Set", Price: dec("1299.99"), SalePrice: &sale}

	item := NewCartItem(p, 2, now)

	assert.True(t, item.Price.Equal(sale))
	assert.True(t, item.OriginalPrice.Equal(dec("1299.99")))
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, now, item.AddedAt)
	assert.Equal(t, now, item.UpdatedAt)
}

func TestNewCartItem_Defaults(t *testing.T) {
	item := NewCartItem(Product{ID: "x", CategoryID: CategoryDecor, Price: dec("10")}, 1, time.Now())

	assert.Equal(t, PlaceholderImage, item.Image)
	assert.Equal(t, UncategorizedLabel, item.Category)
	assert.True(t, item.InStock, "missing stock flag means in stock")
	assert.True(t, item.Price.Equal(item.OriginalPrice))
}

func TestNewCartItem_OutOfStock(t *testing.T) {
	no := false
	item := NewCartItem(Product{ID: "x", CategoryID: CategoryDecor, InStock: &no}, 1, time.Now())
	assert.False(t, item.InStock)
}

// ============================================================================
// Cart aggregate Tests
// ============================================================================

func TestFindItemIndex_ComposesBothKeys(t *testing.T) {
	c := &Cart{Items: []CartItem{
		{ID: "1", CategoryID: CategoryLiving},
		{ID: "1", CategoryID: CategoryDining},
	}}

	assert.Equal(t, 0, c.FindItemIndex("1", CategoryLiving))
	assert.Equal(t, 1, c.FindItemIndex("1", CategoryDining))
	assert.Equal(t, -1, c.FindItemIndex("1", CategoryBedroom))
}

func TestTotalAmount(t *testing.T) {
	c := &Cart{Items: []CartItem{
		{Price: dec("1299.99"), Quantity: 2},
		{Price: dec("349.99"), Quantity: 1},
	}}
	assert.Equal(t, "2949.97", c.TotalAmount().StringFixed(2))
	assert.Equal(t, 3, c.ItemCount())
}

func TestTotalAmount_IgnoresNegativeAndEmpty(t *testing.T) {
	c := &Cart{Items: []CartItem{
		{Price: dec("-5"), Quantity: 2},
		{Price: dec("10"), Quantity: 0},
		{Price: dec("2.5"), Quantity: 2},
	}}
	assert.Equal(t, "5.00", c.TotalAmount().StringFixed(2))

	assert.True(t, (&Cart{}).TotalAmount().IsZero())
}

func TestSummary_FormatsTotal(t *testing.T) {
	c := &Cart{Items: []CartItem{{Price: dec("199.99"), Quantity: 3}}}
	s := c.Summary()

	assert.Equal(t, 3, s.Count)
	assert.Equal(t, "$599.97", s.FormattedTotal)
	assert.Equal(t, "$0.00", (&Cart{}).Summary().FormattedTotal)
}

func TestClone_Independent(t *testing.T) {
	c := &Cart{Items: []CartItem{{ID: "a", Quantity: 1}}}
	out := c.Clone()
	out[0].Quantity = 9
	assert.Equal(t, 1, c.Items[0].Quantity)
}

func TestClampQuantity(t *testing.T) {
	assert.Equal(t, 1, ClampQuantity(0))
	assert.Equal(t, 1, ClampQuantity(-3))
	assert.Equal(t, 7, ClampQuantity(7))
	assert.Equal(t, MaxQuantity, ClampQuantity(42))
}

// ============================================================================
// Error constructors
// ============================================================================

func TestQuantityErrors(t *testing.T) {
	err := InvalidQuantity()
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Equal(t, http.StatusBadRequest, apperrors.HTTPStatus(err))
	assert.Equal(t, MsgInvalidQuantity, err.Message)

	exceeded := QuantityExceeded(MaxQuantity)
	assert.ErrorIs(t, exceeded, ErrQuantityExceeded)
	assert.Equal(t, "Maximum quantity of 10 per product exceeded", exceeded.Message)
	assert.Equal(t, http.StatusUnprocessableEntity, apperrors.HTTPStatus(exceeded))
}

func TestPersistenceFailure_WrapsBoth(t *testing.T) {
	cause := errors.New("disk full")
	err := PersistenceFailure(MsgCartSaveFailed, cause)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, MsgCartSaveFailed, err.Message)
}
