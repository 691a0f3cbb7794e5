package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is the ordered list of cart lines. No two lines share an identity key.
type Cart struct {
	Items []CartItem
}

// CartItem is a cart line holding a price snapshot taken when it was added.
type CartItem struct {
	ID            string          `json:"id"`
	CategoryID    string          `json:"categoryId"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	Image         string          `json:"image"`
	Category      string          `json:"category"`
	Quantity      int             `json:"quantity"`
	InStock       bool            `json:"inStock"`
	AddedAt       time.Time       `json:"addedAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// CartSummary is the derived view shown next to the cart.
type CartSummary struct {
	Count          int             `json:"count"`
	Total          decimal.Decimal `json:"total"`
	FormattedTotal string          `json:"formattedTotal"`
}

// NewCartItem snapshots p into a new cart line.
func NewCartItem(p Product, quantity int, now time.Time) CartItem {
	item := CartItem{
		ID:            p.ID,
		CategoryID:    p.CategoryID,
		Name:          p.Name,
		Price:         p.UnitPrice(),
		OriginalPrice: p.Price,
		Image:         p.Image,
		Category:      p.Category,
		Quantity:      quantity,
		InStock:       p.Available(),
		AddedAt:       now,
		UpdatedAt:     now,
	}
	if item.Image == "" {
		item.Image = PlaceholderImage
	}
	if item.Category == "" {
		item.Category = UncategorizedLabel
	}
	return item
}

// FindItemIndex returns the index of the line with the given key, or -1.
func (c *Cart) FindItemIndex(id, categoryID string) int {
	for i := range c.Items {
		if c.Items[i].ID == id && c.Items[i].CategoryID == categoryID {
			return i
		}
	}
	return -1
}

// ItemCount returns the sum of line quantities.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// TotalAmount returns the sum of price times quantity. Negative prices or
// quantities contribute nothing.
func (c *Cart) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		if item.Price.IsNegative() || item.Quantity <= 0 {
			continue
		}
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// Summary derives count, total and the formatted total.
func (c *Cart) Summary() CartSummary {
	total := c.TotalAmount()
	return CartSummary{
		Count:          c.ItemCount(),
		Total:          total,
		FormattedTotal: FormatPrice(total),
	}
}

// Clone returns a copy of the lines safe to hand to callers.
func (c *Cart) Clone() []CartItem {
	out := make([]CartItem, len(c.Items))
	copy(out, c.Items)
	return out
}

// FormatPrice renders d as dollars with two decimals, e.g. "$1299.99".
func FormatPrice(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// ClampQuantity bounds q to [1, MaxQuantity]; zero or negative becomes 1.
func ClampQuantity(q int) int {
	switch {
	case q < 1:
		return 1
	case q > MaxQuantity:
		return MaxQuantity
	default:
		return q
	}
}
