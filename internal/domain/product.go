package domain

import "github.com/shopspring/decimal"

// Category identifiers shipped with the catalog.
const (
	CategoryLiving  = "living"
	CategoryDining  = "dining"
	CategoryBedroom = "bedroom"
	CategoryDecor   = "decor"

	// CategoryUnknown keys wishlist entries saved without a category.
	CategoryUnknown = "unknown"
)

// Display defaults applied when a product snapshot lacks a field.
const (
	PlaceholderImage    = "/placeholder-product.jpg"
	UncategorizedLabel  = "Uncategorized"
	UnnamedProductLabel = "Unnamed Product"
)

// Category groups products for browsing.
type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ProductCount int    `json:"productCount"`
}

// Product is a read-only catalog entry. Its identity is (ID, CategoryID).
type Product struct {
	ID          string           `json:"id"`
	CategoryID  string           `json:"categoryId"`
	Category    string           `json:"category,omitempty"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Image       string           `json:"image"`
	Price       decimal.Decimal  `json:"price"`
	SalePrice   *decimal.Decimal `json:"salePrice,omitempty"`
	Rating      *float64         `json:"rating,omitempty"`
	IsNew       bool             `json:"isNew,omitempty"`
	InStock     *bool            `json:"inStock,omitempty"`
}

// UnitPrice is the price charged when the product is added to the cart.
func (p Product) UnitPrice() decimal.Decimal {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}

// Available reports stock; a product without stock information is in stock.
func (p Product) Available() bool {
	return p.InStock == nil || *p.InStock
}

// SameItem reports whether the identity key matches.
func (p Product) SameItem(id, categoryID string) bool {
	return p.ID == id && p.CategoryID == categoryID
}
