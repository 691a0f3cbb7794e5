package domain

import "github.com/shopspring/decimal"

// Wishlist is the ordered list of saved products.
type Wishlist struct {
	Items []WishlistItem
}

// WishlistItem is a product snapshot saved for later. It has no quantity.
type WishlistItem struct {
	ID          string          `json:"id"`
	CategoryID  string          `json:"categoryId"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Rating      float64         `json:"rating"`
	IsNew       bool            `json:"isNew"`
}

// Key returns the membership key "<categoryId>_<id>".
func (w WishlistItem) Key() string {
	return WishlistKey(w.ID, w.CategoryID)
}

// WishlistKey builds the membership key, substituting CategoryUnknown for a
// blank category.
func WishlistKey(id, categoryID string) string {
	return WishlistCategory(categoryID) + "_" + id
}

// WishlistCategory applies the unknown-category default.
func WishlistCategory(categoryID string) string {
	if categoryID == "" {
		return CategoryUnknown
	}
	return categoryID
}

// NewWishlistItem snapshots p with display defaults for missing fields.
func NewWishlistItem(p Product) WishlistItem {
	item := WishlistItem{
		ID:          p.ID,
		CategoryID:  WishlistCategory(p.CategoryID),
		Name:        p.Name,
		Price:       p.Price,
		Image:       p.Image,
		Description: p.Description,
		Category:    p.Category,
		IsNew:       p.IsNew,
	}
	if item.Name == "" {
		item.Name = UnnamedProductLabel
	}
	if item.Image == "" {
		item.Image = PlaceholderImage
	}
	if item.Category == "" {
		item.Category = UncategorizedLabel
	}
	if p.Rating != nil {
		item.Rating = *p.Rating
	}
	return item
}

// IndexOf returns the index of the entry for the (id, category) pair, or -1.
// The pair is compared field by field; Key is for display only.
func (w *Wishlist) IndexOf(id, categoryID string) int {
	categoryID = WishlistCategory(categoryID)
	for i := range w.Items {
		if w.Items[i].ID == id && WishlistCategory(w.Items[i].CategoryID) == categoryID {
			return i
		}
	}
	return -1
}

// Contains reports membership.
func (w *Wishlist) Contains(id, categoryID string) bool {
	return w.IndexOf(id, categoryID) >= 0
}

// Clone returns a copy safe to hand to callers.
func (w *Wishlist) Clone() []WishlistItem {
	out := make([]WishlistItem, len(w.Items))
	copy(out, w.Items)
	return out
}
