package domain

import (
	"fmt"
	"math"
	"slices"

	"github.com/shopspring/decimal"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// Filter sidebar settings.
const (
	DefaultMaxPrice = 5000
	PriceStep       = 50
)

// RatingOptions lists the selectable minimum ratings, highest first.
var RatingOptions = []int{5, 4, 3, 2, 1}

// CategoryLabels lists the furniture-type labels offered by the sidebar.
var CategoryLabels = []string{"Sofas", "Chairs", "Tables", "Beds", "Storage", "Lighting"}

// PriceRange is an inclusive price interval.
type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// FilterSpec selects the products shown on a category page.
type FilterSpec struct {
	PriceRange PriceRange `json:"priceRange"`
	Ratings    []int      `json:"ratings"`
	Categories []string   `json:"categories"`
}

// FilterOptions describes the controls a UI renders for FilterSpec.
type FilterOptions struct {
	MinPrice   decimal.Decimal `json:"minPrice"`
	MaxPrice   decimal.Decimal `json:"maxPrice"`
	PriceStep  int             `json:"priceStep"`
	Ratings    []int           `json:"ratings"`
	Categories []string        `json:"categories"`
	Defaults   FilterSpec      `json:"defaults"`
}

// DefaultFilterSpec returns the unconstrained spec [0, maxPrice].
func DefaultFilterSpec(maxPrice decimal.Decimal) FilterSpec {
	return FilterSpec{
		PriceRange: PriceRange{Min: decimal.Zero, Max: maxPrice},
		Ratings:    []int{},
		Categories: []string{},
	}
}

// NewFilterOptions returns the sidebar metadata for maxPrice.
func NewFilterOptions(maxPrice decimal.Decimal) FilterOptions {
	return FilterOptions{
		MinPrice:   decimal.Zero,
		MaxPrice:   maxPrice,
		PriceStep:  PriceStep,
		Ratings:    slices.Clone(RatingOptions),
		Categories: slices.Clone(CategoryLabels),
		Defaults:   DefaultFilterSpec(maxPrice),
	}
}

// Validate checks 0 <= min <= max <= maxPrice and that ratings are 1..5.
func (f FilterSpec) Validate(maxPrice decimal.Decimal) error {
	pr := f.PriceRange
	if pr.Min.IsNegative() {
		return apperrors.InvalidInput("minimum price must not be negative")
	}
	if pr.Min.GreaterThan(pr.Max) {
		return apperrors.InvalidInput("minimum price must not exceed maximum price")
	}
	if pr.Max.GreaterThan(maxPrice) {
		return apperrors.InvalidInput(fmt.Sprintf("maximum price must not exceed %s", maxPrice.String()))
	}
	for _, r := range f.Ratings {
		if r < 1 || r > 5 {
			return apperrors.InvalidInput(fmt.Sprintf("rating %d must be between 1 and 5", r))
		}
	}
	return nil
}

// Matches reports whether p passes every clause of f.
//
// The categories clause is accepted but does not constrain results: the
// labels name furniture types that products do not carry.
func (f FilterSpec) Matches(p Product) bool {
	if p.Price.LessThan(f.PriceRange.Min) || p.Price.GreaterThan(f.PriceRange.Max) {
		return false
	}
	return f.matchesRating(p)
}

func (f FilterSpec) matchesRating(p Product) bool {
	if len(f.Ratings) == 0 {
		return true
	}
	if p.Rating == nil {
		return false
	}
	floored := int(math.Floor(*p.Rating))
	for _, r := range f.Ratings {
		if floored >= r {
			return true
		}
	}
	return false
}

// ApplyFilter returns the products matching f in their original order.
func ApplyFilter(products []Product, f FilterSpec) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// ToggleRating adds r to the ratings set, or removes it if present.
func (f FilterSpec) ToggleRating(r int) FilterSpec {
	f.Ratings = toggle(f.Ratings, r)
	return f
}

// ToggleCategory adds label to the categories set, or removes it if present.
func (f FilterSpec) ToggleCategory(label string) FilterSpec {
	f.Categories = toggle(f.Categories, label)
	return f
}

// Reset returns the unconstrained filter for maxPrice.
func (f FilterSpec) Reset(maxPrice decimal.Decimal) FilterSpec {
	return DefaultFilterSpec(maxPrice)
}

func toggle[T comparable](set []T, v T) []T {
	if i := slices.Index(set, v); i >= 0 {
		return slices.Delete(slices.Clone(set), i, i+1)
	}
	return append(slices.Clone(set), v)
}
