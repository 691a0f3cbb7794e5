// Package catalog serves the read-only product catalog.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

//go:embed data/catalog.json
var defaultData []byte

// RelatedLimit is the number of related products shown on a detail page.
const RelatedLimit = 4

// Catalog holds categories and products in dataset order. It is immutable
// after construction and safe for concurrent use.
type Catalog struct {
	categories []domain.Category
	products   map[string][]domain.Product
	maxPrice   decimal.Decimal
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithMaxPrice overrides the filter price ceiling.
func WithMaxPrice(d decimal.Decimal) Option {
	return func(c *Catalog) { c.maxPrice = d }
}

type dataset struct {
	Categories []domain.Category           `json:"categories"`
	Products   map[string][]domain.Product `json:"products"`
}

// New builds a catalog. Each product is stamped with its category id;
// duplicate identity keys and products under undeclared categories are
// rejected.
func New(categories []domain.Category, products map[string][]domain.Product, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		categories: slices.Clone(categories),
		products:   make(map[string][]domain.Product, len(products)),
		maxPrice:   decimal.NewFromInt(domain.DefaultMaxPrice),
	}
	for _, opt := range opts {
		opt(c)
	}

	declared := make(map[string]bool, len(categories))
	for _, cat := range categories {
		if cat.ID == "" {
			return nil, fmt.Errorf("category with empty id")
		}
		if declared[cat.ID] {
			return nil, fmt.Errorf("duplicate category %q", cat.ID)
		}
		declared[cat.ID] = true
	}

	for catID, items := range products {
		if !declared[catID] {
			return nil, fmt.Errorf("products listed under undeclared category %q", catID)
		}
		seen := make(map[string]bool, len(items))
		stamped := make([]domain.Product, 0, len(items))
		for _, p := range items {
			if p.ID == "" {
				return nil, fmt.Errorf("product with empty id in category %q", catID)
			}
			if seen[p.ID] {
				return nil, fmt.Errorf("duplicate product %q in category %q", p.ID, catID)
			}
			if p.Price.IsNegative() {
				return nil, fmt.Errorf("product %q has a negative price", p.ID)
			}
			seen[p.ID] = true
			p.CategoryID = catID
			stamped = append(stamped, p)
		}
		c.products[catID] = stamped
	}

	return c, nil
}

// Parse decodes a catalog dataset in the embedded JSON layout.
func Parse(data []byte, opts ...Option) (*Catalog, error) {
	var ds dataset
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(ds.Categories, ds.Products, opts...)
}

// Default returns the catalog shipped with the binary.
func Default(opts ...Option) *Catalog {
	c, err := Parse(defaultData, opts...)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// Categories returns all categories in dataset order.
func (c *Catalog) Categories() []domain.Category {
	return slices.Clone(c.categories)
}

// GetCategoryByID returns the category or a NotFound error.
func (c *Catalog) GetCategoryByID(id string) (domain.Category, error) {
	for _, cat := range c.categories {
		if cat.ID == id {
			return cat, nil
		}
	}
	return domain.Category{}, apperrors.NotFound("category", id)
}

// GetProductsByCategory returns the category's products, or an empty list
// for an unknown id.
func (c *Catalog) GetProductsByCategory(id string) []domain.Product {
	items := c.products[id]
	if items == nil {
		return []domain.Product{}
	}
	return slices.Clone(items)
}

// GetProduct returns one product annotated with its category name.
func (c *Catalog) GetProduct(categoryID, id string) (domain.Product, error) {
	for _, p := range c.products[categoryID] {
		if p.ID == id {
			p.Category = c.categoryName(categoryID)
			return p, nil
		}
	}
	return domain.Product{}, apperrors.NotFound("product", categoryID+"/"+id)
}

// RelatedProducts returns up to limit other products from the same
// category, in dataset order.
func (c *Catalog) RelatedProducts(categoryID, id string, limit int) []domain.Product {
	out := make([]domain.Product, 0, limit)
	for _, p := range c.products[categoryID] {
		if len(out) >= limit {
			break
		}
		if p.ID == id {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SearchProducts matches the trimmed, case-insensitive query against
// product name and description and the owning category's name and
// description. A blank query matches nothing.
func (c *Catalog) SearchProducts(query string) []domain.Product {
	term := strings.ToLower(strings.TrimSpace(query))
	results := []domain.Product{}
	if term == "" {
		return results
	}

	for _, cat := range c.categories {
		categoryHit := strings.Contains(strings.ToLower(cat.Name), term) ||
			strings.Contains(strings.ToLower(cat.Description), term)

		for _, p := range c.products[cat.ID] {
			if categoryHit ||
				strings.Contains(strings.ToLower(p.Name), term) ||
				strings.Contains(strings.ToLower(p.Description), term) {
				p.Category = cat.Name
				p.CategoryID = cat.ID
				results = append(results, p)
			}
		}
	}
	return results
}

// MaxPrice is the price ceiling used by the default filter.
func (c *Catalog) MaxPrice() decimal.Decimal {
	return c.maxPrice
}

func (c *Catalog) categoryName(id string) string {
	for _, cat := range c.categories {
		if cat.ID == id {
			return cat.Name
		}
	}
	return ""
}
