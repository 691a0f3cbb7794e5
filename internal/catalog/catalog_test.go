package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

func ids(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

// ============================================================================
// Dataset
// ============================================================================

func TestDefault_Categories(t *testing.T) {
	c := Default()
	cats := c.Categories()

	require.Len(t, cats, 4)
	assert.Equal(t, "living", cats[0].ID)
	assert.Equal(t, "Living Room", cats[0].Name)
	assert.Equal(t, 45, cats[0].ProductCount)
	assert.Equal(t, "decor", cats[3].ID)
	assert.Equal(t, 78, cats[3].ProductCount)
}

func TestDefault_ProductsStampedWithCategory(t *testing.T) {
	c := Default()
	dining := c.GetProductsByCategory(domain.CategoryDining)

	assert.Equal(t, []string{"d1", "d2", "d3", "d4", "d5", "d6"}, ids(dining))
	for _, p := range dining {
		assert.Equal(t, domain.CategoryDining, p.CategoryID)
	}
	assert.Equal(t, "1299.99", dining[5].Price.StringFixed(2))
}

func TestDefault_UnratedProduct(t *testing.T) {
	p, err := Default().GetProduct(domain.CategoryLiving, "l3")
	require.NoError(t, err)
	assert.Nil(t, p.Rating)
	assert.Equal(t, `Sleek 60" media console with glass doors`, p.Description)
}

func TestGetProductsByCategory_UnknownIsEmpty(t *testing.T) {
	out := Default().GetProductsByCategory("garden")
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestGetProductsByCategory_ReturnsCopy(t *testing.T) {
	c := Default()
	out := c.GetProductsByCategory(domain.CategoryBedroom)
	out[0].Name = "changed"
	assert.Equal(t, "Queen Bed Frame", c.GetProductsByCategory(domain.CategoryBedroom)[0].Name)
}

// ============================================================================
// Lookup
// ============================================================================

func TestGetCategoryByID(t *testing.T) {
	c := Default()

	cat, err := c.GetCategoryByID("bedroom")
	require.NoError(t, err)
	assert.Equal(t, "Create your perfect sleep sanctuary", cat.Description)

	_, err = c.GetCategoryByID("garden")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetProduct_AnnotatesCategoryName(t *testing.T) {
	p, err := Default().GetProduct(domain.CategoryDecor, "dc1")
	require.NoError(t, err)
	assert.Equal(t, "Floor Lamp", p.Name)
	assert.Equal(t, "Home Decor", p.Category)

	_, err = Default().GetProduct(domain.CategoryDecor, "l1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRelatedProducts(t *testing.T) {
	c := Default()

	assert.Equal(t, []string{"l2", "l3", "l4", "l5"}, ids(c.RelatedProducts(domain.CategoryLiving, "l1", RelatedLimit)))
	assert.Equal(t, []string{"l1", "l2", "l4", "l5"}, ids(c.RelatedProducts(domain.CategoryLiving, "l3", RelatedLimit)))
	assert.Empty(t, c.RelatedProducts(domain.CategoryBedroom, "b1", RelatedLimit))
	assert.Empty(t, c.RelatedProducts("garden", "x", RelatedLimit))
}

// ============================================================================
// Search
// ============================================================================

func TestSearchProducts_TrimsAndIgnoresCase(t *testing.T) {
	out := Default().SearchProducts("  SOFA ")
	assert.Equal(t, []string{"l1", "l6"}, ids(out))
	assert.Equal(t, "Living Room", out[0].Category)
	assert.Equal(t, domain.CategoryLiving, out[0].CategoryID)
}

func TestSearchProducts_MatchesDescription(t *testing.T) {
	assert.Equal(t, []string{"d6"}, ids(Default().SearchProducts("butcher")))
}

func TestSearchProducts_MatchesCategoryText(t *testing.T) {
	// "sanctuary" only appears in the bedroom category description.
	out := Default().SearchProducts("sanctuary")
	assert.Equal(t, []string{"b1"}, ids(out))
	assert.Equal(t, "Bedroom", out[0].Category)
}

func TestSearchProducts_Blank(t *testing.T) {
	c := Default()
	assert.Empty(t, c.SearchProducts(""))
	assert.Empty(t, c.SearchProducts("   "))
	assert.NotNil(t, c.SearchProducts(""))
}

func TestSearchProducts_StableOrderAcrossCategories(t *testing.T) {
	// "modern" hits living (category text is not involved), dining and decor.
	out := Default().SearchProducts("modern")
	assert.Equal(t, []string{"l1", "d2", "d3", "dc1"}, ids(out))
}

// ============================================================================
// Construction
// ============================================================================

func TestNew_RejectsDuplicates(t *testing.T) {
	cats := []domain.Category{{ID: "living", Name: "Living Room"}}

	_, err := New(cats, map[string][]domain.Product{
		"living": {{ID: "l1"}, {ID: "l1"}},
	})
	assert.ErrorContains(t, err, "duplicate product")

	_, err = New(cats, map[string][]domain.Product{"garden": {{ID: "g1"}}})
	assert.ErrorContains(t, err, "undeclared category")
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte(`{"categories":[],"products":{},"extra":1}`))
	assert.Error(t, err)
}

func TestMaxPrice(t *testing.T) {
	assert.Equal(t, "5000", Default().MaxPrice().String())
	assert.Equal(t, "2500", Default(WithMaxPrice(decimal.NewFromInt(2500))).MaxPrice().String())
}
