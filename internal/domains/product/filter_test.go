package product

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() []Product {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return []Product{
		{
			ID: uuid.New(), Name: "Linen Kurta", Category: "kurtas",
			Price: decimal.RequireFromString("1499.00"), Color: "Navy Blue",
			StockQuantity: 12, IsAvailable: true, CreatedAt: base,
		},
		{
			ID: uuid.New(), Name: "Silk Saree", Category: "sarees",
			Price: decimal.RequireFromString("4999.00"), Color: "Maroon",
			StockQuantity: 3, IsAvailable: true, CreatedAt: base.Add(24 * time.Hour),
		},
		{
			ID: uuid.New(), Name: "Cotton Dupatta", Category: "dupattas",
			Price: decimal.RequireFromString("599.00"), Color: "Sky Blue",
			StockQuantity: 0, IsAvailable: true, CreatedAt: base.Add(48 * time.Hour),
		},
		{
			ID: uuid.New(), Name: "Archived Lehenga", Category: "lehengas",
			Price: decimal.RequireFromString("8999.00"), Color: "Gold",
			StockQuantity: 5, IsAvailable: false, CreatedAt: base.Add(72 * time.Hour),
		},
	}
}

func names(products []Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestFilter_AvailableHidesArchived(t *testing.T) {
	got := Filter(fixture(), Available())
	assert.NotContains(t, names(got), "Archived Lehenga")
	assert.Len(t, got, 3)
}

func TestFilter_PriceRangeComposes(t *testing.T) {
	pred := And(
		Available(),
		PriceAtLeast(decimal.RequireFromString("1000")),
		PriceAtMost(decimal.RequireFromString("5000")),
	)

	got := Filter(fixture(), pred)

	assert.ElementsMatch(t, []string{"Linen Kurta", "Silk Saree"}, names(got))
}

func TestFilter_ColorMatchesSubstringCaseInsensitive(t *testing.T) {
	got := Filter(fixture(), ColorContains("blue"))
	assert.ElementsMatch(t, []string{"Linen Kurta", "Cotton Dupatta"}, names(got))
}

func TestFilter_InStockExcludesZeroAndUnavailable(t *testing.T) {
	got := Filter(fixture(), InStock())
	assert.ElementsMatch(t, []string{"Linen Kurta", "Silk Saree"}, names(got))
}

func TestFilter_LowStockWindow(t *testing.T) {
	got := Filter(fixture(), LowStock(5))
	// Zero stock is out of stock, not low stock; unavailable never shows.
	assert.Equal(t, []string{"Silk Saree"}, names(got))
}

func TestFilter_NoneDropsEverything(t *testing.T) {
	got := Filter(fixture(), None())
	assert.Empty(t, got)
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	in := fixture()
	_ = Filter(in, InStock())
	require.Len(t, in, 4)
	assert.Equal(t, "Linen Kurta", in[0].Name)
}

func TestSortBy_PriceAsc(t *testing.T) {
	products := Filter(fixture(), All())
	SortBy(products, PriceAsc())

	assert.Equal(t, []string{"Cotton Dupatta", "Linen Kurta", "Silk Saree", "Archived Lehenga"}, names(products))
}

func TestSortBy_NewestFirst(t *testing.T) {
	products := Filter(fixture(), Available())
	SortBy(products, Newest())

	assert.Equal(t, "Cotton Dupatta", products[0].Name)
	assert.Equal(t, "Linen Kurta", products[len(products)-1].Name)
}

func TestSortBy_StableForEqualPrices(t *testing.T) {
	a := Product{Name: "First", Price: decimal.RequireFromString("100"), IsAvailable: true}
	b := Product{Name: "Second", Price: decimal.RequireFromString("100"), IsAvailable: true}

	products := []Product{a, b}
	SortBy(products, PriceAsc())

	assert.Equal(t, []string{"First", "Second"}, names(products))
}
