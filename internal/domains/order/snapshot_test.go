package order

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/cart"
)

func line(name, price string, qty int) cart.Line {
	return cart.Line{
		ProductID: uuid.New(),
		Name:      name,
		UnitPrice: decimal.RequireFromString(price),
		Quantity:  qty,
	}
}

func TestTotal_RoundsEachLineHalfUp(t *testing.T) {
	lines := []cart.Line{
		line("Silk Saree", "199.995", 1),
		line("Cotton Dupatta", "50.00", 1),
	}

	// 199.995 rounds to 200.00 per line before summing.
	assert.True(t, Total(lines).Equal(decimal.RequireFromString("250.00")),
		"got %s", Total(lines))
}

func TestTotal_MultipliesQuantityBeforeRounding(t *testing.T) {
	lines := []cart.Line{
		line("Kurta", "33.335", 3), // 100.005 -> 100.01
	}

	assert.True(t, Total(lines).Equal(decimal.RequireFromString("100.01")),
		"got %s", Total(lines))
}

func TestTotal_EmptyCartIsZero(t *testing.T) {
	assert.True(t, Total(nil).IsZero())
}

func TestSnapshot_Format(t *testing.T) {
	l := line("Linen Kurta", "1499.00", 2)
	got := Snapshot([]cart.Line{l})

	want := fmt.Sprintf("2x Linen Kurta [ID:%s] (₹2998.00)", l.ProductID)
	assert.Equal(t, want, got)
}

func TestSnapshot_JoinsLinesWithSemicolon(t *testing.T) {
	a := line("Saree", "4999.00", 1)
	b := line("Dupatta", "599.00", 3)

	got := Snapshot([]cart.Line{a, b})

	want := fmt.Sprintf("1x Saree [ID:%s] (₹4999.00); 3x Dupatta [ID:%s] (₹1797.00)", a.ProductID, b.ProductID)
	assert.Equal(t, want, got)
}

func TestSnapshot_LinePriceIsLineTotalNotUnitPrice(t *testing.T) {
	l := line("Lehenga", "2500.50", 2)
	got := Snapshot([]cart.Line{l})

	assert.Contains(t, got, "(₹5001.00)")
	assert.NotContains(t, got, "2500.50")
}
