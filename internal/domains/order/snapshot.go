package order

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/cart"
)

// Total sums the cart with each line rounded half-up to currency
// precision first, so 199.995 x 1 contributes 200.00.
func Total(lines []cart.Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Total())
	}
	return total
}

// Snapshot renders the purchased lines as one denormalized string:
// "<qty>x <name> [ID:<product-id>] (₹<line-total>)" joined by "; ".
// The product id rides along so support can trace a line back to the
// catalog even after the product is deleted.
func Snapshot(lines []cart.Line) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, fmt.Sprintf("%dx %s [ID:%s] (₹%s)",
			l.Quantity,
			l.Name,
			l.ProductID,
			l.Total().StringFixed(2),
		))
	}
	return strings.Join(parts, "; ")
}
