package product

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Predicate decides whether a product stays in a result set. Predicates
// compose with And and apply to a slice with Filter, so each storefront
// facet is its own testable unit instead of an in-place mutation pass.
type Predicate func(*Product) bool

// Comparator orders two products; it reports whether a sorts before b.
type Comparator func(a, b *Product) bool

func And(preds ...Predicate) Predicate {
	return func(p *Product) bool {
		for _, pred := range preds {
			if !pred(p) {
				return false
			}
		}
		return true
	}
}

// Filter returns a new slice; the input is never reordered or truncated.
func Filter(products []Product, pred Predicate) []Product {
	out := make([]Product, 0, len(products))
	for i := range products {
		if pred(&products[i]) {
			out = append(out, products[i])
		}
	}
	return out
}

// SortBy sorts a copy produced by Filter in place. The sort is stable so
// equal-priced products keep their catalog order.
func SortBy(products []Product, cmp Comparator) {
	sort.SliceStable(products, func(i, j int) bool {
		return cmp(&products[i], &products[j])
	})
}

// ========================================
// PREDICATES
// ========================================

func Available() Predicate {
	return func(p *Product) bool { return p.IsAvailable }
}

func PriceAtLeast(min decimal.Decimal) Predicate {
	return func(p *Product) bool { return p.Price.GreaterThanOrEqual(min) }
}

func PriceAtMost(max decimal.Decimal) Predicate {
	return func(p *Product) bool { return p.Price.LessThanOrEqual(max) }
}

// ColorContains matches case-insensitively on a substring, so "blue"
// finds "Navy Blue".
func ColorContains(color string) Predicate {
	needle := strings.ToLower(strings.TrimSpace(color))
	return func(p *Product) bool {
		return p.Color != "" && strings.Contains(strings.ToLower(p.Color), needle)
	}
}

func InStock() Predicate {
	return func(p *Product) bool { return p.InStock() }
}

// LowStock keeps sellable products down to their last few units.
func LowStock(threshold int) Predicate {
	return func(p *Product) bool {
		return p.InStock() && p.StockQuantity <= threshold
	}
}

// None drops everything. It backs filter states with no matching
// catalog support, like "on sale" before sale pricing exists.
func None() Predicate {
	return func(*Product) bool { return false }
}

func All() Predicate {
	return func(*Product) bool { return true }
}

// ========================================
// COMPARATORS
// ========================================

func PriceAsc() Comparator {
	return func(a, b *Product) bool { return a.Price.LessThan(b.Price) }
}

func PriceDesc() Comparator {
	return func(a, b *Product) bool { return a.Price.GreaterThan(b.Price) }
}

func Newest() Comparator {
	return func(a, b *Product) bool { return a.CreatedAt.After(b.CreatedAt) }
}

func Oldest() Comparator {
	return func(a, b *Product) bool { return a.CreatedAt.Before(b.CreatedAt) }
}
