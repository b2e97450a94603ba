package catalog

import (
	"errors"
	"time"
)

// StockStatus classifies a product's availability from its quantity alone.
type StockStatus string

const (
	// StatusOutOfStock means quantity is exactly zero.
	StatusOutOfStock StockStatus = "Out of Stock"
	// StatusLowStock means quantity is positive but below the threshold.
	StatusLowStock StockStatus = "Low Stock"
	// StatusInStock means quantity meets or exceeds the threshold.
	StatusInStock StockStatus = "In Stock"
)

// LowStockThreshold is the quantity below which a product counts as low
// stock. The dashboard's low-stock metric uses the same bound but includes
// zero-quantity items; the per-row label reports those as out of stock.
const LowStockThreshold = 40

// StatusFor derives the stock status for a quantity. Pure.
func StatusFor(qty int) StockStatus {
	switch {
	case qty == 0:
		return StatusOutOfStock
	case qty < LowStockThreshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// Product is a catalog entry scoped to a company. Price is the stored
// numeric; rendering to the currency string happens at the view boundary.
type Product struct {
	ID          string
	CompanyID   string
	Name        string
	SKU         string
	Category    string
	Price       float64
	Quantity    int
	ImageURL    string
	Description string
	CreatedAt   time.Time
}

// Status reports the derived stock status.
func (p Product) Status() StockStatus {
	return StatusFor(p.Quantity)
}

// DefaultCategories seeds the category list merged with the distinct
// categories found on existing products.
var DefaultCategories = []string{"Electronics", "Accessories"}

// ErrQuantityNegative rejects negative quantities before any write.
var ErrQuantityNegative = errors.New("catalog: quantity must not be negative")

// Categories returns the default categories merged with every distinct
// non-empty category present in products, preserving first-seen order.
func Categories(products []Product) []string {
	seen := make(map[string]struct{}, len(DefaultCategories)+len(products))
	out := make([]string, 0, len(DefaultCategories)+len(products))
	for _, c := range DefaultCategories {
		seen[c] = struct{}{}
		out = append(out, c)
	}
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
