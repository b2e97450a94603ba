package catalog

import (
	"sort"
	"strings"
)

// Filter holds the optional constraints applied to a product listing. All
// present constraints combine with AND; the source slice is never mutated.
type Filter struct {
	Term     string
	Category string
	Status   string
}

// Apply returns the products passing every constraint, preserving order.
func (f Filter) Apply(products []Product) []Product {
	term := strings.ToLower(strings.TrimSpace(f.Term))
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.SKU), term) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Status != "" && string(p.Status()) != f.Status {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Sort orders a copy of products by key and direction. Unknown keys fall back
// to name. The sort is stable: ties keep their relative input order.
func Sort(products []Product, key string, descending bool) []Product {
	sorted := make([]Product, len(products))
	copy(sorted, products)
	less := func(a, b Product) bool { return a.Name < b.Name }
	switch key {
	case "price":
		less = func(a, b Product) bool { return a.Price < b.Price }
	case "qty":
		less = func(a, b Product) bool { return a.Quantity < b.Quantity }
	case "date":
		less = func(a, b Product) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case "category":
		less = func(a, b Product) bool { return a.Category < b.Category }
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if descending {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})
	return sorted
}
