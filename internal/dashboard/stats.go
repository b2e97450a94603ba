// Package dashboard derives the landing-page aggregates from the product
// snapshot. All figures are pure functions of the collection.
package dashboard

import (
	"github.com/stockflow-app/stockflow/internal/catalog"
	"github.com/stockflow-app/stockflow/internal/money"
)

// Stats is the aggregate card row. LowStockItems counts everything under
// the threshold, zero included; OutOfStockItems is the zero subset.
type Stats struct {
	TotalProducts   int    `json:"totalProducts"`
	LowStockItems   int    `json:"lowStockItems"`
	OutOfStockItems int    `json:"outOfStockItems"`
	InventoryValue  string `json:"inventoryValue"`
}

// Compute derives Stats from the product collection.
func Compute(products []catalog.Product) Stats {
	stats := Stats{TotalProducts: len(products)}
	value := 0.0
	for _, p := range products {
		if p.Quantity < catalog.LowStockThreshold {
			stats.LowStockItems++
		}
		if p.Quantity == 0 {
			stats.OutOfStockItems++
		}
		value += p.Price * float64(p.Quantity)
	}
	stats.InventoryValue = money.FormatGrouped(value)
	return stats
}
