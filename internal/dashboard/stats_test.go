package dashboard

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stockflow-app/stockflow/internal/catalog"
)

func TestCompute(t *testing.T) {
	products := []catalog.Product{
		{Name: "USB Hub", Price: 20, Quantity: 50},
		{Name: "Monitor", Price: 10, Quantity: 15},
		{Name: "Mouse", Price: 50, Quantity: 1},
	}

	stats := Compute(products)
	require.Equal(t, 3, stats.TotalProducts)
	require.Equal(t, 2, stats.LowStockItems)
	require.Equal(t, 0, stats.OutOfStockItems)
	require.Equal(t, "€1,200.00", stats.InventoryValue)
}

func TestComputeCountsZeroQuantityInBothBuckets(t *testing.T) {
	products := []catalog.Product{
		{Name: "Cable", Price: 5, Quantity: 0},
		{Name: "Hub", Price: 20, Quantity: 39},
		{Name: "Desk", Price: 100, Quantity: 40},
	}

	stats := Compute(products)
	require.Equal(t, 3, stats.TotalProducts)
	require.Equal(t, 2, stats.LowStockItems)
	require.Equal(t, 1, stats.OutOfStockItems)
	require.Equal(t, "€4,780.00", stats.InventoryValue)
}

func TestComputeEmpty(t *testing.T) {
	stats := Compute(nil)
	require.Equal(t, 0, stats.TotalProducts)
	require.Equal(t, "€0.00", stats.InventoryValue)
}
