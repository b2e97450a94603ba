package invoices

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestToggle(t *testing.T) {
	cfg := DefaultSort
	require.Equal(t, SortConfig{Key: "date", Descending: true}, cfg)

	// Same key flips direction.
	cfg = cfg.Toggle("date")
	require.Equal(t, SortConfig{Key: "date", Descending: false}, cfg)

	// New key starts descending for total, ascending otherwise.
	require.Equal(t, SortConfig{Key: "total", Descending: true}, cfg.Toggle("total"))
	require.Equal(t, SortConfig{Key: "provider", Descending: false}, cfg.Toggle("provider"))
	require.Equal(t, SortConfig{Key: "status", Descending: false}, cfg.Toggle("status"))
	require.Equal(t, SortConfig{Key: "date", Descending: true}, SortConfig{Key: "provider"}.Toggle("date"))
}

func TestSortIsStableAndIdempotent(t *testing.T) {
	collection := []Invoice{
		{ID: "a", Provider: "Acme", Total: 100, Date: day(3)},
		{ID: "b", Provider: "Beta", Total: 100, Date: day(1)},
		{ID: "c", Provider: "Ceta", Total: 100, Date: day(2)},
		{ID: "d", Provider: "Acme", Total: 50, Date: day(3)},
	}

	byTotal := Sort(collection, SortConfig{Key: "total", Descending: true})
	// Equal totals keep their input order.
	require.Equal(t, []string{"a", "b", "c", "d"}, ids(byTotal))

	again := Sort(byTotal, SortConfig{Key: "total", Descending: true})
	require.Equal(t, ids(byTotal), ids(again))

	// Input slice untouched.
	require.Equal(t, "a", collection[0].ID)

	byDate := Sort(collection, SortConfig{Key: "date", Descending: true})
	require.Equal(t, []string{"a", "d", "c", "b"}, ids(byDate))

	byProvider := Sort(collection, SortConfig{Key: "provider", Descending: false})
	require.Equal(t, []string{"a", "d", "b", "c"}, ids(byProvider))
}

func TestFilterCombinesWithAnd(t *testing.T) {
	collection := []Invoice{
		{ID: "a", Provider: "Acme Supplies", RefID: "INV-AAA111", Status: StatusPaid},
		{ID: "b", Provider: "Beta Corp", RefID: "INV-BBB222", Status: StatusPending},
		{ID: "c", Provider: "Ceta GmbH", RefID: "INV-ACM999", Status: StatusPaid},
	}

	require.Len(t, Filter{}.Apply(collection), 3)
	require.Len(t, Filter{Status: "All"}.Apply(collection), 3)
	// Term matches provider or reference code, case-insensitively.
	require.Equal(t, []string{"a", "c"}, ids(Filter{Term: "acm"}.Apply(collection)))
	require.Equal(t, []string{"a", "c"}, ids(Filter{Term: "acm", Status: "Paid"}.Apply(collection)))
	require.Equal(t, []string{"b"}, ids(Filter{Status: "Pending"}.Apply(collection)))
	require.Empty(t, Filter{Term: "acm", Status: "Pending"}.Apply(collection))
}

func TestProviderInitials(t *testing.T) {
	require.Equal(t, "AS", ProviderInitials("Acme Supplies"))
	require.Equal(t, "B", ProviderInitials("beta"))
	require.Equal(t, "GT", ProviderInitials("Global Tech Partners"))
	require.Equal(t, "", ProviderInitials("   "))
}

func ids(collection []Invoice) []string {
	out := make([]string, len(collection))
	for i, inv := range collection {
		out[i] = inv.ID
	}
	return out
}
