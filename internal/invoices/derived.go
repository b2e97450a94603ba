package invoices

import (
	"sort"
	"strings"
)

// SortConfig is a sort key plus direction over the invoice collection.
type SortConfig struct {
	Key        string
	Descending bool
}

// DefaultSort is the initial ordering: newest first.
var DefaultSort = SortConfig{Key: "date", Descending: true}

// Toggle returns the config after selecting key: the same key flips
// direction, a new key starts descending for date and total and ascending
// otherwise. Most-recent and most-valuable first are the useful defaults for
// those dimensions.
func (c SortConfig) Toggle(key string) SortConfig {
	if c.Key == key {
		return SortConfig{Key: key, Descending: !c.Descending}
	}
	return SortConfig{Key: key, Descending: key == "date" || key == "total"}
}

// Sort orders a copy of the collection. Total compares numerically; the
// remaining keys compare on their natural value ordering. Stable: ties keep
// their relative input order, so re-sorting an already sorted slice is a
// no-op.
func Sort(collection []Invoice, cfg SortConfig) []Invoice {
	sorted := make([]Invoice, len(collection))
	copy(sorted, collection)

	less := func(a, b Invoice) bool { return a.Date.Before(b.Date) }
	switch cfg.Key {
	case "total":
		less = func(a, b Invoice) bool { return a.Total < b.Total }
	case "provider":
		less = func(a, b Invoice) bool { return a.Provider < b.Provider }
	case "status":
		less = func(a, b Invoice) bool { return a.Status < b.Status }
	case "refId":
		less = func(a, b Invoice) bool { return a.RefID < b.RefID }
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if cfg.Descending {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})
	return sorted
}

// Filter holds the optional listing constraints: a free-text term matched
// case-insensitively against provider and reference code, and a status
// equality check. Constraints combine with AND and operate on the already
// sorted view without mutating it.
type Filter struct {
	Term   string
	Status string
}

// Apply returns the invoices passing every constraint, preserving order.
func (f Filter) Apply(collection []Invoice) []Invoice {
	term := strings.ToLower(strings.TrimSpace(f.Term))
	out := make([]Invoice, 0, len(collection))
	for _, inv := range collection {
		if term != "" &&
			!strings.Contains(strings.ToLower(inv.Provider), term) &&
			!strings.Contains(strings.ToLower(inv.RefID), term) {
			continue
		}
		if f.Status != "" && f.Status != "All" && string(inv.Status) != f.Status {
			continue
		}
		out = append(out, inv)
	}
	return out
}
