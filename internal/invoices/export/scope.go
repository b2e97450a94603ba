// Package export renders invoice collections to CSV and PDF documents. The
// row selection and header layout are pure so they can be tested without a
// converter, while PDF rendering goes through Gotenberg.
package export

import (
	"errors"
	"time"

	"github.com/stockflow-app/stockflow/internal/invoices"
)

// Scope names the date window an export covers.
type Scope string

const (
	ScopeAll           Scope = "all"
	ScopeLastMonth     Scope = "last_month"
	ScopeSpecificMonth Scope = "specific_month"
	ScopeCount         Scope = "count"
)

// ErrInvalidScope rejects unknown scopes or scope parameters.
var ErrInvalidScope = errors.New("export: invalid scope")

// Config selects which invoices an export includes. Status filtering runs
// after the scope window so a count export counts before the status cut.
type Config struct {
	Scope Scope
	// SpecificMonth is the YYYY-MM month for ScopeSpecificMonth.
	SpecificMonth string
	// Count is the number of most recent invoices for ScopeCount.
	Count int
	// Status keeps only the named status when set; "All" or empty keeps all.
	Status string
}

// Select applies cfg to the collection relative to now and returns the rows
// to export. The scope narrows first, then the status filter.
func Select(collection []invoices.Invoice, cfg Config, now time.Time) ([]invoices.Invoice, error) {
	var scoped []invoices.Invoice
	switch cfg.Scope {
	case ScopeAll, "":
		scoped = append(scoped, collection...)
	case ScopeLastMonth:
		firstOfCurrent := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		firstOfPrevious := firstOfCurrent.AddDate(0, -1, 0)
		for _, inv := range collection {
			if !inv.Date.Before(firstOfPrevious) && inv.Date.Before(firstOfCurrent) {
				scoped = append(scoped, inv)
			}
		}
	case ScopeSpecificMonth:
		month, err := time.Parse("2006-01", cfg.SpecificMonth)
		if err != nil {
			return nil, ErrInvalidScope
		}
		next := month.AddDate(0, 1, 0)
		for _, inv := range collection {
			if !inv.Date.Before(month) && inv.Date.Before(next) {
				scoped = append(scoped, inv)
			}
		}
	case ScopeCount:
		if cfg.Count <= 0 {
			return nil, ErrInvalidScope
		}
		scoped = invoices.Sort(collection, invoices.SortConfig{Key: "date", Descending: true})
		if len(scoped) > cfg.Count {
			scoped = scoped[:cfg.Count]
		}
	default:
		return nil, ErrInvalidScope
	}

	return invoices.Filter{Status: cfg.Status}.Apply(scoped), nil
}
