package invoices

import (
	"github.com/stockflow-app/stockflow/internal/money"
)

// View is the normalized invoice shape handed to clients. Total renders as a
// fixed-symbol two-decimal string; the date truncates to a calendar date.
type View struct {
	ID               string `json:"id"`
	Status           string `json:"status"`
	Date             string `json:"date"`
	RefID            string `json:"refId"`
	Provider         string `json:"provider"`
	ProviderInitials string `json:"providerInitials"`
	ProviderColor    string `json:"providerColor"`
	Total            string `json:"total"`
	FileName         string `json:"fileName,omitempty"`
	FileURL          string `json:"fileUrl,omitempty"`
	FileType         string `json:"fileType,omitempty"`
}

// NewView maps an invoice to its view model. Pure and total; absent optional
// fields stay empty strings.
func NewView(inv Invoice) View {
	date := ""
	if !inv.Date.IsZero() {
		date = inv.Date.Format("2006-01-02")
	}
	return View{
		ID:               inv.ID,
		Status:           string(inv.Status),
		Date:             date,
		RefID:            inv.RefID,
		Provider:         inv.Provider,
		ProviderInitials: inv.ProviderInitials,
		ProviderColor:    inv.ProviderColor,
		Total:            money.Format(inv.Total),
		FileName:         inv.FileName,
		FileURL:          inv.FileURL,
		FileType:         inv.FileType,
	}
}

// NewViews maps a slice preserving order.
func NewViews(collection []Invoice) []View {
	views := make([]View, len(collection))
	for i, inv := range collection {
		views[i] = NewView(inv)
	}
	return views
}
