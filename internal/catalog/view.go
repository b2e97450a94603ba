package catalog

import (
	"github.com/stockflow-app/stockflow/internal/money"
)

// View is the normalized product shape handed to clients: currency-rendered
// price, derived status label, and the creation timestamp truncated to a
// calendar date. Missing optionals map to empty strings, never an error.
type View struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	SKU      string `json:"sku"`
	Category string `json:"category"`
	Price    string `json:"price"`
	Qty      int    `json:"qty"`
	Status   string `json:"status"`
	ImageURL string `json:"image_url,omitempty"`
	Date     string `json:"date"`
}

// NewView maps a product to its view model. Pure and total for any product.
func NewView(p Product) View {
	date := ""
	if !p.CreatedAt.IsZero() {
		date = p.CreatedAt.Format("2006-01-02")
	}
	return View{
		ID:       p.ID,
		Name:     p.Name,
		SKU:      p.SKU,
		Category: p.Category,
		Price:    money.Format(p.Price),
		Qty:      p.Quantity,
		Status:   string(p.Status()),
		ImageURL: p.ImageURL,
		Date:     date,
	}
}

// NewViews maps a slice preserving order.
func NewViews(products []Product) []View {
	views := make([]View, len(products))
	for i, p := range products {
		views[i] = NewView(p)
	}
	return views
}

// WritePayload is the row shape sent to the store on save.
type WritePayload struct {
	Name        string
	SKU         string
	Category    string
	Price       float64
	Quantity    int
	Status      string
	ImageURL    string
	Description string
}

// Payload converts a view back to a write payload. The numeric price value is
// recovered from the rendered string; name, sku, category and quantity pass
// through unchanged.
func (v View) Payload() (WritePayload, error) {
	price, err := money.Parse(v.Price)
	if err != nil {
		return WritePayload{}, err
	}
	return WritePayload{
		Name:     v.Name,
		SKU:      v.SKU,
		Category: v.Category,
		Price:    price,
		Quantity: v.Qty,
		Status:   string(StatusFor(v.Qty)),
		ImageURL: v.ImageURL,
	}, nil
}
