package export

import (
	"context"
	"io"
	"time"

	"github.com/stockflow-app/stockflow/internal/invoices"
)

// Service bundles the formatters behind the invoice handler's export ports.
type Service struct {
	pdf *PDFExporter
}

// NewService builds Service.
func NewService(pdf *PDFExporter) *Service {
	return &Service{pdf: pdf}
}

// WriteCSV streams the rows as CSV.
func (s *Service) WriteCSV(w io.Writer, collection []invoices.Invoice) error {
	return WriteCSV(w, collection)
}

// RenderPDF builds the report document and converts it.
func (s *Service) RenderPDF(ctx context.Context, collection []invoices.Invoice, now time.Time) ([]byte, error) {
	return s.pdf.Render(ctx, BuildPDFDocument(collection, now))
}

// RenderInvoicePDF converts a single invoice to its downloadable document.
func (s *Service) RenderInvoicePDF(ctx context.Context, inv invoices.Invoice, now time.Time) ([]byte, error) {
	return s.pdf.Render(ctx, BuildInvoiceDocument(inv, now))
}

// Selector adapts scope query parameters to row selection.
func Selector(collection []invoices.Invoice, scope, month string, count int, status string, now time.Time) ([]invoices.Invoice, error) {
	return Select(collection, Config{
		Scope:         Scope(scope),
		SpecificMonth: month,
		Count:         count,
		Status:        status,
	}, now)
}
