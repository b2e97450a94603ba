package export

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/stockflow-app/stockflow/internal/invoices"
	"github.com/stockflow-app/stockflow/internal/money"
)

// PDFHeader is the column layout of the PDF report table.
var PDFHeader = []string{"Ref ID", "Provider", "Date", "Total", "Status"}

// PDFRow maps one invoice to its PDF table row.
func PDFRow(inv invoices.Invoice) []string {
	return []string{
		inv.RefID,
		inv.Provider,
		inv.Date.Format("2006-01-02"),
		money.Format(inv.Total),
		string(inv.Status),
	}
}

// PDFDocument is the template payload for the rendered report.
type PDFDocument struct {
	Title       string
	GeneratedAt string
	Header      []string
	Rows        [][]string
}

// BuildPDFDocument assembles the report table for the collection.
func BuildPDFDocument(collection []invoices.Invoice, now time.Time) PDFDocument {
	rows := make([][]string, len(collection))
	for i, inv := range collection {
		rows[i] = PDFRow(inv)
	}
	return PDFDocument{
		Title:       "Invoice Report",
		GeneratedAt: now.Format("January 2, 2006"),
		Header:      PDFHeader,
		Rows:        rows,
	}
}

// BuildInvoiceDocument assembles a single-invoice document for download.
func BuildInvoiceDocument(inv invoices.Invoice, now time.Time) PDFDocument {
	return PDFDocument{
		Title:       "Invoice " + inv.RefID,
		GeneratedAt: now.Format("January 2, 2006"),
		Header:      PDFHeader,
		Rows:        [][]string{PDFRow(inv)},
	}
}

const reportTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; color: #1f2937; }
h1 { font-size: 18px; margin-bottom: 2px; }
p.meta { color: #6b7280; margin-top: 0; }
table { width: 100%; border-collapse: collapse; margin-top: 16px; }
th { text-align: left; border-bottom: 2px solid #1f2937; padding: 6px 8px; }
td { border-bottom: 1px solid #e5e7eb; padding: 6px 8px; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="meta">Generated {{.GeneratedAt}}</p>
<table>
<thead><tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
</body>
</html>`

// PDFExporter wraps Gotenberg interactions for invoice report generation.
type PDFExporter struct {
	Endpoint  string
	Client    *http.Client
	templates *template.Template
}

// NewPDFExporter creates a PDFExporter with the parsed report template.
func NewPDFExporter(endpoint string, client *http.Client) (*PDFExporter, error) {
	tpl, err := template.New("invoice_report").Parse(reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse invoice report template: %w", err)
	}
	return &PDFExporter{Endpoint: endpoint, Client: client, templates: tpl}, nil
}

// Render sends the report HTML to Gotenberg and returns the PDF bytes.
func (p *PDFExporter) Render(ctx context.Context, doc PDFDocument) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("pdf exporter not initialized")
	}
	endpoint := strings.TrimRight(p.Endpoint, "/")
	if endpoint == "" {
		return nil, fmt.Errorf("gotenberg endpoint required")
	}
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}

	html := &bytes.Buffer{}
	if err := p.templates.ExecuteTemplate(html, "invoice_report", doc); err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("files", "index.html")
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(html.Bytes()); err != nil {
		return nil, err
	}

	fields := map[string]string{
		"paperWidth":   "8.27",
		"paperHeight":  "11.69",
		"marginTop":    "0.5",
		"marginBottom": "0.5",
		"marginLeft":   "0.5",
		"marginRight":  "0.5",
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"/forms/chromium/convert/html", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("gotenberg response %d: %s", resp.StatusCode, string(data))
	}
	return io.ReadAll(resp.Body)
}
