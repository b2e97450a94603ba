package export

import (
	"encoding/csv"
	"io"

	"github.com/stockflow-app/stockflow/internal/invoices"
	"github.com/stockflow-app/stockflow/internal/money"
)

// CSVHeader is the column layout of the CSV report.
var CSVHeader = []string{"Reference ID", "Provider", "Date", "Total Amount", "Status"}

// CSVRecord maps one invoice to its CSV row.
func CSVRecord(inv invoices.Invoice) []string {
	return []string{
		inv.RefID,
		inv.Provider,
		inv.Date.Format("2006-01-02"),
		money.Format(inv.Total),
		string(inv.Status),
	}
}

// WriteCSV serialises the collection to CSV in the given order.
func WriteCSV(w io.Writer, collection []invoices.Invoice) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(CSVHeader); err != nil {
		return err
	}
	for _, inv := range collection {
		if err := writer.Write(CSVRecord(inv)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
