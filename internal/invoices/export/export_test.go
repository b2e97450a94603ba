package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stockflow-app/stockflow/internal/invoices"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func fixture() []invoices.Invoice {
	return []invoices.Invoice{
		{ID: "a", RefID: "INV-AAA111", Provider: "Acme", Total: 100, Status: invoices.StatusPaid,
			Date: time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)},
		{ID: "b", RefID: "INV-BBB222", Provider: "Beta", Total: 200, Status: invoices.StatusPending,
			Date: time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)},
		{ID: "c", RefID: "INV-CCC333", Provider: "Ceta", Total: 300, Status: invoices.StatusPaid,
			Date: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "d", RefID: "INV-DDD444", Provider: "Delta", Total: 400, Status: invoices.StatusPaid,
			Date: time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)},
	}
}

func ids(collection []invoices.Invoice) []string {
	out := make([]string, len(collection))
	for i, inv := range collection {
		out[i] = inv.ID
	}
	return out
}

func TestSelectScopeAll(t *testing.T) {
	selected, err := Select(fixture(), Config{Scope: ScopeAll}, now)
	require.NoError(t, err)
	require.Len(t, selected, 4)
}

func TestSelectLastMonthBoundaries(t *testing.T) {
	// Window is [May 1, June 1): May 1 and May 31 fall inside, April 30 and
	// June 3 fall outside.
	selected, err := Select(fixture(), Config{Scope: ScopeLastMonth}, now)
	require.NoError(t, err)
	require.Equal(t, []string{"b", "c"}, ids(selected))
}

func TestSelectSpecificMonth(t *testing.T) {
	selected, err := Select(fixture(), Config{Scope: ScopeSpecificMonth, SpecificMonth: "2025-04"}, now)
	require.NoError(t, err)
	require.Equal(t, []string{"d"}, ids(selected))

	_, err = Select(fixture(), Config{Scope: ScopeSpecificMonth, SpecificMonth: "April 2025"}, now)
	require.ErrorIs(t, err, ErrInvalidScope)
}

func TestSelectCountTakesMostRecent(t *testing.T) {
	selected, err := Select(fixture(), Config{Scope: ScopeCount, Count: 2}, now)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, ids(selected))

	_, err = Select(fixture(), Config{Scope: ScopeCount}, now)
	require.ErrorIs(t, err, ErrInvalidScope)
}

func TestSelectStatusAppliesAfterScope(t *testing.T) {
	// Count picks the two most recent first; the status cut then drops the
	// pending one rather than reaching deeper into the collection.
	selected, err := Select(fixture(), Config{Scope: ScopeCount, Count: 2, Status: "Paid"}, now)
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, ids(selected))
}

func TestSelectUnknownScope(t *testing.T) {
	_, err := Select(fixture(), Config{Scope: "yearly"}, now)
	require.ErrorIs(t, err, ErrInvalidScope)
}

func TestWriteCSV(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, WriteCSV(buf, fixture()[:2]))

	want := "Reference ID,Provider,Date,Total Amount,Status\n" +
		"INV-AAA111,Acme,2025-06-03,€100.00,Paid\n" +
		"INV-BBB222,Beta,2025-05-31,€200.00,Pending\n"
	require.Equal(t, want, buf.String())
}

func TestBuildPDFDocument(t *testing.T) {
	doc := BuildPDFDocument(fixture()[:1], now)
	require.Equal(t, "Invoice Report", doc.Title)
	require.Equal(t, []string{"Ref ID", "Provider", "Date", "Total", "Status"}, doc.Header)
	require.Equal(t, [][]string{{"INV-AAA111", "Acme", "2025-06-03", "€100.00", "Paid"}}, doc.Rows)
	require.Equal(t, "June 15, 2025", doc.GeneratedAt)
}

func TestBuildInvoiceDocument(t *testing.T) {
	doc := BuildInvoiceDocument(fixture()[0], now)
	require.Equal(t, "Invoice INV-AAA111", doc.Title)
	require.Equal(t, PDFHeader, doc.Header)
	require.Len(t, doc.Rows, 1)
}
