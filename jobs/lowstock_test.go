package jobs

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stockflow-app/stockflow/internal/catalog"
	"github.com/stockflow-app/stockflow/internal/notifications"
)

type fakeStock struct {
	products []catalog.Product
}

func (s *fakeStock) ListAll(ctx context.Context) ([]catalog.Product, error) {
	return s.products, nil
}

type recordedAlerts struct {
	created []notifications.Notification
	failOn  string
}

func (a *recordedAlerts) Create(ctx context.Context, n notifications.Notification) error {
	if a.failOn != "" && a.failOn == n.CompanyID {
		return fmt.Errorf("connection reset")
	}
	a.created = append(a.created, n)
	return nil
}

func TestScanRaisesAlertsBelowThreshold(t *testing.T) {
	source := &fakeStock{products: []catalog.Product{
		{CompanyID: "co-1", Name: "USB Hub", Quantity: 0},
		{CompanyID: "co-1", Name: "Monitor", Quantity: 12},
		{CompanyID: "co-2", Name: "Desk", Quantity: 80},
	}}
	sink := &recordedAlerts{}
	scanner := NewLowStockScanner(source, sink, nil)

	raised, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, raised)

	require.Equal(t, "Out of Stock", sink.created[0].Title)
	require.Equal(t, "USB Hub is out of stock", sink.created[0].Message)
	require.Equal(t, notifications.TypeAlert, sink.created[0].Type)

	require.Equal(t, "Low Stock Alert", sink.created[1].Title)
	require.Equal(t, "Monitor is running low (12 left)", sink.created[1].Message)
}

func TestScanContinuesPastSinkFailures(t *testing.T) {
	source := &fakeStock{products: []catalog.Product{
		{CompanyID: "co-1", Name: "USB Hub", Quantity: 0},
		{CompanyID: "co-2", Name: "Cable", Quantity: 3},
	}}
	sink := &recordedAlerts{failOn: "co-1"}
	scanner := NewLowStockScanner(source, sink, nil)

	raised, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, raised)
	require.Len(t, sink.created, 1)
	require.Equal(t, "co-2", sink.created[0].CompanyID)
}
