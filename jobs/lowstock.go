package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/stockflow-app/stockflow/internal/catalog"
	"github.com/stockflow-app/stockflow/internal/notifications"
)

// StockSource lists the products to scan, across all companies.
type StockSource interface {
	ListAll(ctx context.Context) ([]catalog.Product, error)
}

// AlertSink receives the notifications the scan raises.
type AlertSink interface {
	Create(ctx context.Context, n notifications.Notification) error
}

// LowStockScanner builds alert notifications for products at or below the
// stock threshold. One alert per out-of-stock product, one per low-stock
// product; already-healthy products produce nothing.
type LowStockScanner struct {
	source StockSource
	sink   AlertSink
	logger *slog.Logger
}

// NewLowStockScanner builds the scanner.
func NewLowStockScanner(source StockSource, sink AlertSink, logger *slog.Logger) *LowStockScanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &LowStockScanner{source: source, sink: sink, logger: logger}
}

// Scan walks all products and raises alerts. Failures on individual alerts
// are logged and the walk continues.
func (s *LowStockScanner) Scan(ctx context.Context) (int, error) {
	products, err := s.source.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	raised := 0
	for _, p := range products {
		status := catalog.StatusFor(p.Quantity)
		if status == catalog.StatusInStock {
			continue
		}
		n := notifications.Notification{
			CompanyID: p.CompanyID,
			Type:      notifications.TypeAlert,
			Title:     "Low Stock Alert",
			Message:   fmt.Sprintf("%s is running low (%d left)", p.Name, p.Quantity),
		}
		if status == catalog.StatusOutOfStock {
			n.Title = "Out of Stock"
			n.Message = fmt.Sprintf("%s is out of stock", p.Name)
		}
		if err := s.sink.Create(ctx, n); err != nil {
			s.logger.Warn("low stock alert failed", "product", p.Name, "error", err)
			continue
		}
		raised++
	}
	return raised, nil
}

// Handler adapts the scanner to an asynq task handler.
func (s *LowStockScanner) Handler() asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		raised, err := s.Scan(ctx)
		if err != nil {
			return err
		}
		s.logger.Info("low stock scan complete", "alerts", raised)
		return nil
	}
}
