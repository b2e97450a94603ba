// Package sales processes stock-decrementing sales against the product
// catalog. Each line updates its product independently; a line that fails
// leaves the others committed.
package sales

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stockflow-app/stockflow/internal/activity"
	"github.com/stockflow-app/stockflow/internal/catalog"
	"github.com/stockflow-app/stockflow/internal/shared"
)

// CatalogPort is the slice of the product store a sale needs.
type CatalogPort interface {
	Get(ctx context.Context, companyID, id string) (catalog.Product, error)
	UpdateQuantity(ctx context.Context, companyID, id string, quantity int) error
}

// ActivityPort records the aggregate audit entry.
type ActivityPort interface {
	Record(ctx context.Context, entry activity.Entry) error
}

// Refresher rebuilds the company snapshot after the sale.
type Refresher interface {
	Refresh(ctx context.Context, companyID string) error
}

// Line is one product and quantity in a sale.
type Line struct {
	ProductID string
	Quantity  int
}

// Result reports what a sale actually changed. Failed lines carry the
// product IDs whose updates did not commit.
type Result struct {
	Updated     int
	FailedLines []string
}

// Service executes sales.
type Service struct {
	catalog    CatalogPort
	activities ActivityPort
	refresher  Refresher
	logger     *slog.Logger
}

// NewService builds Service.
func NewService(catalog CatalogPort, activities ActivityPort, refresher Refresher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{catalog: catalog, activities: activities, refresher: refresher, logger: logger}
}

// Process applies the sale line by line. Each product's new quantity clamps
// at zero; lines update sequentially and independently, so a mid-sale
// failure leaves earlier lines committed. One aggregate activity entry is
// written and the snapshot refetched regardless of partial failures.
func (s *Service) Process(ctx context.Context, companyID, actor string, lines []Line) (Result, error) {
	if len(lines) == 0 {
		return Result{}, shared.NewValidationError(map[string]string{"items": "At least one item is required"})
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return Result{}, shared.NewValidationError(map[string]string{"qty": "Quantity must be positive"})
		}
	}

	var result Result
	for _, line := range lines {
		product, err := s.catalog.Get(ctx, companyID, line.ProductID)
		if err != nil {
			s.logger.Warn("sale line skipped", "product_id", line.ProductID, "error", err)
			result.FailedLines = append(result.FailedLines, line.ProductID)
			continue
		}
		newQty := product.Quantity - line.Quantity
		if newQty < 0 {
			newQty = 0
		}
		if err := s.catalog.UpdateQuantity(ctx, companyID, line.ProductID, newQty); err != nil {
			s.logger.Warn("sale line update failed", "product_id", line.ProductID, "error", err)
			result.FailedLines = append(result.FailedLines, line.ProductID)
			continue
		}
		result.Updated++
	}

	if s.activities != nil {
		_ = s.activities.Record(ctx, activity.Entry{
			CompanyID: companyID,
			User:      actor,
			Action:    "processed sale",
			Target:    fmt.Sprintf("%d items", len(lines)),
			Kind:      activity.KindSale,
		})
	}

	if s.refresher != nil {
		if err := s.refresher.Refresh(ctx, companyID); err != nil {
			return result, err
		}
	}
	return result, nil
}
