package catalog

import (
	"context"
	"strings"

	"github.com/stockflow-app/stockflow/internal/activity"
	"github.com/stockflow-app/stockflow/internal/money"
	"github.com/stockflow-app/stockflow/internal/shared"
)

// ActivityPort records audit entries for product writes.
type ActivityPort interface {
	Record(ctx context.Context, entry activity.Entry) error
}

// Refresher rebuilds the company snapshot after a confirmed write.
type Refresher interface {
	Refresh(ctx context.Context, companyID string) error
}

// Service coordinates product writes: validate, write once, then refetch the
// authoritative collection. A failed write surfaces its error and leaves the
// snapshot untouched.
type Service struct {
	repo       Repository
	activities ActivityPort
	refresher  Refresher
}

// NewService builds Service.
func NewService(repo Repository, activities ActivityPort, refresher Refresher) *Service {
	return &Service{repo: repo, activities: activities, refresher: refresher}
}

// SaveInput is the form state for a product save. An empty ID means insert;
// a persisted identity means update. Price arrives as typed, possibly
// currency-decorated text.
type SaveInput struct {
	ID          string
	Name        string
	SKU         string
	Category    string
	Price       string
	Quantity    int
	ImageURL    string
	Description string
	Actor       string
}

// Validate checks the pending save. An empty map means the write may proceed.
func (in SaveInput) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(in.Name) == "" {
		errs["name"] = "Product name is required"
	}
	if strings.TrimSpace(in.SKU) == "" {
		errs["sku"] = "SKU is required"
	}
	price, err := money.Parse(in.Price)
	if err != nil {
		errs["price"] = "Invalid price format"
	} else if price < 0 {
		errs["price"] = "Price must not be negative"
	}
	if in.Quantity < 0 {
		errs["qty"] = "Quantity must not be negative"
	}
	return errs
}

// Save validates and persists a product, logs the matching activity entry,
// and triggers a full refetch of the company's collections.
func (s *Service) Save(ctx context.Context, companyID string, in SaveInput) error {
	if errs := in.Validate(); len(errs) > 0 {
		return shared.NewValidationError(errs)
	}
	price, err := money.Parse(in.Price)
	if err != nil {
		return shared.NewValidationError(map[string]string{"price": "Invalid price format"})
	}

	payload := WritePayload{
		Name:        strings.TrimSpace(in.Name),
		SKU:         strings.TrimSpace(in.SKU),
		Category:    in.Category,
		Price:       price,
		Quantity:    in.Quantity,
		Status:      string(StatusFor(in.Quantity)),
		ImageURL:    in.ImageURL,
		Description: in.Description,
	}

	kind := activity.KindAdd
	action := "created product"
	if in.ID != "" {
		kind = activity.KindEdit
		action = "updated product"
		if err := s.repo.Update(ctx, companyID, in.ID, payload); err != nil {
			return &shared.BackendError{Op: "catalog: update product", Err: err}
		}
	} else {
		if _, err := s.repo.Insert(ctx, companyID, payload); err != nil {
			return &shared.BackendError{Op: "catalog: insert product", Err: err}
		}
	}

	if s.activities != nil {
		_ = s.activities.Record(ctx, activity.Entry{
			CompanyID: companyID,
			User:      in.Actor,
			Action:    action,
			Target:    payload.Name,
			Kind:      kind,
		})
	}

	if s.refresher != nil {
		return s.refresher.Refresh(ctx, companyID)
	}
	return nil
}

// Delete removes a product and refetches.
func (s *Service) Delete(ctx context.Context, companyID, id string) error {
	if err := s.repo.Delete(ctx, companyID, id); err != nil {
		return &shared.BackendError{Op: "catalog: delete product", Err: err}
	}
	if s.refresher != nil {
		return s.refresher.Refresh(ctx, companyID)
	}
	return nil
}

// List returns the company's products, newest first.
func (s *Service) List(ctx context.Context, companyID string) ([]Product, error) {
	return s.repo.List(ctx, companyID)
}

// Get fetches a single product.
func (s *Service) Get(ctx context.Context, companyID, id string) (Product, error) {
	return s.repo.Get(ctx, companyID, id)
}
